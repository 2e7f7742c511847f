// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the pestcheck packages.
//
// # Key Functions
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
//
// Display:
//   - Truncate: Width-aware truncation with ellipsis (CJK and Indic safe)
//   - Preview: Single-line preview of multi-line text
//   - FitWidth: Pad or truncate to an exact display width
//
// # Usage
//
//	// Write files atomically to prevent data loss
//	err := util.AtomicWriteFile(path, data, 0600)
//
//	// Show the first line of a reply in a 40 column list
//	line := util.Preview(entry.Text, 40)
package util
