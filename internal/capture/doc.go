// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package capture turns photos into data URIs for chat turns.
//
// Two sources mirror the phone client's choices:
//
//   - Gallery: FromFile reads an existing image file.
//   - Camera: Watcher waits for the next photo to land in a folder (a phone
//     sync folder, a USB camera's import folder, a scanner's output) using
//     fsnotify, then reads it once writes settle.
//
// Only JPEG, PNG, WebP and GIF are accepted; the type is sniffed from the
// content, not the extension.
//
// # Usage
//
//	img, err := capture.FromFile("leaf.jpg", cfg.Capture.MaxBytes)
//
//	w := capture.NewWatcher(cfg.Capture.Dir, cfg.Capture.MaxBytes, logger)
//	img, err := w.Next(ctx) // blocks until a photo arrives or ctx ends
package capture
