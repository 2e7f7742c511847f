// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the building blocks shared by the screens:
// the header, the status line with transient alerts, menus, the dialog box,
// chat bubbles and the markdown renderer.
//
// Components are plain values rendered with a *styles.Theme. None of them
// own goroutines; the only command they produce is the alert dismiss tick.
package components
