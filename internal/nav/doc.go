// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package nav decides which part of the application to show and keeps the
// stack of open screens.
//
// # Key Types
//
//   - Route: AwaitingLanguageSelection or MainApplication
//   - Controller: Reads the completion flag and moves between routes
//   - Stack: Last-in first-out stack of screens with a fixed root
//
// The route only ever moves forward during a run. Changing the language from
// settings does not clear the completion flag, so it never sends the user
// back to the selection screen; `pestcheck lang reset` does, on the next run.
//
// # Usage
//
//	ctl := nav.NewController(prefs, logger)
//	switch ctl.Initial(ctx) {
//	case nav.AwaitingLanguageSelection:
//	    // show the language picker, then ctl.Complete(ctx, code)
//	case nav.MainApplication:
//	    // show home
//	}
package nav
