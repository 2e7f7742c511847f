// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the pestcheck command line.
//
// Without a command pestcheck starts the TUI. The line-mode commands work
// without a terminal and are meant for scripts and slow links:
//
//	pestcheck ask "white spots on tomato leaves" --image leaf.jpg
//	pestcheck chat
//	pestcheck history show|clear|export
//	pestcheck lang show|set|reset|list
//	pestcheck config show|get|set|path
//	pestcheck status
//	pestcheck version
//
// # Key Types
//
//   - Command / Args: Result of Parse
//   - ArgParser: Subcommand, flag and positional parsing for handlers
//   - Env: Wired dependencies and output streams handed to each handler
//   - JSONResponse: Envelope for --json output
package cli
