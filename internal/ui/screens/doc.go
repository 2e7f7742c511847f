// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package screens implements the pestcheck screens.
//
// # Key Types
//
//   - LangSelect: First-run language picker
//   - Home: Main menu (chat, settings, profile)
//   - Chat: Transcript, composer and image attachment
//   - ImagePicker: Camera folder or gallery path
//   - Settings: Language list and About block
//
// Every screen receives a *screen.Deps and the active language code. Blocking
// work (storage, network, file watching) runs in tea.Cmd functions and comes
// back as a message.
package screens
