// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session runs chat turns: it owns the in-memory transcript, calls
// the inference client and persists after every change.
//
// # Key Types
//
//   - Session: The transcript plus the send/persist sequence
//   - Sender: What Session needs from the inference client
//   - LanguageSource: Where the language of each turn comes from
//
// # Turn Sequence
//
//  1. Reject a turn with no text and no image (inference.ErrEmptyTurn).
//  2. Append the user entry and persist.
//  3. Call the inference client with the current language.
//  4. Append the agent entry, or an "Error: ..." entry, and persist.
//
// Sends are serialized: a second Send waits for the first to finish, so a
// user entry is always followed directly by its reply. If the context is
// canceled before the reply arrives, no reply entry is appended and nothing
// further is written.
//
// Persistence failures are logged and do not interrupt the session.
//
// # Usage
//
//	s := session.New(transcripts, client, prefs, logger)
//	_ = s.Load(ctx)
//	entry, err := s.Send(ctx, "aphids on leaves", "")
package session
