// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package transcript persists the chat transcript as one JSON array under the
// "chatHistory" key.
//
// # Key Types
//
//   - Entry: One user or agent turn (text, optional image, optional analysis)
//   - Analysis: Structured pest classification attached to an agent reply
//   - Store: Load/Save/Clear over a kvstore.Store
//
// # Persistence Contract
//
// The whole transcript is overwritten on every save; there is no merge, no
// size bound and no eviction. A load replaces the in-memory transcript. JSON
// field names (text, isUser, image, visionAnalysis) match transcripts written
// by the mobile client, so a copied store keeps working.
//
// Saving an empty transcript is a no-op; use Clear to forget history.
//
// # Usage
//
//	st := transcript.NewStore(kv, logger)
//	entries, err := st.Load(ctx)
//	if err != nil {
//	    // already logged; entries is empty
//	}
//	entries = append(entries, transcript.UserEntry("aphids on leaves", ""))
//	err = st.Save(ctx, entries)
package transcript
