// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package kvstore provides the string key-value medium under preferences and
// the chat transcript.
//
// # Key Types
//
//   - Store: Get/Set/Remove by key, whole-value overwrite
//   - SQLite: Durable store in a single modernc.org/sqlite database file
//   - Memory: Process-local store for tests and --ephemeral runs
//
// Values are opaque strings. There are no transactions across keys: two Set
// calls are two independent writes.
//
// # Usage
//
//	store, err := kvstore.OpenSQLite(ctx, path)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	v, err := store.Get(ctx, "hasSelectedLanguage")
//	if errors.Is(err, kvstore.ErrNotFound) {
//	    // first run
//	}
package kvstore
