// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package kvstore

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when the key has never been set or was removed.
	ErrNotFound = errors.New("kvstore: key not found")

	// ErrClosed is returned by any call made after Close.
	ErrClosed = errors.New("kvstore: store closed")
)

// Store is a string key-value medium. Implementations are safe for
// concurrent use.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set overwrites the value for key.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// Close releases resources held by the store.
	Close() error
}
