// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package transcript

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jeranaias/pestcheck-tui/internal/kvstore"
	"github.com/jeranaias/pestcheck-tui/internal/logging"
)

// Key is the storage key holding the serialized transcript.
const Key = "chatHistory"

// Store loads and saves the transcript.
type Store struct {
	kv     kvstore.Store
	logger *zap.Logger
}

// NewStore returns a Store over kv.
func NewStore(kv kvstore.Store, logger *zap.Logger) *Store {
	return &Store{kv: kv, logger: logging.OrNop(logger).Named("transcript")}
}

// Load returns the persisted transcript. A missing key is an empty
// transcript. On a read or decode failure the failure is logged and returned
// together with an empty, non-nil transcript so callers can carry on.
func (s *Store) Load(ctx context.Context) ([]Entry, error) {
	raw, err := s.kv.Get(ctx, Key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return []Entry{}, nil
	}
	if err != nil {
		s.logger.Warn("transcript read failed", zap.Error(err))
		return []Entry{}, fmt.Errorf("failed to read transcript: %w", err)
	}

	entries, err := Decode([]byte(raw))
	if err != nil {
		s.logger.Warn("transcript is corrupt, starting empty", zap.Error(err))
		return []Entry{}, err
	}
	return entries, nil
}

// Save overwrites the persisted transcript. An empty transcript is not
// written.
func (s *Store) Save(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	data, err := Encode(entries)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, Key, string(data)); err != nil {
		s.logger.Warn("transcript write failed", zap.Int("entries", len(entries)), zap.Error(err))
		return fmt.Errorf("failed to save transcript: %w", err)
	}
	return nil
}

// Clear removes the persisted transcript.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Remove(ctx, Key); err != nil {
		s.logger.Warn("transcript clear failed", zap.Error(err))
		return fmt.Errorf("failed to clear transcript: %w", err)
	}
	return nil
}

// Encode serializes entries as a compact JSON array. The output depends only
// on the entries, so encoding a decoded transcript reproduces it exactly.
func Encode(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to encode transcript: %w", err)
	}
	return data, nil
}

// Decode parses a serialized transcript. A JSON null decodes as empty.
func Decode(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode transcript: %w", err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}
