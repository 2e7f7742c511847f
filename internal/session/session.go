// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jeranaias/pestcheck-tui/internal/inference"
	"github.com/jeranaias/pestcheck-tui/internal/logging"
	"github.com/jeranaias/pestcheck-tui/internal/transcript"
)

// Sender sends one turn to the inference service.
type Sender interface {
	Send(ctx context.Context, text, image, language string) (*inference.Result, error)
}

// LanguageSource returns the language code for the next turn.
type LanguageSource interface {
	Language(ctx context.Context) string
}

// FixedLanguage is a LanguageSource that always returns itself.
type FixedLanguage string

// Language implements LanguageSource.
func (f FixedLanguage) Language(context.Context) string { return string(f) }

// Session is one chat session. It is safe for concurrent use.
type Session struct {
	id     string
	store  *transcript.Store
	client Sender
	lang   LanguageSource
	logger *zap.Logger

	sendMu sync.Mutex // serializes turns

	mu      sync.Mutex // guards entries
	entries []transcript.Entry
}

// New returns an empty session. Call Load to pick up the persisted transcript.
func New(store *transcript.Store, client Sender, lang LanguageSource, logger *zap.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		id:      id,
		store:   store,
		client:  client,
		lang:    lang,
		logger:  logging.OrNop(logger).Named("session").With(zap.String("session_id", id)),
		entries: []transcript.Entry{},
	}
}

// ID returns the session id used in logs.
func (s *Session) ID() string {
	return s.id
}

// Load replaces the in-memory transcript with the persisted one. On failure
// the transcript becomes empty and the (already logged) error is returned
// for display.
func (s *Session) Load(ctx context.Context) error {
	entries, err := s.store.Load(ctx)

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()

	s.logger.Debug("transcript loaded", zap.Int("entries", len(entries)))
	return err
}

// Entries returns a copy of the transcript.
func (s *Session) Entries() []transcript.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]transcript.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Send runs one turn and returns the entry appended for the reply. Failed
// turns are not errors: they return an entry whose IsError reports true.
// The returned error is inference.ErrEmptyTurn (nothing changed) or the
// context error when ctx ends before the reply (only the user entry was
// recorded).
func (s *Session) Send(ctx context.Context, text, image string) (transcript.Entry, error) {
	if strings.TrimSpace(text) == "" && image == "" {
		return transcript.Entry{}, inference.ErrEmptyTurn
	}

	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	if err := ctx.Err(); err != nil {
		return transcript.Entry{}, err
	}

	s.append(ctx, transcript.UserEntry(text, image))

	lang := s.lang.Language(ctx)
	res, err := s.client.Send(ctx, text, image, lang)

	if ctxErr := ctx.Err(); ctxErr != nil {
		s.logger.Info("turn abandoned", zap.Error(ctxErr))
		return transcript.Entry{}, ctxErr
	}

	var reply transcript.Entry
	if err != nil {
		reply = transcript.ErrorEntry(inference.Message(err))
		s.logger.Warn("turn failed", zap.String("language", lang), zap.Error(err))
	} else {
		reply = res.Entry()
		s.logger.Info("turn completed",
			zap.String("language", lang),
			zap.String("request_id", res.RequestID),
			zap.Bool("has_analysis", res.Analysis != nil))
	}

	s.append(ctx, reply)
	return reply, nil
}

// Clear empties the transcript in memory and in storage.
func (s *Session) Clear(ctx context.Context) error {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	s.mu.Lock()
	s.entries = []transcript.Entry{}
	s.mu.Unlock()

	return s.store.Clear(ctx)
}

// append adds e and persists the whole transcript.
func (s *Session) append(ctx context.Context, e transcript.Entry) {
	s.mu.Lock()
	s.entries = append(s.entries, e)
	snapshot := make([]transcript.Entry, len(s.entries))
	copy(snapshot, s.entries)
	s.mu.Unlock()

	// Store.Save already logs failures.
	_ = s.store.Save(ctx, snapshot)
}
