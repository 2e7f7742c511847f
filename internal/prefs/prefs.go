// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prefs stores the user's UI language and whether first-run language
// selection has happened.
//
// Reads fail open: a storage error is logged and treated as "absent", which
// means English and "not selected". The two first-run writes are independent,
// so a crash between them can leave the flag without a code or the reverse;
// both states degrade to the defaults above.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/jeranaias/pestcheck-tui/internal/i18n"
	"github.com/jeranaias/pestcheck-tui/internal/kvstore"
	"github.com/jeranaias/pestcheck-tui/internal/logging"
)

// Storage keys.
const (
	KeySelectedLanguage = "selectedLanguage"    // written from settings
	KeyUserLanguage     = "userLanguage"        // written by first-run selection
	KeyHasSelected      = "hasSelectedLanguage" // "true" once first-run selection ran
)

// ErrUnsupportedLanguage is returned when writing a code outside i18n.Languages.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Snapshot is the raw stored state, for display.
type Snapshot struct {
	SelectedLanguage string // settings choice, "" if absent
	UserLanguage     string // first-run choice, "" if absent
	HasSelected      bool   // completion flag
	Effective        string // language actually used
}

// Store reads and writes language preferences.
type Store struct {
	kv     kvstore.Store
	logger *zap.Logger
	warn   *rate.Sometimes
}

// New returns a Store over kv.
func New(kv kvstore.Store, logger *zap.Logger) *Store {
	return &Store{
		kv:     kv,
		logger: logging.OrNop(logger).Named("prefs"),
		warn:   &rate.Sometimes{First: 3, Interval: time.Minute},
	}
}

// get returns the stored value or "" when absent or unreadable.
func (s *Store) get(ctx context.Context, key string) string {
	v, err := s.kv.Get(ctx, key)
	if err == nil {
		return v
	}
	if !errors.Is(err, kvstore.ErrNotFound) {
		s.warn.Do(func() {
			s.logger.Warn("preference read failed, using default",
				zap.String("key", key), zap.Error(err))
		})
	}
	return ""
}

// Language returns the language to use: the settings choice, else the
// first-run choice, else English. Unsupported stored codes read as English.
func (s *Store) Language(ctx context.Context) string {
	if code := s.get(ctx, KeySelectedLanguage); i18n.IsSupported(code) {
		return code
	}
	if code := s.get(ctx, KeyUserLanguage); i18n.IsSupported(code) {
		return code
	}
	return i18n.DefaultLanguage
}

// HasSelected reports whether the completion flag is set.
func (s *Store) HasSelected(ctx context.Context) bool {
	return s.get(ctx, KeyHasSelected) == "true"
}

// CompleteSelection records the first-run choice: the language code first,
// then the completion flag.
func (s *Store) CompleteSelection(ctx context.Context, code string) error {
	if !i18n.IsSupported(code) {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
	}
	if err := s.kv.Set(ctx, KeyUserLanguage, code); err != nil {
		return fmt.Errorf("failed to save language: %w", err)
	}
	if err := s.kv.Set(ctx, KeyHasSelected, "true"); err != nil {
		return fmt.Errorf("failed to save selection flag: %w", err)
	}
	s.logger.Info("language selection completed", zap.String("language", code))
	return nil
}

// SetLanguage records a language change made from settings. The completion
// flag is left untouched.
func (s *Store) SetLanguage(ctx context.Context, code string) error {
	if !i18n.IsSupported(code) {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
	}
	if err := s.kv.Set(ctx, KeySelectedLanguage, code); err != nil {
		return fmt.Errorf("failed to save language: %w", err)
	}
	s.logger.Info("language changed", zap.String("language", code))
	return nil
}

// Reset removes all language preferences so the next start shows the
// selection screen again.
func (s *Store) Reset(ctx context.Context) error {
	var errs []error
	for _, key := range []string{KeyHasSelected, KeySelectedLanguage, KeyUserLanguage} {
		if err := s.kv.Remove(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// Snapshot returns the stored values and the effective language.
func (s *Store) Snapshot(ctx context.Context) Snapshot {
	return Snapshot{
		SelectedLanguage: s.get(ctx, KeySelectedLanguage),
		UserLanguage:     s.get(ctx, KeyUserLanguage),
		HasSelected:      s.HasSelected(ctx),
		Effective:        s.Language(ctx),
	}
}
