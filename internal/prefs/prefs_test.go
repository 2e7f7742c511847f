// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prefs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jeranaias/pestcheck-tui/internal/kvstore"
)

// failingStore fails every call after the configured number of Sets.
type failingStore struct {
	kvstore.Store
	failGet   bool
	setsLeft  int
	setCalled []string
}

var errDisk = errors.New("disk unavailable")

func (f *failingStore) Get(ctx context.Context, key string) (string, error) {
	if f.failGet {
		return "", errDisk
	}
	return f.Store.Get(ctx, key)
}

func (f *failingStore) Set(ctx context.Context, key, value string) error {
	f.setCalled = append(f.setCalled, key)
	if f.setsLeft <= 0 {
		return errDisk
	}
	f.setsLeft--
	return f.Store.Set(ctx, key, value)
}

func TestDefaults(t *testing.T) {
	s := New(kvstore.NewMemory(), zap.NewNop())
	ctx := context.Background()

	assert.Equal(t, "en", s.Language(ctx))
	assert.False(t, s.HasSelected(ctx))
}

func TestCompleteSelection(t *testing.T) {
	kv := kvstore.NewMemory()
	s := New(kv, nil)
	ctx := context.Background()

	require.NoError(t, s.CompleteSelection(ctx, "ta"))
	assert.True(t, s.HasSelected(ctx))
	assert.Equal(t, "ta", s.Language(ctx))

	v, err := kv.Get(ctx, KeyHasSelected)
	require.NoError(t, err)
	assert.Equal(t, "true", v)
}

func TestCompleteSelection_Idempotent(t *testing.T) {
	s := New(kvstore.NewMemory(), nil)
	ctx := context.Background()

	require.NoError(t, s.CompleteSelection(ctx, "hi"))
	require.NoError(t, s.CompleteSelection(ctx, "hi"))

	assert.True(t, s.HasSelected(ctx))
	assert.Equal(t, "hi", s.Language(ctx))
}

func TestCompleteSelection_WriteOrder(t *testing.T) {
	fs := &failingStore{Store: kvstore.NewMemory(), setsLeft: 1}
	s := New(fs, nil)
	ctx := context.Background()

	err := s.CompleteSelection(ctx, "te")
	require.ErrorIs(t, err, errDisk)
	assert.Equal(t, []string{KeyUserLanguage, KeyHasSelected}, fs.setCalled)

	// Code written, flag not: still routed to selection, language honoured.
	assert.False(t, s.HasSelected(ctx))
	assert.Equal(t, "te", s.Language(ctx))
}

func TestCompleteSelection_Unsupported(t *testing.T) {
	s := New(kvstore.NewMemory(), nil)
	err := s.CompleteSelection(context.Background(), "fr")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
	assert.False(t, s.HasSelected(context.Background()))
}

func TestSetLanguage_KeepsFlagAndOverridesFirstRun(t *testing.T) {
	s := New(kvstore.NewMemory(), nil)
	ctx := context.Background()

	require.NoError(t, s.CompleteSelection(ctx, "hi"))
	require.NoError(t, s.SetLanguage(ctx, "te"))

	assert.True(t, s.HasSelected(ctx))
	assert.Equal(t, "te", s.Language(ctx))

	snap := s.Snapshot(ctx)
	assert.Equal(t, Snapshot{SelectedLanguage: "te", UserLanguage: "hi", HasSelected: true, Effective: "te"}, snap)
}

func TestSetLanguage_DoesNotCompleteSelection(t *testing.T) {
	s := New(kvstore.NewMemory(), nil)
	ctx := context.Background()

	require.NoError(t, s.SetLanguage(ctx, "ta"))
	assert.False(t, s.HasSelected(ctx))
}

func TestReadFailure_FailsOpen(t *testing.T) {
	mem := kvstore.NewMemory()
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, KeyHasSelected, "true"))
	require.NoError(t, mem.Set(ctx, KeyUserLanguage, "ta"))

	s := New(&failingStore{Store: mem, failGet: true}, nil)
	assert.Equal(t, "en", s.Language(ctx))
	assert.False(t, s.HasSelected(ctx))
}

func TestUnsupportedStoredCode_ReadsAsEnglish(t *testing.T) {
	mem := kvstore.NewMemory()
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, KeySelectedLanguage, "klingon"))

	s := New(mem, nil)
	assert.Equal(t, "en", s.Language(ctx))
}

func TestReset(t *testing.T) {
	s := New(kvstore.NewMemory(), nil)
	ctx := context.Background()

	require.NoError(t, s.CompleteSelection(ctx, "ta"))
	require.NoError(t, s.SetLanguage(ctx, "hi"))
	require.NoError(t, s.Reset(ctx))

	assert.False(t, s.HasSelected(ctx))
	assert.Equal(t, "en", s.Language(ctx))
}
