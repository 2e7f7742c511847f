// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package kvstore

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func stores(t *testing.T) map[string]Store {
	return map[string]Store{
		"memory": NewMemory(),
		"sqlite": openSQLite(t),
	}
}

func TestStore_GetMissing(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(context.Background(), "hasSelectedLanguage")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_SetGetOverwrite(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(ctx, "userLanguage", "hi"))
			require.NoError(t, s.Set(ctx, "userLanguage", "ta"))

			v, err := s.Get(ctx, "userLanguage")
			require.NoError(t, err)
			assert.Equal(t, "ta", v)
		})
	}
}

func TestStore_LargeUnicodeValue(t *testing.T) {
	ctx := context.Background()
	big := strings.Repeat("பூச்சி தாக்குதல் ", 20000)
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(ctx, "chatHistory", big))
			v, err := s.Get(ctx, "chatHistory")
			require.NoError(t, err)
			assert.Equal(t, big, v)
		})
	}
}

func TestStore_Remove(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(ctx, "chatHistory", "[]"))
			require.NoError(t, s.Remove(ctx, "chatHistory"))
			require.NoError(t, s.Remove(ctx, "chatHistory"), "second remove")

			_, err := s.Get(ctx, "chatHistory")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_Closed(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Close())
			_, err := s.Get(ctx, "k")
			assert.ErrorIs(t, err, ErrClosed)
			assert.ErrorIs(t, s.Set(ctx, "k", "v"), ErrClosed)
			assert.ErrorIs(t, s.Remove(ctx, "k"), ErrClosed)
		})
	}
}

func TestMemory_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMemory()
	err := m.Set(ctx, "k", "v")
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSQLite_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "store.db")

	s, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "hasSelectedLanguage", "true"))
	require.NoError(t, s.Close())

	s2, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer s2.Close()

	v, err := s2.Get(ctx, "hasSelectedLanguage")
	require.NoError(t, err)
	assert.Equal(t, "true", v)
	assert.Equal(t, path, s2.Path())
}

func TestStore_ConcurrentWriters(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					assert.NoError(t, s.Set(ctx, "selectedLanguage", "te"))
					_, _ = s.Get(ctx, "selectedLanguage")
				}()
			}
			wg.Wait()

			v, err := s.Get(ctx, "selectedLanguage")
			require.NoError(t, err)
			assert.Equal(t, "te", v)
		})
	}
}
