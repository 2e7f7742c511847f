// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package nav

import (
	"context"
	"errors"
	"testing"

	"github.com/jeranaias/pestcheck-tui/internal/kvstore"
	"github.com/jeranaias/pestcheck-tui/internal/prefs"
)

type stubPrefs struct {
	selected bool
	failSave bool
	saved    []string
}

func (s *stubPrefs) HasSelected(context.Context) bool { return s.selected }

func (s *stubPrefs) CompleteSelection(_ context.Context, code string) error {
	if s.failSave {
		return errors.New("disk full")
	}
	s.saved = append(s.saved, code)
	s.selected = true
	return nil
}

func TestInitial(t *testing.T) {
	tests := []struct {
		name     string
		selected bool
		want     Route
	}{
		{"first run", false, AwaitingLanguageSelection},
		{"returning user", true, MainApplication},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(&stubPrefs{selected: tt.selected}, nil)
			if got := c.Initial(context.Background()); got != tt.want {
				t.Errorf("Initial() = %v, want %v", got, tt.want)
			}
			if c.Route() != tt.want {
				t.Errorf("Route() = %v, want %v", c.Route(), tt.want)
			}
		})
	}
}

func TestComplete(t *testing.T) {
	p := &stubPrefs{}
	c := NewController(p, nil)
	c.Initial(context.Background())

	route, err := c.Complete(context.Background(), "ta")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if route != MainApplication {
		t.Errorf("route = %v, want main", route)
	}
	if len(p.saved) != 1 || p.saved[0] != "ta" {
		t.Errorf("saved = %v", p.saved)
	}
}

func TestComplete_FailureKeepsRoute(t *testing.T) {
	c := NewController(&stubPrefs{failSave: true}, nil)
	c.Initial(context.Background())

	route, err := c.Complete(context.Background(), "hi")
	if err == nil {
		t.Fatal("expected error")
	}
	if route != AwaitingLanguageSelection {
		t.Errorf("route = %v, want language-select", route)
	}
}

func TestRecheck_OnlyPromotes(t *testing.T) {
	p := &stubPrefs{selected: true}
	c := NewController(p, nil)
	c.Initial(context.Background())

	// Flag disappears mid-run; the route does not go back.
	p.selected = false
	if got := c.Recheck(context.Background()); got != MainApplication {
		t.Errorf("Recheck() = %v, want main", got)
	}

	p2 := &stubPrefs{}
	c2 := NewController(p2, nil)
	c2.Initial(context.Background())
	p2.selected = true
	if got := c2.Recheck(context.Background()); got != MainApplication {
		t.Errorf("Recheck() after flag set = %v, want main", got)
	}
}

func TestSettingsLanguageChangeDoesNotReroute(t *testing.T) {
	ctx := context.Background()
	p := prefs.New(kvstore.NewMemory(), nil)
	c := NewController(p, nil)
	c.Initial(ctx)
	if _, err := c.Complete(ctx, "en"); err != nil {
		t.Fatal(err)
	}

	if err := p.SetLanguage(ctx, "te"); err != nil {
		t.Fatal(err)
	}

	// Next start
	next := NewController(p, nil)
	if got := next.Initial(ctx); got != MainApplication {
		t.Errorf("Initial() after settings change = %v, want main", got)
	}
}

func TestRoute_String(t *testing.T) {
	if AwaitingLanguageSelection.String() != "language-select" || MainApplication.String() != "main" {
		t.Error("unexpected route names")
	}
	if Route(9).String() != "unknown" {
		t.Error("Route(9) should be unknown")
	}
}

func TestStack(t *testing.T) {
	st := NewStack("home")
	if st.Depth() != 1 || st.Current() != "home" {
		t.Fatalf("new stack = %d/%q", st.Depth(), st.Current())
	}

	if _, ok := st.Pop(); ok {
		t.Error("root must not pop")
	}

	st.Push("chat")
	st.Push("settings")
	if st.Current() != "settings" || st.Depth() != 3 {
		t.Errorf("after push: %q depth %d", st.Current(), st.Depth())
	}

	top, ok := st.Pop()
	if !ok || top != "settings" {
		t.Errorf("Pop() = %q, %v", top, ok)
	}

	st.Replace("about")
	if st.Current() != "about" || st.Depth() != 2 {
		t.Errorf("after replace: %q depth %d", st.Current(), st.Depth())
	}

	if items := st.Items(); len(items) != 2 || items[0] != "home" || items[1] != "about" {
		t.Errorf("Items() = %v", items)
	}

	st.Reset("langselect")
	if st.Current() != "langselect" || st.Depth() != 1 {
		t.Errorf("after reset: %q depth %d", st.Current(), st.Depth())
	}
}
