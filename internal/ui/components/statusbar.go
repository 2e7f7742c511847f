// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/pestcheck-tui/internal/ui/styles"
	"github.com/jeranaias/pestcheck-tui/internal/util"
)

// AlertDuration is how long a transient alert stays on the status line.
const AlertDuration = 4 * time.Second

var alertSeq atomic.Int64

// AlertExpiredMsg dismisses the alert with the same ID.
type AlertExpiredMsg struct {
	ID int64
}

// Alert is a transient status-line message.
type Alert struct {
	ID      int64
	Text    string
	IsError bool
}

// StatusBar shows key hints, or the current alert when there is one.
type StatusBar struct {
	Hints []string
	Width int

	alert *Alert
}

// Show replaces the current alert and returns the command that dismisses it.
func (s *StatusBar) Show(text string, isError bool) tea.Cmd {
	id := alertSeq.Add(1)
	s.alert = &Alert{ID: id, Text: text, IsError: isError}
	return tea.Tick(AlertDuration, func(time.Time) tea.Msg {
		return AlertExpiredMsg{ID: id}
	})
}

// Info shows a non-error alert.
func (s *StatusBar) Info(text string) tea.Cmd { return s.Show(text, false) }

// Error shows an error alert.
func (s *StatusBar) Error(text string) tea.Cmd { return s.Show(text, true) }

// Expire clears the alert if msg refers to it. Older ticks are ignored.
func (s *StatusBar) Expire(msg AlertExpiredMsg) {
	if s.alert != nil && s.alert.ID == msg.ID {
		s.alert = nil
	}
}

// Alert returns the visible alert, if any.
func (s *StatusBar) Alert() (Alert, bool) {
	if s.alert == nil {
		return Alert{}, false
	}
	return *s.alert, true
}

// View renders the status line.
func (s *StatusBar) View(theme *styles.Theme) string {
	width := s.Width
	if width <= 0 {
		width = 80
	}
	if s.alert != nil {
		style := theme.InfoStyle
		if s.alert.IsError {
			style = theme.ErrorStyle
		}
		return theme.StatusBar.Render(style.Render(util.Truncate(s.alert.Text, width)))
	}

	parts := make([]string, 0, len(s.Hints))
	for _, h := range s.Hints {
		k, desc, found := strings.Cut(h, " ")
		if !found {
			parts = append(parts, theme.ShortcutKey.Render(h))
			continue
		}
		parts = append(parts, theme.ShortcutKey.Render(k)+" "+theme.ShortcutDesc.Render(desc))
	}
	line := strings.Join(parts, theme.ShortcutDesc.Render("  ·  "))
	if util.StringWidth(stripHintMarkup(s.Hints)) > width {
		// Too narrow for styled hints; fall back to plain text.
		line = theme.ShortcutDesc.Render(util.Truncate(strings.Join(s.Hints, " · "), width))
	}
	return theme.StatusBar.Render(line)
}

func stripHintMarkup(hints []string) string {
	return strings.Join(hints, "  ·  ")
}
