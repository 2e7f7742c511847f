// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// Markdown renders agent replies with glamour. Renderers are cached per wrap
// width. A disabled or failing renderer returns the text unchanged.
type Markdown struct {
	enabled bool
	style   string

	mu        sync.Mutex
	renderers map[int]*glamour.TermRenderer
}

// NewMarkdown returns a renderer using the glamour "dark" or "light" style.
func NewMarkdown(enabled, dark bool) *Markdown {
	style := "dark"
	if !dark {
		style = "light"
	}
	return &Markdown{enabled: enabled, style: style, renderers: map[int]*glamour.TermRenderer{}}
}

// Enabled reports whether rendering is on.
func (m *Markdown) Enabled() bool {
	return m != nil && m.enabled
}

// Render formats text for width columns.
func (m *Markdown) Render(text string, width int) string {
	if !m.Enabled() || strings.TrimSpace(text) == "" {
		return text
	}
	if width < 20 {
		width = 20
	}
	r := m.renderer(width)
	if r == nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

func (m *Markdown) renderer(width int) *glamour.TermRenderer {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.renderers[width]; ok {
		return r
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		r = nil
	}
	m.renderers[width] = r
	return r
}
