// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/pestcheck-tui/internal/ui/styles"
)

// MenuItem is one selectable row.
type MenuItem struct {
	Label   string
	Detail  string
	Checked bool
}

// Menu is a vertical list with a cursor. It wraps around at both ends.
type Menu struct {
	Items  []MenuItem
	Cursor int
}

// Up moves the cursor up.
func (m *Menu) Up() {
	if len(m.Items) == 0 {
		return
	}
	m.Cursor = (m.Cursor - 1 + len(m.Items)) % len(m.Items)
}

// Down moves the cursor down.
func (m *Menu) Down() {
	if len(m.Items) == 0 {
		return
	}
	m.Cursor = (m.Cursor + 1) % len(m.Items)
}

// Selected returns the index under the cursor, or -1 for an empty menu.
func (m *Menu) Selected() int {
	if len(m.Items) == 0 {
		return -1
	}
	if m.Cursor < 0 || m.Cursor >= len(m.Items) {
		m.Cursor = 0
	}
	return m.Cursor
}

// View renders the menu.
func (m Menu) View(theme *styles.Theme) string {
	var b strings.Builder
	for i, item := range m.Items {
		line := item.Label
		if item.Detail != "" {
			line += "  " + theme.Label.Render(item.Detail)
		}
		if item.Checked {
			line += " " + theme.Check.Render("✓")
		}
		if i == m.Cursor {
			b.WriteString(theme.MenuCursor.Render("> ") + theme.MenuItemSelected.Render(line))
		} else {
			b.WriteString(theme.MenuItem.Render(line))
		}
		if i < len(m.Items)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
