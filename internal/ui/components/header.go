// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/pestcheck-tui/internal/ui/styles"
	"github.com/jeranaias/pestcheck-tui/internal/util"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

const minHeaderWidth = 20

// Header is the title bar at the top of every screen.
type Header struct {
	Title    string
	Subtitle string
	Width    int
}

// View renders the header.
func (h Header) View(theme *styles.Theme) string {
	width := h.Width
	if width < minHeaderWidth {
		width = minHeaderWidth
	}
	inner := width - 2

	lines := []string{theme.HeaderTitle.Render(util.Truncate(h.Title, inner))}
	if h.Subtitle != "" {
		lines = append(lines, theme.HeaderSub.Render(util.Truncate(h.Subtitle, inner)))
	}
	return theme.Header.Width(inner).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
