// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/pestcheck-tui/internal/ui/styles"
)

// Dialog is a modal confirmation box with a single button.
type Dialog struct {
	Title   string
	Message string
	Button  string
	IsError bool
}

// View renders the dialog centered in width x height.
func (d Dialog) View(theme *styles.Theme, width, height int) string {
	title := theme.DialogTitle.Render(d.Title)
	if d.IsError {
		title = theme.ErrorStyle.Render(d.Title)
	}
	maxWidth := width - 8
	if maxWidth < 20 {
		maxWidth = 20
	}
	body := lipgloss.NewStyle().MaxWidth(maxWidth).Render(d.Message)
	box := theme.DialogBox.Render(lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		body,
		theme.DialogButton.Render(d.Button),
	))
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
