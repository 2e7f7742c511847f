// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the pestcheck TUI.
// All colors use Lip Gloss AdaptiveColor so light and dark terminals both work.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styled components used by the screens.
type Theme struct {
	// Terminal capabilities
	Name         string
	IsDark       bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// FRAME
	// ==========================================================================

	App         lipgloss.Style
	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderSub   lipgloss.Style
	Footer      lipgloss.Style

	// ==========================================================================
	// LISTS AND MENUS
	// ==========================================================================

	MenuItem         lipgloss.Style
	MenuItemSelected lipgloss.Style
	MenuCursor       lipgloss.Style
	Check            lipgloss.Style
	SectionTitle     lipgloss.Style
	Label            lipgloss.Style
	Value            lipgloss.Style

	// ==========================================================================
	// CHAT
	// ==========================================================================

	UserBubble     lipgloss.Style
	AgentBubble    lipgloss.Style
	ErrorBubble    lipgloss.Style
	ImageTag       lipgloss.Style
	AnalysisBox    lipgloss.Style
	AnalysisTitle  lipgloss.Style
	InputContainer lipgloss.Style
	Spinner        lipgloss.Style
	Thinking       lipgloss.Style
	Empty          lipgloss.Style

	// ==========================================================================
	// STATUS LINE AND DIALOGS
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	InfoStyle    lipgloss.Style
	ErrorStyle   lipgloss.Style
	DialogBox    lipgloss.Style
	DialogTitle  lipgloss.Style
	DialogButton lipgloss.Style
}

// NewTheme builds a theme. name is "dark", "light" or "auto"; "auto" asks
// the terminal for its background.
func NewTheme(name string) *Theme {
	name = strings.ToLower(strings.TrimSpace(name))
	isDark := true
	switch name {
	case "light":
		isDark = false
	case "auto":
		isDark = termenv.HasDarkBackground()
	default:
		name = "dark"
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		Name:         name,
		IsDark:       isDark,
		ColorProfile: termenv.ColorProfile(),
	}
	t.build()
	return t
}

func (t *Theme) build() {
	t.App = lipgloss.NewStyle().Padding(0, 1)
	t.Header = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay).
		MarginBottom(1)
	t.HeaderTitle = lipgloss.NewStyle().Bold(true).Foreground(Leaf)
	t.HeaderSub = lipgloss.NewStyle().Foreground(TextSecondary)
	t.Footer = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)

	t.MenuItem = lipgloss.NewStyle().Foreground(TextPrimary).PaddingLeft(2)
	t.MenuItemSelected = lipgloss.NewStyle().Foreground(Leaf).Bold(true).PaddingLeft(0)
	t.MenuCursor = lipgloss.NewStyle().Foreground(Leaf).Bold(true)
	t.Check = lipgloss.NewStyle().Foreground(Leaf).Bold(true)
	t.SectionTitle = lipgloss.NewStyle().Foreground(Sky).Bold(true).MarginTop(1)
	t.Label = lipgloss.NewStyle().Foreground(TextSecondary)
	t.Value = lipgloss.NewStyle().Foreground(TextPrimary)

	t.UserBubble = lipgloss.NewStyle().
		Background(UserBubbleBg).
		Foreground(UserBubbleFg).
		Padding(0, 1)
	t.AgentBubble = lipgloss.NewStyle().
		Background(AgentBubbleBg).
		Foreground(AgentBubbleFg).
		Padding(0, 1)
	t.ErrorBubble = lipgloss.NewStyle().
		Foreground(ErrorBubbleFg).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ErrorBubbleBdr).
		Padding(0, 1)
	t.ImageTag = lipgloss.NewStyle().Foreground(Sky).Italic(true)
	t.AnalysisBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Soil).
		Padding(0, 1)
	t.AnalysisTitle = lipgloss.NewStyle().Foreground(Soil).Bold(true)
	t.InputContainer = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Leaf).
		Padding(0, 1)
	t.Spinner = lipgloss.NewStyle().Foreground(Leaf)
	t.Thinking = lipgloss.NewStyle().Foreground(TextSecondary).Italic(true)
	t.Empty = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)

	t.StatusBar = lipgloss.NewStyle().Foreground(TextMuted).MarginTop(1)
	t.ShortcutKey = lipgloss.NewStyle().Foreground(Sky)
	t.ShortcutDesc = lipgloss.NewStyle().Foreground(TextMuted)
	t.InfoStyle = lipgloss.NewStyle().Foreground(Leaf)
	t.ErrorStyle = lipgloss.NewStyle().Foreground(Rose).Bold(true)
	t.DialogBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Leaf).
		Padding(1, 2)
	t.DialogTitle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary)
	t.DialogButton = lipgloss.NewStyle().
		Background(Leaf).
		Foreground(TextInverse).
		Padding(0, 2).
		MarginTop(1)
}

// Severity returns the style for an analysis severity label.
func (t *Theme) Severity(severity string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(SeverityColor(severity)).Bold(true)
}
