// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package screens

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/pestcheck-tui/internal/i18n"
	"github.com/jeranaias/pestcheck-tui/internal/ui/components"
	"github.com/jeranaias/pestcheck-tui/internal/ui/screen"
)

const (
	homeChat = iota
	homeSettings
	homeProfile
)

// Home is the root of the main application.
type Home struct {
	deps   *screen.Deps
	tr     i18n.Translator
	menu   components.Menu
	status components.StatusBar
}

var _ screen.Screen = (*Home)(nil)

// NewHome returns the home menu in lang.
func NewHome(deps *screen.Deps, lang string) *Home {
	h := &Home{deps: deps}
	h.setLanguage(lang)
	return h
}

func (h *Home) setLanguage(lang string) {
	h.tr = i18n.For(lang)
	h.menu.Items = []components.MenuItem{
		{Label: "💬 " + h.tr.T("chat")},
		{Label: "⚙ " + h.tr.T("settings")},
		{Label: "👤 " + h.tr.T("profile")},
	}
	h.status.Hints = h.KeyHints()
}

func (h *Home) Init() tea.Cmd { return nil }

func (h *Home) Title() string { return h.tr.T("pestDetectionSystem") }

func (h *Home) KeyHints() []string {
	return []string{h.tr.T("hintNavigate"), h.tr.T("hintSelect"), h.tr.T("hintQuit")}
}

func (h *Home) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.AlertExpiredMsg:
		h.status.Expire(msg)

	case screen.LanguageChangedMsg:
		h.setLanguage(msg.Code)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, Keys.Up):
			h.menu.Up()
		case key.Matches(msg, Keys.Down):
			h.menu.Down()
		case key.Matches(msg, Keys.Select):
			return h, h.open(h.menu.Selected())
		}
	}
	return h, nil
}

func (h *Home) open(item int) tea.Cmd {
	switch item {
	case homeChat:
		return screen.Push(NewChat(h.deps, h.tr.Lang))
	case homeSettings:
		return screen.Push(NewSettings(h.deps, h.tr.Lang))
	case homeProfile:
		h.deps.Log().Info("profile pressed")
		return h.status.Info(h.tr.T("profileUnavailable"))
	}
	return nil
}

func (h *Home) View(width, height int) string {
	theme := h.deps.Theme
	h.status.Width = width
	header := components.Header{
		Title:    "🌿 " + h.Title(),
		Subtitle: h.tr.T("smartFarmingAssistant"),
		Width:    width,
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		header.View(theme),
		h.menu.View(theme),
		"",
		theme.Footer.Render(h.tr.T("footer")),
		h.status.View(theme),
	)
}
