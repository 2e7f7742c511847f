// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package screens

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/pestcheck-tui/internal/i18n"
	"github.com/jeranaias/pestcheck-tui/internal/ui/components"
	"github.com/jeranaias/pestcheck-tui/internal/ui/screen"
)

// LangSelect is shown until the user has picked a language once.
type LangSelect struct {
	deps   *screen.Deps
	langs  []i18n.Language
	menu   components.Menu
	status components.StatusBar
	saving bool
}

var _ screen.Screen = (*LangSelect)(nil)

// NewLangSelect returns the picker with the cursor on suggested (usually the
// system locale match).
func NewLangSelect(deps *screen.Deps, suggested string) *LangSelect {
	s := &LangSelect{deps: deps, langs: i18n.Languages()}
	for i, l := range s.langs {
		s.menu.Items = append(s.menu.Items, components.MenuItem{Label: l.NativeName, Detail: l.Name})
		if l.Code == suggested {
			s.menu.Cursor = i
		}
	}
	s.status.Hints = s.KeyHints()
	return s
}

func (s *LangSelect) Init() tea.Cmd { return nil }

func (s *LangSelect) Title() string { return i18n.T(i18n.DefaultLanguage, "selectYourLanguage") }

func (s *LangSelect) KeyHints() []string {
	return []string{
		i18n.T(i18n.DefaultLanguage, "hintNavigate"),
		i18n.T(i18n.DefaultLanguage, "hintSelect"),
		i18n.T(i18n.DefaultLanguage, "hintQuit"),
	}
}

// Highlighted returns the code under the cursor.
func (s *LangSelect) Highlighted() string {
	if i := s.menu.Selected(); i >= 0 {
		return s.langs[i].Code
	}
	return i18n.DefaultLanguage
}

func (s *LangSelect) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.AlertExpiredMsg:
		s.status.Expire(msg)

	case screen.LanguageSelectedMsg:
		// Success is handled by the app shell; only failures arrive here.
		s.saving = false
		if msg.Err != nil {
			return s, s.status.Error(i18n.T(msg.Code, "languageChangeError"))
		}

	case tea.KeyMsg:
		if s.saving {
			return s, nil
		}
		switch {
		case key.Matches(msg, Keys.Up):
			s.menu.Up()
		case key.Matches(msg, Keys.Down):
			s.menu.Down()
		case key.Matches(msg, Keys.Select):
			s.saving = true
			return s, s.complete(s.Highlighted())
		}
	}
	return s, nil
}

func (s *LangSelect) complete(code string) tea.Cmd {
	ctl := s.deps.Nav
	return func() tea.Msg {
		_, err := ctl.Complete(context.Background(), code)
		return screen.LanguageSelectedMsg{Code: code, Err: err}
	}
}

func (s *LangSelect) View(width, height int) string {
	theme := s.deps.Theme
	s.status.Width = width

	header := components.Header{
		Title:    "🌱 " + s.Title(),
		Subtitle: i18n.T(i18n.DefaultLanguage, "languageSubtitle"),
		Width:    width,
	}
	body := s.menu.View(theme)
	if s.saving {
		body += "\n\n" + theme.Thinking.Render(i18n.T(s.Highlighted(), "loading"))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		header.View(theme),
		body,
		"",
		theme.Footer.Render(i18n.T(i18n.DefaultLanguage, "footer")),
		s.status.View(theme),
	)
}
