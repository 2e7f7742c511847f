// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package screens

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jeranaias/pestcheck-tui/internal/i18n"
	"github.com/jeranaias/pestcheck-tui/internal/ui/components"
	"github.com/jeranaias/pestcheck-tui/internal/ui/screen"
)

type languageSavedMsg struct {
	code string
	err  error
}

// Settings lists the languages and the About block.
type Settings struct {
	deps   *screen.Deps
	tr     i18n.Translator
	langs  []i18n.Language
	menu   components.Menu
	status components.StatusBar
	dialog *components.Dialog
	saving bool
}

var _ screen.Screen = (*Settings)(nil)

// NewSettings returns the settings screen with lang marked active.
func NewSettings(deps *screen.Deps, lang string) *Settings {
	s := &Settings{deps: deps, langs: i18n.Languages()}
	s.setLanguage(lang)
	for i, l := range s.langs {
		if l.Code == lang {
			s.menu.Cursor = i
		}
	}
	return s
}

func (s *Settings) setLanguage(lang string) {
	s.tr = i18n.For(lang)
	s.menu.Items = s.menu.Items[:0]
	for _, l := range s.langs {
		s.menu.Items = append(s.menu.Items, components.MenuItem{
			Label:   l.NativeName,
			Detail:  l.Name,
			Checked: l.Code == s.tr.Lang,
		})
	}
	s.status.Hints = s.KeyHints()
}

func (s *Settings) Init() tea.Cmd { return nil }

func (s *Settings) Title() string { return s.tr.T("settings") }

func (s *Settings) KeyHints() []string {
	if s.dialog != nil {
		return []string{s.tr.T("hintStatusOK")}
	}
	return []string{s.tr.T("hintNavigate"), s.tr.T("hintSelect"), s.tr.T("hintBack")}
}

// Active returns the code of the language marked active.
func (s *Settings) Active() string { return s.tr.Lang }

// Dialog returns the open confirmation dialog, if any.
func (s *Settings) Dialog() *components.Dialog { return s.dialog }

func (s *Settings) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.AlertExpiredMsg:
		s.status.Expire(msg)

	case screen.LanguageChangedMsg:
		s.setLanguage(msg.Code)

	case languageSavedMsg:
		s.saving = false
		if msg.err != nil {
			s.deps.Log().Warn("changing language failed", zap.String("language", msg.code), zap.Error(msg.err))
			s.dialog = &components.Dialog{
				Title:   s.tr.T("error"),
				Message: s.tr.T("languageChangeError"),
				Button:  s.tr.T("ok"),
				IsError: true,
			}
			s.status.Hints = s.KeyHints()
			return s, nil
		}
		s.setLanguage(msg.code)
		s.dialog = &components.Dialog{
			Title:   s.tr.T("languageChanged"),
			Message: s.tr.T("languageChangedMessage"),
			Button:  s.tr.T("ok"),
		}
		s.status.Hints = s.KeyHints()
		code := msg.code
		return s, func() tea.Msg { return screen.LanguageChangedMsg{Code: code} }

	case tea.KeyMsg:
		if s.dialog != nil {
			if key.Matches(msg, Keys.Select, Keys.Back) {
				s.dialog = nil
				s.status.Hints = s.KeyHints()
			}
			return s, nil
		}
		if s.saving {
			return s, nil
		}
		switch {
		case key.Matches(msg, Keys.Back):
			return s, screen.Pop()
		case key.Matches(msg, Keys.Up):
			s.menu.Up()
		case key.Matches(msg, Keys.Down):
			s.menu.Down()
		case key.Matches(msg, Keys.Select):
			if i := s.menu.Selected(); i >= 0 {
				s.saving = true
				return s, s.save(s.langs[i].Code)
			}
		}
	}
	return s, nil
}

func (s *Settings) save(code string) tea.Cmd {
	p := s.deps.Prefs
	return func() tea.Msg {
		return languageSavedMsg{code: code, err: p.SetLanguage(context.Background(), code)}
	}
}

func (s *Settings) View(width, height int) string {
	theme := s.deps.Theme
	if s.dialog != nil {
		return s.dialog.View(theme, width, height)
	}
	s.status.Width = width

	header := components.Header{Title: "⚙ " + s.Title(), Width: width}
	about := lipgloss.JoinVertical(lipgloss.Left,
		theme.Label.Render(s.tr.T("version")+": ")+theme.Value.Render(s.deps.Version),
		theme.Label.Render(s.tr.T("appName")+": ")+theme.Value.Render(s.tr.T("pestDetectionSystem")),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		header.View(theme),
		theme.SectionTitle.Render(s.tr.T("language")),
		theme.Label.Render(s.tr.T("selectLanguage")),
		"",
		s.menu.View(theme),
		theme.SectionTitle.Render(s.tr.T("about")),
		about,
		s.status.View(theme),
	)
}
