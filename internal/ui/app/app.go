// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app is the root bubbletea model. It shows a loading view while the
// route is read from storage, then hosts the screen stack.
package app

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jeranaias/pestcheck-tui/internal/i18n"
	"github.com/jeranaias/pestcheck-tui/internal/nav"
	"github.com/jeranaias/pestcheck-tui/internal/ui/screen"
	"github.com/jeranaias/pestcheck-tui/internal/ui/screens"
	"github.com/jeranaias/pestcheck-tui/internal/ui/styles"
)

// Deps is the set of dependencies every screen receives.
type Deps = screen.Deps

type bootMsg struct {
	route nav.Route
	lang  string
}

// Model is the application shell.
type Model struct {
	deps    *Deps
	stack   *nav.Stack[screen.Screen]
	spin    spinner.Model
	booting bool
	lang    string
	width   int
	height  int
}

// New returns the shell. Nothing is read from storage until Init runs.
func New(deps *Deps) *Model {
	return &Model{
		deps:    deps,
		booting: true,
		lang:    i18n.DefaultLanguage,
		spin: spinner.New(
			spinner.WithSpinner(styles.LineSpinner.Bubbles()),
			spinner.WithStyle(deps.Theme.Spinner),
		),
	}
}

// Run starts the program on the alternate screen and blocks until it exits.
func Run(deps *Deps) error {
	m := New(deps)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	m.closeAll()
	return err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.boot())
}

func (m *Model) boot() tea.Cmd {
	ctl, p := m.deps.Nav, m.deps.Prefs
	return func() tea.Msg {
		ctx := context.Background()
		route := ctl.Initial(ctx)
		return bootMsg{route: route, lang: p.Language(ctx)}
	}
}

// Route returns the controller's current route.
func (m *Model) Route() nav.Route { return m.deps.Nav.Route() }

// Current returns the top screen, or nil while booting.
func (m *Model) Current() screen.Screen {
	if m.stack == nil {
		return nil
	}
	return m.stack.Current()
}

// Depth returns the number of open screens.
func (m *Model) Depth() int {
	if m.stack == nil {
		return 0
	}
	return m.stack.Depth()
}

// Language returns the active language code.
func (m *Model) Language() string { return m.lang }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.closeAll()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, m.broadcast(msg)

	case spinner.TickMsg:
		if m.booting {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}

	case bootMsg:
		m.booting = false
		m.lang = msg.lang
		m.deps.Log().Info("started", zap.Stringer("route", msg.route), zap.String("language", msg.lang))
		if msg.route == nav.AwaitingLanguageSelection {
			return m, m.setRoot(screens.NewLangSelect(m.deps, i18n.DetectSystem()))
		}
		return m, m.enterMain()

	case screen.LanguageSelectedMsg:
		if msg.Err == nil {
			m.lang = msg.Code
			return m, m.enterMain()
		}

	case screen.PushMsg:
		m.stack.Push(msg.Screen)
		return m, tea.Batch(msg.Screen.Init(), m.sized(msg.Screen))

	case screen.PopMsg:
		top, ok := m.stack.Pop()
		if !ok {
			return m, nil
		}
		closeScreen(top)
		if msg.Result != nil {
			return m, m.forward(msg.Result)
		}
		return m, nil

	case screen.LanguageChangedMsg:
		m.lang = msg.Code
		return m, m.broadcast(msg)
	}

	if m.booting || m.stack == nil {
		return m, nil
	}
	return m, m.forward(msg)
}

// enterMain re-checks the completion flag and shows home. The check only
// promotes; if the flag is still unset the language picker stays.
func (m *Model) enterMain() tea.Cmd {
	if m.deps.Nav.Recheck(context.Background()) != nav.MainApplication {
		return m.setRoot(screens.NewLangSelect(m.deps, i18n.DetectSystem()))
	}
	return m.setRoot(screens.NewHome(m.deps, m.lang))
}

func (m *Model) setRoot(s screen.Screen) tea.Cmd {
	if m.stack == nil {
		m.stack = nav.NewStack(s)
	} else {
		m.closeAll()
		m.stack.Reset(s)
	}
	return tea.Batch(s.Init(), m.sized(s))
}

// sized delivers the current window size to a newly opened screen.
func (m *Model) sized(s screen.Screen) tea.Cmd {
	if m.width == 0 && m.height == 0 {
		return nil
	}
	next, cmd := s.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	m.replace(s, next)
	return cmd
}

func (m *Model) forward(msg tea.Msg) tea.Cmd {
	next, cmd := m.stack.Current().Update(msg)
	m.stack.Replace(next)
	return cmd
}

func (m *Model) broadcast(msg tea.Msg) tea.Cmd {
	if m.stack == nil {
		return nil
	}
	var cmds []tea.Cmd
	for _, s := range m.stack.Items() {
		next, cmd := s.Update(msg)
		m.replace(s, next)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// replace swaps old for next when a screen's Update returns a new value.
func (m *Model) replace(old, next screen.Screen) {
	if old == next || m.stack == nil {
		return
	}
	items := m.stack.Items()
	for i := range items {
		if items[i] == old {
			items[i] = next
		}
	}
	m.stack.Reset(items[0])
	for _, s := range items[1:] {
		m.stack.Push(s)
	}
}

func (m *Model) closeAll() {
	if m.stack == nil {
		return
	}
	for _, s := range m.stack.Items() {
		closeScreen(s)
	}
}

func closeScreen(s screen.Screen) {
	if c, ok := s.(screen.Closer); ok {
		c.Close()
	}
}

func (m *Model) View() string {
	if m.booting {
		return m.deps.Theme.App.Render(m.spin.View() + " " + m.deps.Theme.Thinking.Render(i18n.T(m.lang, "loading")))
	}
	w, h := m.width, m.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}
	return lipgloss.NewStyle().MaxWidth(w).Render(m.deps.Theme.App.Render(m.stack.Current().View(w-2, h)))
}
