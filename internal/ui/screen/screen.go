// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package screen defines the contract between the application shell and the
// individual screens, and the dependencies handed to every screen.
package screen

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/pestcheck-tui/internal/capture"
	"github.com/jeranaias/pestcheck-tui/internal/config"
	"github.com/jeranaias/pestcheck-tui/internal/logging"
	"github.com/jeranaias/pestcheck-tui/internal/nav"
	"github.com/jeranaias/pestcheck-tui/internal/prefs"
	"github.com/jeranaias/pestcheck-tui/internal/session"
	"github.com/jeranaias/pestcheck-tui/internal/ui/components"
	"github.com/jeranaias/pestcheck-tui/internal/ui/styles"
)

// Screen is one full-window view on the navigation stack.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
	KeyHints() []string
}

// Closer is implemented by screens that hold resources (contexts, watchers)
// which must be released when the screen leaves the stack.
type Closer interface {
	Close()
}

// =============================================================================
// NAVIGATION MESSAGES
// =============================================================================

// PushMsg opens Screen on top of the stack.
type PushMsg struct {
	Screen Screen
}

// PopMsg closes the top screen. A non-nil Result is delivered to the screen
// underneath.
type PopMsg struct {
	Result tea.Msg
}

// LanguageChangedMsg is broadcast to every open screen after the active
// language changes.
type LanguageChangedMsg struct {
	Code string
}

// LanguageSelectedMsg reports the outcome of the first-run selection.
type LanguageSelectedMsg struct {
	Code string
	Err  error
}

// Push returns a command that opens s.
func Push(s Screen) tea.Cmd {
	return func() tea.Msg { return PushMsg{Screen: s} }
}

// Pop returns a command that closes the top screen.
func Pop() tea.Cmd {
	return func() tea.Msg { return PopMsg{} }
}

// PopWith closes the top screen and hands result to the one below.
func PopWith(result tea.Msg) tea.Cmd {
	return func() tea.Msg { return PopMsg{Result: result} }
}

// =============================================================================
// DEPENDENCIES
// =============================================================================

// Deps is everything a screen may use. It replaces process-wide UI state.
type Deps struct {
	Config   *config.Config
	Prefs    *prefs.Store
	Nav      *nav.Controller
	Session  *session.Session
	Capture  *capture.Watcher
	Theme    *styles.Theme
	Markdown *components.Markdown
	Logger   *zap.Logger
	Version  string
}

// MaxImageBytes returns the configured attachment size limit.
func (d *Deps) MaxImageBytes() int64 {
	if d.Config == nil {
		return 0
	}
	return d.Config.Capture.MaxBytes
}

// Log returns the logger, or a no-op logger when none was set.
func (d *Deps) Log() *zap.Logger {
	return logging.OrNop(d.Logger)
}
