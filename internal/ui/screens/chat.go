// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package screens

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jeranaias/pestcheck-tui/internal/capture"
	"github.com/jeranaias/pestcheck-tui/internal/i18n"
	"github.com/jeranaias/pestcheck-tui/internal/inference"
	"github.com/jeranaias/pestcheck-tui/internal/transcript"
	"github.com/jeranaias/pestcheck-tui/internal/ui/components"
	"github.com/jeranaias/pestcheck-tui/internal/ui/screen"
	"github.com/jeranaias/pestcheck-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

type transcriptLoadedMsg struct {
	err error
}

type turnDoneMsg struct {
	entry transcript.Entry
	err   error
}

type historyClearedMsg struct {
	err error
}

// chrome is the number of rows used by everything except the viewport:
// header (3), input box (3), status line (2), analyzing/image line (1).
const chrome = 9

// Chat is the conversation screen. Leaving it cancels any turn in flight.
type Chat struct {
	deps   *screen.Deps
	tr     i18n.Translator
	bubble components.Bubble
	input  textinput.Model
	vp     viewport.Model
	spin   spinner.Model
	status components.StatusBar

	ctx    context.Context
	cancel context.CancelFunc

	loaded  bool
	loading bool
	image   *capture.Image
	pending *transcript.Entry
}

var (
	_ screen.Screen = (*Chat)(nil)
	_ screen.Closer = (*Chat)(nil)
)

// NewChat returns the chat screen in lang.
func NewChat(deps *screen.Deps, lang string) *Chat {
	c := &Chat{
		deps: deps,
		vp:   viewport.New(80, 20),
		spin: spinner.New(
			spinner.WithSpinner(styles.SproutSpinner.Bubbles()),
			spinner.WithStyle(deps.Theme.Spinner),
		),
	}
	c.input = textinput.New()
	c.input.CharLimit = 2000
	c.input.Prompt = "> "
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.setLanguage(lang)
	return c
}

func (c *Chat) setLanguage(lang string) {
	c.tr = i18n.For(lang)
	c.bubble = components.Bubble{Theme: c.deps.Theme, Markdown: c.deps.Markdown, Tr: c.tr}
	c.input.Placeholder = c.tr.T("typeMessage")
	c.status.Hints = c.KeyHints()
}

func (c *Chat) Init() tea.Cmd {
	return tea.Batch(c.input.Focus(), textinput.Blink, c.load())
}

func (c *Chat) Title() string { return c.tr.T("chatTitle") }

func (c *Chat) KeyHints() []string {
	hints := []string{c.tr.T("hintSend"), c.tr.T("hintAttach")}
	if c.image != nil {
		hints = append(hints, c.tr.T("hintDetach"))
	}
	return append(hints, c.tr.T("hintClear"), c.tr.T("hintScroll"), c.tr.T("hintBack"))
}

// Close cancels the screen context. A turn still waiting for its reply
// records nothing further.
func (c *Chat) Close() {
	c.cancel()
}

// Loading reports whether a turn is in flight.
func (c *Chat) Loading() bool { return c.loading }

// Attached returns the image waiting to be sent.
func (c *Chat) Attached() *capture.Image { return c.image }

func (c *Chat) load() tea.Cmd {
	sess, ctx := c.deps.Session, c.ctx
	return func() tea.Msg {
		return transcriptLoadedMsg{err: sess.Load(ctx)}
	}
}

func (c *Chat) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.resize(msg.Width, msg.Height)
		return c, nil

	case components.AlertExpiredMsg:
		c.status.Expire(msg)
		return c, nil

	case screen.LanguageChangedMsg:
		c.setLanguage(msg.Code)
		c.refresh()
		return c, nil

	case transcriptLoadedMsg:
		c.loaded = true
		if msg.err != nil {
			c.deps.Log().Warn("transcript load failed", zap.Error(msg.err))
		}
		c.refresh()
		return c, nil

	case turnDoneMsg:
		return c, c.turnDone(msg)

	case historyClearedMsg:
		c.refresh()
		if msg.err != nil {
			c.deps.Log().Warn("clearing history failed", zap.Error(msg.err))
			return c, c.status.Error(c.tr.T("error") + ": " + msg.err.Error())
		}
		return c, c.status.Info(c.tr.T("historyCleared"))

	case ImageChosenMsg:
		img := msg.Image
		c.image = &img
		c.status.Hints = c.KeyHints()
		return c, c.status.Info(c.tr.Tf("imageAttached", map[string]string{"name": img.Name}))

	case spinner.TickMsg:
		if !c.loading {
			return c, nil
		}
		var cmd tea.Cmd
		c.spin, cmd = c.spin.Update(msg)
		return c, cmd

	case tea.KeyMsg:
		return c, c.handleKey(msg)
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

func (c *Chat) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, Keys.Back):
		return screen.Pop()

	case key.Matches(msg, Keys.Send):
		return c.send()

	case key.Matches(msg, Keys.Attach):
		if c.loading {
			return nil
		}
		return screen.Push(NewImagePicker(c.deps, c.tr.Lang))

	case key.Matches(msg, Keys.Detach):
		if c.image == nil {
			return nil
		}
		c.image = nil
		c.status.Hints = c.KeyHints()
		return c.status.Info(c.tr.T("imageRemoved"))

	case key.Matches(msg, Keys.Clear):
		if c.loading {
			return nil
		}
		sess, ctx := c.deps.Session, c.ctx
		return func() tea.Msg { return historyClearedMsg{err: sess.Clear(ctx)} }

	case key.Matches(msg, Keys.PageUp, Keys.PageDown), msg.Type == tea.KeyUp, msg.Type == tea.KeyDown:
		var cmd tea.Cmd
		c.vp, cmd = c.vp.Update(msg)
		return cmd
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

// send starts a turn. The send control is disabled while one is in flight.
func (c *Chat) send() tea.Cmd {
	if c.loading {
		return nil
	}
	text := c.input.Value()
	var image string
	if c.image != nil {
		image = c.image.DataURI
	}
	if strings.TrimSpace(text) == "" && image == "" {
		return c.status.Error(c.tr.T("emptyTurn"))
	}

	c.loading = true
	pending := transcript.UserEntry(text, image)
	c.pending = &pending
	c.input.Reset()
	c.image = nil
	c.status.Hints = c.KeyHints()
	c.refresh()

	sess, ctx := c.deps.Session, c.ctx
	return tea.Batch(c.spin.Tick, func() tea.Msg {
		entry, err := sess.Send(ctx, text, image)
		return turnDoneMsg{entry: entry, err: err}
	})
}

func (c *Chat) turnDone(msg turnDoneMsg) tea.Cmd {
	c.loading = false
	c.pending = nil
	c.refresh()

	switch {
	case msg.err == nil:
		return nil
	case errors.Is(msg.err, inference.ErrEmptyTurn):
		return c.status.Error(c.tr.T("emptyTurn"))
	case errors.Is(msg.err, context.Canceled), errors.Is(msg.err, context.DeadlineExceeded):
		return nil
	}
	c.deps.Log().Warn("turn failed", zap.Error(msg.err))
	return c.status.Error(msg.err.Error())
}

func (c *Chat) resize(width, height int) {
	c.vp.Width = width
	h := height - chrome
	if h < 3 {
		h = 3
	}
	c.vp.Height = h
	c.input.Width = width - 8
	c.refresh()
}

// refresh re-renders the transcript and scrolls to the newest entry.
func (c *Chat) refresh() {
	if !c.loaded && c.pending == nil {
		c.vp.SetContent(c.deps.Theme.Thinking.Render(c.tr.T("loading")))
		return
	}
	entries := c.deps.Session.Entries()
	if c.pending != nil && !endsWith(entries, *c.pending) {
		entries = append(entries, *c.pending)
	}
	c.vp.SetContent(c.bubble.RenderAll(entries, c.vp.Width))
	c.vp.GotoBottom()
}

func endsWith(entries []transcript.Entry, e transcript.Entry) bool {
	if len(entries) == 0 {
		return false
	}
	last := entries[len(entries)-1]
	return last.IsUser && last.Text == e.Text && last.Image == e.Image
}

func (c *Chat) View(width, height int) string {
	theme := c.deps.Theme
	c.status.Width = width

	header := components.Header{Title: "💬 " + c.Title(), Width: width}

	var line string
	switch {
	case c.loading:
		line = c.spin.View() + " " + theme.Thinking.Render(c.tr.T("analyzing"))
	case c.image != nil:
		line = theme.ImageTag.Render(c.tr.Tf("imageAttached", map[string]string{"name": c.image.Name}))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header.View(theme),
		c.vp.View(),
		line,
		theme.InputContainer.Width(width-4).Render(c.input.View()),
		c.status.View(theme),
	)
}
