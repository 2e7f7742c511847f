// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package screens

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jeranaias/pestcheck-tui/internal/capture"
	"github.com/jeranaias/pestcheck-tui/internal/i18n"
	"github.com/jeranaias/pestcheck-tui/internal/ui/components"
	"github.com/jeranaias/pestcheck-tui/internal/ui/screen"
)

// ImageChosenMsg carries the picked image back to the chat screen.
type ImageChosenMsg struct {
	Image capture.Image
}

type imageLoadedMsg struct {
	img    capture.Image
	err    error
	camera bool
}

type pickerMode int

const (
	pickMenu pickerMode = iota
	pickPath
	pickWaiting
)

const (
	pickCamera = iota
	pickGallery
	pickCancel
)

// ImagePicker asks where the photo comes from: the capture folder
// ("camera") or a file path ("gallery").
type ImagePicker struct {
	deps   *screen.Deps
	tr     i18n.Translator
	menu   components.Menu
	input  textinput.Model
	status components.StatusBar
	mode   pickerMode

	ctx    context.Context
	cancel context.CancelFunc
}

var (
	_ screen.Screen = (*ImagePicker)(nil)
	_ screen.Closer = (*ImagePicker)(nil)
)

// NewImagePicker returns the picker in lang.
func NewImagePicker(deps *screen.Deps, lang string) *ImagePicker {
	p := &ImagePicker{deps: deps, tr: i18n.For(lang)}
	p.menu.Items = []components.MenuItem{
		{Label: "📷 " + p.tr.T("camera")},
		{Label: "🖼 " + p.tr.T("gallery")},
		{Label: p.tr.T("cancel")},
	}
	p.input = textinput.New()
	p.input.Prompt = p.tr.T("imagePath") + " "
	p.input.Placeholder = "~/Pictures/leaf.jpg"
	p.input.CharLimit = 4096
	p.ctx, p.cancel = context.WithCancel(context.Background())
	p.status.Hints = p.KeyHints()
	return p
}

func (p *ImagePicker) Init() tea.Cmd { return nil }

func (p *ImagePicker) Title() string { return p.tr.T("selectImage") }

func (p *ImagePicker) KeyHints() []string {
	switch p.mode {
	case pickPath:
		return []string{p.tr.T("hintOpenImage"), p.tr.T("hintBack")}
	case pickWaiting:
		return []string{p.tr.T("hintBack")}
	}
	return []string{p.tr.T("hintNavigate"), p.tr.T("hintSelect"), p.tr.T("hintBack")}
}

// Close stops any pending camera wait.
func (p *ImagePicker) Close() {
	p.cancel()
}

func (p *ImagePicker) setMode(m pickerMode) {
	p.mode = m
	p.status.Hints = p.KeyHints()
}

func (p *ImagePicker) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.AlertExpiredMsg:
		p.status.Expire(msg)
		return p, nil

	case imageLoadedMsg:
		return p, p.loaded(msg)

	case tea.KeyMsg:
		return p, p.handleKey(msg)
	}

	if p.mode == pickPath {
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *ImagePicker) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch p.mode {
	case pickWaiting:
		if key.Matches(msg, Keys.Back) {
			p.cancel()
			p.ctx, p.cancel = context.WithCancel(context.Background())
			p.setMode(pickMenu)
		}
		return nil

	case pickPath:
		switch {
		case key.Matches(msg, Keys.Back):
			p.input.Blur()
			p.setMode(pickMenu)
			return nil
		case msg.Type == tea.KeyEnter:
			return p.loadFile(p.input.Value())
		}
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, Keys.Back):
		return screen.Pop()
	case key.Matches(msg, Keys.Up):
		p.menu.Up()
	case key.Matches(msg, Keys.Down):
		p.menu.Down()
	case key.Matches(msg, Keys.Select):
		switch p.menu.Selected() {
		case pickCamera:
			return p.startCamera()
		case pickGallery:
			p.setMode(pickPath)
			return p.input.Focus()
		case pickCancel:
			return screen.Pop()
		}
	}
	return nil
}

func (p *ImagePicker) startCamera() tea.Cmd {
	w := p.deps.Capture
	if w == nil || w.Dir() == "" {
		return p.status.Error(p.tr.T("cameraUnavailable"))
	}
	p.setMode(pickWaiting)
	ctx := p.ctx
	return func() tea.Msg {
		img, err := w.Next(ctx)
		return imageLoadedMsg{img: img, err: err, camera: true}
	}
}

func (p *ImagePicker) loadFile(path string) tea.Cmd {
	limit := p.deps.MaxImageBytes()
	return func() tea.Msg {
		img, err := capture.FromFile(path, limit)
		return imageLoadedMsg{img: img, err: err}
	}
}

func (p *ImagePicker) loaded(msg imageLoadedMsg) tea.Cmd {
	if msg.err == nil {
		return screen.PopWith(ImageChosenMsg{Image: msg.img})
	}
	if errors.Is(msg.err, context.Canceled) {
		return nil
	}

	p.deps.Log().Warn("image pick failed", zap.Bool("camera", msg.camera), zap.Error(msg.err))
	text := p.tr.T("pickImageError")
	if msg.camera {
		text = p.tr.T("takePhotoError")
		p.setMode(pickMenu)
	}
	return p.status.Error(text + ": " + msg.err.Error())
}

func (p *ImagePicker) View(width, height int) string {
	theme := p.deps.Theme
	p.status.Width = width
	header := components.Header{Title: p.Title(), Subtitle: p.tr.T("chooseImage"), Width: width}

	var body string
	switch p.mode {
	case pickPath:
		p.input.Width = width - lipgloss.Width(p.input.Prompt) - 6
		body = theme.InputContainer.Render(p.input.View())
	case pickWaiting:
		body = theme.Thinking.Render(p.tr.Tf("waitingForPhoto", map[string]string{"dir": p.deps.Capture.Dir()}))
	default:
		body = p.menu.View(theme)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header.View(theme), body, p.status.View(theme))
}
