// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/pestcheck-tui/internal/i18n"
	"github.com/jeranaias/pestcheck-tui/internal/transcript"
	"github.com/jeranaias/pestcheck-tui/internal/ui/styles"
	"github.com/jeranaias/pestcheck-tui/internal/util"
)

// =============================================================================
// CHAT BUBBLES
// =============================================================================

// Bubble renders transcript entries for the chat viewport.
type Bubble struct {
	Theme    *styles.Theme
	Markdown *Markdown
	Tr       i18n.Translator
}

// bubbleWidth is the widest a bubble may be in a viewport of width columns.
func bubbleWidth(width int) int {
	w := width * 4 / 5
	if w < 20 {
		w = 20
	}
	return w
}

// Render renders one entry. User entries sit on the right, replies on the
// left.
func (b Bubble) Render(e transcript.Entry, width int) string {
	maxW := bubbleWidth(width)

	var parts []string
	if e.HasImage() {
		tag := b.Tr.T("image")
		if mime := transcript.ImageMIME(e.Image); mime != "" {
			tag += " " + mime
		}
		parts = append(parts, b.Theme.ImageTag.Render(tag))
	}

	switch {
	case e.IsUser:
		if e.Text != "" {
			parts = append(parts, e.Text)
		}
		body := fit(b.Theme.UserBubble, strings.Join(parts, "\n"), maxW)
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, body)

	case e.IsError():
		return fit(b.Theme.ErrorBubble, e.Text, maxW)

	default:
		text := e.Text
		if b.Markdown.Enabled() {
			text = b.Markdown.Render(text, maxW-2)
		}
		parts = append(parts, text)
		out := fit(b.Theme.AgentBubble, strings.Join(parts, "\n"), maxW)
		if e.Analysis != nil {
			out = lipgloss.JoinVertical(lipgloss.Left, out, b.Analysis(*e.Analysis, maxW))
		}
		return out
	}
}

// Analysis renders the pest/confidence/severity block.
func (b Bubble) Analysis(a transcript.Analysis, maxW int) string {
	keys := []string{"pest", "confidence", "severity"}
	col := 0
	for _, k := range keys {
		col = max(col, util.StringWidth(b.Tr.T(k)+":"))
	}
	// Values line up one column past the widest label.
	label := func(key string) string { return b.Theme.Label.Render(util.FitWidth(b.Tr.T(key)+":", col+1)) }
	lines := []string{
		b.Theme.AnalysisTitle.Render(b.Tr.T("analysisResults")),
		label("pest") + b.Theme.Value.Render(a.DetectedPest),
		label("confidence") + b.Theme.Value.Render(a.ConfidencePercent()),
		label("severity") + b.Theme.Severity(a.Severity).Render(a.Severity),
	}
	return b.Theme.AnalysisBox.MaxWidth(maxW).Render(strings.Join(lines, "\n"))
}

// RenderAll renders a transcript separated by blank lines. An empty
// transcript renders the placeholder hint.
func (b Bubble) RenderAll(entries []transcript.Entry, width int) string {
	if len(entries) == 0 {
		return b.Theme.Empty.Render(b.Tr.T("emptyHistory"))
	}
	rendered := make([]string, len(entries))
	for i, e := range entries {
		rendered[i] = b.Render(e, width)
	}
	return strings.Join(rendered, "\n\n")
}

// fit wraps text inside style so the result is at most maxW columns wide.
func fit(style lipgloss.Style, text string, maxW int) string {
	frame := style.GetHorizontalFrameSize()
	w := lipgloss.Width(text) + frame
	if w > maxW {
		w = maxW
	}
	return style.Width(w - style.GetHorizontalBorderSize()).Render(text)
}
