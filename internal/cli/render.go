// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/pestcheck-tui/internal/i18n"
	"github.com/jeranaias/pestcheck-tui/internal/transcript"
	"github.com/jeranaias/pestcheck-tui/internal/ui/styles"
)

// entryPrinter writes transcript entries for line-mode output.
type entryPrinter struct {
	w        io.Writer
	tr       i18n.Translator
	markdown *glamour.TermRenderer // nil prints replies verbatim
	width    int
}

// newEntryPrinter renders Markdown only when stdout is a colored terminal
// and the config allows it.
func newEntryPrinter(w io.Writer, lang string, renderMarkdown bool) *entryPrinter {
	p := &entryPrinter{w: w, tr: i18n.For(lang), width: GetTerminalWidth()}
	if renderMarkdown && ColorsEnabled() && IsStdoutTTY() {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(p.width-4),
		)
		if err == nil {
			p.markdown = r
		}
	}
	return p
}

func (p *entryPrinter) reply(e transcript.Entry) {
	if e.IsError() {
		fmt.Fprintln(p.w, ErrorStyle.Render(e.Text))
		return
	}

	text := e.Text
	if p.markdown != nil && text != "" {
		if out, err := p.markdown.Render(text); err == nil {
			text = strings.TrimRight(out, "\n")
		}
	}
	if text != "" {
		fmt.Fprintln(p.w, text)
	}
	if e.Analysis != nil {
		p.analysis(e.Analysis)
	}
}

func (p *entryPrinter) analysis(a *transcript.Analysis) {
	severity := lipgloss.NewStyle().Foreground(styles.SeverityColor(a.Severity)).Bold(true)

	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, SectionStyle.Render(p.tr.T("analysisResults")))
	fmt.Fprintf(p.w, "  %s%s\n", RenderLabel(p.tr.T("pest")+":"), ValueStyle.Render(a.DetectedPest))
	fmt.Fprintf(p.w, "  %s%s\n", RenderLabel(p.tr.T("confidence")+":"), ValueStyle.Render(a.ConfidencePercent()))
	fmt.Fprintf(p.w, "  %s%s\n", RenderLabel(p.tr.T("severity")+":"), severity.Render(a.Severity))
}

// entry prints any entry with a role prefix, for history listings.
func (p *entryPrinter) entry(e transcript.Entry) {
	if e.IsUser {
		fmt.Fprint(p.w, UserStyle.Render("You: "))
		if e.HasImage() {
			fmt.Fprint(p.w, DimStyle.Render(p.tr.T("image")+" "))
		}
		fmt.Fprintln(p.w, e.Text)
		return
	}
	fmt.Fprintln(p.w, PromptStyle.Render("Agent:"))
	p.reply(e)
}
