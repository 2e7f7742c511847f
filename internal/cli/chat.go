// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/peterh/liner"
	"go.uber.org/zap"

	"github.com/jeranaias/pestcheck-tui/internal/capture"
	"github.com/jeranaias/pestcheck-tui/internal/i18n"
	"github.com/jeranaias/pestcheck-tui/internal/inference"
	"github.com/jeranaias/pestcheck-tui/internal/prefs"
)

// =============================================================================
// LINE INPUT
// =============================================================================

// lineReader reads one line of chat input. io.EOF ends the session.
type lineReader interface {
	Prompt(prompt string) (string, error)
	Close() error
}

// linerReader provides line editing and persistent input history.
type linerReader struct {
	line        *liner.State
	historyFile string
	logger      *zap.Logger
}

func newLinerReader(historyFile string, logger *zap.Logger) *linerReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	r := &linerReader{line: line, historyFile: historyFile, logger: logger}
	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			if _, err := line.ReadHistory(f); err != nil {
				logger.Debug("chat history unreadable", zap.Error(err))
			}
			f.Close()
		}
	}
	return r
}

func (r *linerReader) Prompt(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves history with owner-only permissions and restores the terminal.
func (r *linerReader) Close() error {
	if r.historyFile != "" {
		f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err == nil {
			if _, err := r.line.WriteHistory(f); err != nil {
				r.logger.Debug("chat history not saved", zap.Error(err))
			}
			f.Close()
		}
	}
	return r.line.Close()
}

// scanReader reads piped input, one turn per line.
type scanReader struct {
	sc *bufio.Scanner
	w  io.Writer
}

func (r *scanReader) Prompt(prompt string) (string, error) {
	fmt.Fprint(r.w, prompt)
	if !r.sc.Scan() {
		fmt.Fprintln(r.w)
		if err := r.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.sc.Text(), nil
}

func (r *scanReader) Close() error { return nil }

func defaultLineReader(env *Env) lineReader {
	if env.In == nil && IsTTY() {
		return newLinerReader(env.HistoryFile, env.log())
	}
	return &scanReader{sc: bufio.NewScanner(env.stdin()), w: env.stdout()}
}

// =============================================================================
// CHAT LOOP
// =============================================================================

// chatState is the per-run state of line-mode chat.
type chatState struct {
	env     *Env
	args    Args
	lang    string
	pending capture.Image // attached to the next turn
	turns   int
}

func (s *chatState) tr() i18n.Translator { return i18n.For(s.lang) }

// HandleChat runs an interactive line-mode conversation over the saved
// transcript. Ctrl+C during a turn abandons the turn; Ctrl+C or Ctrl+D at
// the prompt exits.
//
// Slash commands:
//
//	/image PATH   attach a photo to the next message
//	/noimage      drop the attached photo
//	/history      print the conversation so far
//	/clear        delete the conversation
//	/lang [CODE]  show or change the language
//	/help         list commands
//	/quit         leave
func HandleChat(ctx context.Context, args Args, env *Env) error {
	newReader := env.newReader
	if newReader == nil {
		newReader = defaultLineReader
	}
	in := newReader(env)
	defer in.Close()

	out := env.stdout()
	state := &chatState{env: env, args: args, lang: env.Prefs.Language(ctx)}

	if err := env.Session.Load(ctx); err != nil {
		fmt.Fprintln(env.stderr(), WarningStyle.Render(err.Error()))
	}

	if !args.Quiet {
		fmt.Fprintln(out, TitleStyle.Render("pestcheck · "+state.tr().T("smartFarmingAssistant")))
		fmt.Fprintln(out, DimStyle.Render("/help for commands, Ctrl+D to exit"))
		if n := env.Session.Len(); n > 0 {
			fmt.Fprintln(out, DimStyle.Render(fmt.Sprintf("%d earlier messages (/history)", n)))
		}
		fmt.Fprintln(out)
	}

	for {
		input, err := in.Prompt(state.prompt())
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				state.printExitSummary()
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}
		// The message is sent as typed; trimming only classifies the line.
		trimmed := strings.TrimSpace(input)
		if trimmed == "" && state.pending.DataURI == "" {
			continue
		}

		if strings.HasPrefix(trimmed, "/") {
			if !state.handleSlash(ctx, trimmed) {
				state.printExitSummary()
				return nil
			}
			continue
		}

		if err := state.send(ctx, input); err != nil {
			return err
		}
	}
}

func (s *chatState) prompt() string {
	if s.pending.Name != "" {
		return PromptStyle.Render("pestcheck") + DimStyle.Render(" ["+s.pending.Name+"]") + PromptStyle.Render("> ")
	}
	return PromptStyle.Render("pestcheck> ")
}

// send runs one turn. Interrupts during the turn cancel only that turn.
func (s *chatState) send(ctx context.Context, text string) error {
	turnCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	var spin *Spinner
	if !s.args.Quiet && IsStdoutTTY() {
		spin = NewSpinner(s.env.stderr(), s.tr().T("analyzing"))
		spin.Start()
	}
	reply, err := s.env.Session.Send(turnCtx, text, s.pending.DataURI)
	spin.Stop()

	switch {
	case errors.Is(err, inference.ErrEmptyTurn):
		fmt.Fprintln(s.env.stderr(), WarningStyle.Render(s.tr().T("emptyTurn")))
		return nil
	case err != nil && ctx.Err() != nil:
		return ctx.Err()
	case err != nil:
		fmt.Fprintln(s.env.stderr(), WarningStyle.Render("[Cancelled]"))
		return nil
	}

	s.pending = capture.Image{}
	s.turns++
	newEntryPrinter(s.env.stdout(), s.lang, s.env.Config.UI.RenderMarkdown).reply(reply)
	fmt.Fprintln(s.env.stdout())
	return nil
}

// handleSlash runs a slash command and reports whether to keep going.
func (s *chatState) handleSlash(ctx context.Context, input string) bool {
	out := s.env.stdout()
	fields := strings.Fields(input)
	cmd, rest := strings.ToLower(fields[0]), strings.TrimSpace(strings.TrimPrefix(input, fields[0]))

	switch cmd {
	case "/quit", "/exit", "/q":
		return false

	case "/help", "/?":
		fmt.Fprintln(out, "  /image PATH   attach a photo to the next message")
		fmt.Fprintln(out, "  /noimage      drop the attached photo")
		fmt.Fprintln(out, "  /history      print the conversation so far")
		fmt.Fprintln(out, "  /clear        delete the conversation")
		fmt.Fprintln(out, "  /lang [CODE]  show or change the language")
		fmt.Fprintln(out, "  /quit         leave")

	case "/image", "/img":
		if rest == "" {
			s.warn(errors.New("usage: /image PATH"))
			break
		}
		img, err := capture.FromFile(rest, s.env.Config.Capture.MaxBytes)
		if err != nil {
			s.warn(err)
			break
		}
		s.pending = img
		fmt.Fprintln(out, SuccessStyle.Render(s.tr().Tf("imageAttached", map[string]string{"name": img.Name})),
			DimStyle.Render(formatBytes(int64(img.Size))))

	case "/noimage":
		s.pending = capture.Image{}
		fmt.Fprintln(out, DimStyle.Render(s.tr().T("imageRemoved")))

	case "/history":
		entries := s.env.Session.Entries()
		if len(entries) == 0 {
			fmt.Fprintln(out, DimStyle.Render(s.tr().T("emptyHistory")))
			break
		}
		p := newEntryPrinter(out, s.lang, s.env.Config.UI.RenderMarkdown)
		for _, e := range entries {
			p.entry(e)
		}
		fmt.Fprintln(out, RenderSeparator())

	case "/clear":
		if err := s.env.Session.Clear(ctx); err != nil {
			s.warn(err)
			break
		}
		fmt.Fprintln(out, SuccessStyle.Render(s.tr().T("historyCleared")))

	case "/lang", "/language":
		if rest == "" {
			l, _ := i18n.Lookup(s.lang)
			fmt.Fprintf(out, "%s (%s)\n", l.NativeName, l.Code)
			break
		}
		code := resolveLanguage(rest)
		if err := s.env.Prefs.SetLanguage(ctx, code); err != nil {
			if errors.Is(err, prefs.ErrUnsupportedLanguage) {
				s.warn(fmt.Errorf("unsupported language %q (try: %s)", rest, strings.Join(languageCodes(), ", ")))
			} else {
				s.warn(errors.New(i18n.T(s.lang, "languageChangeError")))
			}
			break
		}
		s.lang = code
		fmt.Fprintln(out, SuccessStyle.Render(s.tr().T("languageChanged")))

	default:
		s.warn(fmt.Errorf("unknown command %s (/help lists commands)", cmd))
	}
	return true
}

func (s *chatState) warn(err error) {
	fmt.Fprintln(s.env.stderr(), ErrorStyle.Render("[Error]"), err)
}

func (s *chatState) printExitSummary() {
	if s.args.Quiet {
		return
	}
	fmt.Fprintln(s.env.stdout(), DimStyle.Render(fmt.Sprintf("%d turns this session, %d messages saved", s.turns, s.env.Session.Len())))
}

// resolveLanguage accepts a code or an English or native language name.
// Unknown input is returned lowercased so SetLanguage can reject it.
func resolveLanguage(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, l := range i18n.Languages() {
		if s == l.Code || s == strings.ToLower(l.Name) || s == l.NativeName {
			return l.Code
		}
	}
	return s
}

func languageCodes() []string {
	var codes []string
	for _, l := range i18n.Languages() {
		codes = append(codes, l.Code)
	}
	return codes
}
