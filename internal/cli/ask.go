// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/jeranaias/pestcheck-tui/internal/capture"
	"github.com/jeranaias/pestcheck-tui/internal/i18n"
	"github.com/jeranaias/pestcheck-tui/internal/transcript"
)

// maxStdinQuery caps a question read from stdin.
const maxStdinQuery = 64 << 10

// askResult is the --json payload of ask.
type askResult struct {
	Text     string               `json:"text"`
	Analysis *transcript.Analysis `json:"vision_analysis,omitempty"`
	Language string               `json:"language"`
	Image    string               `json:"image,omitempty"` // file name only
}

// HandleAsk runs a single turn. The exchange is appended to the saved
// transcript, the same as a turn sent from the chat screen.
//
// Usage:
//
//	pestcheck ask "yellow spots on tomato leaves"
//	pestcheck ask --image leaf.jpg
//	echo "white flies" | pestcheck ask -
func HandleAsk(ctx context.Context, args Args, env *Env) error {
	text := args.Query
	if text == "-" {
		data, err := io.ReadAll(io.LimitReader(env.stdin(), maxStdinQuery))
		if err != nil {
			return fail(env, args, "ask", fmt.Errorf("failed to read stdin: %w", err))
		}
		text = string(data)
	}
	text = strings.TrimSpace(text)

	var img capture.Image
	if args.Image != "" {
		var err error
		img, err = capture.FromFile(args.Image, env.Config.Capture.MaxBytes)
		if err != nil {
			return fail(env, args, "ask", err)
		}
	}

	if err := env.Session.Load(ctx); err != nil {
		env.log().Warn("continuing with an empty transcript", zap.Error(err))
	}

	lang := env.Prefs.Language(ctx)
	tr := i18n.For(lang)

	var spin *Spinner
	if !args.JSON && !args.Quiet && IsStdoutTTY() {
		spin = NewSpinner(env.stderr(), tr.T("analyzing"))
		spin.Start()
	}
	reply, err := env.Session.Send(ctx, text, img.DataURI)
	spin.Stop()

	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fail(env, args, "ask", errors.New("canceled"))
		}
		return fail(env, args, "ask", err)
	}
	if reply.IsError() {
		return fail(env, args, "ask", errors.New(strings.TrimPrefix(reply.Text, transcript.ErrorPrefix)))
	}

	if args.JSON {
		return NewJSONResponse("ask", askResult{
			Text:     reply.Text,
			Analysis: reply.Analysis,
			Language: lang,
			Image:    img.Name,
		}).Write(env.stdout())
	}

	newEntryPrinter(env.stdout(), lang, env.Config.UI.RenderMarkdown).reply(reply)
	return nil
}
