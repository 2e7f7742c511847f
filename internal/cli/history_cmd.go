// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jeranaias/pestcheck-tui/internal/transcript"
)

// HandleHistory handles "history show|clear|export".
func HandleHistory(ctx context.Context, args Args, env *Env) error {
	p := NewArgParser(args.Raw, "json")
	if p.BoolFlag("json") {
		args.JSON = true
	}

	switch p.Subcommand() {
	case "", "show", "list":
		return historyShow(ctx, args, p, env)
	case "clear", "delete":
		return historyClear(ctx, args, env)
	case "export":
		return historyExport(ctx, args, p, env)
	}
	return fail(env, args, "history", fmt.Errorf("unknown history subcommand %q (show, clear, export)", p.Subcommand()))
}

func historyShow(ctx context.Context, args Args, p *ArgParser, env *Env) error {
	limit, err := p.FlagInt("limit", 0)
	if err != nil {
		return fail(env, args, "history", err)
	}
	entries, err := env.Transcript.Load(ctx)
	if err != nil {
		return fail(env, args, "history", err)
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}

	if args.JSON {
		return NewJSONResponse("history show", entries).Write(env.stdout())
	}

	out := env.stdout()
	lang := env.Prefs.Language(ctx)
	if len(entries) == 0 {
		fmt.Fprintln(out, DimStyle.Render(translate(lang, "emptyHistory")))
		return nil
	}
	printer := newEntryPrinter(out, lang, env.Config.UI.RenderMarkdown)
	for i, e := range entries {
		if i > 0 {
			fmt.Fprintln(out)
		}
		printer.entry(e)
	}
	return nil
}

func historyClear(ctx context.Context, args Args, env *Env) error {
	if err := env.Transcript.Clear(ctx); err != nil {
		return fail(env, args, "history clear", err)
	}
	if args.JSON {
		return NewJSONResponse("history clear", map[string]bool{"cleared": true}).Write(env.stdout())
	}
	if !args.Quiet {
		fmt.Fprintln(env.stdout(), SuccessStyle.Render(translate(env.Prefs.Language(ctx), "historyCleared")))
	}
	return nil
}

func historyExport(ctx context.Context, args Args, p *ArgParser, env *Env) error {
	entries, err := env.Transcript.Load(ctx)
	if err != nil {
		return fail(env, args, "history export", err)
	}

	var data []byte
	switch format := strings.ToLower(p.FlagOrDefault("format", "md")); format {
	case "md", "markdown":
		data = []byte(transcript.ExportMarkdown(entries, time.Now()))
	case "json":
		data, err = transcript.ExportJSON(entries)
		if err != nil {
			return fail(env, args, "history export", err)
		}
		data = append(data, '\n')
	default:
		return fail(env, args, "history export", fmt.Errorf("unknown format %q (md, json)", format))
	}

	output := p.Flag("output", "o")
	if output == "" {
		_, err := env.stdout().Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0600); err != nil {
		return fail(env, args, "history export", fmt.Errorf("failed to write %s: %w", output, err))
	}
	if !args.Quiet {
		fmt.Fprintf(env.stdout(), "%s %d messages written to %s (%s)\n",
			RenderStatus("ok"), len(entries), output, formatBytes(int64(len(data))))
	}
	return nil
}
