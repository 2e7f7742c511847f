// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jeranaias/pestcheck-tui/internal/inference"
)

// statusReport is the --json payload of status.
type statusReport struct {
	BaseURL    string `json:"base_url"`
	Reachable  bool   `json:"reachable"`
	LatencyMS  int64  `json:"latency_ms,omitempty"`
	Error      string `json:"error,omitempty"`
	Language   string `json:"language"`
	Messages   int    `json:"messages"`
	CaptureDir string `json:"capture_dir,omitempty"`
}

// statusTimeout bounds the reachability probe.
const statusTimeout = 5 * time.Second

// HandleStatus probes the analysis service and summarizes local state.
// An unreachable service exits non-zero.
func HandleStatus(ctx context.Context, args Args, env *Env) error {
	report := statusReport{
		BaseURL:    env.Client.BaseURL(),
		Language:   env.Prefs.Language(ctx),
		CaptureDir: env.Config.Capture.Dir,
	}
	if entries, err := env.Transcript.Load(ctx); err == nil {
		report.Messages = len(entries)
	}

	probeCtx, cancel := context.WithTimeout(ctx, statusTimeout)
	defer cancel()
	start := time.Now()
	err := env.Client.CheckReachable(probeCtx)
	elapsed := time.Since(start)
	if err != nil {
		report.Error = inference.Message(err)
	} else {
		report.Reachable = true
		report.LatencyMS = elapsed.Milliseconds()
	}

	if args.JSON {
		resp := NewJSONResponse("status", report)
		if err != nil {
			msg := report.Error
			resp.Success = false
			resp.Error = &msg
		}
		if werr := resp.Write(env.stdout()); werr != nil {
			return werr
		}
		if err != nil {
			return ErrSilent
		}
		return nil
	}

	out := env.stdout()
	fmt.Fprintln(out, TitleStyle.Render("pestcheck status"))
	if err != nil {
		fmt.Fprintf(out, "  %s%s %s\n", RenderLabel("Service:"), RenderStatus("fail"), report.BaseURL)
		fmt.Fprintf(out, "  %s%s\n", RenderLabel(""), ErrorStyle.Render(report.Error))
	} else {
		fmt.Fprintf(out, "  %s%s %s %s\n", RenderLabel("Service:"), RenderStatus("ok"), report.BaseURL,
			DimStyle.Render(formatDurationShort(elapsed)))
	}
	fmt.Fprintf(out, "  %s%s\n", RenderLabel("Language:"), ValueStyle.Render(report.Language))
	fmt.Fprintf(out, "  %s%d\n", RenderLabel("Saved messages:"), report.Messages)
	if report.CaptureDir != "" {
		fmt.Fprintf(out, "  %s%s\n", RenderLabel("Capture folder:"), ValueStyle.Render(report.CaptureDir))
	} else {
		fmt.Fprintf(out, "  %s%s\n", RenderLabel("Capture folder:"), DimStyle.Render("(not set)"))
	}

	if err != nil {
		return ErrSilent
	}
	return nil
}
