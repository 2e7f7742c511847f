// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/jeranaias/pestcheck-tui/internal/config"
	"github.com/jeranaias/pestcheck-tui/internal/inference"
	"github.com/jeranaias/pestcheck-tui/internal/logging"
	"github.com/jeranaias/pestcheck-tui/internal/prefs"
	"github.com/jeranaias/pestcheck-tui/internal/session"
	"github.com/jeranaias/pestcheck-tui/internal/transcript"
)

// ErrSilent marks a failure that has already been reported to the user.
// main exits non-zero without printing it again.
var ErrSilent = errors.New("command failed")

// Env carries everything a command handler needs. main builds one from the
// loaded config; tests build one over in-memory stores.
type Env struct {
	Config     *config.Config
	ConfigPath string // file written by `config set`; "" means the default TOML path

	Prefs      *prefs.Store
	Transcript *transcript.Store
	Session    *session.Session
	Client     *inference.Client
	Logger     *zap.Logger

	In  io.Reader
	Out io.Writer
	Err io.Writer

	// HistoryFile backs line-mode chat input history. "" disables it.
	HistoryFile string

	// newReader overrides the chat line reader in tests.
	newReader func(env *Env) lineReader
}

func (e *Env) stdin() io.Reader {
	if e.In == nil {
		return os.Stdin
	}
	return e.In
}

func (e *Env) stdout() io.Writer {
	if e.Out == nil {
		return os.Stdout
	}
	return e.Out
}

func (e *Env) stderr() io.Writer {
	if e.Err == nil {
		return os.Stderr
	}
	return e.Err
}

func (e *Env) log() *zap.Logger {
	return logging.OrNop(e.Logger).Named("cli")
}

// Run dispatches a non-TUI command.
func Run(ctx context.Context, cmd Command, args Args, env *Env) error {
	if args.NoColor {
		ForceColorsEnabled(false)
	}
	ApplyColorProfile()

	switch cmd {
	case CmdAsk:
		return HandleAsk(ctx, args, env)
	case CmdChat:
		return HandleChat(ctx, args, env)
	case CmdHistory:
		return HandleHistory(ctx, args, env)
	case CmdLang:
		return HandleLang(ctx, args, env)
	case CmdConfig:
		return HandleConfig(ctx, args, env)
	case CmdStatus:
		return HandleStatus(ctx, args, env)
	case CmdVersion:
		if args.JSON {
			return NewJSONResponse("version", map[string]string{
				"version":    Version,
				"git_commit": GitCommit,
				"build_date": BuildDate,
			}).Write(env.stdout())
		}
		PrintVersion(env.stdout())
		return nil
	case CmdHelp:
		PrintUsage(env.stdout())
		return nil
	}
	return fmt.Errorf("%s is not a line-mode command", cmd)
}

// fail reports err in the requested format and returns ErrSilent.
func fail(env *Env, args Args, command string, err error) error {
	if args.JSON {
		if werr := NewJSONErrorResponse(command, err).Write(env.stdout()); werr != nil {
			return werr
		}
	} else {
		fmt.Fprintf(env.stderr(), "%s %v\n", ErrorStyle.Render("Error:"), err)
	}
	return ErrSilent
}
