// pestcheck - a terminal pest detection assistant for farmers.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/pestcheck-tui/internal/capture"
	"github.com/jeranaias/pestcheck-tui/internal/cli"
	"github.com/jeranaias/pestcheck-tui/internal/config"
	"github.com/jeranaias/pestcheck-tui/internal/inference"
	"github.com/jeranaias/pestcheck-tui/internal/kvstore"
	"github.com/jeranaias/pestcheck-tui/internal/logging"
	"github.com/jeranaias/pestcheck-tui/internal/nav"
	"github.com/jeranaias/pestcheck-tui/internal/prefs"
	"github.com/jeranaias/pestcheck-tui/internal/session"
	"github.com/jeranaias/pestcheck-tui/internal/transcript"
	"github.com/jeranaias/pestcheck-tui/internal/ui/app"
	"github.com/jeranaias/pestcheck-tui/internal/ui/components"
	"github.com/jeranaias/pestcheck-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	os.Exit(run())
}

func run() int {
	cmd, args := cli.Parse(os.Args[1:])

	// Commands that need no state.
	switch cmd {
	case cli.CmdVersion, cli.CmdHelp:
		if err := cli.Run(context.Background(), cmd, args, &cli.Env{}); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	cfg, err := loadConfig(args.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if args.Verbose {
		cfg.Log.Level = "debug"
	}
	config.SetGlobal(cfg)

	logger, err := logging.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		logger = zap.NewNop()
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	storePath, err := cfg.StorePath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	kv, err := kvstore.OpenSQLite(ctx, storePath)
	if err != nil {
		logger.Error("storage unavailable", zap.String("path", storePath), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer kv.Close()

	prefStore := prefs.New(kv, logger)
	transcripts := transcript.NewStore(kv, logger)
	client := inference.NewClient(&inference.ClientConfig{
		BaseURL:   cfg.BaseURL(),
		Timeout:   time.Duration(cfg.Server.TimeoutSecs) * time.Second,
		UserAgent: "pestcheck/" + Version,
	}, logger)
	sess := session.New(transcripts, client, prefStore, logger)

	logger.Info("starting",
		zap.String("command", cmd.String()),
		zap.String("version", Version),
		zap.String("base_url", client.BaseURL()),
		zap.String("store", storePath),
		zap.String("session", sess.ID()))

	if cmd == cli.CmdTUI {
		theme := styles.NewTheme(cfg.UI.Theme)
		err := app.Run(&app.Deps{
			Config:   cfg,
			Prefs:    prefStore,
			Nav:      nav.NewController(prefStore, logger),
			Session:  sess,
			Capture:  capture.NewWatcher(cfg.Capture.Dir, cfg.Capture.MaxBytes, logger),
			Theme:    theme,
			Markdown: components.NewMarkdown(cfg.UI.RenderMarkdown, theme.IsDark),
			Logger:   logger,
			Version:  Version,
		})
		if err != nil {
			logger.Error("tui exited with error", zap.Error(err))
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	env := &cli.Env{
		Config:      cfg,
		ConfigPath:  args.ConfigPath,
		Prefs:       prefStore,
		Transcript:  transcripts,
		Session:     sess,
		Client:      client,
		Logger:      logger,
		HistoryFile: chatHistoryFile(),
	}
	if err := cli.Run(ctx, cmd, args, env); err != nil {
		if !errors.Is(err, cli.ErrSilent) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// loadConfig reads an explicit --config file, or the default locations.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		// `config set` may create it.
		cfg := config.Default()
		if err := cfg.ApplyEnvOverrides(); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
		return cfg, nil
	}
	return config.LoadFromPath(path)
}

func chatHistoryFile() string {
	dir, err := config.ConfigDir()
	if err != nil {
		return ""
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return ""
	}
	return filepath.Join(dir, "chat_history")
}
