// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/jeranaias/pestcheck-tui/internal/config"
)

// HandleConfig handles "config show|get|set|path". show and get read the
// process-wide config installed by main with config.SetGlobal.
func HandleConfig(ctx context.Context, args Args, env *Env) error {
	p := NewArgParser(args.Raw, "json")
	if p.BoolFlag("json") {
		args.JSON = true
	}

	switch p.Subcommand() {
	case "", "show":
		return configShow(args, env)
	case "get":
		return configGet(args, env, p.Positional(1))
	case "set":
		return configSet(args, env, p.Positional(1), strings.Join(p.PositionalFrom(2), " "))
	case "path":
		return configPath(args, env)
	}
	return fail(env, args, "config", fmt.Errorf("unknown config subcommand %q (show, get, set, path)", p.Subcommand()))
}

func configShow(args Args, env *Env) error {
	if args.JSON {
		return NewJSONResponse("config show", config.Global()).Write(env.stdout())
	}
	out := env.stdout()
	fmt.Fprintln(out, TitleStyle.Render("Configuration"))
	cfg := config.Global()
	section := ""
	for _, key := range config.GetAllKeys() {
		v, err := cfg.Get(key)
		if err != nil {
			continue
		}
		if s, _, ok := strings.Cut(key, "."); ok && s != section {
			section = s
			fmt.Fprintln(out, SectionStyle.Render("["+s+"]"))
		}
		fmt.Fprintf(out, "  %s%s\n", RenderLabel(key), ValueStyle.Render(formatConfigValue(key, v)))
	}
	return nil
}

func formatConfigValue(key string, v interface{}) string {
	switch val := v.(type) {
	case string:
		if val == "" {
			return DimStyle.Render("(unset)")
		}
		return val
	case int64:
		if key == "capture.max_bytes" {
			return fmt.Sprintf("%d (%s)", val, formatBytes(val))
		}
	}
	return fmt.Sprint(v)
}

func configGet(args Args, env *Env, key string) error {
	if key == "" {
		return fail(env, args, "config get", fmt.Errorf("usage: pestcheck config get KEY (keys: %s)", strings.Join(config.GetAllKeys(), ", ")))
	}
	v, err := config.Global().Get(key)
	if err != nil {
		return fail(env, args, "config get", err)
	}
	if args.JSON {
		return NewJSONResponse("config get", map[string]interface{}{"key": key, "value": v}).Write(env.stdout())
	}
	fmt.Fprintln(env.stdout(), v)
	return nil
}

// configSet changes one key on a copy, validates it and only then saves.
func configSet(args Args, env *Env, key, value string) error {
	if key == "" {
		return fail(env, args, "config set", fmt.Errorf("usage: pestcheck config set KEY VALUE"))
	}
	updated := env.Config.Clone()
	if err := updated.Set(key, value); err != nil {
		return fail(env, args, "config set", err)
	}
	if err := updated.Validate(); err != nil {
		return fail(env, args, "config set", err)
	}

	path, err := resolveConfigPath(env)
	if err != nil {
		return fail(env, args, "config set", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = config.SaveJSON(updated, path)
	} else {
		err = config.SaveTOML(updated, path)
	}
	if err != nil {
		return fail(env, args, "config set", err)
	}
	*env.Config = *updated
	config.SetGlobal(env.Config)
	env.log().Info("config updated", zap.String("key", key), zap.String("path", path))

	if args.JSON {
		v, _ := updated.Get(key)
		return NewJSONResponse("config set", map[string]interface{}{"key": key, "value": v, "path": path}).Write(env.stdout())
	}
	if !args.Quiet {
		fmt.Fprintf(env.stdout(), "%s %s saved to %s\n", RenderStatus("ok"), key, path)
	}
	return nil
}

func configPath(args Args, env *Env) error {
	path, err := resolveConfigPath(env)
	if err != nil {
		return fail(env, args, "config path", err)
	}
	if args.JSON {
		return NewJSONResponse("config path", map[string]string{"path": path}).Write(env.stdout())
	}
	fmt.Fprintln(env.stdout(), path)
	return nil
}

func resolveConfigPath(env *Env) (string, error) {
	if env.ConfigPath != "" {
		return env.ConfigPath, nil
	}
	return config.ConfigPathTOML()
}
