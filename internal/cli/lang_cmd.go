// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jeranaias/pestcheck-tui/internal/i18n"
	"github.com/jeranaias/pestcheck-tui/internal/prefs"
)

func translate(lang, key string) string { return i18n.T(lang, key) }

// langInfo is the --json payload of "lang show".
type langInfo struct {
	Effective        string `json:"effective"`
	NativeName       string `json:"native_name"`
	SelectedLanguage string `json:"selected_language,omitempty"`
	UserLanguage     string `json:"user_language,omitempty"`
	HasSelected      bool   `json:"has_selected_language"`
	System           string `json:"system_suggestion"`
}

// HandleLang handles "lang show|set|reset|list".
func HandleLang(ctx context.Context, args Args, env *Env) error {
	p := NewArgParser(args.Raw, "json")
	if p.BoolFlag("json") {
		args.JSON = true
	}

	switch p.Subcommand() {
	case "", "show":
		return langShow(ctx, args, env)
	case "set":
		return langSet(ctx, args, env, p.Positional(1))
	case "reset":
		return langReset(ctx, args, env)
	case "list", "ls":
		return langList(args, env)
	}
	// "pestcheck lang ta" is shorthand for set.
	return langSet(ctx, args, env, p.Subcommand())
}

func langShow(ctx context.Context, args Args, env *Env) error {
	snap := env.Prefs.Snapshot(ctx)
	l, _ := i18n.Lookup(snap.Effective)
	info := langInfo{
		Effective:        snap.Effective,
		NativeName:       l.NativeName,
		SelectedLanguage: snap.SelectedLanguage,
		UserLanguage:     snap.UserLanguage,
		HasSelected:      snap.HasSelected,
		System:           i18n.DetectSystem(),
	}
	if args.JSON {
		return NewJSONResponse("lang show", info).Write(env.stdout())
	}

	out := env.stdout()
	fmt.Fprintln(out, TitleStyle.Render(translate(snap.Effective, "language")))
	fmt.Fprintf(out, "  %s%s (%s)\n", RenderLabel("Active:"), ValueStyle.Render(l.NativeName), l.Code)
	if !snap.HasSelected {
		fmt.Fprintf(out, "  %s%s\n", RenderLabel("First run:"), WarningStyle.Render("picker not completed"))
	}
	fmt.Fprintf(out, "  %s%s\n", RenderLabel("System locale:"), DimStyle.Render(info.System))
	return nil
}

func langSet(ctx context.Context, args Args, env *Env, value string) error {
	if strings.TrimSpace(value) == "" {
		return fail(env, args, "lang set", fmt.Errorf("usage: pestcheck lang set CODE (%s)", strings.Join(languageCodes(), ", ")))
	}
	code := resolveLanguage(value)

	// Outside the TUI the first-run picker is answered here too.
	var err error
	if env.Prefs.HasSelected(ctx) {
		err = env.Prefs.SetLanguage(ctx, code)
	} else {
		err = env.Prefs.CompleteSelection(ctx, code)
	}
	if err != nil {
		if errors.Is(err, prefs.ErrUnsupportedLanguage) {
			return fail(env, args, "lang set", fmt.Errorf("unsupported language %q (%s)", value, strings.Join(languageCodes(), ", ")))
		}
		return fail(env, args, "lang set", err)
	}

	if args.JSON {
		return NewJSONResponse("lang set", map[string]string{"language": code}).Write(env.stdout())
	}
	if !args.Quiet {
		fmt.Fprintf(env.stdout(), "%s %s\n", RenderStatus("ok"), translate(code, "languageChangedMessage"))
	}
	return nil
}

func langReset(ctx context.Context, args Args, env *Env) error {
	if err := env.Prefs.Reset(ctx); err != nil {
		return fail(env, args, "lang reset", err)
	}
	if args.JSON {
		return NewJSONResponse("lang reset", map[string]bool{"reset": true}).Write(env.stdout())
	}
	if !args.Quiet {
		fmt.Fprintf(env.stdout(), "%s Language choice cleared; the picker shows on next start\n", RenderStatus("ok"))
	}
	return nil
}

func langList(args Args, env *Env) error {
	langs := i18n.Languages()
	if args.JSON {
		return NewJSONResponse("lang list", langs).Write(env.stdout())
	}
	for _, l := range langs {
		fmt.Fprintf(env.stdout(), "  %-4s %-10s %s\n", l.Code, l.Name, l.NativeName)
	}
	return nil
}
