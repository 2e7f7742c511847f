// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package i18n holds the static translation table for the supported UI
// languages (English, Hindi, Tamil, Telugu) and locale matching helpers.
//
// Lookups never fail: a key missing in the requested language falls back to
// English, and a key missing in English is returned as-is.
package i18n

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is used whenever no valid preference exists.
const DefaultLanguage = "en"

// Language describes one selectable UI language.
type Language struct {
	Code       string // ISO 639-1 code stored in preferences
	Name       string // English name
	NativeName string // Name in its own script
}

var languages = []Language{
	{Code: "en", Name: "English", NativeName: "English"},
	{Code: "hi", Name: "Hindi", NativeName: "हिंदी"},
	{Code: "ta", Name: "Tamil", NativeName: "தமிழ்"},
	{Code: "te", Name: "Telugu", NativeName: "తెలుగు"},
}

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Hindi,
	language.Tamil,
	language.Telugu,
})

// Languages returns the supported languages in display order.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// Lookup returns the Language for code.
func Lookup(code string) (Language, bool) {
	for _, l := range languages {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// IsSupported reports whether code is one of the supported language codes.
func IsSupported(code string) bool {
	_, ok := Lookup(code)
	return ok
}

// Normalize returns code if supported, otherwise DefaultLanguage.
func Normalize(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if IsSupported(code) {
		return code
	}
	return DefaultLanguage
}

// Match maps a locale string such as "ta_IN.UTF-8", "hi-IN" or "en_GB" to the
// closest supported code. Unrecognized or unrelated locales give
// DefaultLanguage.
func Match(locale string) string {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	locale = strings.ReplaceAll(locale, "_", "-")
	if locale == "" || locale == "C" || locale == "POSIX" {
		return DefaultLanguage
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return DefaultLanguage
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return DefaultLanguage
	}
	return languages[index].Code
}

// DetectSystem matches the first non-empty of LC_ALL, LC_MESSAGES and LANG.
func DetectSystem() string {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(name); v != "" {
			return Match(v)
		}
	}
	return DefaultLanguage
}

// T returns the translation of key in lang.
func T(lang, key string) string {
	if table, ok := translations[lang]; ok {
		if s, ok := table[key]; ok {
			return s
		}
	}
	if s, ok := translations[DefaultLanguage][key]; ok {
		return s
	}
	return key
}

// Tf is T with {{name}} placeholders replaced from vars.
func Tf(lang, key string, vars map[string]string) string {
	s := T(lang, key)
	if len(vars) == 0 {
		return s
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	return strings.NewReplacer(pairs...).Replace(s)
}

// Translator binds a language code so screens can call tr.T(key).
type Translator struct {
	Lang string
}

// For returns a Translator for code, normalized to a supported language.
func For(code string) Translator {
	return Translator{Lang: Normalize(code)}
}

// T translates key.
func (tr Translator) T(key string) string { return T(tr.Lang, key) }

// Tf translates key with placeholder substitution.
func (tr Translator) Tf(key string, vars map[string]string) string { return Tf(tr.Lang, key, vars) }
