// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if got := cfg.BaseURL(); got != DefaultBaseURL {
		t.Errorf("BaseURL() = %q, want %q", got, DefaultBaseURL)
	}
}

func TestBaseURL_TrimsTrailingSlash(t *testing.T) {
	cfg := Default()
	cfg.Server.BaseURL = "http://field-station:5000/ "
	if got := cfg.BaseURL(); got != "http://field-station:5000" {
		t.Errorf("BaseURL() = %q", got)
	}
}

func TestLoadFromPath_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `
[server]
base_url = "http://192.168.1.20:5000"
timeout_secs = 30

[ui]
theme = "light"
render_markdown = false
`)

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if cfg.Server.BaseURL != "http://192.168.1.20:5000" {
		t.Errorf("server.base_url = %q", cfg.Server.BaseURL)
	}
	if cfg.Server.TimeoutSecs != 30 {
		t.Errorf("server.timeout_secs = %d, want 30", cfg.Server.TimeoutSecs)
	}
	if cfg.UI.Theme != "light" || cfg.UI.RenderMarkdown {
		t.Errorf("ui = %+v", cfg.UI)
	}
	// Untouched sections keep their defaults
	if cfg.Log.Level != "info" {
		t.Errorf("log.level = %q, want info", cfg.Log.Level)
	}
	if cfg.Capture.MaxBytes != 10<<20 {
		t.Errorf("capture.max_bytes = %d", cfg.Capture.MaxBytes)
	}
}

func TestLoadFromPath_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, `{"log": {"level": "debug"}}`)

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadFromPath_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `
[server]
base_url = "ftp://nowhere"
[log]
level = "chatty"
`)

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var verrs ValidateErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("error %v is not ValidateErrors", err)
	}
	if len(verrs) != 2 {
		t.Errorf("got %d validation errors, want 2: %v", len(verrs), verrs)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("USERPROFILE", os.Getenv("HOME"))
	t.Setenv("PESTCHECK_BASE_URL", "http://10.0.0.5:5000")
	t.Setenv("PESTCHECK_LOG_LEVEL", "warn")
	t.Setenv("PESTCHECK_CAPTURE_DIR", "/sdcard/DCIM")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BaseURL() != "http://10.0.0.5:5000" {
		t.Errorf("BaseURL() = %q", cfg.BaseURL())
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want warn", cfg.Log.Level)
	}
	if cfg.Capture.Dir != "/sdcard/DCIM" {
		t.Errorf("capture.dir = %q", cfg.Capture.Dir)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	writeFile(t, path, "PESTCHECK_THEME=light\n")
	t.Setenv("PESTCHECK_THEME", "")
	os.Unsetenv("PESTCHECK_THEME")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv("PESTCHECK_THEME"); got != "light" {
		t.Errorf("PESTCHECK_THEME = %q, want light", got)
	}

	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("missing .env should be ignored, got %v", err)
	}
}

func TestSaveTOML_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := Default()
	cfg.Server.BaseURL = "https://pests.example.org"
	cfg.Capture.Dir = "/tmp/photos"

	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML() error = %v", err)
	}
	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if loaded.Server.BaseURL != cfg.Server.BaseURL || loaded.Capture.Dir != cfg.Capture.Dir {
		t.Errorf("loaded = %+v, want %+v", loaded, cfg)
	}
}

func TestGetSet(t *testing.T) {
	cfg := Default()

	tests := []struct {
		key   string
		value string
		want  interface{}
	}{
		{"server.base_url", "http://host:5000", "http://host:5000"},
		{"server.timeout_secs", "15", 15},
		{"capture.max_bytes", "2048", int64(2048)},
		{"ui.render_markdown", "false", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if err := cfg.Set(tt.key, tt.value); err != nil {
				t.Fatalf("Set(%q) error = %v", tt.key, err)
			}
			got, err := cfg.Get(tt.key)
			if err != nil {
				t.Fatalf("Get(%q) error = %v", tt.key, err)
			}
			if got != tt.want {
				t.Errorf("Get(%q) = %v (%T), want %v (%T)", tt.key, got, got, tt.want, tt.want)
			}
		})
	}

	if _, err := cfg.Get("server.nope"); err == nil {
		t.Error("Get(unknown) should fail")
	}
	if _, err := cfg.Get("server"); err == nil {
		t.Error("Get(section) should fail")
	}
	if err := cfg.Set("ui.render_markdown", "maybe"); err == nil {
		t.Error("Set(bool, maybe) should fail")
	}
}

func TestGetAllKeys_Resolve(t *testing.T) {
	cfg := Default()
	for _, key := range GetAllKeys() {
		if _, err := cfg.Get(key); err != nil {
			t.Errorf("Get(%q) error = %v", key, err)
		}
	}
}

func TestPaths(t *testing.T) {
	cfg := Default()
	cfg.Storage.DataDir = "/var/lib/pestcheck"

	store, err := cfg.StorePath()
	if err != nil {
		t.Fatal(err)
	}
	if store != filepath.Join("/var/lib/pestcheck", "store.db") {
		t.Errorf("StorePath() = %q", store)
	}
	logPath, _ := cfg.LogPath()
	if logPath != filepath.Join("/var/lib/pestcheck", "pestcheck.log") {
		t.Errorf("LogPath() = %q", logPath)
	}
}

// Run with: go test -race ./internal/config/
func TestConfig_ConcurrentAccess(t *testing.T) {
	ResetGlobalForTesting()
	defer ResetGlobalForTesting()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()
		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}
	wg.Wait()
}
