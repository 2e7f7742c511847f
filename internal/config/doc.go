// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for pestcheck.
//
// Supports both TOML and JSON configuration formats, with defaults,
// environment variable overrides and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - ServerConfig: Location of the /predict inference endpoint
//   - StorageConfig: Where preferences and the transcript live
//   - LogConfig: Log level and log file
//   - CaptureConfig: Image attachment limits and the camera folder
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (PESTCHECK_*), optionally seeded from ./.env
//   - ~/.pestcheck/config.toml
//   - ~/.pestcheck/config.json
//   - Built-in defaults
//
// The inference base URL is resolved once at startup. When server.base_url
// is empty the platform default applies: the Android emulator loopback alias
// on android builds and localhost everywhere else.
//
// # Usage
//
//	config.LoadDotEnv("")
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := inference.NewClient(&inference.ClientConfig{BaseURL: cfg.BaseURL()})
package config
