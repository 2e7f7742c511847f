// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build android

package config

// DefaultBaseURL is the host machine as seen from the Android emulator.
const DefaultBaseURL = "http://10.0.2.2:5000"
