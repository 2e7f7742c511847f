// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !android

package config

// DefaultBaseURL is the inference server on the local machine.
const DefaultBaseURL = "http://localhost:5000"
