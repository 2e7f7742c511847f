// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "..."

// Truncate shortens s to at most width display columns, appending "..." when
// anything was cut. Wide runes (CJK, emoji) count as two columns.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= len(ellipsis) {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, ellipsis)
}

// Preview collapses whitespace (including newlines) in s and truncates the
// result to width columns.
func Preview(s string, width int) string {
	return Truncate(strings.Join(strings.Fields(s), " "), width)
}

// FitWidth returns s truncated or right-padded with spaces to exactly width
// display columns.
func FitWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = Truncate(s, width)
	return runewidth.FillRight(s, width)
}

// StringWidth returns the display width of s in terminal columns.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}
