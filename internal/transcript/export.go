// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package transcript

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/jeranaias/pestcheck-tui/internal/util"
)

// =============================================================================
// TRANSCRIPT EXPORT
// =============================================================================

// ExportMarkdown renders entries as a Markdown document. Images are
// referenced by MIME type rather than embedded.
func ExportMarkdown(entries []Entry, exportedAt time.Time) string {
	var sb strings.Builder
	sb.WriteString("# Pest Detection Chat\n\n")
	sb.WriteString("Exported: " + exportedAt.Format(time.RFC3339) + "\n\n")
	sb.WriteString("---\n\n")

	for _, e := range entries {
		if e.IsUser {
			sb.WriteString("**You**:\n\n")
		} else {
			sb.WriteString("**Agent**:\n\n")
		}
		if e.HasImage() {
			sb.WriteString("_[image: " + ImageMIME(e.Image) + "]_\n\n")
		}
		if e.Text != "" {
			sb.WriteString(e.Text)
			sb.WriteString("\n\n")
		}
		if a := e.Analysis; a != nil {
			sb.WriteString("| Pest | Confidence | Severity |\n")
			sb.WriteString("|------|------------|----------|\n")
			sb.WriteString("| " + a.DetectedPest + " | " + a.ConfidencePercent() + " | " + a.Severity + " |\n\n")
		}
		sb.WriteString("---\n\n")
	}

	return sb.String()
}

// ExportJSON returns entries as indented JSON, in the stored field layout.
func ExportJSON(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}
	return json.MarshalIndent(entries, "", "  ")
}

// Preview returns the first user text truncated to width columns, or "".
func Preview(entries []Entry, width int) string {
	for _, e := range entries {
		if e.IsUser && e.Text != "" {
			return util.Preview(e.Text, width)
		}
	}
	return ""
}

// ImageMIME returns the MIME type of a data URI, or "image" when unknown.
func ImageMIME(dataURI string) string {
	rest, ok := strings.CutPrefix(dataURI, "data:")
	if !ok {
		return "image"
	}
	mime, _, ok := strings.Cut(rest, ";")
	if !ok || mime == "" {
		return "image"
	}
	return mime
}
