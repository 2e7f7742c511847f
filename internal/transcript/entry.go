// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package transcript

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorPrefix starts the text of entries that report a failed turn.
const ErrorPrefix = "Error: "

// Entry is one message in the transcript. Position is the only ordering.
type Entry struct {
	Text     string    `json:"text"`
	IsUser   bool      `json:"isUser"`
	Image    string    `json:"image,omitempty"`          // data URI
	Analysis *Analysis `json:"visionAnalysis,omitempty"` // agent entries only
}

// Analysis is the structured classification returned with a reply.
type Analysis struct {
	DetectedPest string  `json:"detected_pest"`
	Confidence   float64 `json:"confidence"` // 0..1
	Severity     string  `json:"severity"`
}

// UserEntry returns a user turn.
func UserEntry(text, image string) Entry {
	return Entry{Text: text, IsUser: true, Image: image}
}

// AgentEntry returns an agent reply with an optional analysis.
func AgentEntry(text string, analysis *Analysis) Entry {
	return Entry{Text: text, Analysis: analysis}
}

// ErrorEntry returns the agent-side entry recorded for a failed turn.
func ErrorEntry(message string) Entry {
	return Entry{Text: ErrorPrefix + message}
}

// IsError reports whether e records a failed turn.
func (e Entry) IsError() bool {
	return !e.IsUser && strings.HasPrefix(e.Text, ErrorPrefix)
}

// HasImage reports whether e carries an image.
func (e Entry) HasImage() bool {
	return e.Image != ""
}

// UnmarshalJSON clamps confidence into [0, 1].
func (a *Analysis) UnmarshalJSON(data []byte) error {
	type plain Analysis
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*a = Analysis(p)
	a.Confidence = clamp01(a.Confidence)
	return nil
}

// ConfidencePercent formats confidence as "87.5%".
func (a Analysis) ConfidencePercent() string {
	return fmt.Sprintf("%.1f%%", a.Confidence*100)
}

func clamp01(f float64) float64 {
	switch {
	case f != f: // NaN
		return 0
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
