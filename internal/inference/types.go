// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package inference

import (
	"bytes"
	"encoding/json"

	"github.com/jeranaias/pestcheck-tui/internal/transcript"
)

// PredictPath is appended to the base URL.
const PredictPath = "/predict"

// RequestIDHeader carries a per-turn id for log correlation.
const RequestIDHeader = "X-Request-ID"

// PredictRequest is the JSON body of POST /predict.
type PredictRequest struct {
	Message  string `json:"message"`
	Image    string `json:"image,omitempty"` // base64 without data-URI prefix
	Language string `json:"language"`
}

// PredictResponse is the JSON body returned by /predict. VisionAnalysis is
// kept raw so a malformed analysis cannot hide the reply text.
type PredictResponse struct {
	Response       string          `json:"response,omitempty"`
	VisionAnalysis json.RawMessage `json:"vision_analysis,omitempty"`
	Error          string          `json:"error,omitempty"`
}

// Analysis decodes VisionAnalysis. Absent or null gives (nil, nil).
func (r *PredictResponse) Analysis() (*transcript.Analysis, error) {
	raw := bytes.TrimSpace(r.VisionAnalysis)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var a transcript.Analysis
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Result is a successful reply.
type Result struct {
	Text      string
	Analysis  *transcript.Analysis
	RequestID string
}

// Entry converts r to an agent transcript entry.
func (r *Result) Entry() transcript.Entry {
	return transcript.AgentEntry(r.Text, r.Analysis)
}
