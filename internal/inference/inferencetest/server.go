// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package inferencetest provides a fake /predict service for tests.
package inferencetest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jeranaias/pestcheck-tui/internal/inference"
	"github.com/jeranaias/pestcheck-tui/internal/transcript"
)

// Responder decides the reply to one request. body is written as JSON
// unless it is a string, which is written verbatim.
type Responder func(r *http.Request, req inference.PredictRequest) (status int, body any)

// Recorded is one request seen by the server.
type Recorded struct {
	Body   inference.PredictRequest
	Raw    map[string]any
	Header http.Header
}

// Server is a running fake service.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	respond  Responder
	requests []Recorded
	roots    int
}

// NewServer starts a fake service that answers with respond and closes it
// when the test ends.
func NewServer(t testing.TB, respond Responder) *Server {
	t.Helper()
	s := &Server{respond: respond}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		s.roots++
		s.mu.Unlock()
		w.WriteHeader(http.StatusNotFound)
	})
	r.Post(inference.PredictPath, s.handlePredict)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req inference.PredictRequest
	var raw map[string]any
	_ = json.Unmarshal(data, &req)
	_ = json.Unmarshal(data, &raw)

	s.mu.Lock()
	s.requests = append(s.requests, Recorded{Body: req, Raw: raw, Header: r.Header.Clone()})
	respond := s.respond
	s.mu.Unlock()

	status, body := respond(r, req)
	switch b := body.(type) {
	case string:
		w.WriteHeader(status)
		_, _ = io.WriteString(w, b)
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(b)
	}

}

// SetResponder replaces the responder for subsequent requests.
func (s *Server) SetResponder(respond Responder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.respond = respond
}

// Requests returns a copy of the recorded /predict requests.
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Recorded, len(s.requests))
	copy(out, s.requests)
	return out
}

// RequestCount returns the number of /predict requests received.
func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// RootHits returns the number of GET / requests received.
func (s *Server) RootHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roots
}

// =============================================================================
// RESPONDERS
// =============================================================================

// Reply answers 200 with response text and optional analysis.
func Reply(text string, analysis *transcript.Analysis) Responder {
	var raw json.RawMessage
	if analysis != nil {
		raw, _ = json.Marshal(analysis)
	}
	return func(*http.Request, inference.PredictRequest) (int, any) {
		return http.StatusOK, inference.PredictResponse{Response: text, VisionAnalysis: raw}
	}
}

// Fail answers status with {"error": message}. An empty message sends {}.
func Fail(status int, message string) Responder {
	return func(*http.Request, inference.PredictRequest) (int, any) {
		return status, inference.PredictResponse{Error: message}
	}
}

// Raw answers status with body written verbatim.
func Raw(status int, body string) Responder {
	return func(*http.Request, inference.PredictRequest) (int, any) {
		return status, body
	}
}

// Echo replies with "<language>:<message>", useful for ordering checks.
func Echo() Responder {
	return func(_ *http.Request, req inference.PredictRequest) (int, any) {
		return http.StatusOK, inference.PredictResponse{Response: req.Language + ":" + req.Message}
	}
}

// Block waits until release is closed or the client goes away, then
// delegates to next. entered receives once per request when non-nil.
func Block(entered chan<- struct{}, release <-chan struct{}, next Responder) Responder {
	return func(r *http.Request, req inference.PredictRequest) (int, any) {
		if entered != nil {
			entered <- struct{}{}
		}
		select {
		case <-release:
		case <-r.Context().Done():
		}
		return next(r, req)
	}
}
