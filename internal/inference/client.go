// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/jeranaias/pestcheck-tui/internal/config"
	"github.com/jeranaias/pestcheck-tui/internal/logging"
)

// maxResponseBytes caps how much of a reply body is decoded.
const maxResponseBytes = 8 << 20

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the inference client.
type ClientConfig struct {
	// BaseURL of the service without the /predict path (default: config.DefaultBaseURL)
	BaseURL string

	// Timeout for a whole request. Zero means no client-side timeout.
	Timeout time.Duration

	// UserAgent sent with every request (default: "pestcheck")
	UserAgent string

	// HTTPClient replaces the default client; Timeout is ignored when set.
	HTTPClient *http.Client
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:   config.DefaultBaseURL,
		UserAgent: "pestcheck",
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client sends turns to the /predict endpoint. It is safe for concurrent use.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client. A nil cfg uses DefaultConfig.
func NewClient(cfg *ClientConfig, logger *zap.Logger) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	c := *cfg
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.BaseURL == "" {
		c.BaseURL = config.DefaultBaseURL
	}
	if c.UserAgent == "" {
		c.UserAgent = "pestcheck"
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: c.Timeout}
	}

	return &Client{
		config:     &c,
		httpClient: httpClient,
		logger:     logging.OrNop(logger).Named("inference"),
	}
}

// BaseURL returns the base URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// Send posts one turn. text may be empty when image is set; image is a data
// URI or bare base64 and may be empty when text is set. An empty language is
// sent as "en".
//
// A reply with a non-empty "response" yields a Result regardless of HTTP
// status. A decoded reply without one yields a *ServerError. Anything else
// yields a *ClientError. Nothing is retried.
func (c *Client) Send(ctx context.Context, text, image, language string) (*Result, error) {
	if strings.TrimSpace(text) == "" && image == "" {
		return nil, ErrEmptyTurn
	}
	if language == "" {
		language = "en"
	}

	reqBody := PredictRequest{
		Message:  norm.NFC.String(text),
		Image:    StripDataURI(image),
		Language: language,
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	requestID := uuid.NewString()
	log := c.logger.With(zap.String("request_id", requestID))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+PredictPath, bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set(RequestIDHeader, requestID)

	log.Debug("sending turn",
		zap.String("language", language),
		zap.Int("message_len", len(reqBody.Message)),
		zap.Bool("has_image", reqBody.Image != ""))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		cerr := classify(err)
		log.Warn("request failed", zap.Stringer("type", cerr.Type), zap.Error(err))
		return nil, cerr
	}
	defer resp.Body.Close()

	var out PredictResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, classify(ctxErr)
		}
		log.Warn("undecodable reply", zap.Int("status", resp.StatusCode), zap.Error(err))
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	analysis, err := out.Analysis()
	if err != nil {
		log.Warn("dropping malformed vision_analysis", zap.Error(err))
	}

	log.Info("reply received",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
		zap.Bool("has_analysis", analysis != nil))

	if out.Response != "" {
		return &Result{Text: out.Response, Analysis: analysis, RequestID: requestID}, nil
	}

	msg := out.Error
	if msg == "" {
		msg = FallbackMessage
	}
	return nil, &ServerError{Status: resp.StatusCode, Message: msg}
}

// CheckReachable reports whether anything answers HTTP at the base URL.
// Any status code counts; only transport failures are errors.
func (c *Client) CheckReachable(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/", nil)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", c.config.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classify(err)
	}
	resp.Body.Close()
	return nil
}

// classify maps a transport error onto a ClientError.
func classify(err error) *ClientError {
	switch {
	case errors.Is(err, context.Canceled):
		return &ClientError{Type: ErrTypeCanceled, Message: "request canceled", Cause: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &ClientError{Type: ErrTypeTimeout, Message: "request timed out", Cause: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &ClientError{Type: ErrTypeTimeout, Message: "request timed out", Cause: err}
	}
	return &ClientError{Type: ErrTypeConnection, Message: "request failed", Cause: err}
}

// StripDataURI returns the base64 payload of a data URI, or s unchanged when
// it is not one.
func StripDataURI(s string) string {
	if !strings.HasPrefix(s, "data:") {
		return s
	}
	if i := strings.IndexByte(s, ','); i >= 0 {
		return s[i+1:]
	}
	return ""
}
