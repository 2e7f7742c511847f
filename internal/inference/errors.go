// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package inference

import (
	"errors"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// FallbackMessage is reported when the service answers without a response
// and without an error message.
const FallbackMessage = "Failed to get response"

// ErrEmptyTurn is returned before any network activity when a turn has
// neither text nor an image.
var ErrEmptyTurn = errors.New("please enter a message or select an image")

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeCanceled
	ErrTypeInvalidResponse
)

func (t ErrorType) String() string {
	switch t {
	case ErrTypeConnection:
		return "connection"
	case ErrTypeTimeout:
		return "timeout"
	case ErrTypeCanceled:
		return "canceled"
	case ErrTypeInvalidResponse:
		return "invalid_response"
	}
	return "unknown"
}

// ClientError is a failure to complete the exchange: the request never got
// an answer or the answer could not be decoded.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ServerError is a decoded reply without a response text.
type ServerError struct {
	Status  int    // HTTP status code
	Message string // server "error" field, or FallbackMessage
}

func (e *ServerError) Error() string {
	return e.Message
}

// Message returns the text shown after "Error: " in the transcript for err.
func Message(err error) string {
	var se *ServerError
	if errors.As(err, &se) {
		return se.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// IsType reports whether err is a ClientError of type t.
func IsType(err error, t ErrorType) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Type == t
}
