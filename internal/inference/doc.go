// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package inference provides the HTTP client for the pest-detection
// /predict endpoint.
//
// Every user turn is exactly one POST with a JSON body
// {message, image?, language}. The reply {response?, vision_analysis?, error?}
// maps to either a Result or an error. There is no retry and no backoff.
//
// # Key Types
//
//   - Client: HTTP client for the /predict endpoint
//   - PredictRequest, PredictResponse: Wire format
//   - Result: A successful reply with optional structured analysis
//   - ClientError: Transport or decoding failure (categorized by ErrorType)
//   - ServerError: The service answered but reported a failure
//
// # Usage
//
//	client := inference.NewClient(&inference.ClientConfig{BaseURL: cfg.BaseURL()}, logger)
//	res, err := client.Send(ctx, "aphids on leaves", "", "en")
//	switch {
//	case errors.Is(err, inference.ErrEmptyTurn):
//	    // nothing was sent
//	case err != nil:
//	    entry = transcript.ErrorEntry(inference.Message(err))
//	default:
//	    entry = transcript.AgentEntry(res.Text, res.Analysis)
//	}
package inference
