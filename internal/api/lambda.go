// Copyright (c) 2025, soup and the srtran-gateway contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"
)

// WarmupSource identifies scheduled keep-warm pings
const WarmupSource = "warmup"

// WarmupResponse is returned for keep-warm pings
type WarmupResponse struct {
	Status string `json:"status"`
}

// LambdaHandler serves the endpoint behind API Gateway HTTP APIs and Lambda
// function URLs, which both deliver the v2 payload format.
type LambdaHandler struct {
	endpoint *Endpoint
	logger   zerolog.Logger
}

func NewLambdaHandler(endpoint *Endpoint, logger zerolog.Logger) *LambdaHandler {
	return &LambdaHandler{endpoint: endpoint, logger: logger}
}

func isWarmupEvent(event json.RawMessage) bool {
	var probe struct {
		Source string `json:"source"`
	}
	if err := json.Unmarshal(event, &probe); err != nil {
		return false
	}
	return probe.Source == WarmupSource
}

// Invoke is passed to lambda.Start.
func (h *LambdaHandler) Invoke(ctx context.Context, event json.RawMessage) (any, error) {
	// must stay ahead of any other processing
	if isWarmupEvent(event) {
		h.logger.Debug().Msg("warmup ping")
		return WarmupResponse{Status: "warm"}, nil
	}

	var req events.APIGatewayV2HTTPRequest
	if err := json.Unmarshal(event, &req); err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}

	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return toLambdaResponse(h.endpoint.fail(fmt.Errorf("failed to decode base64 body: %w", err)))
		}
		body = decoded
	}

	resp := h.endpoint.Handle(ctx, req.RequestContext.HTTP.Method, body)

	h.logger.Info().
		Str("method", req.RequestContext.HTTP.Method).
		Str("path", req.RawPath).
		Int("status", resp.Status).
		Msg("request")

	return toLambdaResponse(resp)
}

func toLambdaResponse(resp Response) (events.APIGatewayV2HTTPResponse, error) {
	payload, err := json.Marshal(resp.Body)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, fmt.Errorf("failed to encode response: %w", err)
	}

	return events.APIGatewayV2HTTPResponse{
		StatusCode: resp.Status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(payload),
	}, nil
}
