// Copyright (c) 2025, soup and the srtran-gateway contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// Client calls the generateContent REST endpoint. It is safe for concurrent
// use and is never mutated after New returns.
type Client struct {
	http   *resty.Client
	model  string
	logger zerolog.Logger
}

// New creates a REST client. One Client is meant to be shared by all requests.
func New(opts Options, logger zerolog.Logger) *Client {
	opts = opts.withDefaults()
	logger = logger.With().Str("component", "gemini").Str("model", opts.Model).Logger()

	httpClient := resty.New().
		SetLogger(restyLogger{logger: logger}).
		SetTimeout(opts.Timeout).
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http:   httpClient,
		model:  opts.Model,
		logger: logger,
	}
}

// NewGenerator returns the Generator for opts.Backend.
func NewGenerator(opts Options, logger zerolog.Logger) (Generator, error) {
	opts = opts.withDefaults()

	switch opts.Backend {
	case BackendREST:
		return New(opts, logger), nil
	case BackendGenAI:
		return NewSDK(opts, logger), nil
	default:
		return nil, fmt.Errorf("unsupported backend: %s", opts.Backend)
	}
}

// Generate sends prompt as a single user turn and returns the first
// candidate's text. There are no retries.
func (c *Client) Generate(ctx context.Context, apiKey, prompt string) (string, error) {
	start := time.Now()

	var result GenerateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", apiKey).
		SetBody(NewGenerateRequest(prompt)).
		SetResult(&result).
		ForceContentType("application/json").
		Post("/models/" + c.model + ":generateContent")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, redact(err))
	}

	c.logger.Debug().
		Int("status", resp.StatusCode()).
		Int("prompt_chars", len(prompt)).
		Dur("duration", time.Since(start)).
		Msg("generateContent")

	if resp.IsError() {
		return "", fmt.Errorf("%w: %s: %s", ErrUpstream, resp.Status(), strings.TrimSpace(resp.String()))
	}

	return result.FirstText()
}

// redact strips the request URL from transport errors so the API key
// carried in the query string doesn't end up in logs.
func redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
