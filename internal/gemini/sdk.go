// Copyright (c) 2025, soup and the srtran-gateway contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package gemini

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// SDK generates content through the official Go SDK. The SDK binds the API
// key at client construction, so a client is built for every call.
// Sampling parameters are left to the model defaults.
type SDK struct {
	model   string
	timeout time.Duration
	logger  zerolog.Logger
}

// NewSDK creates an SDK-backed Generator.
func NewSDK(opts Options, logger zerolog.Logger) *SDK {
	opts = opts.withDefaults()
	return &SDK{
		model:   opts.Model,
		timeout: opts.Timeout,
		logger:  logger.With().Str("component", "genai").Str("model", opts.Model).Logger(),
	}
}

func (s *SDK) Generate(ctx context.Context, apiKey, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGoogleAI,
	})
	if err != nil {
		return "", fmt.Errorf("%w: failed to create Google AI client: %w", ErrUpstream, err)
	}

	result, err := client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	s.logger.Debug().
		Int("prompt_chars", len(prompt)).
		Dur("duration", time.Since(start)).
		Msg("generateContent")

	if len(result.Candidates) == 0 {
		return "", ErrNoCandidates
	}

	candidate := result.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", ErrEmptyCandidate
	}

	return candidate.Content.Parts[0].Text, nil
}
