// Copyright (c) 2025, soup and the srtran-gateway contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/s0up4200/srtran-gateway/internal/gemini"
	"github.com/s0up4200/srtran-gateway/internal/prompt"
	"github.com/s0up4200/srtran-gateway/internal/srt"
)

// Request is a single translation request as received from a caller
type Request struct {
	InputContent string `json:"inputContent"`
	APIKey       string `json:"apiKey"`
	CustomPrompt string `json:"customPrompt,omitempty"`
}

// Result is the translated text
type Result struct {
	TranslatedContent string `json:"translatedContent"`
}

// Service builds prompts and sends them upstream. It holds no per-request
// state and may be shared across goroutines.
type Service struct {
	generator gemini.Generator
	prompts   prompt.Builder
	logger    zerolog.Logger
}

// NewService creates a new translation service
func NewService(generator gemini.Generator, prompts prompt.Builder, logger zerolog.Logger) *Service {
	return &Service{
		generator: generator,
		prompts:   prompts,
		logger:    logger,
	}
}

// Validate checks required fields before any prompt is built.
func (r Request) Validate() error {
	if r.InputContent == "" {
		return badRequest(MsgInputRequired)
	}
	if r.APIKey == "" {
		return badRequest(MsgAPIKeyRequired)
	}
	return nil
}

// Translate validates req, builds the prompt and makes exactly one upstream call.
func (s *Service) Translate(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	text, err := s.generator.Generate(ctx, req.APIKey, s.prompts.Build(req.InputContent, req.CustomPrompt))
	if err != nil {
		return nil, classify(err)
	}

	return &Result{TranslatedContent: text}, nil
}

func classify(err error) *Error {
	switch {
	case errors.Is(err, gemini.ErrNoCandidates), errors.Is(err, gemini.ErrEmptyCandidate):
		return &Error{Kind: KindTranslationFailed, Err: err}
	case errors.Is(err, gemini.ErrUpstream):
		return &Error{Kind: KindUpstreamFailure, Err: err}
	default:
		return &Error{Kind: KindInternal, Err: err}
	}
}

// DocumentRequest asks for a whole subtitle document to be translated in
// chunks of at most ChunkLimit characters.
type DocumentRequest struct {
	Request
	ChunkLimit int
}

// TranslateDocument splits large documents with srt.Split and translates the
// chunks one after another. Results are joined with a blank line.
func (s *Service) TranslateDocument(ctx context.Context, req DocumentRequest) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	chunks := srt.Split(req.InputContent, req.ChunkLimit)
	if len(chunks) == 0 {
		return nil, badRequest(MsgInputRequired)
	}

	s.logger.Debug().
		Int("chunks", len(chunks)).
		Int("chunk_limit", req.ChunkLimit).
		Msg("starting chunked translation")

	translated := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		chunkReq := req.Request
		chunkReq.InputContent = chunk

		result, err := s.Translate(ctx, chunkReq)
		if err != nil {
			return nil, fmt.Errorf("failed to translate chunk %d/%d: %w", i+1, len(chunks), err)
		}

		translated = append(translated, strings.TrimSpace(result.TranslatedContent))

		s.logger.Info().
			Int("processed", i+1).
			Int("remaining", len(chunks)-i-1).
			Int("percent", (i+1)*100/len(chunks)).
			Msg("translation progress")
	}

	return &Result{TranslatedContent: strings.Join(translated, "\n\n")}, nil
}
