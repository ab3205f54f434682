// Copyright (c) 2025, soup and the srtran-gateway contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package gemini

import (
	"context"
	"errors"
	"time"
)

// Backend selects how requests reach the generative language API
type Backend string

const (
	// BackendREST talks to the generateContent endpoint directly
	BackendREST Backend = "rest"
	// BackendGenAI goes through the google.golang.org/genai SDK
	BackendGenAI Backend = "genai"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.0-flash-exp"
	DefaultTimeout = 10 * time.Second
)

var (
	// ErrUpstream covers transport failures and non-2xx responses.
	ErrUpstream = errors.New("upstream request failed")
	// ErrNoCandidates means the API answered without any candidates.
	ErrNoCandidates = errors.New("translation failed: no candidates returned")
	// ErrEmptyCandidate means the first candidate carried no text part.
	ErrEmptyCandidate = errors.New("translation failed: empty candidate")
)

// Generator sends a single prompt upstream and returns the generated text.
// apiKey is supplied per call since callers bring their own credentials.
type Generator interface {
	Generate(ctx context.Context, apiKey, prompt string) (string, error)
}

// Options configures a Generator. Zero fields take the package defaults.
type Options struct {
	Backend Backend
	BaseURL string
	Model   string
	Timeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.Backend == "" {
		o.Backend = BackendREST
	}
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if o.Model == "" {
		o.Model = DefaultModel
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	return o
}

// Part is a single piece of content; only text parts are used here
type Part struct {
	Text string `json:"text"`
}

// Content is one conversation turn
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// GenerationConfig holds the sampling parameters sent with every request
type GenerationConfig struct {
	Temperature      float64 `json:"temperature"`
	TopK             int     `json:"topK"`
	TopP             float64 `json:"topP"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMIMEType string  `json:"responseMimeType"`
}

// DefaultGenerationConfig is fixed for all translation requests
var DefaultGenerationConfig = GenerationConfig{
	Temperature:      0.7,
	TopK:             50,
	TopP:             0.9,
	MaxOutputTokens:  8192,
	ResponseMIMEType: "text/plain",
}

// GenerateRequest is the generateContent request body
type GenerateRequest struct {
	Contents         []Content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

// Candidate is one generated completion
type Candidate struct {
	Content Content `json:"content"`
}

// GenerateResponse is the subset of the generateContent response we read
type GenerateResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// NewGenerateRequest wraps prompt as a single user turn.
func NewGenerateRequest(prompt string) GenerateRequest {
	return GenerateRequest{
		Contents: []Content{
			{
				Role:  "user",
				Parts: []Part{{Text: prompt}},
			},
		},
		GenerationConfig: DefaultGenerationConfig,
	}
}

// FirstText returns the text of the first part of the first candidate.
func (r GenerateResponse) FirstText() (string, error) {
	if len(r.Candidates) == 0 {
		return "", ErrNoCandidates
	}
	parts := r.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return "", ErrEmptyCandidate
	}
	return parts[0].Text, nil
}
