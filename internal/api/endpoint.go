// Copyright (c) 2025, soup and the srtran-gateway contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

// Package api exposes the translation endpoint over HTTP.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/s0up4200/srtran-gateway/internal/translate"
)

// maxBodyBytes bounds the request body; large subtitle files fit comfortably.
const maxBodyBytes = 8 << 20

// Translator is satisfied by *translate.Service
type Translator interface {
	Translate(ctx context.Context, req translate.Request) (*translate.Result, error)
}

// Response is a transport-neutral endpoint reply
type Response struct {
	Status int
	Body   any
}

// ErrorBody is the JSON shape of every error reply
type ErrorBody struct {
	Error string `json:"error"`
}

// Endpoint handles translation requests. It keeps no per-request state.
type Endpoint struct {
	translator Translator
	logger     zerolog.Logger
}

func NewEndpoint(translator Translator, logger zerolog.Logger) *Endpoint {
	return &Endpoint{
		translator: translator,
		logger:     logger,
	}
}

// Handle runs a request through method check, decoding, validation and the
// upstream call. The caller's cancellation is deliberately not forwarded:
// an upstream call that has started runs until it completes or times out.
func (e *Endpoint) Handle(ctx context.Context, method string, body []byte) Response {
	if method != http.MethodPost {
		return e.fail(&translate.Error{Kind: translate.KindMethodNotAllowed, Message: translate.MsgMethodNotAllowed})
	}

	var req translate.Request
	if err := json.Unmarshal(body, &req); err != nil {
		return e.fail(&translate.Error{Kind: translate.KindInternal, Message: "failed to decode request body", Err: err})
	}

	result, err := e.translator.Translate(context.WithoutCancel(ctx), req)
	if err != nil {
		return e.fail(err)
	}

	return Response{Status: http.StatusOK, Body: result}
}

func (e *Endpoint) fail(err error) Response {
	te := translate.AsError(err)
	status := te.Kind.StatusCode()

	if status >= http.StatusInternalServerError {
		e.logger.Error().Err(err).Str("kind", te.Kind.String()).Msg("translation request failed")
	} else {
		e.logger.Debug().Str("kind", te.Kind.String()).Msg(te.Message)
	}

	return Response{Status: status, Body: ErrorBody{Error: te.PublicMessage()}}
}

// ServeHTTP adapts Handle to net/http.
func (e *Endpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body []byte
	if r.Method == http.MethodPost {
		var err error
		body, err = io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			writeJSON(w, e.fail(fmt.Errorf("failed to read request body: %w", err)))
			return
		}
	}

	writeJSON(w, e.Handle(r.Context(), r.Method, body))
}

func writeJSON(w http.ResponseWriter, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	_ = json.NewEncoder(w).Encode(resp.Body)
}
