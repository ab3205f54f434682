// Copyright (c) 2025, soup and the srtran-gateway contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package translate

import (
	"errors"
	"net/http"
)

// Kind classifies a failure at the endpoint boundary
type Kind int

const (
	KindInternal Kind = iota
	KindMethodNotAllowed
	KindBadRequest
	KindUpstreamFailure
	KindTranslationFailed
)

func (k Kind) String() string {
	switch k {
	case KindMethodNotAllowed:
		return "method_not_allowed"
	case KindBadRequest:
		return "bad_request"
	case KindUpstreamFailure:
		return "upstream_failure"
	case KindTranslationFailed:
		return "translation_failed"
	default:
		return "internal_error"
	}
}

// StatusCode maps a Kind to the HTTP status returned to callers.
func (k Kind) StatusCode() int {
	switch k {
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

const (
	MsgMethodNotAllowed = "Only POST requests allowed"
	MsgInputRequired    = "Input content is required"
	MsgAPIKeyRequired   = "API key is required"
	MsgInternal         = "Internal server error"
)

// Error is a classified failure. Message is safe to show to callers for
// client errors; server-side kinds always surface as MsgInternal.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		if e.Message != "" {
			return e.Message + ": " + e.Err.Error()
		}
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// PublicMessage is the text returned in the response body.
func (e *Error) PublicMessage() string {
	if e.Kind.StatusCode() >= http.StatusInternalServerError {
		return MsgInternal
	}
	return e.Message
}

// KindOf reports the Kind of err; unclassified errors are KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// AsError returns err as an *Error, classifying it as KindInternal if needed.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindInternal, Err: err}
}

func badRequest(msg string) *Error {
	return &Error{Kind: KindBadRequest, Message: msg}
}
