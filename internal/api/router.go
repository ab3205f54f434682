// Copyright (c) 2025, soup and the srtran-gateway contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// BuildInfo is reported by the /version route
type BuildInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	GitCommit string `json:"git_commit"`
}

// NewRouter mounts the endpoint at path and at "/", plus health and version
// routes. The endpoint itself answers every method so it can reply 405 with
// a JSON body.
func NewRouter(endpoint *Endpoint, path string, info BuildInfo) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, Response{Status: http.StatusOK, Body: map[string]string{"status": "ok"}})
	}).Methods(http.MethodGet)

	router.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, Response{Status: http.StatusOK, Body: info})
	}).Methods(http.MethodGet)

	router.Handle(path, endpoint)
	if path != "/" {
		router.Handle("/", endpoint)
	}

	return router
}

// WithLogging attaches logger to each request context and writes one access
// log line per request.
func WithLogging(next http.Handler, logger zerolog.Logger) http.Handler {
	access := hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		event := hlog.FromRequest(r).Info()
		if status >= http.StatusInternalServerError {
			event = hlog.FromRequest(r).Warn()
		}
		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	})

	return hlog.NewHandler(logger)(access(next))
}
