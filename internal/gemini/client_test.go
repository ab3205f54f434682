package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Options{BaseURL: srv.URL, Model: "test-model", Timeout: 2 * time.Second}, zerolog.Nop())
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestClient_Generate(t *testing.T) {
	var got GenerateRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		writeJSON(w, http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"Xin chào"}]}}]}`)
	})

	text, err := client.Generate(context.Background(), "secret", "translate me")
	require.NoError(t, err)
	assert.Equal(t, "Xin chào", text)

	require.Len(t, got.Contents, 1)
	assert.Equal(t, "user", got.Contents[0].Role)
	assert.Equal(t, []Part{{Text: "translate me"}}, got.Contents[0].Parts)
	assert.Equal(t, DefaultGenerationConfig, got.GenerationConfig)
}

func TestClient_GenerateWireFormat(t *testing.T) {
	var raw map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		writeJSON(w, http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`)
	})

	_, err := client.Generate(context.Background(), "k", "p")
	require.NoError(t, err)

	cfg, ok := raw["generationConfig"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 0.7, cfg["temperature"])
	assert.Equal(t, float64(50), cfg["topK"])
	assert.Equal(t, 0.9, cfg["topP"])
	assert.Equal(t, float64(8192), cfg["maxOutputTokens"])
	assert.Equal(t, "text/plain", cfg["responseMimeType"])
}

func TestClient_GenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{
			name:    "no candidates",
			status:  http.StatusOK,
			body:    `{"candidates":[]}`,
			wantErr: ErrNoCandidates,
		},
		{
			name:    "candidates missing",
			status:  http.StatusOK,
			body:    `{}`,
			wantErr: ErrNoCandidates,
		},
		{
			name:    "candidate without parts",
			status:  http.StatusOK,
			body:    `{"candidates":[{"content":{"parts":[]}}]}`,
			wantErr: ErrEmptyCandidate,
		},
		{
			name:    "bad api key",
			status:  http.StatusBadRequest,
			body:    `{"error":{"code":400,"message":"API key not valid"}}`,
			wantErr: ErrUpstream,
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `{"error":{"code":500}}`,
			wantErr: ErrUpstream,
		},
		{
			name:    "malformed body",
			status:  http.StatusOK,
			body:    `{"candidates":`,
			wantErr: ErrUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})

			_, err := client.Generate(context.Background(), "k", "p")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClient_GenerateTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	client := New(Options{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, zerolog.Nop())
	_, err := client.Generate(context.Background(), "secret-key", "p")
	require.ErrorIs(t, err, ErrUpstream)
	assert.NotContains(t, err.Error(), "secret-key")
}

func TestNewGenerator(t *testing.T) {
	g, err := NewGenerator(Options{}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &Client{}, g)

	g, err = NewGenerator(Options{Backend: BackendGenAI}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &SDK{}, g)

	_, err = NewGenerator(Options{Backend: "carrier-pigeon"}, zerolog.Nop())
	assert.Error(t, err)
}

func TestGenerateResponse_FirstText(t *testing.T) {
	resp := GenerateResponse{Candidates: []Candidate{
		{Content: Content{Parts: []Part{{Text: "first"}, {Text: "second"}}}},
		{Content: Content{Parts: []Part{{Text: "other"}}}},
	}}
	text, err := resp.FirstText()
	require.NoError(t, err)
	assert.Equal(t, "first", text)
}

func TestRestyLogger(t *testing.T) {
	var buf bytes.Buffer
	l := restyLogger{logger: zerolog.New(&buf)}

	l.Warnf("retrying %s\n", "request")
	assert.JSONEq(t, `{"level":"warn","message":"retrying request"}`, buf.String())

	buf.Reset()
	l.Errorf("boom %d", 1)
	assert.JSONEq(t, `{"level":"error","message":"boom 1"}`, buf.String())
}

func TestNew_RoutesRestyWarnings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	var buf bytes.Buffer
	c := New(Options{BaseURL: srv.URL}, zerolog.New(&buf))

	// basic auth over plain http makes resty warn
	_, err := c.http.R().SetBasicAuth("user", "pass").Get("/")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"component":"gemini"`)
}
