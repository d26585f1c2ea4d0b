package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-analyzer/internal/config"
)

type capturedRequest struct {
	path string
	body string
}

func newGeminiServer(t *testing.T, status int, response string) (*httptest.Server, *[]capturedRequest) {
	t.Helper()

	var requests []capturedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requests = append(requests, capturedRequest{path: r.URL.Path, body: string(body)})

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func candidateResponse(text string) string {
	return `{"candidates":[{"content":{"role":"model","parts":[{"text":` + jsonString(text) + `}]},"finishReason":"STOP"}]}`
}

func jsonString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}

func TestGeminiServiceNotConfigured(t *testing.T) {
	svc, err := NewGeminiService(config.GeminiConfig{})
	require.NoError(t, err)

	assert.False(t, svc.Configured())
	_, err = svc.GenerateText(context.Background(), "hello", false)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestGeminiServiceGenerateText(t *testing.T) {
	srv, requests := newGeminiServer(t, http.StatusOK, candidateResponse(`{"summary":"ok"}`))

	svc, err := NewGeminiService(config.GeminiConfig{
		APIKey:  "test-key",
		Model:   "gemini-2.0-flash",
		BaseURL: srv.URL,
	})
	require.NoError(t, err)
	require.True(t, svc.Configured())

	text, err := svc.GenerateText(context.Background(), "Analyze this resume", true)
	require.NoError(t, err)
	assert.Equal(t, `{"summary":"ok"}`, text)

	require.Len(t, *requests, 1)
	req := (*requests)[0]
	assert.True(t, strings.HasSuffix(req.path, "gemini-2.0-flash:generateContent"), req.path)
	assert.Contains(t, req.body, "Analyze this resume")
	assert.Contains(t, req.body, "application/json")
}

func TestGeminiServicePlainTextMode(t *testing.T) {
	srv, requests := newGeminiServer(t, http.StatusOK, candidateResponse("Focus on impact."))

	svc, err := NewGeminiService(config.GeminiConfig{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	text, err := svc.GenerateText(context.Background(), "How do I grow?", false)
	require.NoError(t, err)
	assert.Equal(t, "Focus on impact.", text)

	require.Len(t, *requests, 1)
	assert.NotContains(t, (*requests)[0].body, "application/json")
}

func TestGeminiServiceUpstreamFailures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		response string
		isEmpty  bool
	}{
		{
			name:     "server error",
			status:   http.StatusInternalServerError,
			response: `{"error":{"code":500,"message":"boom","status":"INTERNAL"}}`,
		},
		{
			name:     "no candidates",
			status:   http.StatusOK,
			response: `{"candidates":[]}`,
			isEmpty:  true,
		},
		{
			name:     "blank text",
			status:   http.StatusOK,
			response: candidateResponse("   "),
			isEmpty:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newGeminiServer(t, tt.status, tt.response)

			svc, err := NewGeminiService(config.GeminiConfig{APIKey: "test-key", BaseURL: srv.URL})
			require.NoError(t, err)

			_, err = svc.GenerateText(context.Background(), "prompt", true)
			require.Error(t, err)

			var upstream *UpstreamError
			assert.ErrorAs(t, err, &upstream)
			if tt.isEmpty {
				assert.ErrorIs(t, err, ErrEmptyResponse)
			}
		})
	}
}
