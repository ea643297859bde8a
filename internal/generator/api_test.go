// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paperplan/internal/httputil"
)

func init() {
	// Use a tiny base delay so rate-limit retry tests finish quickly.
	httputil.RetryBaseDelay = 1 * time.Millisecond
}

// messagesResponse builds a Messages API response body with one text block.
func messagesResponse(text string) []byte {
	body, _ := json.Marshal(map[string]any{
		"content": []map[string]any{{"type": "text", "text": text}},
	})
	return body
}

func TestAPIGenerate(t *testing.T) {
	var gotBody apiRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write(messagesResponse(`{"unknowns": []}`))
	}))
	defer ts.Close()

	origURL := apiURL
	apiURL = ts.URL
	defer func() { apiURL = origURL }()

	api := &API{APIKey: "test-key", Model: "test-model", Client: ts.Client()}
	out, err := api.Generate(context.Background(), "the prompt")
	require.NoError(t, err)

	assert.Equal(t, `{"unknowns": []}`, out)
	assert.Equal(t, "test-model", gotBody.Model)
	require.Len(t, gotBody.Messages, 1)
	assert.Equal(t, "the prompt", gotBody.Messages[0].Content)
}

func TestAPIGenerateRetriesRateLimit(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write(messagesResponse("ok"))
	}))
	defer ts.Close()

	origURL := apiURL
	apiURL = ts.URL
	defer func() { apiURL = origURL }()

	api := &API{APIKey: "k", Model: "m", MaxRetries: 5, Client: ts.Client()}
	out, err := api.Generate(context.Background(), "p")
	require.NoError(t, err)

	assert.Equal(t, "ok", out)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestAPIGenerateErrorCarriesBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "invalid model"}`))
	}))
	defer ts.Close()

	origURL := apiURL
	apiURL = ts.URL
	defer func() { apiURL = origURL }()

	api := &API{APIKey: "k", Model: "bad", Client: ts.Client()}
	_, err := api.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "invalid model")
}

func TestAPIGenerateNoTextContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"content": [{"type": "tool_use"}]}`))
	}))
	defer ts.Close()

	origURL := apiURL
	apiURL = ts.URL
	defer func() { apiURL = origURL }()

	api := &API{APIKey: "k", Model: "m", Client: ts.Client()}
	_, err := api.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no text content")
}
