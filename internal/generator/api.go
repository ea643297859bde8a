// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/paperplan/internal/httputil"
)

// apiURL is the Anthropic Messages API endpoint. Package-level var for
// test substitution.
var apiURL = "https://api.anthropic.com/v1/messages"

// API calls the Anthropic Messages API directly instead of shelling out
// to the Claude Code CLI. The HTTP API cannot read local files, so
// prompts built for this backend must carry the paper text inline.
// Rate-limited calls are retried with backoff; all other failures are
// fatal with the API's diagnostic body attached.
type API struct {
	// APIKey authenticates against the Anthropic API.
	APIKey string

	// Model is the model identifier to invoke.
	Model string

	// MaxRetries bounds retries on HTTP 429 (default per httputil).
	MaxRetries int

	// Client is the HTTP client; nil means http.DefaultClient.
	Client *http.Client
}

// apiRequest is the request body for the Messages API.
type apiRequest struct {
	Model     string       `json:"model"`
	MaxTokens int          `json:"max_tokens"`
	Messages  []apiMessage `json:"messages"`
}

// apiMessage is a single message in the API conversation.
type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// apiResponse is the response body from the Messages API.
type apiResponse struct {
	Content []apiContent `json:"content"`
}

// apiContent is a content block in the API response.
type apiContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Generate sends the prompt as a single user message and returns the
// concatenated text blocks of the response.
func (a *API) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := apiRequest{
		Model:     a.Model,
		MaxTokens: 4096,
		Messages: []apiMessage{
			{Role: "user", Content: prompt},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	client := a.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, a.MaxRetries)
	if err != nil {
		return "", fmt.Errorf("calling Anthropic API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Anthropic API returned %d: %s", resp.StatusCode, string(body))
	}

	var aResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&aResp); err != nil {
		return "", fmt.Errorf("decoding API response: %w", err)
	}

	var b strings.Builder
	for _, block := range aResp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("no text content in Anthropic API response")
	}

	return strings.TrimSpace(b.String()), nil
}
