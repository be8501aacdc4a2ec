package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"wikigen/internal/textgen"
)

// httpGenerator is a textgen.Generator that speaks a small JSON protocol
// over HTTP: POST {"prompt","system"} to endpoint, read back {"text"}. It
// lets wikigen build run against any backend willing to implement that one
// endpoint, without the core or this CLI depending on a specific provider's
// SDK.
type httpGenerator struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func newHTTPGenerator(endpoint, apiKey string, timeout time.Duration) *httpGenerator {
	return &httpGenerator{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

type httpGenRequest struct {
	Prompt string `json:"prompt"`
	System string `json:"system,omitempty"`
}

type httpGenResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

func (g *httpGenerator) Generate(ctx context.Context, prompt, systemPrompt string) (string, error) {
	body, err := json.Marshal(httpGenRequest{Prompt: prompt, System: systemPrompt})
	if err != nil {
		return "", &textgen.TransportError{Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &textgen.TransportError{Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", &textgen.TransportError{Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return "", &textgen.TransportError{Cause: err}
	}

	if resp.StatusCode >= 400 {
		return "", &textgen.TransportError{Cause: fmt.Errorf("generator endpoint returned %d: %s", resp.StatusCode, data)}
	}

	var out httpGenResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", &textgen.TransportError{Cause: fmt.Errorf("decoding generator response: %w", err)}
	}
	if out.Error != "" {
		return "", &textgen.TransportError{Cause: fmt.Errorf("generator error: %s", out.Error)}
	}
	return out.Text, nil
}
