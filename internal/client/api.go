// Package client talks to the StudyBuddy platform API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultBaseURL = "http://127.0.0.1:8080"

// TokenSource supplies the bearer token for authenticated calls.
// An empty token means the request is sent anonymously.
type TokenSource interface {
	AccessToken() string
}

type API struct {
	baseURL string
	hc      *http.Client
	tokens  TokenSource
}

type Option func(*API)

func WithHTTPClient(hc *http.Client) Option {
	return func(a *API) { a.hc = hc }
}

func WithTokenSource(ts TokenSource) Option {
	return func(a *API) { a.tokens = ts }
}

func New(baseURL string, opts ...Option) *API {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	a := &API{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// UseTokens sets the token source after construction. The session provider
// needs an API to sign in and the API needs the provider for tokens.
func (a *API) UseTokens(ts TokenSource) {
	a.tokens = ts
}

func (a *API) BaseURL() string {
	return a.baseURL
}

func (a *API) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	return a.do(ctx, method, path, body, "application/json", out)
}

func (a *API) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return err
	}
	if body != nil && contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if a.tokens != nil {
		if token := a.tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := a.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	return decodeEnvelope(resp, out)
}
