// Package api implements the HTTP client for the grading service's REST API.
//
// It attaches the JSON content type and the bearer token from the session
// cache, normalizes non-2xx responses into *APIError carrying the
// server-provided message, and clears cached credentials on a 401 so the
// session drops back to anonymous. Single attempt, no retry, no backoff;
// the caller decides what to do with a failure.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/slabvault/slabvault/internal/common"
	"github.com/slabvault/slabvault/internal/logging"
)

// APIError is a non-2xx response, with the message the server put in the
// body's "error" field, falling back to "HTTP <status>".
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Is lets errors.Is(err, common.ErrUnauthorized) match a 401 response.
func (e *APIError) Is(target error) bool {
	return target == common.ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// CredentialStore is what the transport needs from the session cache:
// the current bearer token, and the ability to drop stale credentials.
type CredentialStore interface {
	Token(ctx context.Context) string
	RemoveToken(ctx context.Context)
	RemoveUser(ctx context.Context)
}

// Client is the concrete REST client.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	creds CredentialStore
	log   logging.Logger
}

// NewClient builds a Client for the given API origin. Timeout bounds every
// request end to end.
func NewClient(baseURL string, timeout time.Duration, creds CredentialStore, log logging.Logger) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
		creds:      creds,
		log:        log.With("component", "api"),
	}
}

// errBody is the error envelope the server uses for failures.
type errBody struct {
	Error string `json:"error"`
}

// Call performs one request against endpoint (e.g. "/api/submissions").
// body, when non-nil, is JSON-encoded; out, when non-nil, receives the
// decoded 2xx response body.
func (c *Client) Call(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.creds.Token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		// Honor caller cancellation over the generic unavailable error.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn(ctx, "request failed", "method", method, "endpoint", endpoint, "err", err)
		return fmt.Errorf("%s %s: %v: %w", method, endpoint, err, common.ErrUnavailable)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// An invalid token forces re-authentication.
		if resp.StatusCode == http.StatusUnauthorized {
			c.creds.RemoveToken(ctx)
			c.creds.RemoveUser(ctx)
		}

		var eb errBody
		_ = json.Unmarshal(raw, &eb)
		msg := eb.Error
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response body: %w", err)
		}
	}
	return nil
}
