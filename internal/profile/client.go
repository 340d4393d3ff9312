// File: internal/profile/client.go
package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// AuthorizationHeader carries the raw session token, without a Bearer prefix.
const AuthorizationHeader = "authorization"

// ErrMissingUser is returned when the backend answers without a user object.
var ErrMissingUser = errors.New("profile response has no user")

// StatusError is returned for non-2xx responses from the profile backend.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("profile backend returned status %d: %s", e.StatusCode, e.Body)
}

// Client persists profile edits on the profile backend.
type Client interface {
	Update(ctx context.Context, authorization string, req UpdateRequest) (*User, error)
}

// HTTPClient talks to the profile backend over REST.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewHTTPClient creates a client for baseURL. A zero timeout leaves requests unbounded.
func NewHTTPClient(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger.Named("ProfileClient"),
	}
}

// Update sends POST {baseURL}/user and returns the server's copy of the user.
func (c *HTTPClient) Update(ctx context.Context, authorization string, body UpdateRequest) (*User, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode update request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/user", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set(AuthorizationHeader, authorization)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post profile: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Profile update round trip",
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	return decodeEnvelope(resp)
}

// Fetch sends GET {baseURL}/user and returns the user the token belongs to.
func (c *HTTPClient) Fetch(ctx context.Context, authorization string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/user", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set(AuthorizationHeader, authorization)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	defer resp.Body.Close()

	return decodeEnvelope(resp)
}

func decodeEnvelope(resp *http.Response) (*User, error) {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode profile response: %w", err)
	}
	if env.User == nil {
		return nil, ErrMissingUser
	}
	return env.User, nil
}
