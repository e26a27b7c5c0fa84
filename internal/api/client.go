// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/ragdeck-tui/internal/telemetry"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the backend client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeUnreachable
	ErrTypeTimeout
	ErrTypeRateLimited
	ErrTypeServer
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrUnreachable = &ClientError{Type: ErrTypeUnreachable, Message: "backend is not reachable"}
	ErrTimeout     = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
)

// IsUnreachable reports whether err means the backend could not be reached.
func IsUnreachable(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Type == ErrTypeUnreachable
}

// IsTimeout reports whether err means the request timed out.
func IsTimeout(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Type == ErrTypeTimeout
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the backend base URL (default: http://127.0.0.1:8000)
	// Note: Uses explicit IPv4 address instead of localhost to avoid IPv6 resolution issues on Windows
	BaseURL string

	// Timeout for ask and introspection requests (default: 30s)
	Timeout time.Duration

	// UploadTimeout for document ingestion requests. Ingestion parses and
	// embeds every file, so this is much longer (default: 120s).
	UploadTimeout time.Duration

	// AskPerMinute caps locally issued questions (default: 30, the
	// backend's budget).
	AskPerMinute int

	// UploadPerMinute caps locally issued ingestion runs (default: 10).
	UploadPerMinute int

	// Logger receives request telemetry. Defaults to a discard logger.
	Logger *telemetry.Logger
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:         "http://127.0.0.1:8000",
		Timeout:         30 * time.Second,
		UploadTimeout:   120 * time.Second,
		AskPerMinute:    30,
		UploadPerMinute: 10,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the ragdeck backend.
//
// The Client is thread-safe for concurrent use. Each method blocks on
// its rate limiter before issuing the request, so callers hitting the
// budget wait instead of failing.
type Client struct {
	config        *ClientConfig
	httpClient    *http.Client
	uploadClient  *http.Client
	askLimiter    *rate.Limiter
	uploadLimiter *rate.Limiter
	log           *telemetry.Logger
}

// NewClient creates a backend client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a backend client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8000"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.UploadTimeout == 0 {
		config.UploadTimeout = 120 * time.Second
	}
	if config.AskPerMinute == 0 {
		config.AskPerMinute = 30
	}
	if config.UploadPerMinute == 0 {
		config.UploadPerMinute = 10
	}
	if config.Logger == nil {
		config.Logger = telemetry.Discard()
	}

	return &Client{
		config:        config,
		httpClient:    &http.Client{Timeout: config.Timeout},
		uploadClient:  &http.Client{Timeout: config.UploadTimeout},
		askLimiter:    perMinute(config.AskPerMinute),
		uploadLimiter: perMinute(config.UploadPerMinute),
		log:           config.Logger,
	}
}

// perMinute builds a limiter allowing n events per minute with a burst
// of n, mirroring a fixed-window budget closely enough for a client.
func perMinute(n int) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(float64(n)/60.0), n)
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// ASK
// =============================================================================

// Ask submits a question and returns the backend's answer.
func (c *Client) Ask(ctx context.Context, question string) (*AskResponse, error) {
	if err := c.askLimiter.Wait(ctx); err != nil {
		return nil, &ClientError{Type: ErrTypeRateLimited, Message: "ask rate limit wait aborted", Cause: err}
	}

	u := c.config.BaseURL + "/ask?question=" + url.QueryEscape(question)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeUnknown, Message: "failed to create request", Cause: err}
	}

	c.log.Request(http.MethodGet, u)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportError(http.MethodGet, u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(http.MethodGet, u, resp, "The question could not be answered")
	}

	var result AskResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return &result, nil
}

// =============================================================================
// INTROSPECTION
// =============================================================================

// Health checks backend liveness.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var result HealthResponse
	if err := c.getJSON(ctx, "/health", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Status reports the state of the backend's document index.
func (c *Client) Status(ctx context.Context) (*StatusResponse, error) {
	var result StatusResponse
	if err := c.getJSON(ctx, "/admin/status", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	u := c.config.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &ClientError{Type: ErrTypeUnknown, Message: "failed to create request", Cause: err}
	}

	c.log.Request(http.MethodGet, u)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.transportError(http.MethodGet, u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.statusError(http.MethodGet, u, resp, "The server returned an error")
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return nil
}

// =============================================================================
// ERROR MAPPING
// =============================================================================

// transportError maps a transport-level failure to a ClientError.
func (c *Client) transportError(method, reqURL string, err error) error {
	c.log.RequestError(method, reqURL, 0, err.Error())
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var ue *url.Error
	if errors.As(err, &ue) && ue.Timeout() {
		return ErrTimeout
	}
	return &ClientError{Type: ErrTypeUnreachable, Message: ErrUnreachable.Message, Cause: err}
}

// statusError maps a non-200 response to a ClientError. The message is
// taken from the error body's "detail" field, then "message", then the
// given fallback.
func (c *Client) statusError(method, reqURL string, resp *http.Response, fallback string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	c.log.RequestError(method, reqURL, resp.StatusCode, string(body))

	msg := fallback
	var payload apiError
	if err := json.Unmarshal(body, &payload); err == nil {
		if t := payload.text(); t != "" {
			msg = t
		}
	}

	errType := ErrTypeServer
	if resp.StatusCode == http.StatusTooManyRequests {
		errType = ErrTypeRateLimited
	}
	return &ClientError{Type: errType, Message: msg}
}
