// Package api is a typed client for the HomeNet backend REST API.
// Every method maps to one endpoint; there is no retry and no caching.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the backend address used when none is configured
const DefaultBaseURL = "http://localhost:8000"

// TokenStore persists the bearer token between calls
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

// Client represents a HomeNet API client
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenStore
	onUnauthorized func()
}

// ClientOption is a function that configures a Client
type ClientOption func(*Client)

// NewClient creates a new API client. Without WithTokenStore the token is
// kept in memory for the lifetime of the client.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: http.DefaultTransport,
		},
		tokens: &memoryTokens{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if debugLoggingRequested() {
		WithDebugLogging(true)(c)
	}

	return c
}

// WithTimeout sets a custom timeout for the HTTP client
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTokenStore persists the bearer token in the given store
func WithTokenStore(store TokenStore) ClientOption {
	return func(c *Client) {
		c.tokens = store
	}
}

// WithOnUnauthorized registers a hook invoked after any 401 response,
// once the stored token has been cleared.
func WithOnUnauthorized(fn func()) ClientOption {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

// WithDebugLogging wraps the transport so each request and response is
// dumped at debug level.
func WithDebugLogging(enabled bool) ClientOption {
	return func(c *Client) {
		if !enabled {
			return
		}
		if _, ok := c.httpClient.Transport.(*debugTransport); ok {
			return
		}
		base := c.httpClient.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		c.httpClient.Transport = &debugTransport{base: base}
	}
}

// BaseURL returns the backend address the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// request describes a single API call
type request struct {
	method string
	path   string
	// route is the path template used as the metrics label
	route  string
	body   interface{}
	public bool
}

// do performs an HTTP request, decodes a JSON response into out when it is
// non-nil and maps error statuses to *APIError.
func (c *Client) do(ctx context.Context, r request, out interface{}) error {
	var reqBody io.Reader
	if r.body != nil {
		jsonData, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if !r.public {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	route := r.route
	if route == "" {
		route = r.path
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		requestsTotal.WithLabelValues(r.method, route, "error").Inc()
		return fmt.Errorf("%s %s: request failed: %w", r.method, r.path, err)
	}
	defer resp.Body.Close()

	requestDuration.WithLabelValues(r.method, route).Observe(time.Since(start).Seconds())
	requestsTotal.WithLabelValues(r.method, route, strconv.Itoa(resp.StatusCode)).Inc()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := newAPIError(r.method, r.path, resp.StatusCode, data)
		if resp.StatusCode == http.StatusUnauthorized {
			c.handleUnauthorized(ctx)
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) handleUnauthorized(ctx context.Context) {
	unauthorizedTotal.Inc()
	if err := c.tokens.ClearToken(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to clear token after 401")
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

// memoryTokens is the default in-process TokenStore
type memoryTokens struct {
	mu    sync.RWMutex
	token string
}

func (m *memoryTokens) Token(context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, nil
}

func (m *memoryTokens) SetToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *memoryTokens) ClearToken(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
