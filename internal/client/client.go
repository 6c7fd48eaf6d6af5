// Package client is the HTTP implementation of the identity and records
// APIs consumed by the session store and the tracker.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"mindtrack/internal/api"
	"mindtrack/internal/domain/errs"
)

// Client talks to the mindtrack service and keeps the bearer cookie between calls
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger

	mu    sync.RWMutex
	token string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken seeds the bearer cookie, e.g. from a saved session file
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithLogger sets the client logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a new API client for baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("client")
	return c
}

// Token returns the current bearer cookie value
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken replaces the bearer cookie value
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.AddCookie(&http.Cookie{Name: api.CookieName, Value: token})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.Wrap(errs.ErrNetworkFailure, "Could not reach the server. Please try again.", err)
	}
	defer resp.Body.Close()

	c.captureCookie(resp)
	c.logger.Debug("api call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode %s response: %w", path, err)
		}
		return nil
	}

	return decodeError(resp)
}

// captureCookie stores a refreshed cookie or forgets a cleared one
func (c *Client) captureCookie(resp *http.Response) {
	for _, cookie := range resp.Cookies() {
		if cookie.Name != api.CookieName {
			continue
		}
		if cookie.MaxAge < 0 || cookie.Value == "" {
			c.SetToken("")
		} else {
			c.SetToken(cookie.Value)
		}
	}
}

func decodeError(resp *http.Response) error {
	var body api.ErrorResponse
	_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body)

	kind := errs.FromCode(body.Code)
	switch {
	case kind != nil:
	case resp.StatusCode == http.StatusUnauthorized:
		kind = errs.ErrUnauthenticated
	case resp.StatusCode == http.StatusForbidden:
		kind = errs.ErrForbidden
	case resp.StatusCode == http.StatusNotFound:
		kind = errs.ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		kind = errs.ErrNetworkFailure
	default:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body.Error)
	}

	return errs.New(kind, body.Error)
}

// isUnauthenticated reports a 401 regardless of the wire code
func isUnauthenticated(err error) bool {
	return errors.Is(err, errs.ErrUnauthenticated)
}
