// Package apiclient is the single outgoing-request pipeline used by the
// dashboard services and the upstream forwarder. It attaches the bearer
// token, speaks JSON, and clears stored credentials when the far side
// answers 401.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultTimeout = 30 * time.Second
	maxBodyBytes   = 8 << 20
)

// TokenSource is the credential store consulted before each request.
type TokenSource interface {
	Get(ctx context.Context) (string, bool)
	Clear(ctx context.Context) error
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	onClear    func(ctx context.Context, err error)
}

type Option func(*Client)

// WithHTTPClient replaces the underlying transport client. Its Timeout is
// overwritten by Config.Timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithClearHook is invoked after a 401 triggered a credential clear, with
// the error returned by the clear itself.
func WithClearHook(fn func(ctx context.Context, err error)) Option {
	return func(c *Client) { c.onClear = fn }
}

func New(cfg Config, tokens TokenSource, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{},
		tokens:     tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.httpClient.Timeout = timeout
	return c
}

type bearerKey struct{}

// WithBearer overrides the token source for calls made with ctx. It is used
// when forwarding an inbound Authorization header.
func WithBearer(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerKey{}, token)
}

type forwardedForKey struct{}

// WithForwardedFor sets X-Forwarded-For on calls made with ctx, so a hop
// through this client keeps the original caller's address.
func WithForwardedFor(ctx context.Context, addr string) context.Context {
	return context.WithValue(ctx, forwardedForKey{}, addr)
}

func (c *Client) token(ctx context.Context) string {
	if token, ok := ctx.Value(bearerKey{}).(string); ok {
		return token
	}
	if c.tokens == nil {
		return ""
	}
	token, _ := c.tokens.Get(ctx)
	return token
}

// Do sends one request and returns the raw response body on 2xx. Any other
// status becomes a *StatusError; a 401 additionally clears the token source
// before the error is returned.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token := c.token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if addr, ok := ctx.Value(forwardedForKey{}).(string); ok && addr != "" {
		req.Header.Set("X-Forwarded-For", addr)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}

	statusErr := newStatusError(resp.StatusCode, data)
	if resp.StatusCode == http.StatusUnauthorized {
		c.clear(ctx)
	}
	return nil, statusErr
}

func (c *Client) clear(ctx context.Context) {
	if c.tokens == nil {
		return
	}
	err := c.tokens.Clear(ctx)
	if c.onClear != nil {
		c.onClear(ctx, err)
	}
}

// GetJSON decodes a successful response into out.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	data, err := c.Do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return decode(data, out)
}

func (c *Client) PostJSON(ctx context.Context, path string, body, out interface{}) error {
	data, err := c.Do(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return err
	}
	return decode(data, out)
}

func decode(data []byte, out interface{}) error {
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
