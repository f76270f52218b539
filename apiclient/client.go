// Package apiclient is the HTTP client for the Captal REST API.
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

	apperrors "github.com/jrsteele09/captal-web/internal/errors"
)

const maxResponseBytes = 4 << 20

// Envelope is the wrapper the API puts around project reads and writes
type Envelope[T any] struct {
	StatusCode int    `json:"statusCode"`
	Timestamp  string `json:"timestamp"`
	Path       string `json:"path"`
	Data       T      `json:"data"`
}

// Client sends JSON requests to the API. It is safe for concurrent use; the
// credentials used for each request come from the request context's session.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	transport *Transport
}

type Option func(*clientOptions)

type clientOptions struct {
	timeout   time.Duration
	base      http.RoundTripper
	refresher Refresher
}

func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) { o.timeout = d }
}

// WithBaseTransport replaces the round tripper beneath the auth transport
func WithBaseTransport(rt http.RoundTripper) Option {
	return func(o *clientOptions) { o.base = rt }
}

func WithRefresher(r Refresher) Option {
	return func(o *clientOptions) { o.refresher = r }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "[apiclient New] base url %q: %v", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("[apiclient New] %w: base url %q must be absolute", apperrors.ErrInvalidInput, baseURL)
	}

	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}

	transport := NewTransport(o.base, o.refresher)
	return &Client{
		baseURL:   u,
		transport: transport,
		http: &http.Client{
			Transport: transport,
			Timeout:   o.timeout,
		},
	}, nil
}

// SetRefresher wires the token refresher into the client's transport
func (c *Client) SetRefresher(r Refresher) {
	c.transport.SetRefresher(r)
}

// URL resolves an API route against the base URL
func (c *Client) URL(route string, query url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + route
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) Get(ctx context.Context, route string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, route, query, nil, out)
}

func (c *Client) Post(ctx context.Context, route string, body, out any) error {
	return c.Do(ctx, http.MethodPost, route, nil, body, out)
}

func (c *Client) Put(ctx context.Context, route string, body, out any) error {
	return c.Do(ctx, http.MethodPut, route, nil, body, out)
}

func (c *Client) Patch(ctx context.Context, route string, body, out any) error {
	return c.Do(ctx, http.MethodPatch, route, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, route string) error {
	return c.Do(ctx, http.MethodDelete, route, nil, nil, nil)
}

// Do sends one JSON request. A non-2xx response becomes an *APIError; a 2xx
// response body is decoded into out when out is not nil.
func (c *Client) Do(ctx context.Context, method, route string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("[apiclient Do] encode %s %s: %w", method, route, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(route, query), reader)
	if err != nil {
		return fmt.Errorf("[apiclient Do] %s %s: %w", method, route, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("[apiclient Do] read %s %s: %w", method, route, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("[apiclient Do] decode %s %s: %w", method, route, err)
	}
	return nil
}
