// Package apiclient is a typed client for the archive backend REST API.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"archiveweb/internal/model"
)

// API is the set of backend operations the frontend uses.
type API interface {
	ListDocuments(ctx context.Context, p ListParams) (*model.DocumentPage, error)
	GetDocument(ctx context.Context, id int64) (*model.Document, error)
	IncrementViews(ctx context.Context, id int64) error
	IncrementDownloads(ctx context.Context, id int64) error
	CreateDocument(ctx context.Context, token string, p UploadPayload) (*model.Document, error)
	UpdateDocument(ctx context.Context, token string, id int64, p UploadPayload) (*model.Document, error)
	DeleteDocument(ctx context.Context, token string, id int64) error
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, r RegisterRequest) (*model.User, error)
	CurrentUser(ctx context.Context, token string) (*model.User, error)
}

// Client talks to the backend over HTTP. It is safe for concurrent use.
type Client struct {
	base    *url.URL
	http    *http.Client
	metrics *Metrics
}

var _ API = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets a per-request timeout; zero keeps the platform default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithMetrics records every backend call on m.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// New creates a client for the backend at baseURL. Requests are traced through otelhttp.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api base url %q must be absolute", baseURL)
	}

	c := &Client{
		base: u,
		http: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the backend root the client was built with.
func (c *Client) BaseURL() string {
	return c.base.String()
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.base
	u.Path = c.base.Path + path
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) do(op string, req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.observe(op, 0, time.Since(start))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	c.metrics.observe(op, resp.StatusCode, time.Since(start))
	return resp, nil
}

// call sends req and decodes a 2xx JSON body into out (when out is non-nil).
func (c *Client) call(op string, req *http.Request, fallback string, out any) error {
	resp, err := c.do(op, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(op, resp, fallback)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func bearer(req *http.Request, token string) {
	req.Header.Set("Authorization", "Bearer "+token)
}

// Ping checks that the backend answers the listing endpoint.
func (c *Client) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/documents", url.Values{"page": {"1"}, "per_page": {"1"}}, nil)
	if err != nil {
		return err
	}
	return c.call("ping", req, "backend unavailable", nil)
}
