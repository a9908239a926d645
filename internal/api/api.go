package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"signal-relay/internal/logger"
)

// Client represents an HTTP client with common configuration and utilities
type Client struct {
	httpClient *http.Client
	baseURL    string
	headers    map[string]string
	useLogging bool
}

func (c *Client) logDebug(ctx context.Context, msg string, args ...interface{}) {
	if c.useLogging {
		logger.Debug(ctx, msg, args...)
	}
}

func (c *Client) logError(ctx context.Context, msg string, args ...interface{}) {
	if c.useLogging {
		logger.Error(ctx, msg, args...)
	}
}

// ClientOption configures the API client
type ClientOption func(*Client)

// WithTimeout sets the HTTP client timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithBaseURL sets the base URL for all requests
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHeader sets a default header for all requests
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithLogging enables logging for the API client
func WithLogging(enabled bool) ClientOption {
	return func(c *Client) {
		c.useLogging = enabled
	}
}

// NewClient creates a new API client with the given options
func NewClient(opts ...ClientOption) *Client {
	client := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		headers:    make(map[string]string),
		useLogging: false,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Request represents an HTTP request configuration
type Request struct {
	Method  string
	URL     string
	Body    interface{}
	Headers map[string]string
	ctx     context.Context
}

// Response represents an HTTP response
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// OK reports whether the response status indicates success.
func (r *Response) OK() bool {
	return r.StatusCode < 400
}

// String returns the response body as a string
func (r *Response) String() string {
	return string(r.Body)
}

// ParseJSON parses the response body as JSON into the given struct
func (r *Response) ParseJSON(v interface{}) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w", err)
	}
	return nil
}

// NewRequest creates a new request
func NewRequest(method, url string) *Request {
	return &Request{
		Method:  method,
		URL:     url,
		Headers: make(map[string]string),
		ctx:     context.Background(),
	}
}

// WithContext sets the context for the request
func (r *Request) WithContext(ctx context.Context) *Request {
	r.ctx = ctx
	return r
}

// WithBody sets the request body (will be JSON encoded)
func (r *Request) WithBody(body interface{}) *Request {
	r.Body = body
	return r
}

// WithHeader sets a request-specific header
func (r *Request) WithHeader(key, value string) *Request {
	r.Headers[key] = value
	return r
}

// Do executes the HTTP request. A response is returned for any status code;
// callers judge success via Response.OK. An error means the request never
// produced a response (marshal, connect, timeout).
func (c *Client) Do(req *Request) (*Response, error) {
	url := req.URL
	if c.baseURL != "" {
		url = c.baseURL + req.URL
	}

	var bodyReader io.Reader
	if req.Body != nil {
		jsonBody, err := json.Marshal(req.Body)
		if err != nil {
			c.logError(req.ctx, "Failed to marshal request body", "error", err)
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	httpReq, err := http.NewRequestWithContext(req.ctx, req.Method, url, bodyReader)
	if err != nil {
		c.logError(req.ctx, "Failed to create HTTP request", "error", err)
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	for key, value := range c.headers {
		httpReq.Header.Set(key, value)
	}
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}
	if req.Body != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	c.logDebug(req.ctx, "HTTP Request", "method", req.Method, "url", url)

	startTime := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logError(req.ctx, "HTTP request failed", "method", req.Method, "url", url, "error", err)
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		c.logError(req.ctx, "Failed to read response body", "error", err)
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logDebug(req.ctx, "HTTP Response",
		"method", req.Method,
		"url", url,
		"status", httpResp.StatusCode,
		"duration", time.Since(startTime),
		"bodySize", len(body))

	return &Response{
		StatusCode: httpResp.StatusCode,
		Body:       body,
		Headers:    httpResp.Header,
	}, nil
}

// GET performs a GET request
func (c *Client) GET(ctx context.Context, url string, headers ...map[string]string) (*Response, error) {
	req := NewRequest(http.MethodGet, url).WithContext(ctx)

	if len(headers) > 0 {
		for key, value := range headers[0] {
			req.WithHeader(key, value)
		}
	}

	return c.Do(req)
}

// POST performs a POST request
func (c *Client) POST(ctx context.Context, url string, body interface{}, headers ...map[string]string) (*Response, error) {
	req := NewRequest(http.MethodPost, url).
		WithContext(ctx).
		WithBody(body)

	if len(headers) > 0 {
		for key, value := range headers[0] {
			req.WithHeader(key, value)
		}
	}

	return c.Do(req)
}
