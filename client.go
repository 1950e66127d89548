package dirigera

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	// DefaultPort is the port the hub serves its REST API on.
	DefaultPort = 8443

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// apiVersion is the path prefix for every API endpoint.
	apiVersion = "v1"

	// userAgent identifies this library to the hub.
	userAgent = "dirigera-go/0.1.0"
)

// Client is an authenticated client for a Dirigera hub. The hub address,
// port and token are fixed for the lifetime of the client; every request
// carries the same bearer token and trust policy. A Client is safe for
// concurrent use.
type Client struct {
	ip         string
	port       int
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the URL derived from the hub address. Mainly useful
// for tests that point the client at a local stub server.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithPort sets a non-default API port.
func WithPort(port int) Option {
	return func(c *Client) {
		c.port = port
	}
}

// WithHTTPClient sets a custom HTTP client. The caller is responsible for
// its TLS configuration; see NewTransport.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP request timeout.
// This option can be applied in any order relative to other options.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if c.httpClient == nil {
			c.httpClient = newHTTPClient(TrustAnyCertificate)
		}
		c.httpClient.Timeout = timeout
	}
}

// WithTrustPolicy replaces the default TrustAnyCertificate transport with one
// governed by the given policy.
func WithTrustPolicy(policy TrustPolicy) Option {
	return func(c *Client) {
		if c.httpClient == nil {
			c.httpClient = newHTTPClient(policy)
			return
		}
		c.httpClient.Transport = NewTransport(policy)
	}
}

// NewClient creates a client for the hub at the given IP address using a
// previously obtained access token. By default it connects to port 8443 with
// the TrustAnyCertificate policy: the hub presents a self-signed certificate
// and is identified by its local address, but traffic is still encrypted.
func NewClient(ip, token string, opts ...Option) (*Client, error) {
	if ip == "" {
		return nil, ErrEmptyIPAddress
	}
	if token == "" {
		return nil, ErrEmptyToken
	}

	c := &Client{
		ip:    ip,
		port:  DefaultPort,
		token: token,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = newHTTPClient(TrustAnyCertificate)
	}
	if c.baseURL == "" {
		c.baseURL = fmt.Sprintf("https://%s:%d/%s", c.ip, c.port, apiVersion)
	}

	return c, nil
}

// Do performs an authenticated request against the hub API and returns the
// raw response body. Path is relative to the /v1 prefix, e.g. "/devices".
// The client never retries on the caller's behalf; transient failures
// surface immediately.
func (c *Client) Do(ctx context.Context, method, path string, body any) ([]byte, error) {
	return c.do(ctx, method, path, body)
}

// do performs an HTTP request and returns the response body.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logResponse(ctx, method, path, 0, time.Since(start), err)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logResponse(ctx, method, path, resp.StatusCode, time.Since(start), nil)

	if resp.StatusCode >= 400 {
		return nil, c.handleError(resp.StatusCode, respBody)
	}

	return respBody, nil
}

// handleError converts HTTP error responses to appropriate errors.
func (c *Client) handleError(statusCode int, body []byte) error {
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w (status %d): %s", ErrUnauthorized, statusCode, truncatePreview(body))
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, truncatePreview(body))
	default:
		// Try to extract an error message from the response
		var errResp struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		msg := ""
		if err := json.Unmarshal(body, &errResp); err == nil {
			msg = errResp.Message
			if msg == "" {
				msg = errResp.Error
			}
		}
		return &APIError{
			StatusCode: statusCode,
			Message:    msg,
			Body:       body,
		}
	}
}

// Token returns the bearer token the client was constructed with.
func (c *Client) Token() string {
	return c.token
}

// BaseURL returns the URL the client issues requests against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// get performs a GET request.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// post performs a POST request.
func (c *Client) post(ctx context.Context, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

// patch performs a PATCH request.
func (c *Client) patch(ctx context.Context, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPatch, path, body)
}
