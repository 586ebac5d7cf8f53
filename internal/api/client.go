// Package api implements the streaming client for the gemchat backend.
package api

import (
	"fmt"
	"os"

	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

// Client talks to the chat backend. The endpoint is injected once at
// construction and never re-derived per request.
type Client struct {
	httpClient tls_client.HttpClient
	endpoint   string
	verbose    bool
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithVerbose enables diagnostic logging to stderr, including notices
// about skipped stream frames.
func WithVerbose(enabled bool) ClientOption {
	return func(c *Client) {
		c.verbose = enabled
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient tls_client.HttpClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new Client for the given backend endpoint.
func NewClient(endpoint string, opts ...ClientOption) (*Client, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("endpoint cannot be empty")
	}

	options := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(300),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithNotFollowRedirects(),
	}

	httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	client := &Client{
		httpClient: httpClient,
		endpoint:   endpoint,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Endpoint returns the backend URL this client talks to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// logf writes a diagnostic line to stderr when verbose mode is on.
func (c *Client) logf(format string, args ...any) {
	if !c.verbose {
		return
	}
	fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
}
