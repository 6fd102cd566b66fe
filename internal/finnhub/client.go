package finnhub

import (
	"net/http"
	"net/url"
)

const baseURL = "https://finnhub.io/api/v1"

// HTTPClient sends Finnhub requests. *http.Client satisfies it.
//
//go:generate mockgen -package=finnhub_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a client for the Finnhub quote and company profile endpoints.
type Client struct {
	baseURL    string
	httpClient HTTPClient
	// header and query are added to every quote and profile request.
	// query carries the API token.
	header http.Header
	query  url.Values
}

// ClientOption customizes a Client built by NewClient.
type ClientOption func(*Client)

// WithBaseURL points the client at another Finnhub-compatible endpoint,
// such as a test server.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader adds header values to every request.
func WithHeader(header http.Header) ClientOption {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// NewClient returns a Client that sends key as the Finnhub token. An empty
// key sends no token.
func NewClient(key string, options ...ClientOption) (*Client, error) {
	var client = &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
		query:      url.Values{},
	}
	if key != "" {
		// Finnhub accepts the API key as the token query parameter.
		// https://finnhub.io/docs/api/authentication
		client.query.Set("token", key)
	}
	for _, option := range options {
		option(client)
	}
	return client, nil
}
