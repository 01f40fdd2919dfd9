package openf1

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the public OpenF1 endpoint.
	DefaultBaseURL = "https://api.openf1.org/v1"
	// DefaultTimeout bounds every upstream request.
	DefaultTimeout = 30 * time.Second
)

// Client represents an OpenF1 API client
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new OpenF1 client. An empty baseURL selects
// DefaultBaseURL.
func NewClient(baseURL string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid openf1 base URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid openf1 base URL %q: scheme must be http or https", baseURL)
	}

	client := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// BaseURL returns the endpoint the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Fetch retrieves the records of resource matching filters
func (c *Client) Fetch(ctx context.Context, resource string, filters Filters) ([]Record, error) {
	requestURL := c.buildURL(resource, filters)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", resource, err)
	}

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Resource: resource, URL: requestURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Resource: resource, URL: requestURL, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{
			Resource:   resource,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var records []Record
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s response: %w", resource, err)
	}

	c.logger.Debug().
		Str("resource", resource).
		Str("url", requestURL).
		Int("count", len(records)).
		Dur("elapsed", time.Since(start)).
		Msg("Fetched OpenF1 records")

	return records, nil
}

func (c *Client) buildURL(resource string, filters Filters) string {
	endpoint := c.baseURL + "/" + strings.TrimLeft(resource, "/")
	if params := filters.Values(); len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	return endpoint
}
