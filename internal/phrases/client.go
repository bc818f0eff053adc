package phrases

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Fetcher loads a phrase document by resource path.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	FetchCollection(ctx context.Context, resource string) (*Collection, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client fetches static phrase documents over HTTP.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultBaseURL   = "http://127.0.0.1:8080"
	defaultUserAgent = "phrasebook/0.1"
	defaultTimeout   = 10 * time.Second
)

// StatusError reports a non-success HTTP response.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	text := strings.TrimSpace(e.Status)
	if text == "" {
		text = http.StatusText(e.Code)
	}
	// net/http status lines already carry the code ("404 Not Found").
	if !strings.HasPrefix(text, fmt.Sprint(e.Code)) {
		text = fmt.Sprintf("%d %s", e.Code, text)
	}
	return "failed to fetch phrases: " + text
}

// NewClient builds a Client for the given base URL. A zero timeout uses the default.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// FetchCollection retrieves and decodes the document at resource, e.g.
// "/phrases-praise-0.json".
func (c *Client) FetchCollection(ctx context.Context, resource string) (*Collection, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	resource = strings.TrimSpace(resource)
	if resource == "" {
		return nil, fmt.Errorf("resource is empty")
	}
	// Relative to the base so a base URL with a path prefix keeps it.
	rel, err := url.Parse(strings.TrimPrefix(resource, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse resource %q: %w", resource, err)
	}
	var payload Collection
	if err := c.doURL(ctx, rel, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) doURL(ctx context.Context, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	u.RawQuery = ""
	u.Fragment = ""
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}
