package fetch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/projectdiscovery/httpx/common/httpx"
)

const (
	defaultTimeout      = 20 * time.Second
	defaultMaxRedirects = 10
	defaultMaxBodySize  = 2 * 1024 * 1024

	// bodies shorter than this are parked pages, captive portals, or errors
	minBodyBytes = 100

	// defaultUserAgent is used when a request somehow carries no explicit
	// User-Agent header
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
)

// Result is a successful page fetch. FinalURL reflects the end of any
// redirect chain.
type Result struct {
	Body       string
	FinalURL   string
	StatusCode int
}

// Options holds the configurable fields for a Client
type Options struct {
	timeout      time.Duration
	maxRedirects int
	maxBodySize  int64
}

// Option is a functional option for configuring a Client
type Option func(*Options)

// WithTimeout sets the per-request timeout
func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.timeout = timeout
	}
}

// WithMaxRedirects sets the redirect-following limit
func WithMaxRedirects(max int) Option {
	return func(o *Options) {
		o.maxRedirects = max
	}
}

// WithMaxBodySize caps how many response bytes are read
func WithMaxBodySize(size int64) Option {
	return func(o *Options) {
		o.maxBodySize = size
	}
}

// Client fetches pages with browser-shaped requests and classifies failures
type Client struct {
	hx      *httpx.HTTPX
	options *Options
}

// New creates a fetch client with the given options applied over defaults
func New(opts ...Option) (*Client, error) {
	options := &Options{
		timeout:      defaultTimeout,
		maxRedirects: defaultMaxRedirects,
		maxBodySize:  defaultMaxBodySize,
	}

	for _, opt := range opts {
		opt(options)
	}

	hx, err := httpx.New(&httpx.Options{
		Timeout:                   options.timeout,
		FollowRedirects:           true,
		MaxRedirects:              options.maxRedirects,
		MaxResponseBodySizeToRead: options.maxBodySize,
		DefaultUserAgent:          defaultUserAgent,
	})
	if err != nil {
		return nil, err
	}

	return &Client{hx: hx, options: options}, nil
}

// Fetch retrieves targetURL and returns its body and final location. All
// failures come back as *Error with a Kind the caller can branch on.
func (c *Client) Fetch(ctx context.Context, targetURL string) (*Result, error) {
	req, err := c.hx.NewRequestWithContext(ctx, http.MethodGet, targetURL)
	if err != nil {
		return nil, &Error{Kind: KindGeneric, URL: targetURL, Err: err}
	}

	for key, values := range browserHeaders() {
		for _, value := range values {
			req.Header.Set(key, value)
		}
	}

	resp, err := c.hx.Do(req, httpx.UnsafeOptions{})
	if err != nil {
		return nil, &Error{Kind: classify(err), URL: targetURL, Err: err}
	}

	if kind, failed := statusKind(resp.StatusCode); failed {
		return nil, &Error{
			Kind:       kind,
			URL:        targetURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	if len(resp.Data) < minBodyBytes || !isTextBody(resp.Data) {
		return nil, &Error{
			Kind:       KindGeneric,
			URL:        targetURL,
			StatusCode: resp.StatusCode,
			Err:        ErrInvalidBody,
		}
	}

	finalURL := targetURL

	if resp.HasChain() {
		if last := resp.GetChainLastURL(); last != "" {
			finalURL = last
		}
	}

	return &Result{
		Body:       string(resp.Data),
		FinalURL:   finalURL,
		StatusCode: resp.StatusCode,
	}, nil
}

// statusKind maps non-success status codes to failure kinds
func statusKind(status int) (Kind, bool) {
	switch {
	case status == http.StatusForbidden:
		return KindForbidden, true
	case status == http.StatusNotFound:
		return KindPageNotFound, true
	case status >= http.StatusBadRequest:
		return KindGeneric, true
	default:
		return "", false
	}
}

// isTextBody sniffs the body and accepts only textual content types
func isTextBody(body []byte) bool {
	contentType := http.DetectContentType(body)

	return strings.HasPrefix(contentType, "text/") ||
		strings.Contains(contentType, "html") ||
		strings.Contains(contentType, "xml")
}
