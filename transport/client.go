package transport

import (
	"context"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

const defaultTimeout = 10 * time.Second

// Client performs authorized GETs against one vendor. It holds only
// immutable configuration plus the underlying resty client, so it is safe
// for concurrent use. Authorization is a fixed query parameter (the API
// key) attached to every request; the core imposes no retries or backoff.
type Client struct {
	rc  *resty.Client
	log zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for per-request debug lines. The default
// logger is disabled.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.rc.SetTimeout(d) }
}

// WithQueryParam attaches a query parameter to every outgoing request.
// Vendor clients use it to merge their API key into the query string.
func WithQueryParam(key, value string) Option {
	return func(c *Client) { c.rc.SetQueryParam(key, value) }
}

// New creates a Client rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		rc: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(defaultTimeout).
			SetHeader("Accept", "application/json"),
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch performs one GET and reports the raw outcome. Non-200 statuses are
// not errors at this layer; Classify decides what they mean. rawURL may be
// an absolute URL, which overrides the base URL (continuation targets
// arrive absolute).
func (c *Client) Fetch(ctx context.Context, rawURL string, params url.Values) Outcome {
	req := c.rc.R().SetContext(ctx)
	if params != nil {
		req.SetQueryParamsFromValues(params)
	}

	resp, err := req.Get(rawURL)
	if err != nil {
		c.log.Debug().Err(err).Str("url", rawURL).Msg("fetch failed")
		return Outcome{Err: err}
	}

	c.log.Debug().
		Str("url", rawURL).
		Int("status", resp.StatusCode()).
		Dur("elapsed", resp.Time()).
		Msg("fetch")

	return Outcome{Status: resp.StatusCode(), Body: resp.Body()}
}
