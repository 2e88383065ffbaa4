// Package marketstack is the client for the exchange vendor: market
// identity lookups, per-date trading hours, and the calendar lookahead that
// finds the next open or close instant.
package marketstack

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/finquery/finquery/transport"
)

// DefaultBaseURL is the vendor's REST root.
const DefaultBaseURL = "https://api.marketstack.com/v1"

// Client is safe for concurrent use; it holds only immutable configuration
// and the underlying transport.
type Client struct {
	baseURL string
	log     zerolog.Logger
	timeout time.Duration
	maxDays int

	api *transport.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the vendor endpoint, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithLogger sets the logger used for request debug lines.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithTimeout overrides the transport's request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithMaxLookaheadDays caps how many calendar days NextOpen and NextClose
// will examine before giving up.
func WithMaxLookaheadDays(n int) Option {
	return func(c *Client) { c.maxDays = n }
}

// New creates a Client. The access key is merged into every request's
// query string.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		log:     zerolog.Nop(),
		maxDays: DefaultMaxLookaheadDays,
	}
	for _, opt := range opts {
		opt(c)
	}

	topts := []transport.Option{
		transport.WithQueryParam("access_key", apiKey),
		transport.WithLogger(c.log),
	}
	if c.timeout > 0 {
		topts = append(topts, transport.WithTimeout(c.timeout))
	}
	c.api = transport.New(c.baseURL, topts...)

	return c
}

// decode re-marshals a classified payload into a typed wire struct.
func decode(payload map[string]json.RawMessage, v any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return &transport.Failure{Kind: transport.FailMalformed, Detail: err.Error(), Cause: err}
	}
	if err := json.Unmarshal(b, v); err != nil {
		return &transport.Failure{Kind: transport.FailMalformed, Detail: err.Error(), Cause: err}
	}
	return nil
}

func (c *Client) classify(ctx context.Context, out transport.Outcome, cont *transport.Continuation) (map[string]json.RawMessage, error) {
	return transport.Classify(ctx, out, c.api.Fetch, cont)
}
