// Package alphavantage is the client for the market-data vendor: global
// quotes, daily price series, symbol search and technical indicators. Every
// call goes through the transport classifier; time-series payloads are
// flattened into date-ordered records.
package alphavantage

import (
	"context"
	"encoding/json"
	"math"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/finquery/finquery/transport"
)

// DefaultBaseURL is the vendor's single query endpoint; the requested
// operation is selected by the "function" parameter.
const DefaultBaseURL = "https://www.alphavantage.co/query"

// Source labels quotes produced by this client.
const Source = "alphavantage"

// Client is safe for concurrent use; it holds only immutable configuration
// and the underlying transport.
type Client struct {
	baseURL    string
	log        zerolog.Logger
	timeout    time.Duration
	compatMACD bool

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

// WithCorrectedMACDDefaults makes a missing MACD slow period default to the
// documented 26. Historically a missing slow period fell back to the
// resolved fast period instead; that behavior is kept by default so
// existing consumers see identical queries. See Client.MACD.
func WithCorrectedMACDDefaults() Option {
	return func(c *Client) { c.compatMACD = false }
}

// New creates a Client. The API key is merged into every request's query
// string; the client itself does no session or token management.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		log:        zerolog.Nop(),
		compatMACD: true,
	}
	for _, opt := range opts {
		opt(c)
	}

	topts := []transport.Option{
		transport.WithQueryParam("apikey", apiKey),
		transport.WithLogger(c.log),
	}
	if c.timeout > 0 {
		topts = append(topts, transport.WithTimeout(c.timeout))
	}
	c.api = transport.New(c.baseURL, topts...)

	return c
}

// get runs one classified query against the vendor endpoint.
func (c *Client) get(ctx context.Context, params url.Values) (map[string]json.RawMessage, error) {
	return transport.Classify(ctx, c.api.Fetch(ctx, "", params), c.api.Fetch, nil)
}

// num parses a vendor numeric string. Missing or unparseable fields yield
// NaN rather than an error; individual bars routinely lack fields and that
// must not fail the call.
func num(s string) float64 {
	if s == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// section pulls a named top-level object out of a classified payload.
func section(payload map[string]json.RawMessage, name string) (json.RawMessage, error) {
	raw, ok := payload[name]
	if !ok {
		return nil, &transport.Failure{
			Kind:   transport.FailMalformed,
			Detail: "missing " + strconv.Quote(name) + " section",
		}
	}
	return raw, nil
}
