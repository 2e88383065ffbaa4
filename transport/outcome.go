// Package transport owns the HTTP boundary shared by both vendor clients:
// a thin resty-backed fetcher producing an Outcome per call, the failure
// taxonomy, and Classify, which turns an Outcome into either a decoded JSON
// payload or a categorized Failure.
package transport

import (
	"context"
	"net/url"
)

// Outcome is the raw result of one network call, before classification.
// Exactly one side is meaningful: when Err is set the call never produced an
// HTTP response and Status/Body are garbage; otherwise Status and Body hold
// whatever the server returned, errors included.
type Outcome struct {
	Err    error
	Status int
	Body   []byte
}

// FetchFunc performs one HTTP GET. rawURL may be a path relative to a
// client's base URL or an absolute URL (continuation targets are absolute).
// params may be nil.
type FetchFunc func(ctx context.Context, rawURL string, params url.Values) Outcome
