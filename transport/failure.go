package transport

import (
	"errors"
	"fmt"
)

// FailureKind categorizes why a vendor call did not produce a usable payload.
type FailureKind string

const (
	// FailTransport: the request never completed (DNS, connect, timeout).
	FailTransport FailureKind = "transport"
	// FailOverloaded: the vendor's capacity-exhausted marker was found in
	// the body. The vendor embeds it in 200-status HTML, so this outranks
	// the status check.
	FailOverloaded FailureKind = "server-overloaded"
	// FailStatus: the vendor answered with a non-200 status.
	FailStatus FailureKind = "non-200-status"
	// FailMalformed: a 200 body that is not the JSON object it should be.
	FailMalformed FailureKind = "malformed-body"
	// FailLookaheadExhausted: the trading-calendar search hit its day cap
	// without finding an open session.
	FailLookaheadExhausted FailureKind = "lookahead-exhausted"
)

// Failure is the structured error every classified call surfaces. Detail
// carries the original diagnostic payload (the response body for status
// failures) so callers can render their own message; the core prescribes no
// message text and never retries.
type Failure struct {
	Kind   FailureKind
	Detail string
	Cause  error
}

func (f *Failure) Error() string {
	if f.Detail == "" {
		return string(f.Kind)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Detail)
}

func (f *Failure) Unwrap() error { return f.Cause }

// IsKind reports whether err is a *Failure of the given kind.
func IsKind(err error, kind FailureKind) bool {
	var f *Failure
	return errors.As(err, &f) && f.Kind == kind
}
