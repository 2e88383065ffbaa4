package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
)

// overloadMarker is the sentinel the market-data vendor embeds in its error
// page when it is out of capacity. The page ships with a 200 status, so the
// marker must be checked before the status code.
const overloadMarker = "application-error.html"

// Continuation describes the single server-directed follow-up fetch a call
// may carry: Select extracts the follow-up URL from the first payload (ok
// false means the payload carries none and no second fetch happens), and the
// classified follow-up payload is merged into the first payload under Into.
type Continuation struct {
	Select func(payload map[string]json.RawMessage) (string, bool)
	Into   string
}

// Classify turns one raw Outcome into either a decoded top-level JSON object
// or a *Failure. Exactly one of the two results is set.
//
// Rules, in order: a transport error is FailTransport; a body containing the
// vendor overload marker is FailOverloaded regardless of status; a non-200
// status is FailStatus with the body as detail; a body that does not decode
// as a JSON object is FailMalformed. On success, if cont selects a URL from
// the payload, that URL is fetched once, classified by the same rules (with
// no further continuation, chains are never followed), and merged into the
// payload under cont.Into; a continuation failure fails the whole call.
//
// At most two network calls happen per invocation and none are retried;
// retry policy belongs to the caller.
func Classify(ctx context.Context, out Outcome, fetch FetchFunc, cont *Continuation) (map[string]json.RawMessage, error) {
	if out.Err != nil {
		return nil, &Failure{Kind: FailTransport, Detail: out.Err.Error(), Cause: out.Err}
	}
	if bytes.Contains(out.Body, []byte(overloadMarker)) {
		return nil, &Failure{Kind: FailOverloaded, Detail: "vendor overloaded, try again"}
	}
	if out.Status != http.StatusOK {
		return nil, &Failure{Kind: FailStatus, Detail: string(out.Body)}
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(out.Body, &payload); err != nil {
		return nil, &Failure{Kind: FailMalformed, Detail: err.Error(), Cause: err}
	}

	if cont != nil && cont.Select != nil {
		ref, ok := cont.Select(payload)
		if !ok {
			return payload, nil
		}
		followed, err := Classify(ctx, fetch(ctx, ref, nil), nil, nil)
		if err != nil {
			return nil, err
		}
		merged, err := json.Marshal(followed)
		if err != nil {
			return nil, &Failure{Kind: FailMalformed, Detail: err.Error(), Cause: err}
		}
		payload[cont.Into] = merged
	}

	return payload, nil
}

// StringField is a Continuation.Select helper that reads a top-level string
// field from the payload.
func StringField(name string) func(map[string]json.RawMessage) (string, bool) {
	return func(payload map[string]json.RawMessage) (string, bool) {
		raw, ok := payload[name]
		if !ok {
			return "", false
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil || s == "" {
			return "", false
		}
		return s, true
	}
}
