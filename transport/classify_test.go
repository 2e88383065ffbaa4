package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fetchStub(t *testing.T, outcomes map[string]Outcome) FetchFunc {
	t.Helper()
	return func(_ context.Context, rawURL string, _ url.Values) Outcome {
		out, ok := outcomes[rawURL]
		if !ok {
			t.Fatalf("unexpected fetch of %q", rawURL)
		}
		return out
	}
}

func TestClassifyTransportError(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	payload, err := Classify(context.Background(), Outcome{Err: cause}, nil, nil)

	assert.Nil(t, payload)
	require.Error(t, err)
	assert.True(t, IsKind(err, FailTransport))
	assert.ErrorIs(t, err, cause)
}

func TestClassifyOverloadMarkerBeatsStatus(t *testing.T) {
	t.Parallel()

	// The vendor serves its overload page with a 200 status.
	body := []byte("<html>application-error.html: temporarily unavailable</html>")

	payload, err := Classify(context.Background(), Outcome{Status: 200, Body: body}, nil, nil)
	assert.Nil(t, payload)
	assert.True(t, IsKind(err, FailOverloaded))

	// Still overloaded when the status also happens to be non-200.
	_, err = Classify(context.Background(), Outcome{Status: 503, Body: body}, nil, nil)
	assert.True(t, IsKind(err, FailOverloaded))
}

func TestClassifyNon200Status(t *testing.T) {
	t.Parallel()

	body := []byte(`{"error": "unknown symbol"}`)
	_, err := Classify(context.Background(), Outcome{Status: 404, Body: body}, nil, nil)

	require.True(t, IsKind(err, FailStatus))
	var f *Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, string(body), f.Detail, "body must be surfaced verbatim")
}

func TestClassifyMalformedBody(t *testing.T) {
	t.Parallel()

	_, err := Classify(context.Background(), Outcome{Status: 200, Body: []byte("not json")}, nil, nil)
	assert.True(t, IsKind(err, FailMalformed))

	// A 200 JSON value that is not an object is malformed too.
	_, err = Classify(context.Background(), Outcome{Status: 200, Body: []byte(`[1, 2]`)}, nil, nil)
	assert.True(t, IsKind(err, FailMalformed))
}

func TestClassifySuccessNoContinuation(t *testing.T) {
	t.Parallel()

	payload, err := Classify(context.Background(), Outcome{Status: 200, Body: []byte(`{"mic": "XNYS"}`)}, nil, nil)
	require.NoError(t, err)

	var mic string
	require.NoError(t, json.Unmarshal(payload["mic"], &mic))
	assert.Equal(t, "XNYS", mic)
}

func TestClassifyContinuationFollowedAndMerged(t *testing.T) {
	t.Parallel()

	first := Outcome{Status: 200, Body: []byte(`{"mic": "XNYS", "hours_url": "https://vendor/hours?date=today"}`)}
	fetch := fetchStub(t, map[string]Outcome{
		"https://vendor/hours?date=today": {Status: 200, Body: []byte(`{"is_open": true}`)},
	})
	cont := &Continuation{Select: StringField("hours_url"), Into: "todays_hours"}

	payload, err := Classify(context.Background(), first, fetch, cont)
	require.NoError(t, err)

	require.Contains(t, payload, "todays_hours")
	var hours struct {
		IsOpen bool `json:"is_open"`
	}
	require.NoError(t, json.Unmarshal(payload["todays_hours"], &hours))
	assert.True(t, hours.IsOpen)
}

func TestClassifyContinuationAbsentReference(t *testing.T) {
	t.Parallel()

	first := Outcome{Status: 200, Body: []byte(`{"mic": "XNYS"}`)}
	fetch := func(_ context.Context, rawURL string, _ url.Values) Outcome {
		t.Fatalf("no continuation fetch expected, got %q", rawURL)
		return Outcome{}
	}
	cont := &Continuation{Select: StringField("hours_url"), Into: "todays_hours"}

	payload, err := Classify(context.Background(), first, FetchFunc(fetch), cont)
	require.NoError(t, err)
	assert.NotContains(t, payload, "todays_hours", "payload must be returned unmerged")
	assert.Contains(t, payload, "mic")
}

func TestClassifyContinuationFailurePropagates(t *testing.T) {
	t.Parallel()

	first := Outcome{Status: 200, Body: []byte(`{"hours_url": "https://vendor/hours"}`)}
	fetch := fetchStub(t, map[string]Outcome{
		"https://vendor/hours": {Status: 500, Body: []byte("boom")},
	})
	cont := &Continuation{Select: StringField("hours_url"), Into: "todays_hours"}

	payload, err := Classify(context.Background(), first, fetch, cont)
	assert.Nil(t, payload)
	assert.True(t, IsKind(err, FailStatus))
}

func TestClassifyContinuationNotChained(t *testing.T) {
	t.Parallel()

	// The second payload carries another reference; it must not be followed.
	first := Outcome{Status: 200, Body: []byte(`{"hours_url": "https://vendor/hours"}`)}
	calls := 0
	fetch := func(_ context.Context, rawURL string, _ url.Values) Outcome {
		calls++
		return Outcome{Status: 200, Body: []byte(`{"hours_url": "https://vendor/deeper"}`)}
	}
	cont := &Continuation{Select: StringField("hours_url"), Into: "todays_hours"}

	_, err := Classify(context.Background(), first, FetchFunc(fetch), cont)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
