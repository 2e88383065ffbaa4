package marketstack

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finquery/finquery/transport"
)

// newVendorStub serves a minimal exchange vendor: one exchange identity
// that points at its own hours endpoint, plus per-date hours.
func newVendorStub(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	var server *httptest.Server

	mux.HandleFunc("/exchanges/XNYS", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "k3y", r.URL.Query().Get("access_key"))
		fmt.Fprintf(w, `{
			"mic": "XNYS",
			"name": "New York Stock Exchange",
			"acronym": "NYSE",
			"city": "New York",
			"country": "USA",
			"website": "www.nyse.com",
			"timezone": {"timezone": "America/New_York"},
			"todays_hours_url": %q
		}`, server.URL+"/exchanges/XNYS/hours?date=2024-03-04")
	})

	mux.HandleFunc("/exchanges/XNOL", func(w http.ResponseWriter, r *http.Request) {
		// No hours URL: identity only.
		w.Write([]byte(`{"mic": "XNOL", "name": "No Hours Exchange", "timezone": {"timezone": "UTC"}}`))
	})

	mux.HandleFunc("/exchanges/XNYS/hours", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("date") {
		case "2024-03-04":
			fmt.Fprintf(w, `{
				"date": "2024-03-04",
				"is_open": true,
				"session": {"open": "2024-03-04T09:30:00-05:00", "close": "2024-03-04T16:00:00-05:00"},
				"extended": {"open": "2024-03-04T04:00:00-05:00", "close": "2024-03-04T20:00:00-05:00"},
				"next_trading_day": %q,
				"previous_trading_day": %q
			}`, server.URL+"/exchanges/XNYS/hours?date=2024-03-05",
				server.URL+"/exchanges/XNYS/hours?date=2024-03-01")
		case "2024-03-05":
			w.Write([]byte(`{
				"date": "2024-03-05",
				"is_open": true,
				"session": {"open": "2024-03-05T09:30:00-05:00", "close": "2024-03-05T16:00:00-05:00"},
				"extended": {"open": null, "close": null}
			}`))
		default:
			// Weekend: closed, no sessions at all.
			fmt.Fprintf(w, `{"date": %q, "is_open": false, "session": {"open": null, "close": null}, "extended": {"open": null, "close": null}}`,
				r.URL.Query().Get("date"))
		}
	})

	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	server := newVendorStub(t)
	return New("k3y", append([]Option{WithBaseURL(server.URL)}, opts...)...)
}

func TestMarketLookupFollowsHoursContinuation(t *testing.T) {
	t.Parallel()

	c := newTestClient(t)
	m, err := c.Market(context.Background(), "XNYS")
	require.NoError(t, err)

	assert.Equal(t, "XNYS", m.MIC)
	assert.Equal(t, "New York Stock Exchange", m.Name)
	assert.Equal(t, "NYSE", m.Acronym)
	assert.Equal(t, "New York", m.City)
	assert.Equal(t, "USA", m.Country)
	assert.Equal(t, "America/New_York", m.Timezone)
	assert.Equal(t, "www.nyse.com", m.Website)

	require.True(t, m.Today.IsOpen)
	require.NotNil(t, m.Today.Open)
	assert.True(t, m.Today.Open.Equal(time.Date(2024, 3, 4, 14, 30, 0, 0, time.UTC)))
	assert.NotEmpty(t, m.Today.NextTradingDayRef)
}

func TestMarketLookupWithoutHoursReference(t *testing.T) {
	t.Parallel()

	c := newTestClient(t)
	m, err := c.Market(context.Background(), "XNOL")
	require.NoError(t, err)

	assert.Equal(t, "XNOL", m.MIC)
	assert.False(t, m.Today.IsOpen)
	assert.Nil(t, m.Today.Open)
}

func TestHoursForDate(t *testing.T) {
	t.Parallel()

	c := newTestClient(t)

	h, err := c.HoursForDate(context.Background(), "XNYS", time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, h.IsOpen)
	require.NotNil(t, h.Close)
	assert.True(t, h.Close.Equal(time.Date(2024, 3, 4, 21, 0, 0, 0, time.UTC)))
	require.NotNil(t, h.ExtendedOpen)

	closed, err := c.HoursForDate(context.Background(), "XNYS", time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, closed.IsOpen)
	assert.Nil(t, closed.Open)
	assert.Nil(t, closed.Close)
}

func TestNextTradingDayDereference(t *testing.T) {
	t.Parallel()

	c := newTestClient(t)

	h, err := c.HoursForDate(context.Background(), "XNYS", time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	next, err := c.NextTradingDay(context.Background(), h)
	require.NoError(t, err)
	assert.True(t, next.Date.Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))
	assert.Nil(t, next.ExtendedOpen)

	// A record without refs cannot be dereferenced.
	_, err = c.NextTradingDay(context.Background(), next)
	assert.Error(t, err)
}

func TestNextOpenOverVendor(t *testing.T) {
	t.Parallel()

	c := newTestClient(t)

	// Saturday morning: Monday's open is the answer.
	ref := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)
	got, err := c.NextOpen(context.Background(), "XNYS", ref)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 3, 4, 14, 30, 0, 0, time.UTC)))
}

func TestHoursForDateSurfacesVendorFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such exchange", http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	c := New("k3y", WithBaseURL(server.URL))
	_, err := c.HoursForDate(context.Background(), "XXXX", time.Now())
	assert.True(t, transport.IsKind(err, transport.FailStatus))
}
