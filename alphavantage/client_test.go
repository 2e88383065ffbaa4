package alphavantage

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finquery/finquery/transport"
)

// newRecordingServer serves a fixed body and records each request's query.
func newRecordingServer(t *testing.T, body string) (*httptest.Server, *[]url.Values) {
	t.Helper()

	var queries []url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.Query())
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &queries
}

const globalQuoteBody = `{
	"Global Quote": {
		"01. symbol": "IBM",
		"02. open": "186.0600",
		"03. high": "187.3700",
		"04. low": "185.2600",
		"05. price": "186.1600",
		"06. volume": "3895541",
		"07. latest trading day": "2024-03-04",
		"08. previous close": "185.7200",
		"09. change": "0.4400",
		"10. change percent": "0.2369%"
	}
}`

func TestQuote(t *testing.T) {
	t.Parallel()

	server, queries := newRecordingServer(t, globalQuoteBody)
	c := New("k3y", WithBaseURL(server.URL))

	q, err := c.Quote(context.Background(), "IBM")
	require.NoError(t, err)

	assert.Equal(t, "IBM", q.Symbol)
	assert.Equal(t, Source, q.Source)
	assert.True(t, q.Date.Equal(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 186.06, q.Open)
	assert.Equal(t, 187.37, q.High)
	assert.Equal(t, 185.26, q.Low)
	assert.Equal(t, 186.16, q.Last)
	assert.Equal(t, 186.16, q.Close)
	assert.Equal(t, 3895541.0, q.Volume)
	assert.True(t, math.IsNaN(q.AdjustedClose), "endpoint reports no adjusted close")
	assert.Equal(t, "185.7200", q.Meta.PreviousClose)
	assert.Equal(t, "0.2369%", q.Meta.ChangePercent)
	assert.JSONEq(t, `{
		"01. symbol": "IBM",
		"02. open": "186.0600",
		"03. high": "187.3700",
		"04. low": "185.2600",
		"05. price": "186.1600",
		"06. volume": "3895541",
		"07. latest trading day": "2024-03-04",
		"08. previous close": "185.7200",
		"09. change": "0.4400",
		"10. change percent": "0.2369%"
	}`, string(q.Original), "upstream record preserved verbatim")

	require.Len(t, *queries, 1)
	got := (*queries)[0]
	assert.Equal(t, "GLOBAL_QUOTE", got.Get("function"))
	assert.Equal(t, "IBM", got.Get("symbol"))
	assert.Equal(t, "k3y", got.Get("apikey"))
}

const dailyAdjustedBody = `{
	"Meta Data": {"2. Symbol": "IBM"},
	"Time Series (Daily)": {
		"2024-01-02": {"1. open": "100.0", "2. high": "101.0", "3. low": "99.5", "4. close": "100.5", "5. adjusted close": "100.1", "6. volume": "1000", "7. dividend amount": "0.0000", "8. split coefficient": "1.0"},
		"2024-01-03": {"1. open": "100.5", "2. high": "101.5", "3. low": "100.0", "4. close": "101.0", "5. adjusted close": "100.6", "6. volume": "1100", "7. dividend amount": "0.0000", "8. split coefficient": "1.0"},
		"2024-01-01": {"1. open": "99.0", "2. high": "99.9", "3. low": "98.5", "4. close": "99.0", "5. adjusted close": "98.7", "6. volume": "900", "7. dividend amount": "0.0000", "8. split coefficient": "1.0"}
	}
}`

func TestDailyAdjustedOrderedAscending(t *testing.T) {
	t.Parallel()

	server, queries := newRecordingServer(t, dailyAdjustedBody)
	c := New("k3y", WithBaseURL(server.URL))

	quotes, err := c.DailyAdjusted(context.Background(), "IBM")
	require.NoError(t, err)
	require.Len(t, quotes, 3)

	assert.True(t, quotes[0].Date.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 99.0, quotes[0].Close)
	assert.Equal(t, 100.5, quotes[1].Close)
	assert.Equal(t, 101.0, quotes[2].Close)
	assert.Equal(t, 100.6, quotes[1].AdjustedClose)
	assert.Equal(t, 1100.0, quotes[1].Volume)
	assert.Equal(t, "0.0000", quotes[1].Meta.DividendAmount)
	assert.Equal(t, "1.0", quotes[1].Meta.SplitCoefficient)

	require.Len(t, *queries, 1)
	assert.Equal(t, "TIME_SERIES_DAILY_ADJUSTED", (*queries)[0].Get("function"))
}

func TestDailyMissingFieldsYieldNaN(t *testing.T) {
	t.Parallel()

	body := `{
		"Time Series (Daily)": {
			"2024-01-02": {"4. close": "100.5"}
		}
	}`
	server, _ := newRecordingServer(t, body)
	c := New("k3y", WithBaseURL(server.URL))

	quotes, err := c.Daily(context.Background(), "IBM")
	require.NoError(t, err)
	require.Len(t, quotes, 1)

	assert.Equal(t, 100.5, quotes[0].Close)
	assert.True(t, math.IsNaN(quotes[0].Open))
	assert.True(t, math.IsNaN(quotes[0].Volume))
}

const searchBody = `{
	"bestMatches": [
		{"1. symbol": "IBM", "2. name": "International Business Machines", "3. type": "Equity", "4. region": "United States", "5. marketOpen": "09:30", "6. marketClose": "16:00", "7. timezone": "UTC-05", "8. currency": "USD", "9. matchScore": "1.0000"},
		{"1. symbol": "IBML", "2. name": "iShares iBonds", "3. type": "ETF", "4. region": "United States", "5. marketOpen": "09:30", "6. marketClose": "16:00", "7. timezone": "UTC-05", "8. currency": "USD", "9. matchScore": "0.8000"}
	]
}`

func TestSearch(t *testing.T) {
	t.Parallel()

	server, queries := newRecordingServer(t, searchBody)
	c := New("k3y", WithBaseURL(server.URL))

	matches, err := c.Search(context.Background(), "ibm")
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, "IBM", matches[0].Symbol)
	assert.Equal(t, "International Business Machines", matches[0].Name)
	assert.Equal(t, "1.0000", matches[0].MatchScore)
	assert.Equal(t, "ETF", matches[1].Type)

	require.Len(t, *queries, 1)
	assert.Equal(t, "SYMBOL_SEARCH", (*queries)[0].Get("function"))
	assert.Equal(t, "ibm", (*queries)[0].Get("keywords"))
}

func TestQuoteOverloadedVendor(t *testing.T) {
	t.Parallel()

	server, _ := newRecordingServer(t, "<html>application-error.html: busy</html>")
	c := New("k3y", WithBaseURL(server.URL))

	_, err := c.Quote(context.Background(), "IBM")
	assert.True(t, transport.IsKind(err, transport.FailOverloaded))
}

func TestQuoteMissingSection(t *testing.T) {
	t.Parallel()

	server, _ := newRecordingServer(t, `{"Note": "rate limited"}`)
	c := New("k3y", WithBaseURL(server.URL))

	_, err := c.Quote(context.Background(), "IBM")
	assert.True(t, transport.IsKind(err, transport.FailMalformed))
}
