// Package journal records what the clients fetched, normalized quotes and
// classified failures, for research and debugging. The clients themselves
// never read or depend on it; callers decide what gets journaled.
package journal

import (
	"errors"
	"time"

	"github.com/finquery/finquery/market"
	"github.com/finquery/finquery/transport"
)

// QuoteRecord is one journaled quote.
type QuoteRecord struct {
	ID        string
	Symbol    string
	Source    string
	Date      time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Last      float64
	Volume    float64
	FetchedAt time.Time
}

// FailureRecord is one journaled classified failure.
type FailureRecord struct {
	ID        string
	Kind      string
	Operation string
	Detail    string
	At        time.Time
}

type Journal interface {
	RecordQuote(QuoteRecord) error
	RecordFailure(FailureRecord) error
	Close() error
}

// NewQuoteRecord stamps a quote with an ID and fetch time.
func NewQuoteRecord(q market.Quote) QuoteRecord {
	return QuoteRecord{
		ID:        newID(),
		Symbol:    q.Symbol,
		Source:    q.Source,
		Date:      q.Date,
		Open:      q.Open,
		High:      q.High,
		Low:       q.Low,
		Close:     q.Close,
		Last:      q.Last,
		Volume:    q.Volume,
		FetchedAt: time.Now().UTC(),
	}
}

// NewFailureRecord stamps a classified failure with an ID and time.
// Operation names what was being fetched (e.g. "quote IBM").
func NewFailureRecord(operation string, err error) FailureRecord {
	rec := FailureRecord{
		ID:        newID(),
		Kind:      "error",
		Operation: operation,
		At:        time.Now().UTC(),
	}
	if err != nil {
		rec.Detail = err.Error()
	}
	var f *transport.Failure
	if errors.As(err, &f) {
		rec.Kind = string(f.Kind)
		rec.Detail = f.Detail
	}
	return rec
}
