// Package market defines the normalized domain objects produced by the
// vendor clients: quotes, markets, trading hours, indicator records and
// symbol-search matches. All types are plain values; once constructed from
// a vendor response they are never mutated.
package market

import (
	"encoding/json"
	"time"
)

// QuoteMeta carries the secondary fields some vendors attach to a quote.
// Values are kept as the upstream strings (e.g. "1.2500" or "0.3172%");
// vendors are inconsistent about formatting, so normalization is left to
// the caller.
type QuoteMeta struct {
	DividendAmount   string
	SplitCoefficient string
	PreviousClose    string
	Change           string
	ChangePercent    string
}

// Quote is one normalized price record for a symbol on a date.
//
// Price fields a vendor omits are NaN, not zero; zero is a legal price.
// Original holds the verbatim upstream record for audit and debugging.
type Quote struct {
	Symbol string
	Date   time.Time
	Source string

	Open          float64
	High          float64
	Low           float64
	Close         float64
	Last          float64
	AdjustedClose float64
	Volume        float64

	Meta     QuoteMeta
	Original json.RawMessage
}
