package market

import (
	"math"
	"strconv"
	"time"
)

// IndicatorRecord is one bar of a technical-indicator series. Fields holds
// the per-bar values exactly as the vendor sent them, keyed by the vendor's
// field names (e.g. "MACD_Signal", "Real Upper Band").
type IndicatorRecord struct {
	Date   time.Time
	Fields map[string]string
}

// When returns the bar's date.
func (r IndicatorRecord) When() time.Time { return r.Date }

// Float returns the named field parsed as a float64. A field that is absent
// or not parseable yields NaN; vendors routinely drop fields from individual
// bars and that must not fail the whole series.
func (r IndicatorRecord) Float(name string) float64 {
	s, ok := r.Fields[name]
	if !ok {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
