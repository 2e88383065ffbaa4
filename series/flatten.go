// Package series turns the keyed date→bar JSON objects both vendors emit
// into ordered slices of typed records.
package series

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// Bar time layouts the vendors use: intraday bars carry a full timestamp,
// daily and slower bars a bare date.
const (
	layoutIntraday = "2006-01-02 15:04:05"
	layoutDaily    = "2006-01-02"
)

// ParseBarTime parses a series key as an intraday timestamp, falling back
// to a bare date.
func ParseBarTime(s string) (time.Time, error) {
	if t, err := time.Parse(layoutIntraday, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(layoutDaily, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse bar time %q: %w", s, err)
	}
	return t, nil
}

// Flatten applies factory to every entry of a keyed time series and returns
// the records sorted ascending by date. JSON object key order carries no
// meaning upstream, so the keys are visited in sorted order and the result
// is stable-sorted on the record's own date; the output length always
// equals the input key count. The whole series is materialized; vendor
// responses are capped at a few thousand bars.
func Flatten[T any](keyed map[string]json.RawMessage, factory func(date string, raw json.RawMessage) (T, error), when func(T) time.Time) ([]T, error) {
	keys := make([]string, 0, len(keyed))
	for k := range keyed {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]T, 0, len(keyed))
	for _, k := range keys {
		rec, err := factory(k, keyed[k])
		if err != nil {
			return nil, fmt.Errorf("bar %s: %w", k, err)
		}
		out = append(out, rec)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return when(out[i]).Before(when(out[j]))
	})
	return out, nil
}
