package marketstack

import (
	"context"
	"fmt"
	"time"

	"github.com/finquery/finquery/market"
	"github.com/finquery/finquery/transport"
)

// DefaultMaxLookaheadDays caps the calendar search. Thirty days comfortably
// covers any real exchange closure; without a cap a delisted or permanently
// closed exchange would make the search walk the calendar forever.
const DefaultMaxLookaheadDays = 30

// Edge selects which session boundary a lookahead resolves.
type Edge int

const (
	EdgeOpen Edge = iota
	EdgeClose
)

func (e Edge) String() string {
	if e == EdgeClose {
		return "close"
	}
	return "open"
}

// HoursFunc fetches one exchange's hours for a calendar date.
type HoursFunc func(ctx context.Context, date time.Time) (market.TradingHours, error)

func edgeOf(h market.TradingHours, edge Edge) *time.Time {
	if edge == EdgeClose {
		return h.Close
	}
	return h.Open
}

// NextSession finds the next instant the given session edge occurs at or
// after ref. It starts on ref's own date (or the following date when ref
// already lies past today's recorded edge) and walks forward one calendar
// day at a time, fetching each day's hours in turn, until it hits a day
// flagged open; that day's edge instant is the answer. Days are fetched
// strictly sequentially because each result decides whether another fetch
// is needed, and any per-day failure aborts the whole search. After maxDays
// candidate days (DefaultMaxLookaheadDays when maxDays <= 0) without an
// open session the search fails with a lookahead-exhausted Failure.
//
// The search is read-only and idempotent: for a fixed ref and hours
// function it always resolves to the same instant.
func NextSession(ctx context.Context, edge Edge, ref time.Time, maxDays int, hours HoursFunc) (time.Time, error) {
	if maxDays <= 0 {
		maxDays = DefaultMaxLookaheadDays
	}

	today := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())

	first, err := hours(ctx, today)
	if err != nil {
		return time.Time{}, err
	}

	start := today
	if e := edgeOf(first, edge); e != nil && ref.After(*e) {
		start = today.AddDate(0, 0, 1)
	}

	for i := 0; i < maxDays; i++ {
		day := start.AddDate(0, 0, i)

		h := first
		if !day.Equal(today) {
			h, err = hours(ctx, day)
			if err != nil {
				return time.Time{}, err
			}
		}

		if !h.IsOpen {
			continue
		}
		e := edgeOf(h, edge)
		if e == nil {
			return time.Time{}, &transport.Failure{
				Kind:   transport.FailMalformed,
				Detail: fmt.Sprintf("open day %s has no %s instant", day.Format("2006-01-02"), edge),
			}
		}
		return *e, nil
	}

	return time.Time{}, &transport.Failure{
		Kind:   transport.FailLookaheadExhausted,
		Detail: fmt.Sprintf("no open session within %d days of %s", maxDays, ref.Format("2006-01-02")),
	}
}

// NextOpen resolves the next open instant for an exchange at or after ref.
func (c *Client) NextOpen(ctx context.Context, mic string, ref time.Time) (time.Time, error) {
	return NextSession(ctx, EdgeOpen, ref, c.maxDays, c.hoursFor(mic))
}

// NextClose resolves the next close instant for an exchange at or after ref.
func (c *Client) NextClose(ctx context.Context, mic string, ref time.Time) (time.Time, error) {
	return NextSession(ctx, EdgeClose, ref, c.maxDays, c.hoursFor(mic))
}

func (c *Client) hoursFor(mic string) HoursFunc {
	return func(ctx context.Context, date time.Time) (market.TradingHours, error) {
		return c.HoursForDate(ctx, mic, date)
	}
}
