package marketstack

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/finquery/finquery/market"
	"github.com/finquery/finquery/series"
	"github.com/finquery/finquery/transport"
)

// hoursPayload is the vendor's per-date hours shape. Session instants are
// RFC 3339 or null; the adjacent-day fields are opaque URLs handed back to
// us for later dereference.
type hoursPayload struct {
	Date    string `json:"date"`
	IsOpen  bool   `json:"is_open"`
	Session struct {
		Open  *time.Time `json:"open"`
		Close *time.Time `json:"close"`
	} `json:"session"`
	Extended struct {
		Open  *time.Time `json:"open"`
		Close *time.Time `json:"close"`
	} `json:"extended"`
	NextTradingDay     string `json:"next_trading_day"`
	PreviousTradingDay string `json:"previous_trading_day"`
}

func (p hoursPayload) toDomain() (market.TradingHours, error) {
	var date time.Time
	if p.Date != "" {
		var err error
		date, err = series.ParseBarTime(p.Date)
		if err != nil {
			return market.TradingHours{}, &transport.Failure{Kind: transport.FailMalformed, Detail: err.Error(), Cause: err}
		}
	}
	return market.TradingHours{
		IsOpen:                p.IsOpen,
		Date:                  date,
		Open:                  p.Session.Open,
		Close:                 p.Session.Close,
		ExtendedOpen:          p.Extended.Open,
		ExtendedClose:         p.Extended.Close,
		NextTradingDayRef:     p.NextTradingDay,
		PreviousTradingDayRef: p.PreviousTradingDay,
	}, nil
}

func decodeHours(raw json.RawMessage) (market.TradingHours, error) {
	var p hoursPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return market.TradingHours{}, &transport.Failure{Kind: transport.FailMalformed, Detail: err.Error(), Cause: err}
	}
	return p.toDomain()
}

// HoursForDate fetches one exchange's trading hours on one calendar date.
func (c *Client) HoursForDate(ctx context.Context, mic string, date time.Time) (market.TradingHours, error) {
	params := url.Values{}
	params.Set("date", date.Format("2006-01-02"))

	payload, err := c.classify(ctx, c.api.Fetch(ctx, "exchanges/"+mic+"/hours", params), nil)
	if err != nil {
		return market.TradingHours{}, err
	}

	var p hoursPayload
	if err := decode(payload, &p); err != nil {
		return market.TradingHours{}, err
	}
	return p.toDomain()
}

// NextTradingDay dereferences the next-trading-day URL carried by h.
func (c *Client) NextTradingDay(ctx context.Context, h market.TradingHours) (market.TradingHours, error) {
	return c.hoursByRef(ctx, h.NextTradingDayRef)
}

// PreviousTradingDay dereferences the previous-trading-day URL carried by h.
func (c *Client) PreviousTradingDay(ctx context.Context, h market.TradingHours) (market.TradingHours, error) {
	return c.hoursByRef(ctx, h.PreviousTradingDayRef)
}

func (c *Client) hoursByRef(ctx context.Context, ref string) (market.TradingHours, error) {
	if ref == "" {
		return market.TradingHours{}, fmt.Errorf("no adjacent trading day reference")
	}

	payload, err := c.classify(ctx, c.api.Fetch(ctx, ref, nil), nil)
	if err != nil {
		return market.TradingHours{}, err
	}

	var p hoursPayload
	if err := decode(payload, &p); err != nil {
		return market.TradingHours{}, err
	}
	return p.toDomain()
}
