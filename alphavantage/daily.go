package alphavantage

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/finquery/finquery/market"
	"github.com/finquery/finquery/series"
	"github.com/finquery/finquery/transport"
)

// Both daily functions key their series under the same section name.
const dailySeriesSection = "Time Series (Daily)"

// Daily fetches the recent daily price series for a symbol, oldest bar
// first. AdjustedClose is NaN on every bar; use DailyAdjusted for it.
func (c *Client) Daily(ctx context.Context, symbol string) ([]market.Quote, error) {
	return c.daily(ctx, "TIME_SERIES_DAILY", symbol, false)
}

// DailyAdjusted is Daily plus adjusted close, dividend and split fields.
func (c *Client) DailyAdjusted(ctx context.Context, symbol string) ([]market.Quote, error) {
	return c.daily(ctx, "TIME_SERIES_DAILY_ADJUSTED", symbol, true)
}

func (c *Client) daily(ctx context.Context, function, symbol string, adjusted bool) ([]market.Quote, error) {
	params := url.Values{}
	params.Set("function", function)
	params.Set("symbol", symbol)
	params.Set("outputsize", "compact")

	payload, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	raw, err := section(payload, dailySeriesSection)
	if err != nil {
		return nil, err
	}

	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keyed); err != nil {
		return nil, &transport.Failure{Kind: transport.FailMalformed, Detail: err.Error(), Cause: err}
	}

	volumeField := "5. volume"
	if adjusted {
		volumeField = "6. volume"
	}

	factory := func(date string, raw json.RawMessage) (market.Quote, error) {
		t, err := series.ParseBarTime(date)
		if err != nil {
			return market.Quote{}, err
		}
		var fields map[string]string
		if err := json.Unmarshal(raw, &fields); err != nil {
			return market.Quote{}, err
		}
		return market.Quote{
			Symbol:        symbol,
			Date:          t,
			Source:        Source,
			Open:          num(fields["1. open"]),
			High:          num(fields["2. high"]),
			Low:           num(fields["3. low"]),
			Close:         num(fields["4. close"]),
			Last:          num(fields["4. close"]),
			AdjustedClose: num(fields["5. adjusted close"]),
			Volume:        num(fields[volumeField]),
			Meta: market.QuoteMeta{
				DividendAmount:   fields["7. dividend amount"],
				SplitCoefficient: fields["8. split coefficient"],
			},
			Original: raw,
		}, nil
	}

	return series.Flatten(keyed, factory, func(q market.Quote) time.Time { return q.Date })
}
