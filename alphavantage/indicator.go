package alphavantage

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/finquery/finquery/market"
	"github.com/finquery/finquery/series"
	"github.com/finquery/finquery/transport"
)

// Interval is the bar size of an indicator or price series.
type Interval string

const (
	Interval1Min    Interval = "1min"
	Interval5Min    Interval = "5min"
	Interval15Min   Interval = "15min"
	Interval30Min   Interval = "30min"
	Interval60Min   Interval = "60min"
	IntervalDaily   Interval = "daily"
	IntervalWeekly  Interval = "weekly"
	IntervalMonthly Interval = "monthly"
)

// SeriesType selects which price field an indicator is computed over.
type SeriesType string

const (
	SeriesClose SeriesType = "close"
	SeriesOpen  SeriesType = "open"
	SeriesHigh  SeriesType = "high"
	SeriesLow   SeriesType = "low"
)

// Int is a convenience for filling optional indicator parameters.
func Int(v int) *int { return &v }

func intOr(p *int, def int) int {
	if p != nil {
		return *p
	}
	return def
}

type extraParam struct {
	key   string
	value string
}

// indicator runs one technical-indicator query. The base parameters are
// always present; extra carries the indicator-specific ones, already
// resolved against their defaults (a parameter is never omitted just
// because the caller left it unset).
func (c *Client) indicator(ctx context.Context, function, symbol string, interval Interval, timePeriod int, seriesType SeriesType, extra []extraParam) ([]market.IndicatorRecord, error) {
	params := url.Values{}
	params.Set("function", function)
	params.Set("symbol", symbol)
	params.Set("interval", string(interval))
	params.Set("time_period", strconv.Itoa(timePeriod))
	params.Set("series_type", string(seriesType))
	for _, p := range extra {
		params.Set(p.key, p.value)
	}

	payload, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	raw, err := section(payload, "Technical Analysis: "+function)
	if err != nil {
		return nil, err
	}

	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keyed); err != nil {
		return nil, &transport.Failure{Kind: transport.FailMalformed, Detail: err.Error(), Cause: err}
	}

	return series.Flatten(keyed, indicatorRecord, market.IndicatorRecord.When)
}

// indicatorRecord copies a bar's fields verbatim and parses its date.
func indicatorRecord(date string, raw json.RawMessage) (market.IndicatorRecord, error) {
	t, err := series.ParseBarTime(date)
	if err != nil {
		return market.IndicatorRecord{}, err
	}
	var fields map[string]string
	if err := json.Unmarshal(raw, &fields); err != nil {
		return market.IndicatorRecord{}, err
	}
	return market.IndicatorRecord{Date: t, Fields: fields}, nil
}

// SMA fetches the simple moving average series.
func (c *Client) SMA(ctx context.Context, symbol string, interval Interval, timePeriod int, seriesType SeriesType) ([]market.IndicatorRecord, error) {
	return c.indicator(ctx, "SMA", symbol, interval, timePeriod, seriesType, nil)
}

// EMA fetches the exponential moving average series.
func (c *Client) EMA(ctx context.Context, symbol string, interval Interval, timePeriod int, seriesType SeriesType) ([]market.IndicatorRecord, error) {
	return c.indicator(ctx, "EMA", symbol, interval, timePeriod, seriesType, nil)
}

// RSI fetches the relative strength index series.
func (c *Client) RSI(ctx context.Context, symbol string, interval Interval, timePeriod int, seriesType SeriesType) ([]market.IndicatorRecord, error) {
	return c.indicator(ctx, "RSI", symbol, interval, timePeriod, seriesType, nil)
}

// BBandsOptions are the optional Bollinger-band parameters. Nil fields take
// the vendor-documented defaults: 2 deviations either side, simple moving
// average (matype 0).
type BBandsOptions struct {
	NbDevUp *int
	NbDevDn *int
	MAType  *int
}

// BBands fetches the Bollinger-bands series.
func (c *Client) BBands(ctx context.Context, symbol string, interval Interval, timePeriod int, seriesType SeriesType, opts *BBandsOptions) ([]market.IndicatorRecord, error) {
	if opts == nil {
		opts = &BBandsOptions{}
	}
	extra := []extraParam{
		{"nbdevup", strconv.Itoa(intOr(opts.NbDevUp, 2))},
		{"nbdevdn", strconv.Itoa(intOr(opts.NbDevDn, 2))},
		{"matype", strconv.Itoa(intOr(opts.MAType, 0))},
	}
	return c.indicator(ctx, "BBANDS", symbol, interval, timePeriod, seriesType, extra)
}

// MACDOptions are the optional MACD periods. Nil fields take the documented
// defaults 12/26/9, with one caveat on SlowPeriod; see MACD.
type MACDOptions struct {
	FastPeriod   *int
	SlowPeriod   *int
	SignalPeriod *int
}

// MACD fetches the MACD series.
//
// Compatibility note: historically a nil SlowPeriod defaulted to the
// resolved fast period rather than the documented 26, so MACD with a custom
// fast period and no slow period emitted slowperiod equal to fastperiod.
// That behavior is preserved by default so existing consumers see identical
// queries; construct the client with WithCorrectedMACDDefaults to get 26.
func (c *Client) MACD(ctx context.Context, symbol string, interval Interval, timePeriod int, seriesType SeriesType, opts *MACDOptions) ([]market.IndicatorRecord, error) {
	if opts == nil {
		opts = &MACDOptions{}
	}
	fast := intOr(opts.FastPeriod, 12)
	slowDefault := 26
	if c.compatMACD {
		slowDefault = fast
	}
	extra := []extraParam{
		{"fastperiod", strconv.Itoa(fast)},
		{"slowperiod", strconv.Itoa(intOr(opts.SlowPeriod, slowDefault))},
		{"signalperiod", strconv.Itoa(intOr(opts.SignalPeriod, 9))},
	}
	return c.indicator(ctx, "MACD", symbol, interval, timePeriod, seriesType, extra)
}

// StochOptions are the optional stochastic-oscillator parameters. Nil
// fields take the vendor-documented defaults 5/3/3 with simple moving
// averages.
type StochOptions struct {
	FastKPeriod *int
	SlowKPeriod *int
	SlowDPeriod *int
	SlowKMAType *int
	SlowDMAType *int
}

// Stoch fetches the stochastic oscillator series.
func (c *Client) Stoch(ctx context.Context, symbol string, interval Interval, timePeriod int, seriesType SeriesType, opts *StochOptions) ([]market.IndicatorRecord, error) {
	if opts == nil {
		opts = &StochOptions{}
	}
	extra := []extraParam{
		{"fastkperiod", strconv.Itoa(intOr(opts.FastKPeriod, 5))},
		{"slowkperiod", strconv.Itoa(intOr(opts.SlowKPeriod, 3))},
		{"slowdperiod", strconv.Itoa(intOr(opts.SlowDPeriod, 3))},
		{"slowkmatype", strconv.Itoa(intOr(opts.SlowKMAType, 0))},
		{"slowdmatype", strconv.Itoa(intOr(opts.SlowDMAType, 0))},
	}
	return c.indicator(ctx, "STOCH", symbol, interval, timePeriod, seriesType, extra)
}
