package alphavantage

import (
	"context"
	"encoding/json"
	"math"
	"net/url"

	"github.com/finquery/finquery/market"
	"github.com/finquery/finquery/series"
	"github.com/finquery/finquery/transport"
)

type globalQuote struct {
	Symbol        string `json:"01. symbol"`
	Open          string `json:"02. open"`
	High          string `json:"03. high"`
	Low           string `json:"04. low"`
	Price         string `json:"05. price"`
	Volume        string `json:"06. volume"`
	LatestDay     string `json:"07. latest trading day"`
	PreviousClose string `json:"08. previous close"`
	Change        string `json:"09. change"`
	ChangePercent string `json:"10. change percent"`
}

// Quote fetches the latest quote for a symbol. Close and Last both carry
// the vendor's single "price" field; AdjustedClose is NaN because the
// endpoint does not report one.
func (c *Client) Quote(ctx context.Context, symbol string) (market.Quote, error) {
	params := url.Values{}
	params.Set("function", "GLOBAL_QUOTE")
	params.Set("symbol", symbol)

	payload, err := c.get(ctx, params)
	if err != nil {
		return market.Quote{}, err
	}

	raw, err := section(payload, "Global Quote")
	if err != nil {
		return market.Quote{}, err
	}

	var gq globalQuote
	if err := json.Unmarshal(raw, &gq); err != nil {
		return market.Quote{}, &transport.Failure{Kind: transport.FailMalformed, Detail: err.Error(), Cause: err}
	}

	sym := gq.Symbol
	if sym == "" {
		sym = symbol
	}
	// The latest-trading-day field is occasionally absent; a zero Date is
	// preferred over failing an otherwise good quote.
	date, _ := series.ParseBarTime(gq.LatestDay)

	return market.Quote{
		Symbol:        sym,
		Date:          date,
		Source:        Source,
		Open:          num(gq.Open),
		High:          num(gq.High),
		Low:           num(gq.Low),
		Close:         num(gq.Price),
		Last:          num(gq.Price),
		AdjustedClose: math.NaN(),
		Volume:        num(gq.Volume),
		Meta: market.QuoteMeta{
			PreviousClose: gq.PreviousClose,
			Change:        gq.Change,
			ChangePercent: gq.ChangePercent,
		},
		Original: raw,
	}, nil
}
