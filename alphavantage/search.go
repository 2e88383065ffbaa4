package alphavantage

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/finquery/finquery/market"
	"github.com/finquery/finquery/transport"
)

type searchHit struct {
	Symbol      string `json:"1. symbol"`
	Name        string `json:"2. name"`
	Type        string `json:"3. type"`
	Region      string `json:"4. region"`
	MarketOpen  string `json:"5. marketOpen"`
	MarketClose string `json:"6. marketClose"`
	Timezone    string `json:"7. timezone"`
	Currency    string `json:"8. currency"`
	MatchScore  string `json:"9. matchScore"`
}

// Search looks up symbols matching the given keywords. Hits are passed
// through in the vendor's own relevance order.
func (c *Client) Search(ctx context.Context, keywords string) ([]market.Match, error) {
	params := url.Values{}
	params.Set("function", "SYMBOL_SEARCH")
	params.Set("keywords", keywords)

	payload, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	raw, err := section(payload, "bestMatches")
	if err != nil {
		return nil, err
	}

	var hits []searchHit
	if err := json.Unmarshal(raw, &hits); err != nil {
		return nil, &transport.Failure{Kind: transport.FailMalformed, Detail: err.Error(), Cause: err}
	}

	matches := make([]market.Match, 0, len(hits))
	for _, h := range hits {
		matches = append(matches, market.Match{
			Symbol:      h.Symbol,
			Name:        h.Name,
			Type:        h.Type,
			Region:      h.Region,
			MarketOpen:  h.MarketOpen,
			MarketClose: h.MarketClose,
			Timezone:    h.Timezone,
			Currency:    h.Currency,
			MatchScore:  h.MatchScore,
		})
	}
	return matches, nil
}
