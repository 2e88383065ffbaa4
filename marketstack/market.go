package marketstack

import (
	"context"

	"github.com/finquery/finquery/market"
	"github.com/finquery/finquery/transport"
)

// todaysHoursField is where the continuation-fetched hours payload is
// merged into the exchange payload before decoding.
const todaysHoursField = "todays_hours"

type exchangePayload struct {
	MIC      string `json:"mic"`
	Name     string `json:"name"`
	Acronym  string `json:"acronym"`
	City     string `json:"city"`
	Country  string `json:"country"`
	Website  string `json:"website"`
	Timezone struct {
		Timezone string `json:"timezone"`
	} `json:"timezone"`
	TodaysHoursURL string       `json:"todays_hours_url"`
	TodaysHours    hoursPayload `json:"todays_hours"`
}

// Market looks up an exchange by MIC code. The identity payload carries a
// URL for today's hours; when present it is followed in the same logical
// call and the result embedded as Today. A Market is built fresh per call,
// never cached.
func (c *Client) Market(ctx context.Context, mic string) (market.Market, error) {
	cont := &transport.Continuation{
		Select: transport.StringField("todays_hours_url"),
		Into:   todaysHoursField,
	}

	payload, err := c.classify(ctx, c.api.Fetch(ctx, "exchanges/"+mic, nil), cont)
	if err != nil {
		return market.Market{}, err
	}

	var ex exchangePayload
	if err := decode(payload, &ex); err != nil {
		return market.Market{}, err
	}

	m := market.Market{
		MIC:      ex.MIC,
		Name:     ex.Name,
		Acronym:  ex.Acronym,
		City:     ex.City,
		Country:  ex.Country,
		Timezone: ex.Timezone.Timezone,
		Website:  ex.Website,
	}

	if _, merged := payload[todaysHoursField]; merged {
		today, err := ex.TodaysHours.toDomain()
		if err != nil {
			return market.Market{}, err
		}
		m.Today = today
	}

	return m, nil
}
