// Copyright (c) 2019-present Mattermost, Inc. All Rights Reserved.
// See License.txt for license information.

package analysis

import (
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"

	"github.com/mattermost/flight-analysis/ticket"
)

// ErrNoPriceData is returned when there are no prices to summarize.
var ErrNoPriceData = errors.New("no price data")

// PriceSummary describes the prices of a set of tickets.
type PriceSummary struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	// Difference is Mean - Median, signed.
	Difference float64
}

// Prices extracts the price of every ticket, in order.
func Prices(tickets []ticket.Ticket) []float64 {
	prices := make([]float64, 0, len(tickets))
	for _, t := range tickets {
		prices = append(prices, t.Price)
	}
	return prices
}

// SummarizePrices computes the mean, median and their difference over the
// ticket prices. The median of an even number of prices is the average of
// the two middle values.
func SummarizePrices(tickets []ticket.Ticket) (PriceSummary, error) {
	if len(tickets) == 0 {
		return PriceSummary{}, ErrNoPriceData
	}

	prices := stats.Float64Data(Prices(tickets))

	mean, err := stats.Mean(prices)
	if err != nil {
		return PriceSummary{}, errors.Wrap(err, "failed to compute mean price")
	}
	median, err := stats.Median(prices)
	if err != nil {
		return PriceSummary{}, errors.Wrap(err, "failed to compute median price")
	}
	min, err := stats.Min(prices)
	if err != nil {
		return PriceSummary{}, errors.Wrap(err, "failed to compute min price")
	}
	max, err := stats.Max(prices)
	if err != nil {
		return PriceSummary{}, errors.Wrap(err, "failed to compute max price")
	}

	return PriceSummary{
		Count:      len(prices),
		Min:        min,
		Max:        max,
		Mean:       mean,
		Median:     median,
		Difference: mean - median,
	}, nil
}
