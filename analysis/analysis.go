// Copyright (c) 2019-present Mattermost, Inc. All Rights Reserved.
// See License.txt for license information.

package analysis

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mattermost/flight-analysis/ticket"
)

// Result is the outcome of analysing one route.
type Result struct {
	Route     ticket.Route
	NumTotal  int
	NumRoute  int
	Durations *CarrierDurations
	// Prices is nil when the route has no price data.
	Prices *PriceSummary
}

// HasTickets reports whether any ticket matched the route.
func (r *Result) HasTickets() bool {
	return r.NumRoute > 0
}

// Analyze filters the tickets to the route and runs both aggregations over
// the filtered set. Any resolver error aborts the analysis.
func Analyze(tickets []ticket.Ticket, route ticket.Route, resolver Resolver) (*Result, error) {
	if resolver == nil {
		resolver = ScheduleResolver{}
	}

	filtered := FilterRoute(tickets, route)
	logrus.WithFields(logrus.Fields{
		"route":    route.String(),
		"total":    len(tickets),
		"matching": len(filtered),
	}).Debug("filtered tickets by route")

	durations, err := MinDurationByCarrier(filtered, resolver)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve flight durations")
	}

	result := &Result{
		Route:     route,
		NumTotal:  len(tickets),
		NumRoute:  len(filtered),
		Durations: durations,
	}

	summary, err := SummarizePrices(filtered)
	if err == ErrNoPriceData {
		logrus.WithField("route", route.String()).Debug("no price data for route")
		return result, nil
	} else if err != nil {
		return nil, err
	}
	result.Prices = &summary

	return result, nil
}
