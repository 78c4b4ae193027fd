// Copyright (c) 2019-present Mattermost, Inc. All Rights Reserved.
// See License.txt for license information.

package analysis

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/mattermost/flight-analysis/ticket"
)

// TimeOfDayLayout matches "H:mm" times such as "9:05" and "14:05".
const TimeOfDayLayout = "15:04"

// ParseError reports a departure or arrival value that could not be parsed.
type ParseError struct {
	Carrier string
	Route   ticket.Route
	Field   string
	Value   string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("carrier %s on route %s: invalid %s %q: %v", e.Carrier, e.Route, e.Field, e.Value, e.Err)
}

// Resolver computes the elapsed time of a ticket.
type Resolver interface {
	Resolve(t ticket.Ticket) (time.Duration, error)
}

// ScheduleResolver resolves both schedule variants.
//
// Instants are subtracted directly, so an arrival before the departure
// yields a negative duration. Wall clock times are subtracted on the same
// reference day without any correction for flights crossing midnight.
type ScheduleResolver struct{}

func (ScheduleResolver) Resolve(t ticket.Ticket) (time.Duration, error) {
	switch s := t.Schedule.(type) {
	case ticket.Instants:
		return s.Arrival.Sub(s.Departure), nil
	case ticket.WallClock:
		departure, err := parseTimeOfDay(t, "departure_time", s.DepartureTime)
		if err != nil {
			return 0, err
		}
		arrival, err := parseTimeOfDay(t, "arrival_time", s.ArrivalTime)
		if err != nil {
			return 0, err
		}
		return arrival.Sub(departure), nil
	case nil:
		return 0, errors.Errorf("carrier %s on route %s: missing schedule", t.Carrier, t.Route())
	default:
		return 0, errors.Errorf("carrier %s on route %s: unsupported schedule %T", t.Carrier, t.Route(), s)
	}
}

func parseTimeOfDay(t ticket.Ticket, field, value string) (time.Time, error) {
	parsed, err := time.Parse(TimeOfDayLayout, value)
	if err != nil {
		return time.Time{}, &ParseError{
			Carrier: t.Carrier,
			Route:   t.Route(),
			Field:   field,
			Value:   value,
			Err:     err,
		}
	}

	return parsed, nil
}
