// Copyright (c) 2019-present Mattermost, Inc. All Rights Reserved.
// See License.txt for license information.

package ticket

import (
	"fmt"
	"time"
)

// Ticket is a single flight offer normalized from either input schema.
// Tickets are created by the loader and never modified afterwards.
type Ticket struct {
	Carrier         string
	Origin          string
	OriginName      string
	Destination     string
	DestinationName string
	Stops           int
	Price           float64
	Schedule        Schedule
}

// Route returns the origin and destination of the ticket.
func (t Ticket) Route() Route {
	return Route{Origin: t.Origin, Destination: t.Destination}
}

func (t Ticket) String() string {
	return fmt.Sprintf("%s %s->%s %.2f", t.Carrier, t.Origin, t.Destination, t.Price)
}

// Route is an origin-destination pair used as the filter key. Each end may
// also carry a city name, which the combined date-time schema uses in place
// of a code.
type Route struct {
	Origin          string
	OriginName      string
	Destination     string
	DestinationName string
}

// Matches compares exactly, without case folding or trimming. An end matches
// when the ticket holds either its code or its name.
func (r Route) Matches(t Ticket) bool {
	return endMatches(t.Origin, r.Origin, r.OriginName) &&
		endMatches(t.Destination, r.Destination, r.DestinationName)
}

func endMatches(value, code, name string) bool {
	return value == code || (name != "" && value == name)
}

func (r Route) String() string {
	return r.Origin + "->" + r.Destination
}

// Schedule is implemented by Instants and WallClock.
type Schedule interface {
	schedule()
}

// Instants holds full departure and arrival date-times.
type Instants struct {
	Departure time.Time
	Arrival   time.Time
}

func (Instants) schedule() {}

// WallClock holds the raw date and time-of-day strings of the tickets
// schema. Times are "H:mm" and are parsed when the duration is resolved.
type WallClock struct {
	DepartureDate string
	DepartureTime string
	ArrivalDate   string
	ArrivalTime   string
}

func (WallClock) schedule() {}
