// Copyright (c) 2019-present Mattermost, Inc. All Rights Reserved.
// See License.txt for license information.

package analysis

import (
	"github.com/mattermost/flight-analysis/ticket"
)

// FilterRoute returns the tickets flying the given route in their original
// order. An empty result is not an error.
func FilterRoute(tickets []ticket.Ticket, route ticket.Route) []ticket.Ticket {
	filtered := make([]ticket.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if route.Matches(t) {
			filtered = append(filtered, t)
		}
	}

	return filtered
}
