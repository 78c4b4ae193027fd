// Copyright (c) 2019-present Mattermost, Inc. All Rights Reserved.
// See License.txt for license information.

package analysis

import (
	"time"

	"github.com/mattermost/flight-analysis/ticket"
)

// CarrierMin is the shortest flight seen for one carrier.
type CarrierMin struct {
	Carrier  string
	Duration time.Duration
	// Index of the ticket holding the minimum within the analysed set.
	Index int
}

// CarrierDurations maps carriers to their minimum flight duration, keeping
// carriers in the order they were first seen.
type CarrierDurations struct {
	mins         map[string]*CarrierMin
	carrierNames []string
}

func newCarrierDurations() *CarrierDurations {
	return &CarrierDurations{
		mins: make(map[string]*CarrierMin),
	}
}

func (cd *CarrierDurations) addSample(carrier string, duration time.Duration, index int) {
	if current, ok := cd.mins[carrier]; ok {
		// Equal durations keep the earlier ticket.
		if duration < current.Duration {
			current.Duration = duration
			current.Index = index
		}
		return
	}

	cd.mins[carrier] = &CarrierMin{Carrier: carrier, Duration: duration, Index: index}
	cd.carrierNames = append(cd.carrierNames, carrier)
}

// MinDurationByCarrier folds the tickets into per-carrier minimum durations
// in a single pass. Resolver errors abort the fold.
func MinDurationByCarrier(tickets []ticket.Ticket, resolver Resolver) (*CarrierDurations, error) {
	cd := newCarrierDurations()
	for i, t := range tickets {
		duration, err := resolver.Resolve(t)
		if err != nil {
			return nil, err
		}
		cd.addSample(t.Carrier, duration, i)
	}

	return cd, nil
}

// Len returns the number of carriers.
func (cd *CarrierDurations) Len() int {
	if cd == nil {
		return 0
	}
	return len(cd.carrierNames)
}

// Carriers returns the carriers in first-seen order.
func (cd *CarrierDurations) Carriers() []string {
	if cd == nil {
		return nil
	}
	return append([]string(nil), cd.carrierNames...)
}

// Min returns the minimum duration for the carrier.
func (cd *CarrierDurations) Min(carrier string) (time.Duration, bool) {
	if cd == nil {
		return 0, false
	}
	min, ok := cd.mins[carrier]
	if !ok {
		return 0, false
	}
	return min.Duration, true
}

// Entries returns a copy of every carrier minimum in first-seen order.
func (cd *CarrierDurations) Entries() []CarrierMin {
	if cd == nil {
		return nil
	}
	entries := make([]CarrierMin, 0, len(cd.carrierNames))
	for _, carrier := range cd.carrierNames {
		entries = append(entries, *cd.mins[carrier])
	}
	return entries
}

// Merge combines two partial results computed over consecutive shards of the
// same ticket set. other's indexes are offset by offset. The receiver's
// carriers come first and the receiver wins ties, so merging shards in order
// gives the same result as a single pass. Neither input is modified.
func (cd *CarrierDurations) Merge(other *CarrierDurations, offset int) *CarrierDurations {
	merged := newCarrierDurations()
	for _, entry := range cd.Entries() {
		merged.addSample(entry.Carrier, entry.Duration, entry.Index)
	}
	for _, entry := range other.Entries() {
		merged.addSample(entry.Carrier, entry.Duration, entry.Index+offset)
	}

	return merged
}
