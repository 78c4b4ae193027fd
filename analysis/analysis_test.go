package analysis_test

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattermost/flight-analysis/analysis"
	"github.com/mattermost/flight-analysis/ticket"
)

var vvoTlv = ticket.Route{Origin: "VVO", Destination: "TLV"}

func wallClock(carrier, origin, destination, departure, arrival string, price float64) ticket.Ticket {
	return ticket.Ticket{
		Carrier:     carrier,
		Origin:      origin,
		Destination: destination,
		Price:       price,
		Schedule: ticket.WallClock{
			DepartureDate: "12.05.18",
			DepartureTime: departure,
			ArrivalDate:   "12.05.18",
			ArrivalTime:   arrival,
		},
	}
}

func instants(carrier string, departure time.Time, elapsed time.Duration, price float64) ticket.Ticket {
	return ticket.Ticket{
		Carrier:     carrier,
		Origin:      "VVO",
		Destination: "TLV",
		Price:       price,
		Schedule:    ticket.Instants{Departure: departure, Arrival: departure.Add(elapsed)},
	}
}

func TestFilterRoute(t *testing.T) {
	tickets := []ticket.Ticket{
		wallClock("SU", "VVO", "TLV", "9:00", "10:00", 100),
		wallClock("S7", "VVO", "UFA", "9:00", "10:00", 200),
		wallClock("TK", "VVO", "TLV", "9:00", "10:00", 300),
		wallClock("BA", "TLV", "VVO", "9:00", "10:00", 400),
		wallClock("SU", "VVO", "TLV", "9:00", "10:00", 500),
	}

	filtered := analysis.FilterRoute(tickets, vvoTlv)
	require.Len(t, filtered, 3)
	assert.Equal(t, tickets[0], filtered[0])
	assert.Equal(t, tickets[2], filtered[1])
	assert.Equal(t, tickets[4], filtered[2])

	t.Run("no matches", func(t *testing.T) {
		filtered := analysis.FilterRoute(tickets, ticket.Route{Origin: "LED", Destination: "TLV"})
		assert.NotNil(t, filtered)
		assert.Empty(t, filtered)
	})

	t.Run("no tickets", func(t *testing.T) {
		assert.Empty(t, analysis.FilterRoute(nil, vvoTlv))
	})
}

func TestScheduleResolver(t *testing.T) {
	departure := time.Date(2018, 5, 12, 16, 20, 0, 0, time.UTC)

	testCases := []struct {
		Description string
		Ticket      ticket.Ticket

		ExpectedDuration time.Duration
		ExpectedField    string
	}{
		{"instants", instants("SU", departure, 6*time.Hour+35*time.Minute, 1), 6*time.Hour + 35*time.Minute, ""},
		{"instants across days", instants("SU", departure, 30*time.Hour, 1), 30 * time.Hour, ""},
		{"instants with arrival before departure", instants("SU", departure, -2*time.Hour, 1), -2 * time.Hour, ""},
		{"wall clock", wallClock("SU", "VVO", "TLV", "16:20", "22:10", 1), 5*time.Hour + 50*time.Minute, ""},
		{"wall clock without leading zero", wallClock("SU", "VVO", "TLV", "9:05", "14:05", 1), 5 * time.Hour, ""},
		{"wall clock with leading zero", wallClock("SU", "VVO", "TLV", "09:05", "10:00", 1), 55 * time.Minute, ""},
		{"wall clock across midnight", wallClock("SU", "VVO", "TLV", "23:50", "0:10", 1), -(23*time.Hour + 40*time.Minute), ""},
		{"malformed departure", wallClock("SU", "VVO", "TLV", "25:99", "10:00", 1), 0, "departure_time"},
		{"malformed arrival", wallClock("SU", "VVO", "TLV", "10:00", "10h30", 1), 0, "arrival_time"},
		{"empty arrival", wallClock("SU", "VVO", "TLV", "10:00", "", 1), 0, "arrival_time"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Description, func(t *testing.T) {
			duration, err := analysis.ScheduleResolver{}.Resolve(testCase.Ticket)
			if testCase.ExpectedField != "" {
				require.Error(t, err)
				parseErr, ok := err.(*analysis.ParseError)
				require.True(t, ok, "expected a ParseError, got %T", err)
				assert.Equal(t, testCase.ExpectedField, parseErr.Field)
				assert.Equal(t, "SU", parseErr.Carrier)
				assert.Equal(t, vvoTlv, parseErr.Route)
				assert.Contains(t, err.Error(), "VVO->TLV")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, testCase.ExpectedDuration, duration)
		})
	}

	t.Run("missing schedule", func(t *testing.T) {
		_, err := analysis.ScheduleResolver{}.Resolve(ticket.Ticket{Carrier: "SU"})
		assert.Error(t, err)
	})
}

func TestMinDurationByCarrier(t *testing.T) {
	t.Run("minimum regardless of order", func(t *testing.T) {
		orders := [][]string{
			{"9:00", "10:30", "9:00", "9:45", "9:00", "11:00"},
			{"9:00", "9:45", "9:00", "11:00", "9:00", "10:30"},
			{"9:00", "11:00", "9:00", "10:30", "9:00", "9:45"},
		}
		for _, times := range orders {
			tickets := []ticket.Ticket{
				wallClock("SU", "VVO", "TLV", times[0], times[1], 1),
				wallClock("SU", "VVO", "TLV", times[2], times[3], 1),
				wallClock("SU", "VVO", "TLV", times[4], times[5], 1),
			}
			durations, err := analysis.MinDurationByCarrier(tickets, analysis.ScheduleResolver{})
			require.NoError(t, err)

			min, ok := durations.Min("SU")
			require.True(t, ok)
			assert.Equal(t, 45*time.Minute, min)
			assert.Equal(t, 1, durations.Len())
		}
	})

	t.Run("first seen order", func(t *testing.T) {
		tickets := []ticket.Ticket{
			wallClock("TK", "VVO", "TLV", "9:00", "18:00", 1),
			wallClock("SU", "VVO", "TLV", "9:00", "16:00", 1),
			wallClock("TK", "VVO", "TLV", "9:00", "17:00", 1),
			wallClock("BA", "VVO", "TLV", "9:00", "19:00", 1),
		}
		durations, err := analysis.MinDurationByCarrier(tickets, analysis.ScheduleResolver{})
		require.NoError(t, err)

		assert.Equal(t, []string{"TK", "SU", "BA"}, durations.Carriers())
		assert.Equal(t, []analysis.CarrierMin{
			{Carrier: "TK", Duration: 8 * time.Hour, Index: 2},
			{Carrier: "SU", Duration: 7 * time.Hour, Index: 1},
			{Carrier: "BA", Duration: 10 * time.Hour, Index: 3},
		}, durations.Entries())
	})

	t.Run("ties keep the first ticket", func(t *testing.T) {
		tickets := []ticket.Ticket{
			wallClock("SU", "VVO", "TLV", "9:00", "12:00", 100),
			wallClock("SU", "VVO", "TLV", "8:00", "10:00", 200),
			wallClock("SU", "VVO", "TLV", "13:00", "15:00", 300),
		}
		durations, err := analysis.MinDurationByCarrier(tickets, analysis.ScheduleResolver{})
		require.NoError(t, err)

		entries := durations.Entries()
		require.Len(t, entries, 1)
		assert.Equal(t, 2*time.Hour, entries[0].Duration)
		assert.Equal(t, 1, entries[0].Index)
	})

	t.Run("empty input", func(t *testing.T) {
		durations, err := analysis.MinDurationByCarrier(nil, analysis.ScheduleResolver{})
		require.NoError(t, err)
		assert.Equal(t, 0, durations.Len())
		assert.Empty(t, durations.Carriers())

		_, ok := durations.Min("SU")
		assert.False(t, ok)
	})

	t.Run("parse failure aborts", func(t *testing.T) {
		tickets := []ticket.Ticket{
			wallClock("SU", "VVO", "TLV", "9:00", "12:00", 100),
			wallClock("TK", "VVO", "TLV", "25:99", "10:00", 200),
		}
		durations, err := analysis.MinDurationByCarrier(tickets, analysis.ScheduleResolver{})
		require.Error(t, err)
		assert.Nil(t, durations)
	})
}

func TestCarrierDurationsMerge(t *testing.T) {
	tickets := []ticket.Ticket{
		wallClock("SU", "VVO", "TLV", "9:00", "12:00", 1),
		wallClock("TK", "VVO", "TLV", "9:00", "11:00", 1),
		wallClock("SU", "VVO", "TLV", "9:00", "11:00", 1),
		wallClock("BA", "VVO", "TLV", "9:00", "13:00", 1),
		wallClock("TK", "VVO", "TLV", "9:00", "11:00", 1),
		wallClock("SU", "VVO", "TLV", "9:00", "11:00", 1),
		wallClock("BA", "VVO", "TLV", "9:00", "10:00", 1),
	}

	fold := func(tickets []ticket.Ticket) *analysis.CarrierDurations {
		durations, err := analysis.MinDurationByCarrier(tickets, analysis.ScheduleResolver{})
		require.NoError(t, err)
		return durations
	}

	whole := fold(tickets)
	a, b, c := fold(tickets[:2]), fold(tickets[2:5]), fold(tickets[5:])

	left := a.Merge(b, 2).Merge(c, 5)
	right := a.Merge(b.Merge(c, 3), 2)

	assert.Equal(t, whole.Entries(), left.Entries())
	assert.Equal(t, whole.Entries(), right.Entries())

	// Inputs are left untouched.
	assert.Equal(t, []string{"SU", "TK"}, a.Carriers())
}

func TestSummarizePrices(t *testing.T) {
	testCases := []struct {
		Description string
		Prices      []float64

		ExpectedMean       float64
		ExpectedMedian     float64
		ExpectedDifference float64
	}{
		{"even count", []float64{100, 200, 300, 400}, 250, 250, 0},
		{"odd count", []float64{100, 200, 300}, 200, 200, 0},
		{"skewed low", []float64{100, 500, 600}, 400, 500, -100},
		{"unsorted", []float64{600, 100, 500}, 400, 500, -100},
		{"skewed high", []float64{100, 200, 900}, 400, 200, 200},
		{"single price", []float64{12400}, 12400, 12400, 0},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Description, func(t *testing.T) {
			tickets := make([]ticket.Ticket, 0, len(testCase.Prices))
			for _, price := range testCase.Prices {
				tickets = append(tickets, wallClock("SU", "VVO", "TLV", "9:00", "10:00", price))
			}

			summary, err := analysis.SummarizePrices(tickets)
			require.NoError(t, err)
			assert.Equal(t, len(testCase.Prices), summary.Count)
			assert.InDelta(t, testCase.ExpectedMean, summary.Mean, 1e-9)
			assert.InDelta(t, testCase.ExpectedMedian, summary.Median, 1e-9)
			assert.InDelta(t, testCase.ExpectedDifference, summary.Difference, 1e-9)
		})
	}

	t.Run("min and max", func(t *testing.T) {
		summary, err := analysis.SummarizePrices([]ticket.Ticket{
			wallClock("SU", "VVO", "TLV", "9:00", "10:00", 300),
			wallClock("SU", "VVO", "TLV", "9:00", "10:00", 100),
			wallClock("SU", "VVO", "TLV", "9:00", "10:00", 200),
		})
		require.NoError(t, err)
		assert.Equal(t, 100.0, summary.Min)
		assert.Equal(t, 300.0, summary.Max)
	})

	t.Run("no prices", func(t *testing.T) {
		_, err := analysis.SummarizePrices(nil)
		assert.Equal(t, analysis.ErrNoPriceData, err)
	})
}

func TestAnalyze(t *testing.T) {
	t.Run("route with tickets", func(t *testing.T) {
		tickets := []ticket.Ticket{
			wallClock("SU", "VVO", "TLV", "9:00", "16:00", 100),
			wallClock("S7", "VVO", "UFA", "9:00", "10:00", 9999),
			wallClock("TK", "VVO", "TLV", "9:00", "15:30", 500),
			wallClock("SU", "VVO", "TLV", "10:00", "16:45", 600),
		}

		result, err := analysis.Analyze(tickets, vvoTlv, nil)
		require.NoError(t, err)
		assert.True(t, result.HasTickets())
		assert.Equal(t, 4, result.NumTotal)
		assert.Equal(t, 3, result.NumRoute)
		assert.Equal(t, []string{"SU", "TK"}, result.Durations.Carriers())

		min, _ := result.Durations.Min("SU")
		assert.Equal(t, 6*time.Hour+45*time.Minute, min)

		require.NotNil(t, result.Prices)
		assert.InDelta(t, -100.0, result.Prices.Difference, 1e-9)
	})

	t.Run("single ticket", func(t *testing.T) {
		tk := instants("SU", time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), 13*time.Hour+5*time.Minute, 25000)

		result, err := analysis.Analyze([]ticket.Ticket{tk}, vvoTlv, analysis.ScheduleResolver{})
		require.NoError(t, err)
		require.Equal(t, 1, result.Durations.Len())

		min, ok := result.Durations.Min("SU")
		require.True(t, ok)
		assert.Equal(t, 13*time.Hour+5*time.Minute, min)

		require.NotNil(t, result.Prices)
		assert.Equal(t, 0.0, result.Prices.Difference)
	})

	t.Run("no tickets for route", func(t *testing.T) {
		tickets := []ticket.Ticket{
			wallClock("S7", "VVO", "UFA", "9:00", "10:00", 9999),
		}

		result, err := analysis.Analyze(tickets, vvoTlv, nil)
		require.NoError(t, err)
		assert.False(t, result.HasTickets())
		assert.Equal(t, 0, result.Durations.Len())
		assert.Nil(t, result.Prices)
	})

	t.Run("malformed time aborts", func(t *testing.T) {
		tickets := []ticket.Ticket{
			wallClock("SU", "VVO", "TLV", "9:00", "16:00", 100),
			wallClock("TK", "VVO", "TLV", "25:99", "16:00", 100),
		}

		result, err := analysis.Analyze(tickets, vvoTlv, nil)
		require.Error(t, err)
		assert.Nil(t, result)

		parseErr, ok := errors.Cause(err).(*analysis.ParseError)
		require.True(t, ok)
		assert.Equal(t, "TK", parseErr.Carrier)
		assert.Equal(t, "25:99", parseErr.Value)
	})

	t.Run("malformed time off route is ignored", func(t *testing.T) {
		tickets := []ticket.Ticket{
			wallClock("SU", "VVO", "TLV", "9:00", "16:00", 100),
			wallClock("TK", "LED", "TLV", "25:99", "16:00", 100),
		}

		_, err := analysis.Analyze(tickets, vvoTlv, nil)
		assert.NoError(t, err)
	})
}
