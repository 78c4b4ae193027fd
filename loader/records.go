package loader

import (
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"github.com/mattermost/flight-analysis/analysis"
	"github.com/mattermost/flight-analysis/ticket"
)

// InstantLayouts are the accepted layouts for combined date-time values.
var InstantLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
}

// wallClockRecord is the schema with separate date and time-of-day strings.
type wallClockRecord struct {
	Origin          string  `mapstructure:"origin"`
	OriginName      string  `mapstructure:"origin_name"`
	Destination     string  `mapstructure:"destination"`
	DestinationName string  `mapstructure:"destination_name"`
	DepartureDate   string  `mapstructure:"departure_date"`
	DepartureTime   string  `mapstructure:"departure_time"`
	ArrivalDate     string  `mapstructure:"arrival_date"`
	ArrivalTime     string  `mapstructure:"arrival_time"`
	Carrier         string  `mapstructure:"carrier"`
	Stops           int     `mapstructure:"stops"`
	Price           float64 `mapstructure:"price"`
}

var wallClockRequired = []string{"origin", "destination", "departure_time", "arrival_time", "carrier", "price"}

// instantsRecord is the schema with combined departure and arrival
// date-times. The date-times are parsed after decoding so that errors can
// name the carrier and route.
type instantsRecord struct {
	Carrier         string  `mapstructure:"carrier"`
	DepartureCity   string  `mapstructure:"departureCity"`
	DestinationCity string  `mapstructure:"destinationCity"`
	DepartureTime   string  `mapstructure:"departureTime"`
	ArrivalTime     string  `mapstructure:"arrivalTime"`
	Price           float64 `mapstructure:"price"`
}

var instantsRequired = []string{"carrier", "departureCity", "destinationCity", "departureTime", "arrivalTime", "price"}

// instantsAliases maps snake_case keys onto the instants schema.
var instantsAliases = map[string]string{
	"departure_city":   "departureCity",
	"destination_city": "destinationCity",
	"departure_time":   "departureTime",
	"arrival_time":     "arrivalTime",
}

func isWallClock(fields map[string]interface{}) bool {
	_, hasDeparture := fields["departure_date"]
	_, hasArrival := fields["arrival_date"]
	return hasDeparture || hasArrival
}

func decodeRecord(fields map[string]interface{}) (ticket.Ticket, error) {
	if isWallClock(fields) {
		return decodeWallClock(fields)
	}
	return decodeInstants(fields)
}

func decodeWallClock(fields map[string]interface{}) (ticket.Ticket, error) {
	if err := requireKeys(fields, wallClockRequired); err != nil {
		return ticket.Ticket{}, err
	}

	var record wallClockRecord
	if err := decode(fields, &record); err != nil {
		return ticket.Ticket{}, err
	}

	t := ticket.Ticket{
		Carrier:         record.Carrier,
		Origin:          record.Origin,
		OriginName:      record.OriginName,
		Destination:     record.Destination,
		DestinationName: record.DestinationName,
		Stops:           record.Stops,
		Price:           record.Price,
		Schedule: ticket.WallClock{
			DepartureDate: record.DepartureDate,
			DepartureTime: record.DepartureTime,
			ArrivalDate:   record.ArrivalDate,
			ArrivalTime:   record.ArrivalTime,
		},
	}

	return t, validate(t)
}

func decodeInstants(fields map[string]interface{}) (ticket.Ticket, error) {
	normalized := make(map[string]interface{}, len(fields))
	for key, value := range fields {
		if alias, ok := instantsAliases[key]; ok {
			key = alias
		}
		normalized[key] = value
	}

	if err := requireKeys(normalized, instantsRequired); err != nil {
		return ticket.Ticket{}, err
	}

	var record instantsRecord
	if err := decode(normalized, &record); err != nil {
		return ticket.Ticket{}, err
	}

	t := ticket.Ticket{
		Carrier:     record.Carrier,
		Origin:      record.DepartureCity,
		Destination: record.DestinationCity,
		Price:       record.Price,
	}
	if err := validate(t); err != nil {
		return ticket.Ticket{}, err
	}

	departure, err := parseInstantField(t, "departureTime", record.DepartureTime)
	if err != nil {
		return ticket.Ticket{}, err
	}
	arrival, err := parseInstantField(t, "arrivalTime", record.ArrivalTime)
	if err != nil {
		return ticket.Ticket{}, err
	}
	t.Schedule = ticket.Instants{Departure: departure, Arrival: arrival}

	return t, nil
}

func parseInstantField(t ticket.Ticket, field, value string) (time.Time, error) {
	parsed, err := ParseInstant(value)
	if err != nil {
		return time.Time{}, &analysis.ParseError{
			Carrier: t.Carrier,
			Route:   t.Route(),
			Field:   field,
			Value:   value,
			Err:     err,
		}
	}

	return parsed, nil
}

func decode(fields map[string]interface{}, record interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: record,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create decoder")
	}

	if err := decoder.Decode(fields); err != nil {
		return errors.Wrap(err, "failed to decode record")
	}

	return nil
}

func requireKeys(fields map[string]interface{}, keys []string) error {
	for _, key := range keys {
		if value, ok := fields[key]; !ok || value == nil {
			return errors.Errorf("missing field %q", key)
		}
	}
	return nil
}

func validate(t ticket.Ticket) error {
	if t.Carrier == "" {
		return errors.New("carrier must not be empty")
	}
	if t.Price < 0 {
		return errors.Errorf("carrier %s: price must not be negative, got %v", t.Carrier, t.Price)
	}
	return nil
}

// ParseInstant parses a combined date-time value using InstantLayouts.
func ParseInstant(value string) (time.Time, error) {
	for _, layout := range InstantLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, errors.Errorf("unrecognized date-time %q", value)
}
