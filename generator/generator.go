package generator

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/icrowley/fake"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	yaml "gopkg.in/yaml.v2"

	"github.com/mattermost/flight-analysis/loader"
	"github.com/mattermost/flight-analysis/randutil"
	"github.com/mattermost/flight-analysis/ticket"
)

const (
	SchemaWallClock = "wallclock"
	SchemaInstants  = "instants"

	dateLayout    = "02.01.06"
	instantLayout = "2006-01-02T15:04:05"
)

// DefaultCarriers is used when Config.Carriers is empty.
var DefaultCarriers = []randutil.Choice{
	{Weight: 40, Item: "SU"},
	{Weight: 25, Item: "S7"},
	{Weight: 20, Item: "TK"},
	{Weight: 15, Item: "BA"},
}

type Config struct {
	Count  int
	Schema string
	Route  ticket.Route
	// NoisePercent of the tickets fly a random other route.
	NoisePercent int
	// RandomCarriers adds that many carriers named after fake companies.
	RandomCarriers int
	Carriers       []randutil.Choice
	MinPrice       int
	MaxPrice       int
	MinMinutes     int
	MaxMinutes     int
	StartDate      time.Time
}

type WallClockRecord struct {
	Origin          string `json:"origin" yaml:"origin"`
	OriginName      string `json:"origin_name" yaml:"origin_name"`
	Destination     string `json:"destination" yaml:"destination"`
	DestinationName string `json:"destination_name" yaml:"destination_name"`
	DepartureDate   string `json:"departure_date" yaml:"departure_date"`
	DepartureTime   string `json:"departure_time" yaml:"departure_time"`
	ArrivalDate     string `json:"arrival_date" yaml:"arrival_date"`
	ArrivalTime     string `json:"arrival_time" yaml:"arrival_time"`
	Carrier         string `json:"carrier" yaml:"carrier"`
	Stops           int    `json:"stops" yaml:"stops"`
	Price           int    `json:"price" yaml:"price"`
}

type InstantsRecord struct {
	Carrier         string  `json:"carrier" yaml:"carrier"`
	DepartureCity   string  `json:"departureCity" yaml:"departureCity"`
	DestinationCity string  `json:"destinationCity" yaml:"destinationCity"`
	DepartureTime   string  `json:"departureTime" yaml:"departureTime"`
	ArrivalTime     string  `json:"arrivalTime" yaml:"arrivalTime"`
	Price           float64 `json:"price" yaml:"price"`
}

// Document is either a tickets object or a flights list, depending on the
// schema it was generated with.
type Document struct {
	Schema  string
	Tickets []WallClockRecord
	Flights []InstantsRecord
}

type ticketsDocument struct {
	Tickets []WallClockRecord `json:"tickets" yaml:"tickets"`
}

func (c *Config) setDefaultsIfRequired() {
	if c.Schema == "" {
		c.Schema = SchemaWallClock
	}
	if c.Route.Origin == "" {
		c.Route.Origin = "VVO"
	}
	if c.Route.Destination == "" {
		c.Route.Destination = "TLV"
	}
	if len(c.Carriers) == 0 {
		c.Carriers = DefaultCarriers
	}
	if c.MaxPrice == 0 {
		c.MinPrice, c.MaxPrice = 10000, 30000
	}
	if c.MaxMinutes == 0 {
		c.MinMinutes, c.MaxMinutes = 300, 1200
	}
	if c.StartDate.IsZero() {
		c.StartDate = time.Date(2018, 5, 12, 0, 0, 0, 0, time.UTC)
	}
}

func (c *Config) validate() error {
	switch {
	case c.Count < 0:
		return errors.New("count must not be negative")
	case c.Schema != SchemaWallClock && c.Schema != SchemaInstants:
		return errors.Errorf("unexpected schema: %s", c.Schema)
	case c.NoisePercent < 0 || c.NoisePercent > 100:
		return errors.New("noise percent must be between 0 and 100")
	case c.MinPrice < 0 || c.MinPrice > c.MaxPrice:
		return errors.New("bad price range")
	case c.MinMinutes < 1 || c.MinMinutes > c.MaxMinutes:
		return errors.New("bad flight time range")
	}
	return nil
}

// Generate builds a random document following the config.
func Generate(config Config) (*Document, error) {
	config.setDefaultsIfRequired()
	if err := config.validate(); err != nil {
		return nil, err
	}

	carriers := append([]randutil.Choice(nil), config.Carriers...)
	for i := 0; i < config.RandomCarriers; i++ {
		carriers = append(carriers, randutil.Choice{Weight: 10, Item: carrierCode(fake.Company())})
	}

	originName, destinationName := fake.City(), fake.City()

	document := &Document{Schema: config.Schema}
	for i := 0; i < config.Count; i++ {
		f, err := newFlight(&config, carriers)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to generate ticket %d", i)
		}

		if f.route == config.Route {
			f.originName, f.destinationName = originName, destinationName
		}

		switch config.Schema {
		case SchemaWallClock:
			document.Tickets = append(document.Tickets, f.wallClock())
		case SchemaInstants:
			document.Flights = append(document.Flights, f.instants())
		}
	}

	logrus.WithFields(logrus.Fields{
		"schema":  config.Schema,
		"tickets": config.Count,
		"route":   config.Route.String(),
	}).Debug("generated tickets")

	return document, nil
}

// Write encodes the document in the given format.
func (d *Document) Write(output io.Writer, format loader.Format) error {
	var value interface{}
	if d.Schema == SchemaInstants {
		value = append([]InstantsRecord{}, d.Flights...)
	} else {
		value = ticketsDocument{Tickets: append([]WallClockRecord{}, d.Tickets...)}
	}

	switch format {
	case loader.FormatYAML:
		data, err := yaml.Marshal(value)
		if err != nil {
			return errors.Wrap(err, "failed to encode yaml")
		}
		if _, err := output.Write(data); err != nil {
			return errors.Wrap(err, "failed to write document")
		}
	default:
		encoder := json.NewEncoder(output)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(value); err != nil {
			return errors.Wrap(err, "failed to encode json")
		}
	}

	return nil
}

type flight struct {
	carrier         string
	route           ticket.Route
	originName      string
	destinationName string
	departure       time.Time
	elapsed         time.Duration
	stops           int
	price           int
}

func newFlight(config *Config, carriers []randutil.Choice) (*flight, error) {
	choice, err := randutil.WeightedChoice(carriers)
	if err != nil {
		return nil, err
	}

	f := &flight{carrier: choice.Item, route: config.Route}

	noise, err := randutil.IntRange(0, 100)
	if err != nil {
		return nil, err
	}
	if noise < config.NoisePercent {
		if f.route, err = otherRoute(config.Route); err != nil {
			return nil, err
		}
		f.originName, f.destinationName = fake.City(), fake.City()
	}

	days, err := randutil.IntRange(0, 30)
	if err != nil {
		return nil, err
	}
	minuteOfDay, err := randutil.IntRange(0, 24*60)
	if err != nil {
		return nil, err
	}
	minutes, err := randutil.IntRange(config.MinMinutes, config.MaxMinutes+1)
	if err != nil {
		return nil, err
	}
	if f.stops, err = randutil.IntRange(0, 4); err != nil {
		return nil, err
	}
	if f.price, err = randutil.IntRange(config.MinPrice, config.MaxPrice+1); err != nil {
		return nil, err
	}

	f.departure = config.StartDate.AddDate(0, 0, days).Add(time.Duration(minuteOfDay) * time.Minute)
	f.elapsed = time.Duration(minutes) * time.Minute

	return f, nil
}

func otherRoute(route ticket.Route) (ticket.Route, error) {
	for {
		origin, err := randutil.Letters(3)
		if err != nil {
			return ticket.Route{}, err
		}
		destination, err := randutil.Letters(3)
		if err != nil {
			return ticket.Route{}, err
		}
		other := ticket.Route{Origin: origin, Destination: destination}
		if other != route {
			return other, nil
		}
	}
}

func (f *flight) wallClock() WallClockRecord {
	arrival := f.departure.Add(f.elapsed)
	return WallClockRecord{
		Origin:          f.route.Origin,
		OriginName:      f.originName,
		Destination:     f.route.Destination,
		DestinationName: f.destinationName,
		DepartureDate:   f.departure.Format(dateLayout),
		DepartureTime:   timeOfDay(f.departure),
		ArrivalDate:     arrival.Format(dateLayout),
		ArrivalTime:     timeOfDay(arrival),
		Carrier:         f.carrier,
		Stops:           f.stops,
		Price:           f.price,
	}
}

func (f *flight) instants() InstantsRecord {
	return InstantsRecord{
		Carrier:         f.carrier,
		DepartureCity:   f.route.Origin,
		DestinationCity: f.route.Destination,
		DepartureTime:   f.departure.Format(instantLayout),
		ArrivalTime:     f.departure.Add(f.elapsed).Format(instantLayout),
		Price:           float64(f.price),
	}
}

// timeOfDay formats "H:mm" without a leading zero on the hour.
func timeOfDay(t time.Time) string {
	return fmt.Sprintf("%d:%02d", t.Hour(), t.Minute())
}

// carrierCode turns a company name into a two letter code.
func carrierCode(name string) string {
	var code []rune
	for _, r := range name {
		if unicode.IsLetter(r) && r < unicode.MaxASCII {
			code = append(code, unicode.ToUpper(r))
		}
		if len(code) == 2 {
			return string(code)
		}
	}
	return "XX"
}

// String describes the document size, used in command output.
func (d *Document) String() string {
	if d.Schema == SchemaInstants {
		return fmt.Sprintf("%d flights", len(d.Flights))
	}
	return fmt.Sprintf("%d tickets", len(d.Tickets))
}

// ParseCarriers reads "SU:40,TK:20" style weights. A carrier without a
// weight gets 1.
func ParseCarriers(value string) ([]randutil.Choice, error) {
	var choices []randutil.Choice
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		choice := randutil.Choice{Item: part, Weight: 1}
		if i := strings.LastIndex(part, ":"); i >= 0 {
			choice.Item = part[:i]
			weight, err := strconv.Atoi(part[i+1:])
			if err != nil {
				return nil, errors.Wrapf(err, "invalid weight for carrier %s", choice.Item)
			}
			choice.Weight = weight
		}
		if choice.Item == "" || choice.Weight < 0 {
			return nil, errors.Errorf("invalid carrier %q", part)
		}
		choices = append(choices, choice)
	}
	return choices, nil
}
