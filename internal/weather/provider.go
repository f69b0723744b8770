package weather

import (
	"context"
	"time"
)

// RawForecast is the provider's current/daily/hourly blocks with timestamps
// already parsed in the provider-local zone. Hourly and daily fields are
// parallel slices.
type RawForecast struct {
	Location *time.Location
	Current  RawCurrent
	Daily    RawDaily
	Hourly   RawHourly
}

type RawCurrent struct {
	Time                time.Time
	Temperature         float64
	ApparentTemperature float64
	Humidity            float64
	PressureMSL         float64
	WindSpeed           float64
	WindDirection       float64
	WeatherCode         int
	IsDay               bool
}

type RawDaily struct {
	Time           []time.Time
	WeatherCode    []int
	TemperatureMax []float64
	TemperatureMin []float64
}

type RawHourly struct {
	Time                     []time.Time
	Temperature              []float64
	ApparentTemperature      []float64
	Humidity                 []float64
	PressureMSL              []float64
	WindSpeed                []float64
	WindDirection            []float64
	WeatherCode              []int
	PrecipitationProbability []float64
}

// Geocoder resolves a free-text query to its best-matching Place.
type Geocoder interface {
	Resolve(ctx context.Context, query string) (Place, error)
}

// ForecastSource fetches the raw forecast for a place.
type ForecastSource interface {
	Name() string
	FetchForecast(ctx context.Context, place Place) (RawForecast, error)
}

// Store is the contract the in-memory dashboard store must satisfy.
type Store interface {
	// Begin hands out the next generation for a session.
	Begin(session string) uint64
	// Commit saves a successful search if generation is still the newest.
	Commit(session string, generation uint64, query string, report Report) bool
	// RecordError keeps prior results and records the failure message.
	RecordError(session string, generation uint64, query string, message string) bool
	Latest(session string) (Dashboard, error)
}
