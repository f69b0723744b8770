package weather

import (
	"time"
)

// Category is the normalized high-level weather category of a Condition.
type Category string

const (
	CategoryClear        Category = "Clear"
	CategoryClouds       Category = "Clouds"
	CategoryAtmosphere   Category = "Atmosphere"
	CategoryDrizzle      Category = "Drizzle"
	CategoryRain         Category = "Rain"
	CategorySnow         Category = "Snow"
	CategoryThunderstorm Category = "Thunderstorm"
	CategoryUnknown      Category = "Unknown"
)

// Condition is a normalized weather condition derived from a provider code.
type Condition struct {
	Category    Category `json:"category"`
	Description string   `json:"description"`
	IconKey     string   `json:"iconKey"` // e.g. "10d"
	ID          int      `json:"id"`
}

// Place is the result of resolving a free-text query to a location.
// Both the current-weather and the forecast fetch of one search use the same Place.
type Place struct {
	DisplayName string  `json:"name"`
	Country     string  `json:"country"`
	CountryName string  `json:"countryName,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// Wind is a speed/direction pair as reported by the provider.
type Wind struct {
	Speed     float64 `json:"speed"`
	Direction float64 `json:"deg"`
}

// CurrentWeather is the normalized "right now" view for a place.
type CurrentWeather struct {
	Place       Place     `json:"place"`
	Temperature float64   `json:"temp"`
	FeelsLike   float64   `json:"feelsLike"`
	TempMin     float64   `json:"tempMin"`
	TempMax     float64   `json:"tempMax"`
	Humidity    float64   `json:"humidity"`
	Pressure    float64   `json:"pressure"`
	Wind        Wind      `json:"wind"`
	Condition   Condition `json:"condition"`
	ObservedAt  time.Time `json:"observedAt"`

	// Approximations: the provider does not report these.
	SunriseApprox    time.Time `json:"sunrise"`
	SunsetApprox     time.Time `json:"sunset"`
	VisibilityMeters int       `json:"visibility"`
}

// ForecastSample is one point of the 3-hour forecast series.
type ForecastSample struct {
	Timestamp   time.Time `json:"timestamp"` // provider-local
	Temperature float64   `json:"temp"`
	FeelsLike   float64   `json:"feelsLike"`
	TempMin     float64   `json:"tempMin"`
	TempMax     float64   `json:"tempMax"`
	Humidity    float64   `json:"humidity"`
	Pressure    float64   `json:"pressure"`
	Wind        Wind      `json:"wind"`
	PrecipProb  float64   `json:"precipitationProbability"`
	Condition   Condition `json:"condition"`
}

// DailySummary collapses the samples of one provider-local calendar day.
type DailySummary struct {
	Day       string    `json:"date"` // yyyy-mm-dd
	Timestamp time.Time `json:"timestamp"`
	TempMin   float64   `json:"tempMin"`
	TempMax   float64   `json:"tempMax"`
	Condition Condition `json:"condition"`
	Wind      Wind      `json:"wind"`
}

// Report is the complete result of one search.
type Report struct {
	Place    Place            `json:"place"`
	Current  CurrentWeather   `json:"current"`
	Forecast []ForecastSample `json:"forecast"`
	Daily    []DailySummary   `json:"daily"`
}

// Dashboard is the display state held for one session.
type Dashboard struct {
	Session    string    `json:"session"`
	Generation uint64    `json:"generation"`
	Query      string    `json:"query"`
	Report     *Report   `json:"report,omitempty"`
	Error      string    `json:"error,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
