package weather

import (
	"math"
	"time"
)

const (
	sunriseApproxHour = 6
	sunsetApproxHour  = 18
)

// NewCurrentWeather converts a raw forecast into the current weather view.
//
// TempMin and TempMax carry the extremes of the whole daily block, not the
// instantaneous reading. Sunrise and sunset are fixed at 06:00 and 18:00 of
// now's day in the provider zone; the provider does not supply them.
func NewCurrentWeather(place Place, raw RawForecast, now time.Time) CurrentWeather {
	loc := raw.Location
	if loc == nil {
		loc = time.UTC
	}

	tempMin, tempMax := dailyExtremes(raw.Daily)
	if math.IsInf(tempMin, 1) || math.IsInf(tempMax, -1) {
		tempMin, tempMax = raw.Current.Temperature, raw.Current.Temperature
	}

	observedAt := raw.Current.Time
	if observedAt.IsZero() {
		observedAt = now.In(loc)
	}

	local := now.In(loc)
	day := func(hour int) time.Time {
		return time.Date(local.Year(), local.Month(), local.Day(), hour, 0, 0, 0, loc)
	}

	return CurrentWeather{
		Place:       place,
		Temperature: raw.Current.Temperature,
		FeelsLike:   raw.Current.ApparentTemperature,
		TempMin:     tempMin,
		TempMax:     tempMax,
		Humidity:    raw.Current.Humidity,
		Pressure:    raw.Current.PressureMSL,
		Wind: Wind{
			Speed:     raw.Current.WindSpeed,
			Direction: raw.Current.WindDirection,
		},
		Condition:        MapCode(raw.Current.WeatherCode, raw.Current.IsDay),
		ObservedAt:       observedAt,
		SunriseApprox:    day(sunriseApproxHour),
		SunsetApprox:     day(sunsetApproxHour),
		VisibilityMeters: VisibilityDefaultMeters,
	}
}

// dailyExtremes folds min over all daily minima and max over all daily maxima.
// It returns +Inf/-Inf when the respective slice is empty.
func dailyExtremes(d RawDaily) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range d.TemperatureMin {
		lo = math.Min(lo, v)
	}
	for _, v := range d.TemperatureMax {
		hi = math.Max(hi, v)
	}
	return lo, hi
}
