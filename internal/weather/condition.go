package weather

import (
	"fmt"
	"math"
	"strings"

	"github.com/i474232898/weather-dashboard/internal/common"
)

const iconURLTemplate = "https://openweathermap.org/img/wn/%s@2x.png"

// VisibilityDefaultMeters is reported because the provider has no visibility field.
const VisibilityDefaultMeters = 10000

type conditionEntry struct {
	category    Category
	description string
	icon        string
	id          int
}

var unknownCondition = conditionEntry{CategoryUnknown, "unknown weather", "03", 804}

// WMO weather interpretation codes as used by Open-Meteo.
var conditionTable = map[int]conditionEntry{
	0:  {CategoryClear, "clear sky", "01", 800},
	1:  {CategoryClear, "mainly clear", "01", 801},
	2:  {CategoryClouds, "partly cloudy", "02", 802},
	3:  {CategoryClouds, "overcast", "04", 803},
	45: {CategoryAtmosphere, "fog", "50", 741},
	48: {CategoryAtmosphere, "fog", "50", 741},
	51: {CategoryDrizzle, "drizzle", "09", 300},
	53: {CategoryDrizzle, "drizzle", "09", 300},
	55: {CategoryDrizzle, "drizzle", "09", 300},
	56: {CategoryDrizzle, "freezing drizzle", "09", 301},
	57: {CategoryDrizzle, "freezing drizzle", "09", 301},
	61: {CategoryRain, "rain", "10", 500},
	63: {CategoryRain, "rain", "10", 500},
	65: {CategoryRain, "rain", "10", 500},
	66: {CategoryRain, "freezing rain", "13", 511},
	67: {CategoryRain, "freezing rain", "13", 511},
	71: {CategorySnow, "snow", "13", 600},
	73: {CategorySnow, "snow", "13", 600},
	75: {CategorySnow, "snow", "13", 600},
	77: {CategorySnow, "snow grains", "13", 601},
	80: {CategoryRain, "rain showers", "09", 520},
	81: {CategoryRain, "rain showers", "09", 520},
	82: {CategoryRain, "rain showers", "09", 520},
	85: {CategorySnow, "snow showers", "13", 620},
	86: {CategorySnow, "snow showers", "13", 620},
	95: {CategoryThunderstorm, "thunderstorm", "11", 200},
	96: {CategoryThunderstorm, "thunderstorm with hail", "11", 202},
	99: {CategoryThunderstorm, "thunderstorm with hail", "11", 202},
}

// MapCode maps a provider weather code to a Condition. Codes missing from the
// table map to the Unknown condition.
func MapCode(code int, isDay bool) Condition {
	e, ok := conditionTable[code]
	if !ok {
		e = unknownCondition
	}

	suffix := "n"
	if isDay {
		suffix = "d"
	}

	return Condition{
		Category:    e.category,
		Description: e.description,
		IconKey:     e.icon + suffix,
		ID:          e.id,
	}
}

// IsNight reports whether the condition carries a night icon.
func (c Condition) IsNight() bool {
	return strings.HasSuffix(c.IconKey, "n")
}

// IconURL builds the icon asset URL for an icon key.
func IconURL(iconKey string) string {
	return fmt.Sprintf(iconURLTemplate, iconKey)
}

// BackgroundClass picks the dashboard background for a condition.
func BackgroundClass(c Condition) string {
	category := strings.ToLower(string(c.Category))
	switch {
	case common.HasAny(category, "rain", "drizzle"):
		return "weather-gradient-rain"
	case common.HasAny(category, "thunderstorm"):
		return "weather-gradient-storm"
	case c.IsNight():
		return "weather-gradient-night"
	default:
		return "weather-gradient-day"
	}
}

// FormatTemperature renders a Celsius value rounded to whole degrees.
func FormatTemperature(temp float64) string {
	return fmt.Sprintf("%d°C", int(math.Round(temp)))
}
