package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

const DefaultForecastURL = "https://api.open-meteo.com/v1/forecast"

// Open-Meteo timestamps with timezone=auto and the default iso8601 timeformat.
const openMeteoTimeLayout = "2006-01-02T15:04"

// missingWeatherCode stands in for a null weather_code. It is outside the WMO
// range so it maps to the unknown condition.
const missingWeatherCode = -1

var (
	currentFields = []string{
		"temperature_2m", "apparent_temperature", "precipitation", "rain", "weather_code",
		"pressure_msl", "surface_pressure", "wind_speed_10m", "wind_direction_10m",
		"relative_humidity_2m", "is_day",
	}
	dailyFields  = []string{"weather_code", "temperature_2m_max", "temperature_2m_min"}
	hourlyFields = []string{
		"temperature_2m", "apparent_temperature", "precipitation_probability", "weather_code",
		"pressure_msl", "surface_pressure", "wind_speed_10m", "wind_direction_10m",
		"relative_humidity_2m",
	}
)

// OpenMeteoProvider implements weather.ForecastSource for Open-Meteo.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(client *http.Client, baseURL string, breaker BreakerConfig) *OpenMeteoProvider {
	if baseURL == "" {
		baseURL = DefaultForecastURL
	}
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{Client: client},
		circuit: newBreaker("openmeteo-forecast", breaker),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

type forecastPayload struct {
	Timezone             string `json:"timezone"`
	TimezoneAbbreviation string `json:"timezone_abbreviation"`
	UTCOffsetSeconds     int    `json:"utc_offset_seconds"`

	Current struct {
		Time                string  `json:"time"`
		Temperature         float64 `json:"temperature_2m"`
		RelativeHumidity    float64 `json:"relative_humidity_2m"`
		ApparentTemperature float64 `json:"apparent_temperature"`
		WeatherCode         *int    `json:"weather_code"`
		PressureMSL         float64 `json:"pressure_msl"`
		WindSpeed           float64 `json:"wind_speed_10m"`
		WindDirection       float64 `json:"wind_direction_10m"`
		IsDay               int     `json:"is_day"`
	} `json:"current"`

	Daily struct {
		Time           []string  `json:"time"`
		WeatherCode    []*int    `json:"weather_code"`
		TemperatureMax []float64 `json:"temperature_2m_max"`
		TemperatureMin []float64 `json:"temperature_2m_min"`
	} `json:"daily"`

	Hourly struct {
		Time                     []string  `json:"time"`
		Temperature              []float64 `json:"temperature_2m"`
		RelativeHumidity         []float64 `json:"relative_humidity_2m"`
		ApparentTemperature      []float64 `json:"apparent_temperature"`
		PrecipitationProbability []float64 `json:"precipitation_probability"`
		WeatherCode              []*int    `json:"weather_code"`
		PressureMSL              []float64 `json:"pressure_msl"`
		WindSpeed                []float64 `json:"wind_speed_10m"`
		WindDirection            []float64 `json:"wind_direction_10m"`
	} `json:"hourly"`
}

// FetchForecast issues one forecast request at the place's coordinates and
// leaves timezone resolution to the provider.
func (p *OpenMeteoProvider) FetchForecast(ctx context.Context, place weather.Place) (weather.RawForecast, error) {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", strconv.FormatFloat(place.Latitude, 'f', -1, 64))
		values.Set("longitude", strconv.FormatFloat(place.Longitude, 'f', -1, 64))
		values.Set("current", strings.Join(currentFields, ","))
		values.Set("daily", strings.Join(dailyFields, ","))
		values.Set("hourly", strings.Join(hourlyFields, ","))
		values.Set("timezone", "auto")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.httpCfg, p.circuit, "error fetching weather data", buildRequest)
	if err != nil {
		return weather.RawForecast{}, err
	}
	defer resp.Body.Close()

	var payload forecastPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.RawForecast{}, fmt.Errorf("decode forecast response: %w", err)
	}

	return payload.toRaw()
}

func (f forecastPayload) toRaw() (weather.RawForecast, error) {
	loc := providerLocation(f.Timezone, f.TimezoneAbbreviation, f.UTCOffsetSeconds)

	var observedAt time.Time
	if f.Current.Time != "" {
		t, err := time.ParseInLocation(openMeteoTimeLayout, f.Current.Time, loc)
		if err != nil {
			return weather.RawForecast{}, fmt.Errorf("parse current time: %w", err)
		}
		observedAt = t
	}

	dailyTimes, err := parseTimes(f.Daily.Time, "2006-01-02", loc)
	if err != nil {
		return weather.RawForecast{}, fmt.Errorf("parse daily time: %w", err)
	}
	hourlyTimes, err := parseTimes(f.Hourly.Time, openMeteoTimeLayout, loc)
	if err != nil {
		return weather.RawForecast{}, fmt.Errorf("parse hourly time: %w", err)
	}

	return weather.RawForecast{
		Location: loc,
		Current: weather.RawCurrent{
			Time:                observedAt,
			Temperature:         f.Current.Temperature,
			ApparentTemperature: f.Current.ApparentTemperature,
			Humidity:            f.Current.RelativeHumidity,
			PressureMSL:         f.Current.PressureMSL,
			WindSpeed:           f.Current.WindSpeed,
			WindDirection:       f.Current.WindDirection,
			WeatherCode:         weatherCode(f.Current.WeatherCode),
			IsDay:               f.Current.IsDay != 0,
		},
		Daily: weather.RawDaily{
			Time:           dailyTimes,
			WeatherCode:    weatherCodes(f.Daily.WeatherCode),
			TemperatureMax: f.Daily.TemperatureMax,
			TemperatureMin: f.Daily.TemperatureMin,
		},
		Hourly: weather.RawHourly{
			Time:                     hourlyTimes,
			Temperature:              f.Hourly.Temperature,
			ApparentTemperature:      f.Hourly.ApparentTemperature,
			Humidity:                 f.Hourly.RelativeHumidity,
			PressureMSL:              f.Hourly.PressureMSL,
			WindSpeed:                f.Hourly.WindSpeed,
			WindDirection:            f.Hourly.WindDirection,
			WeatherCode:              weatherCodes(f.Hourly.WeatherCode),
			PrecipitationProbability: f.Hourly.PrecipitationProbability,
		},
	}, nil
}

func weatherCode(code *int) int {
	if code == nil {
		return missingWeatherCode
	}
	return *code
}

func weatherCodes(codes []*int) []int {
	if codes == nil {
		return nil
	}
	out := make([]int, len(codes))
	for i, c := range codes {
		out[i] = weatherCode(c)
	}
	return out
}

// providerLocation prefers the IANA zone and falls back to the fixed offset
// the provider reported.
func providerLocation(name, abbreviation string, offsetSeconds int) *time.Location {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	if abbreviation == "" {
		abbreviation = name
	}
	return time.FixedZone(abbreviation, offsetSeconds)
}

func parseTimes(values []string, layout string, loc *time.Location) ([]time.Time, error) {
	out := make([]time.Time, 0, len(values))
	for _, v := range values {
		t, err := time.ParseInLocation(layout, v, loc)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
