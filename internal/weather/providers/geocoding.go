package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-dashboard/internal/common"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

const DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"

// OpenMeteoGeocoder implements weather.Geocoder with the Open-Meteo geocoding API.
type OpenMeteoGeocoder struct {
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoGeocoder(client *http.Client, baseURL string, breaker BreakerConfig) *OpenMeteoGeocoder {
	if baseURL == "" {
		baseURL = DefaultGeocodingURL
	}
	return &OpenMeteoGeocoder{
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{Client: client},
		circuit: newBreaker("openmeteo-geocoding", breaker),
	}
}

type geocodingPayload struct {
	Results []struct {
		ID          int64   `json:"id"`
		Name        string  `json:"name"`
		Latitude    float64 `json:"latitude"`
		Longitude   float64 `json:"longitude"`
		Country     string  `json:"country"`
		CountryCode string  `json:"country_code"`
		Timezone    string  `json:"timezone"`
	} `json:"results"`
}

// Resolve returns the first match for query.
func (g *OpenMeteoGeocoder) Resolve(ctx context.Context, query string) (weather.Place, error) {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("name", query)
		values.Set("count", "1")

		u := fmt.Sprintf("%s?%s", g.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	op := fmt.Sprintf("error geocoding city %q", query)
	resp, err := doRequest(ctx, g.httpCfg, g.circuit, op, buildRequest)
	if err != nil {
		return weather.Place{}, err
	}
	defer resp.Body.Close()

	var payload geocodingPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Place{}, fmt.Errorf("decode geocoding response: %w", err)
	}

	if len(payload.Results) == 0 {
		return weather.Place{}, &weather.NotFoundError{Query: query}
	}

	r := payload.Results[0]
	return weather.Place{
		DisplayName: r.Name,
		Country:     common.FirstNonEmpty(r.CountryCode, r.Country),
		CountryName: r.Country,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
	}, nil
}
