package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
	"github.com/i474232898/weather-dashboard/internal/weather/providers"
)

// upstream fakes both Open-Meteo endpoints: /search for geocoding and
// /forecast for weather. Unknown cities return no results.
func upstream(t *testing.T, forecastStatus *atomic.Int32) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			if r.URL.Query().Get("name") != "London" {
				fmt.Fprint(w, `{"generationtime_ms": 0.2}`)
				return
			}
			fmt.Fprint(w, `{"results": [{"name": "London", "latitude": 51.5, "longitude": -0.12,
				"country": "United Kingdom", "country_code": "GB"}]}`)
		case "/forecast":
			if code := int(forecastStatus.Load()); code != http.StatusOK {
				w.WriteHeader(code)
				return
			}
			fmt.Fprint(w, forecastBody(120))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func forecastBody(hours int) string {
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	var times, temps, codes, ones []string
	for i := 0; i < hours; i++ {
		times = append(times, fmt.Sprintf("%q", start.Add(time.Duration(i)*time.Hour).Format("2006-01-02T15:04")))
		temps = append(temps, fmt.Sprintf("%d", i%24))
		code := "0"
		if h := i % 24; h >= 12 && h <= 15 {
			code = "61"
		}
		codes = append(codes, code)
		ones = append(ones, "1")
	}
	list := func(v []string) string { return "[" + strings.Join(v, ",") + "]" }

	return fmt.Sprintf(`{
		"timezone": "GMT", "timezone_abbreviation": "GMT", "utc_offset_seconds": 0,
		"current": {"time": "2024-01-15T13:00", "temperature_2m": 7.6, "apparent_temperature": 5.0,
			"relative_humidity_2m": 80, "weather_code": 2, "pressure_msl": 1012, "wind_speed_10m": 9,
			"wind_direction_10m": 200, "is_day": 1},
		"daily": {"time": ["2024-01-15"], "weather_code": [2], "temperature_2m_max": [9.5], "temperature_2m_min": [3.2]},
		"hourly": {"time": %[1]s, "temperature_2m": %[2]s, "apparent_temperature": %[2]s,
			"relative_humidity_2m": %[4]s, "precipitation_probability": %[4]s, "weather_code": %[3]s,
			"pressure_msl": %[4]s, "wind_speed_10m": %[4]s, "wind_direction_10m": %[4]s}
	}`, list(times), list(temps), list(codes), list(ones))
}

func newTestApp(t *testing.T, forecastStatus int) *fiber.App {
	t.Helper()

	var status atomic.Int32
	status.Store(int32(forecastStatus))
	return newBreakerTestApp(t, &status, providers.BreakerConfig{})
}

// newBreakerTestApp lets a test flip the forecast status while the app runs.
func newBreakerTestApp(t *testing.T, forecastStatus *atomic.Int32, breaker providers.BreakerConfig) *fiber.App {
	t.Helper()

	srv := upstream(t, forecastStatus)
	geocoder := providers.NewOpenMeteoGeocoder(srv.Client(), srv.URL+"/search", breaker)
	source := providers.NewOpenMeteoProvider(srv.Client(), srv.URL+"/forecast", breaker)
	svc := weather.NewService(geocoder, source, store.NewMemoryStore(10, time.Hour))

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	RegisterRoutes(app, svc, "London")
	return app
}

func do(t *testing.T, app *fiber.App, target string) (*http.Response, map[string]any) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	body := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	}
	return resp, body
}

func TestGeocodeEndpoint(t *testing.T) {
	app := newTestApp(t, http.StatusOK)

	resp, body := do(t, app, "/api/v1/geocode?q=London")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "London", body["name"])
	assert.Equal(t, "GB", body["country"])
}

func TestGeocodeNotFound(t *testing.T) {
	app := newTestApp(t, http.StatusOK)

	resp, body := do(t, app, "/api/v1/geocode?q=Nowhereville")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, true, body["error"])
	assert.Contains(t, body["message"], "Nowhereville")
}

func TestQueryValidation(t *testing.T) {
	app := newTestApp(t, http.StatusOK)

	for _, target := range []string{
		"/api/v1/geocode",
		"/api/v1/weather/current?q=",
		"/api/v1/weather/forecast?q=London&days=0",
		"/api/v1/weather/forecast?q=London&days=8",
		"/api/v1/dashboard?q=London&session=not-a-uuid",
		"/api/v1/dashboard/not-a-uuid",
	} {
		resp, _ := do(t, app, target)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, target)
	}
}

func TestCurrentWeatherEndpoint(t *testing.T) {
	app := newTestApp(t, http.StatusOK)

	resp, body := do(t, app, "/api/v1/weather/current?q=London")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, 7.6, body["temp"])
	assert.Equal(t, 3.2, body["tempMin"])
	assert.Equal(t, 9.5, body["tempMax"])
	assert.Equal(t, float64(10000), body["visibility"])
	assert.Equal(t, "8°C", body["tempLabel"])
	assert.Equal(t, "weather-gradient-day", body["background"])

	cond := body["condition"].(map[string]any)
	assert.Equal(t, "02d", cond["iconKey"])
	assert.Equal(t, "https://openweathermap.org/img/wn/02d@2x.png", cond["iconUrl"])
}

func TestForecastEndpoint(t *testing.T) {
	app := newTestApp(t, http.StatusOK)

	resp, body := do(t, app, "/api/v1/weather/forecast?q=London&days=3")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Len(t, body["forecast"], 40)

	daily := body["daily"].([]any)
	require.Len(t, daily, 3)
	first := daily[0].(map[string]any)
	assert.Equal(t, "2024-01-15", first["date"])
	assert.Equal(t, float64(0), first["tempMin"])
	assert.Equal(t, float64(21), first["tempMax"])
	assert.Equal(t, "Rain", first["condition"].(map[string]any)["category"])
}

func TestForecastUpstreamFailure(t *testing.T) {
	app := newTestApp(t, http.StatusServiceUnavailable)

	resp, body := do(t, app, "/api/v1/weather/forecast?q=London")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "error fetching weather data: 503 Service Unavailable", body["message"])
}

func TestDashboardSearchAndLatest(t *testing.T) {
	app := newTestApp(t, http.StatusOK)
	session := uuid.NewString()

	resp, body := do(t, app, "/api/v1/dashboard?q=London&session="+session)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, session, resp.Header.Get(sessionHeader))
	assert.Equal(t, float64(1), body["generation"])
	assert.Len(t, body["daily"], 5)

	resp, _ = do(t, app, "/api/v1/dashboard?q=Nowhereville&session="+session)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = do(t, app, "/api/v1/dashboard/"+session)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["generation"])
	assert.Contains(t, body["error"], "Nowhereville")
	report := body["report"].(map[string]any)
	assert.Equal(t, "London", report["place"].(map[string]any)["name"])
}

func TestDashboardDefaultsCityAndSession(t *testing.T) {
	app := newTestApp(t, http.StatusOK)

	resp, body := do(t, app, "/api/v1/dashboard")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "London", body["query"])

	session := resp.Header.Get(sessionHeader)
	_, err := uuid.Parse(session)
	assert.NoError(t, err)
	assert.Equal(t, session, body["session"])
}

func TestDashboardUnknownSession(t *testing.T) {
	app := newTestApp(t, http.StatusOK)

	resp, _ := do(t, app, "/api/v1/dashboard/"+uuid.NewString())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDashboardRecoversAfterUpstreamOutage(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusServiceUnavailable)
	breaker := providers.BreakerConfig{ConsecutiveFailures: 2, OpenTimeout: 50 * time.Millisecond}
	app := newBreakerTestApp(t, &status, breaker)
	session := uuid.NewString()
	target := "/api/v1/dashboard?q=London&session=" + session

	for i := 0; i < 2; i++ {
		resp, _ := do(t, app, target)
		require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	}
	resp, _ := do(t, app, target)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode, "breaker should be open")

	status.Store(http.StatusOK)
	for i := 0; i < 3; i++ {
		time.Sleep(60 * time.Millisecond)
		resp, body := do(t, app, target)
		require.Equal(t, http.StatusOK, resp.StatusCode, "search %d after recovery", i)
		assert.Len(t, body["daily"], 5)
	}
}
