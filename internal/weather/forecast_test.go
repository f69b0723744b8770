package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var berlin = time.FixedZone("CET", 3600)

// hourlyFixture builds n hourly entries starting at local midnight of 2024-01-15.
// Temperatures are the flat index, codes alternate between clear and rain.
func hourlyFixture(n int) RawForecast {
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, berlin)
	h := RawHourly{}
	for i := 0; i < n; i++ {
		h.Time = append(h.Time, start.Add(time.Duration(i)*time.Hour))
		h.Temperature = append(h.Temperature, float64(i))
		h.ApparentTemperature = append(h.ApparentTemperature, float64(i)-1)
		h.Humidity = append(h.Humidity, 70)
		h.PressureMSL = append(h.PressureMSL, 1013)
		h.WindSpeed = append(h.WindSpeed, 3.5)
		h.WindDirection = append(h.WindDirection, 180)
		h.PrecipitationProbability = append(h.PrecipitationProbability, 10)
		code := 0
		if i%2 == 1 {
			code = 61
		}
		h.WeatherCode = append(h.WeatherCode, code)
	}
	return RawForecast{Location: berlin, Hourly: h}
}

func TestAssembleSeriesFullHorizon(t *testing.T) {
	series := AssembleSeries(hourlyFixture(168))

	require.Len(t, series, 40)
	for i, s := range series {
		day, hour := i/8, (i%8)*3
		assert.Equal(t, float64(day*24+hour), s.Temperature)
		assert.Equal(t, s.Temperature, s.TempMin)
		assert.Equal(t, s.Temperature, s.TempMax)
		assert.Equal(t, hour, s.Timestamp.Hour())
		if i > 0 {
			assert.True(t, s.Timestamp.After(series[i-1].Timestamp), "series must be chronological")
		}
	}
}

func TestAssembleSeriesPartialData(t *testing.T) {
	series := AssembleSeries(hourlyFixture(30))

	// Day 0: hours 0..21 (8 samples), day 1: index 24 and 27.
	require.Len(t, series, 10)
	for _, s := range series {
		assert.Less(t, s.Temperature, 30.0)
	}
	assert.Equal(t, 27.0, series[len(series)-1].Temperature)
}

func TestAssembleSeriesEmpty(t *testing.T) {
	assert.Empty(t, AssembleSeries(RawForecast{}))
}

func TestAssembleSeriesShortParallelArray(t *testing.T) {
	raw := hourlyFixture(48)
	raw.Hourly.WeatherCode = raw.Hourly.WeatherCode[:25]

	series := AssembleSeries(raw)
	require.Len(t, series, 9)
}

func TestAssembleSeriesDayNightFromHour(t *testing.T) {
	series := AssembleSeries(hourlyFixture(24))
	require.Len(t, series, 8)

	want := map[int]string{0: "n", 3: "n", 6: "d", 9: "d", 12: "d", 15: "d", 18: "n", 21: "n"}
	for _, s := range series {
		key := s.Condition.IconKey
		assert.Equal(t, want[s.Timestamp.Hour()], key[len(key)-1:], "hour %d", s.Timestamp.Hour())
	}
}
