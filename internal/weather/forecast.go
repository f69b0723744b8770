package weather

const (
	ForecastDays    = 5
	SampleStepHours = 3

	dayStartHour = 6
	dayEndHour   = 18
)

// AssembleSeries builds the 3-hour forecast series for the first ForecastDays
// days of the hourly block. A flat index (day*24 + hour) past the end of the
// hourly data is skipped, so the series holds at most 40 samples.
func AssembleSeries(raw RawForecast) []ForecastSample {
	h := raw.Hourly
	n := hourlyLen(h)

	series := make([]ForecastSample, 0, ForecastDays*24/SampleStepHours)
	for day := 0; day < ForecastDays; day++ {
		for hour := 0; hour < 24; hour += SampleStepHours {
			i := day*24 + hour
			if i >= n {
				continue
			}

			isDay := hour >= dayStartHour && hour < dayEndHour
			temp := h.Temperature[i]

			series = append(series, ForecastSample{
				Timestamp:   h.Time[i],
				Temperature: temp,
				FeelsLike:   h.ApparentTemperature[i],
				TempMin:     temp,
				TempMax:     temp,
				Humidity:    h.Humidity[i],
				Pressure:    h.PressureMSL[i],
				Wind: Wind{
					Speed:     h.WindSpeed[i],
					Direction: h.WindDirection[i],
				},
				PrecipProb: at(h.PrecipitationProbability, i),
				Condition:  MapCode(h.WeatherCode[i], isDay),
			})
		}
	}
	return series
}

// hourlyLen is the number of indices present in every required hourly array.
func hourlyLen(h RawHourly) int {
	n := len(h.Time)
	for _, l := range []int{
		len(h.Temperature),
		len(h.ApparentTemperature),
		len(h.Humidity),
		len(h.PressureMSL),
		len(h.WindSpeed),
		len(h.WindDirection),
		len(h.WeatherCode),
	} {
		if l < n {
			n = l
		}
	}
	return n
}

func at(values []float64, i int) float64 {
	if i < len(values) {
		return values[i]
	}
	return 0
}
