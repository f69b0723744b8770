package weather

import "math"

const (
	middayStartHour = 12
	middayEndHour   = 15
)

// Summarize groups a forecast series by provider-local calendar day.
//
// Each day keeps a running min/max of the sample temperatures. Its condition is
// seeded by the first sample of the day and replaced by any later sample whose
// local hour lies in [12,15]. Days are returned in first-seen order.
func Summarize(series []ForecastSample) []DailySummary {
	days := make([]DailySummary, 0, ForecastDays)
	index := make(map[string]int)

	for _, s := range series {
		key := s.Timestamp.Format("2006-01-02")

		i, ok := index[key]
		if !ok {
			index[key] = len(days)
			days = append(days, DailySummary{
				Day:       key,
				Timestamp: s.Timestamp,
				TempMin:   s.Temperature,
				TempMax:   s.Temperature,
				Condition: s.Condition,
				Wind:      s.Wind,
			})
			continue
		}

		d := &days[i]
		d.TempMin = math.Min(d.TempMin, s.Temperature)
		d.TempMax = math.Max(d.TempMax, s.Temperature)

		if hour := s.Timestamp.Hour(); hour >= middayStartHour && hour <= middayEndHour {
			d.Condition = s.Condition
		}
	}

	return days
}

// Truncate returns at most n leading summaries.
func Truncate(days []DailySummary, n int) []DailySummary {
	if n < 0 {
		n = 0
	}
	if len(days) > n {
		return days[:n]
	}
	return days
}
