package httpapi

import (
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// conditionView adds the presentation strings derived from a condition.
type conditionView struct {
	weather.Condition
	IconURL string `json:"iconUrl"`
}

func newConditionView(c weather.Condition) conditionView {
	return conditionView{Condition: c, IconURL: weather.IconURL(c.IconKey)}
}

type currentView struct {
	weather.CurrentWeather
	Condition  conditionView `json:"condition"`
	Background string        `json:"background"`
	TempLabel  string        `json:"tempLabel"`
}

func newCurrentView(c weather.CurrentWeather) currentView {
	return currentView{
		CurrentWeather: c,
		Condition:      newConditionView(c.Condition),
		Background:     weather.BackgroundClass(c.Condition),
		TempLabel:      weather.FormatTemperature(c.Temperature),
	}
}

type dailyView struct {
	weather.DailySummary
	Condition    conditionView `json:"condition"`
	TempMinLabel string        `json:"tempMinLabel"`
	TempMaxLabel string        `json:"tempMaxLabel"`
}

func newDailyViews(days []weather.DailySummary) []dailyView {
	out := make([]dailyView, 0, len(days))
	for _, d := range days {
		out = append(out, dailyView{
			DailySummary: d,
			Condition:    newConditionView(d.Condition),
			TempMinLabel: weather.FormatTemperature(d.TempMin),
			TempMaxLabel: weather.FormatTemperature(d.TempMax),
		})
	}
	return out
}

type dashboardView struct {
	Session    string      `json:"session"`
	Generation uint64      `json:"generation"`
	Query      string      `json:"query"`
	Current    currentView `json:"current"`
	Daily      []dailyView `json:"daily"`
}

func newDashboardView(session string, generation uint64, query string, r weather.Report) dashboardView {
	return dashboardView{
		Session:    session,
		Generation: generation,
		Query:      query,
		Current:    newCurrentView(r.Current),
		Daily:      newDailyViews(weather.Truncate(r.Daily, weather.ForecastDays)),
	}
}
