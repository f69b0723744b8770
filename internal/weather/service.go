package weather

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/i474232898/weather-dashboard/internal/logger"
)

// ErrEmptyQuery is returned when a search is issued without a place name.
var ErrEmptyQuery = errors.New("query must not be empty")

// Service resolves places and turns provider responses into reports.
type Service struct {
	geocoder Geocoder
	source   ForecastSource
	store    Store
	now      func() time.Time
}

// NewService creates a new Service. store may be nil when session state is not needed.
func NewService(geocoder Geocoder, source ForecastSource, store Store) *Service {
	return &Service{
		geocoder: geocoder,
		source:   source,
		store:    store,
		now:      time.Now,
	}
}

// WithClock replaces the clock used for the sunrise/sunset approximation.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Resolve geocodes query to its best match.
func (s *Service) Resolve(ctx context.Context, query string) (Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Place{}, ErrEmptyQuery
	}

	place, err := s.geocoder.Resolve(ctx, query)
	if err != nil {
		return Place{}, Classify(err)
	}
	return place, nil
}

// GetCurrent fetches the forecast for place and converts it into the current weather view.
func (s *Service) GetCurrent(ctx context.Context, place Place) (CurrentWeather, error) {
	raw, err := s.source.FetchForecast(ctx, place)
	if err != nil {
		logger.Error("provider %s current weather failed for %s: %v", s.source.Name(), place.DisplayName, err)
		return CurrentWeather{}, Classify(err)
	}
	return NewCurrentWeather(place, raw, s.now()), nil
}

// BuildSeries fetches the forecast for place and assembles the 3-hour series.
func (s *Service) BuildSeries(ctx context.Context, place Place) ([]ForecastSample, error) {
	raw, err := s.source.FetchForecast(ctx, place)
	if err != nil {
		logger.Error("provider %s forecast failed for %s: %v", s.source.Name(), place.DisplayName, err)
		return nil, Classify(err)
	}
	return AssembleSeries(raw), nil
}

// Search resolves query once and builds the current weather and the forecast
// from a single forecast fetch for that place. If the fetch fails the search fails.
func (s *Service) Search(ctx context.Context, query string) (Report, error) {
	place, err := s.Resolve(ctx, query)
	if err != nil {
		return Report{}, err
	}

	logger.Debug("search %q resolved to %s (%s) at %.4f,%.4f",
		query, place.DisplayName, place.Country, place.Latitude, place.Longitude)

	raw, err := s.source.FetchForecast(ctx, place)
	if err != nil {
		logger.Error("provider %s search failed for %s: %v", s.source.Name(), place.DisplayName, err)
		return Report{}, Classify(err)
	}

	series := AssembleSeries(raw)
	return Report{
		Place:    place,
		Current:  NewCurrentWeather(place, raw, s.now()),
		Forecast: series,
		Daily:    Summarize(series),
	}, nil
}

// SearchSession runs Search and records the outcome as the session's display
// state. Each call takes a new generation; a result whose generation has been
// superseded by a later search is discarded rather than stored.
func (s *Service) SearchSession(ctx context.Context, session, query string) (Report, uint64, error) {
	if s.store == nil {
		return Report{}, 0, fmt.Errorf("dashboard store not configured")
	}

	gen := s.store.Begin(session)
	report, err := s.Search(ctx, query)
	if err != nil {
		if !s.store.RecordError(session, gen, query, err.Error()) {
			logger.Debug("session %s: discarded stale error of generation %d", session, gen)
		}
		return Report{}, gen, err
	}

	if !s.store.Commit(session, gen, query, report) {
		logger.Debug("session %s: discarded stale result of generation %d", session, gen)
	}
	return report, gen, nil
}

// Latest returns the last display state for a session.
func (s *Service) Latest(session string) (Dashboard, error) {
	if s.store == nil {
		return Dashboard{}, fmt.Errorf("dashboard store not configured")
	}
	return s.store.Latest(session)
}
