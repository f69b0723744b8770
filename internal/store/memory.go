package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

var (
	// ErrNotFound is returned when no dashboard state exists for a session.
	ErrNotFound = errors.New("no dashboard state for session")
)

// sessionState holds the display state of one session.
type sessionState struct {
	// latest is the newest generation handed out by Begin.
	latest    uint64
	dashboard weather.Dashboard
	touched   time.Time
}

// MemoryStore is a concurrency-safe in-memory implementation of weather.Store.
type MemoryStore struct {
	mu sync.RWMutex

	// key: session id
	data map[string]*sessionState

	// retention configuration
	maxSessions int           // max number of sessions kept (0 = unlimited)
	maxAge      time.Duration // idle sessions older than this are pruned (0 = unlimited)

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxSessions is <= 0, it is treated as unlimited.
func NewMemoryStore(maxSessions int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:        make(map[string]*sessionState),
		maxSessions: maxSessions,
		maxAge:      maxAge,
		now:         time.Now,
	}
}

// Begin returns the next generation for a session, creating it if needed.
func (s *MemoryStore) Begin(session string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.data[session]
	if !ok {
		st = &sessionState{dashboard: weather.Dashboard{Session: session}}
		s.data[session] = st
		s.evictLocked(session)
	}
	st.latest++
	st.touched = s.now()
	return st.latest
}

// Commit stores report as the session's display state unless a newer search
// has been started since generation was handed out.
func (s *MemoryStore) Commit(session string, generation uint64, query string, report weather.Report) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.data[session]
	if !ok || generation != st.latest {
		return false
	}

	now := s.now()
	r := report
	st.dashboard = weather.Dashboard{
		Session:    session,
		Generation: generation,
		Query:      query,
		Report:     &r,
		UpdatedAt:  now,
	}
	st.touched = now
	return true
}

// RecordError records a failed search and holds the previous report.
func (s *MemoryStore) RecordError(session string, generation uint64, query string, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.data[session]
	if !ok || generation != st.latest {
		return false
	}

	now := s.now()
	st.dashboard.Session = session
	st.dashboard.Generation = generation
	st.dashboard.Query = query
	st.dashboard.Error = message
	st.dashboard.UpdatedAt = now
	st.touched = now
	return true
}

// Latest returns the display state of a session.
func (s *MemoryStore) Latest(session string) (weather.Dashboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.data[session]
	if !ok || st.dashboard.Generation == 0 {
		return weather.Dashboard{}, ErrNotFound
	}
	return st.dashboard, nil
}

// Prune drops sessions idle for longer than maxAge and returns how many were removed.
func (s *MemoryStore) Prune(now time.Time) int {
	if s.maxAge <= 0 {
		return 0
	}

	cutoff := now.Add(-s.maxAge)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, st := range s.data {
		if st.touched.Before(cutoff) {
			delete(s.data, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of sessions held.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// evictLocked enforces maxSessions by dropping the least recently touched
// sessions other than keep.
func (s *MemoryStore) evictLocked(keep string) {
	if s.maxSessions <= 0 || len(s.data) <= s.maxSessions {
		return
	}

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		if k != keep {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		return s.data[keys[i]].touched.Before(s.data[keys[j]].touched)
	})

	over := len(s.data) - s.maxSessions
	for _, k := range keys[:over] {
		delete(s.data, k)
	}
}
