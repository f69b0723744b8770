package scheduler

import (
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-dashboard/internal/logger"
)

const defaultInterval = 5 * time.Minute

// Pruner drops expired dashboard sessions.
type Pruner interface {
	Prune(now time.Time) int
}

// Scheduler periodically sweeps expired sessions out of the dashboard store.
type Scheduler struct {
	scheduler *gocron.Scheduler
	pruner    Pruner
	interval  time.Duration
}

// New creates a new Scheduler.
func New(pruner Pruner, interval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		pruner:    pruner,
		interval:  interval,
	}
}

// Start schedules the sweep job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	interval := s.interval
	if interval <= 0 {
		interval = defaultInterval
	}

	_, err := s.scheduler.Every(interval).Do(s.sweep)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) sweep() {
	if removed := s.pruner.Prune(time.Now()); removed > 0 {
		logger.Info("scheduler: pruned %d expired dashboard sessions", removed)
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
