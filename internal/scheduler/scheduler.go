// Package scheduler runs the periodic housekeeping jobs.
package scheduler

import (
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/sonnyweather/weather-dialog/internal/session"
)

// Sweeper periodically drops expired conversation sessions.
type Sweeper struct {
	scheduler *gocron.Scheduler
	store     *session.Store
	interval  time.Duration
	log       *zap.Logger
}

// New creates a Sweeper over the given session store.
func New(store *session.Store, interval time.Duration, log *zap.Logger) *Sweeper {
	return &Sweeper{
		scheduler: gocron.NewScheduler(time.UTC),
		store:     store,
		interval:  interval,
		log:       log,
	}
}

// Start schedules the sweep job and starts the underlying scheduler.
func (s *Sweeper) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		if removed := s.store.PurgeExpired(); removed > 0 {
			s.log.Info("swept expired sessions",
				zap.Int("removed", removed),
				zap.Int("remaining", s.store.Len()))
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Sweeper) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
