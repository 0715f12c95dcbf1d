// Package scheduler runs the periodic maintenance jobs.
package scheduler

import (
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/apimgr/saaskit/src/server/metrics"
	models "github.com/apimgr/saaskit/src/server/model"
)

// Scheduler owns the cron runner.
type Scheduler struct {
	cron     *cron.Cron
	sessions *models.SessionModel
	logger   zerolog.Logger
}

// New builds the scheduler with its jobs registered but not started.
func New(sessions *models.SessionModel, logger zerolog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:     cron.New(),
		sessions: sessions,
		logger:   logger,
	}

	// Expired sessions are also purged lazily on read; the hourly sweep
	// keeps abandoned rows from piling up. Password reset rows are not
	// swept: expired rows are inert and overwritten by the next request.
	if _, err := s.cron.AddFunc("@hourly", s.purgeExpiredSessions); err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins running jobs on their schedule.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) purgeExpiredSessions() {
	if err := s.sessions.CleanupExpired(); err != nil {
		s.logger.Error().Err(err).Msg("session cleanup failed")
		return
	}
	metrics.SessionsPurged.Inc()
	s.logger.Debug().Msg("expired sessions purged")
}
