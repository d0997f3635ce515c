package jobs

import (
	"fmt"
	"log/slog"
)

// Config selects which background jobs run and how.
type Config struct {
	OfferSweepEnabled   bool
	OfferSweepSchedule  string
	OfferSweepBatchSize int
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	offerExpirationJob *OfferExpirationJob
}

// NewJobManager creates a job manager. Disabled jobs are not created.
func NewJobManager(cfg Config, expireOffersHandler expireOffersHandler, logger *slog.Logger) *JobManager {
	jm := &JobManager{}
	if cfg.OfferSweepEnabled {
		jm.offerExpirationJob = NewOfferExpirationJob(
			expireOffersHandler, cfg.OfferSweepSchedule, cfg.OfferSweepBatchSize, logger,
		)
	}
	return jm
}

// StartAll starts all enabled jobs.
func (jm *JobManager) StartAll() error {
	if jm.offerExpirationJob == nil {
		return nil
	}
	if err := jm.offerExpirationJob.Start(); err != nil {
		return fmt.Errorf("failed to start offer expiration job: %w", err)
	}
	return nil
}

// StopAll stops all running jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.offerExpirationJob != nil {
		jm.offerExpirationJob.Stop()
	}
}
