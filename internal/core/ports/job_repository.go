// Package ports defines the contracts between the dispatch core and its adapters:
// persistence, notification delivery and change events.
package ports

import (
	"context"
	"time"

	"jobdispatch/internal/core/domain/model/job"
	"jobdispatch/internal/core/domain/model/kernel"
)

// JobRepository defines the persistence contract for job aggregates and their distance records.
type JobRepository interface {
	// Add persists a new job.
	Add(ctx context.Context, aggregate *job.Job) error

	// Get retrieves a job by id. Returns errs.ObjectNotFoundError when it does not exist.
	Get(ctx context.Context, id kernel.UUID) (*job.Job, error)

	// UpdateIfStatus writes the lifecycle columns of aggregate (status, translator, expiry,
	// completion, cancellation actor) only if the stored status still equals expected.
	// It returns the number of rows written: 1 on success, 0 when another writer got there first.
	//
	// Example:
	//   prev := j.Status()
	//   if err := j.Accept(translator, now); err != nil {
	//       return err
	//   }
	//   n, err := repo.UpdateIfStatus(ctx, j, prev)
	//   if err == nil && n == 0 {
	//       // lost the race
	//   }
	UpdateIfStatus(ctx context.Context, aggregate *job.Job, expected job.Status) (int64, error)

	// ApplyTelemetry writes the job columns present in patch, unconditionally.
	// Returns the number of rows written; 0 for an unknown job.
	ApplyTelemetry(ctx context.Context, id kernel.UUID, patch job.TelemetryPatch) (int64, error)

	// ApplyUpdate writes the job columns present in patch. When expected is non-nil the write
	// only happens if the stored status still equals *expected.
	// Returns the number of rows written; 0 for an unknown job or a lost race.
	ApplyUpdate(ctx context.Context, id kernel.UUID, patch job.UpdatePatch, expected *job.Status) (int64, error)

	// UpsertDistance creates the distance record of a job or updates the fields present in update.
	UpsertDistance(ctx context.Context, id kernel.UUID, update job.DistanceUpdate) error

	// GetDistance returns the distance record of a job, or errs.ObjectNotFoundError.
	GetDistance(ctx context.Context, id kernel.UUID) (job.Distance, error)

	// ListExpiredOffers returns up to limit Offered jobs whose deadline is at or before now,
	// oldest deadline first.
	ListExpiredOffers(ctx context.Context, now time.Time, limit int) ([]*job.Job, error)
}
