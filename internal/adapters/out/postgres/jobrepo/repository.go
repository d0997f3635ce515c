package jobrepo

import (
	"context"
	"errors"
	"time"

	"jobdispatch/internal/core/domain/model/job"
	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormJobRepository implements ports.JobRepository using GORM.
type GormJobRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker records the jobs written through the repository.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate *job.Job)
}

// NewGormJobRepository creates a new GORM job repository.
func NewGormJobRepository(db *gorm.DB, tracker aggregateTracker) *GormJobRepository {
	return &GormJobRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new job.
func (r *GormJobRepository) Add(ctx context.Context, aggregate *job.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a job by ID.
func (r *GormJobRepository) Get(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto JobDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("job", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateIfStatus writes the lifecycle columns with a single
// UPDATE ... WHERE id = ? AND status = ? and reports the affected rows.
func (r *GormJobRepository) UpdateIfStatus(ctx context.Context, aggregate *job.Job, expected job.Status) (int64, error) {
	if err := aggregate.Validate(); err != nil {
		return 0, err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&JobDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(expected)).
		Updates(lifecycleColumns(dto))
	if result.Error != nil {
		return 0, result.Error
	}

	if result.RowsAffected > 0 {
		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	}
	return result.RowsAffected, nil
}

// ApplyTelemetry writes the job columns present in patch regardless of status.
func (r *GormJobRepository) ApplyTelemetry(ctx context.Context, id kernel.UUID, patch job.TelemetryPatch) (int64, error) {
	if err := id.Validate(); err != nil {
		return 0, err
	}

	columns := telemetryColumns(patch)
	if len(columns) == 0 {
		return 0, nil
	}

	result := r.db.WithContext(ctx).
		Model(&JobDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(columns)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// ApplyUpdate writes the job columns present in patch, guarded by expected when given.
func (r *GormJobRepository) ApplyUpdate(
	ctx context.Context, id kernel.UUID, patch job.UpdatePatch, expected *job.Status,
) (int64, error) {
	if err := id.Validate(); err != nil {
		return 0, err
	}

	columns := updateColumns(patch)
	if len(columns) == 0 {
		return 0, nil
	}

	query := r.db.WithContext(ctx).Model(&JobDTO{}).Where("id = ?", id.Bytes())
	if expected != nil {
		query = query.Where("status = ?", int(*expected))
	}

	result := query.Updates(columns)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// UpsertDistance inserts the distance record or overwrites only the fields present in update.
func (r *GormJobRepository) UpsertDistance(ctx context.Context, id kernel.UUID, update job.DistanceUpdate) error {
	if err := id.Validate(); err != nil {
		return err
	}

	dto := DistanceDTO{JobID: id.Bytes()}
	var assign []string
	if update.Distance != nil {
		dto.Distance = *update.Distance
		assign = append(assign, "distance")
	}
	if update.Time != nil {
		dto.Time = *update.Time
		assign = append(assign, "time")
	}

	onConflict := clause.OnConflict{
		Columns: []clause.Column{{Name: "job_id"}},
	}
	if len(assign) == 0 {
		onConflict.DoNothing = true
	} else {
		onConflict.DoUpdates = clause.AssignmentColumns(assign)
	}

	return r.db.WithContext(ctx).Clauses(onConflict).Create(&dto).Error
}

// GetDistance retrieves the distance record of a job.
func (r *GormJobRepository) GetDistance(ctx context.Context, id kernel.UUID) (job.Distance, error) {
	if err := id.Validate(); err != nil {
		return job.Distance{}, err
	}

	var dto DistanceDTO
	if err := r.db.WithContext(ctx).First(&dto, "job_id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return job.Distance{}, errs.NewObjectNotFoundError("distance", id.String())
		}
		return job.Distance{}, err
	}

	return job.Distance{JobID: id, Distance: dto.Distance, Time: dto.Time}, nil
}

// ListExpiredOffers retrieves Offered jobs whose deadline is at or before now.
func (r *GormJobRepository) ListExpiredOffers(ctx context.Context, now time.Time, limit int) ([]*job.Job, error) {
	var dtos []JobDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND expires_at <= ?", int(job.Offered), now.UTC()).
		Order("expires_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	jobs := make([]*job.Job, 0, len(dtos))
	for _, dto := range dtos {
		j, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}

	return jobs, nil
}
