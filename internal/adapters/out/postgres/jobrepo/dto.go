// Package jobrepo persists job aggregates and their distance records with GORM.
package jobrepo

import (
	"time"

	"jobdispatch/internal/core/domain/model/job"
	"jobdispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// JobDTO is the row layout of the jobs table.
type JobDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	TranslatorID    *uuid.UUID `gorm:"type:uuid;index"`
	Status          int        `gorm:"not null;index:idx_jobs_status_expires_at,priority:1"`
	CreatedAt       time.Time  `gorm:"not null"`
	DueAt           time.Time  `gorm:"not null"`
	ExpiresAt       *time.Time `gorm:"index:idx_jobs_status_expires_at,priority:2"`
	CompletedAt     *time.Time
	CancelledBy     *uuid.UUID `gorm:"type:uuid"`
	SessionTime     string     `gorm:"not null;default:''"`
	Flagged         string     `gorm:"size:3;not null;default:'no'"`
	ManuallyHandled string     `gorm:"size:3;not null;default:'no'"`
	ByAdmin         string     `gorm:"size:3;not null;default:'no'"`
	AdminComments   string     `gorm:"not null;default:''"`
}

func (JobDTO) TableName() string {
	return "jobs"
}

// DistanceDTO is the row layout of the job_distances table, one row per job at most.
type DistanceDTO struct {
	JobID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Distance string    `gorm:"not null;default:''"`
	Time     string    `gorm:"not null;default:''"`
}

func (DistanceDTO) TableName() string {
	return "job_distances"
}

func fromDomain(aggregate *job.Job) JobDTO {
	s := aggregate.Snapshot()

	return JobDTO{
		ID:              s.ID.Bytes(),
		CustomerID:      s.CustomerID.Bytes(),
		TranslatorID:    rawID(s.TranslatorID),
		Status:          int(s.Status),
		CreatedAt:       s.CreatedAt,
		DueAt:           s.DueAt,
		ExpiresAt:       s.ExpiresAt,
		CompletedAt:     s.CompletedAt,
		CancelledBy:     rawID(s.CancelledBy),
		SessionTime:     s.SessionTime,
		Flagged:         string(s.Flagged),
		ManuallyHandled: string(s.ManuallyHandled),
		ByAdmin:         string(s.ByAdmin),
		AdminComments:   s.AdminComments,
	}
}

func toDomain(dto JobDTO) (*job.Job, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	translatorID, err := domainID(dto.TranslatorID)
	if err != nil {
		return nil, err
	}

	cancelledBy, err := domainID(dto.CancelledBy)
	if err != nil {
		return nil, err
	}

	return job.RestoreJob(job.Snapshot{
		ID:              id,
		CustomerID:      customerID,
		TranslatorID:    translatorID,
		CreatedAt:       dto.CreatedAt,
		DueAt:           dto.DueAt,
		ExpiresAt:       dto.ExpiresAt,
		CompletedAt:     dto.CompletedAt,
		CancelledBy:     cancelledBy,
		Status:          job.Status(dto.Status),
		SessionTime:     dto.SessionTime,
		Flagged:         job.Flag(dto.Flagged),
		ManuallyHandled: job.Flag(dto.ManuallyHandled),
		ByAdmin:         job.Flag(dto.ByAdmin),
		AdminComments:   dto.AdminComments,
	})
}

// lifecycleColumns are the columns a state transition may change. Telemetry columns are
// written only by ApplyTelemetry.
func lifecycleColumns(dto JobDTO) map[string]any {
	return map[string]any{
		"status":        dto.Status,
		"translator_id": dto.TranslatorID,
		"expires_at":    dto.ExpiresAt,
		"completed_at":  dto.CompletedAt,
		"cancelled_by":  dto.CancelledBy,
	}
}

// telemetryColumns holds only the columns present in patch.
func telemetryColumns(patch job.TelemetryPatch) map[string]any {
	columns := make(map[string]any)
	if patch.SessionTime != nil {
		columns["session_time"] = *patch.SessionTime
	}
	if patch.AdminComments != nil {
		columns["admin_comments"] = *patch.AdminComments
	}
	if patch.Flagged != nil {
		columns["flagged"] = string(*patch.Flagged)
	}
	if patch.ManuallyHandled != nil {
		columns["manually_handled"] = string(*patch.ManuallyHandled)
	}
	if patch.ByAdmin != nil {
		columns["by_admin"] = string(*patch.ByAdmin)
	}
	return columns
}

// updateColumns holds only the booking columns present in patch.
func updateColumns(patch job.UpdatePatch) map[string]any {
	columns := make(map[string]any)
	if patch.DueAt != nil {
		columns["due_at"] = patch.DueAt.UTC()
	}
	if patch.AdminComments != nil {
		columns["admin_comments"] = *patch.AdminComments
	}
	return columns
}

func rawID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func domainID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
