// Package queries contains read-only operations over jobs. Handlers query the database
// directly through GORM and return flat views; they never load aggregates.
package queries

import (
	"time"

	"jobdispatch/internal/core/domain/model/job"
	"jobdispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// JobView is the read model of a job.
type JobView struct {
	ID              kernel.UUID
	CustomerID      kernel.UUID
	TranslatorID    *kernel.UUID
	Status          string
	CreatedAt       time.Time
	DueAt           time.Time
	ExpiresAt       *time.Time
	CompletedAt     *time.Time
	CancelledBy     *kernel.UUID
	SessionTime     string
	Flagged         bool
	ManuallyHandled bool
	ByAdmin         bool
	AdminComments   string
}

// DistanceView is the read model of a job's distance record.
type DistanceView struct {
	Distance string
	Time     string
}

const jobColumns = `
	id,
	customer_id,
	translator_id,
	status,
	created_at,
	due_at,
	expires_at,
	completed_at,
	cancelled_by,
	session_time,
	flagged,
	manually_handled,
	by_admin,
	admin_comments`

type jobRow struct {
	ID              uuid.UUID
	CustomerID      uuid.UUID
	TranslatorID    *uuid.UUID
	Status          int
	CreatedAt       time.Time
	DueAt           time.Time
	ExpiresAt       *time.Time
	CompletedAt     *time.Time
	CancelledBy     *uuid.UUID
	SessionTime     string
	Flagged         string
	ManuallyHandled string
	ByAdmin         string
	AdminComments   string
}

func (r jobRow) toView() (JobView, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return JobView{}, err
	}

	customerID, err := kernel.UUIDFromBytes(r.CustomerID[:])
	if err != nil {
		return JobView{}, err
	}

	translatorID, err := optionalID(r.TranslatorID)
	if err != nil {
		return JobView{}, err
	}

	cancelledBy, err := optionalID(r.CancelledBy)
	if err != nil {
		return JobView{}, err
	}

	return JobView{
		ID:              id,
		CustomerID:      customerID,
		TranslatorID:    translatorID,
		Status:          job.Status(r.Status).String(),
		CreatedAt:       r.CreatedAt.UTC(),
		DueAt:           r.DueAt.UTC(),
		ExpiresAt:       utcPtr(r.ExpiresAt),
		CompletedAt:     utcPtr(r.CompletedAt),
		CancelledBy:     cancelledBy,
		SessionTime:     r.SessionTime,
		Flagged:         job.Flag(r.Flagged).Bool(),
		ManuallyHandled: job.Flag(r.ManuallyHandled).Bool(),
		ByAdmin:         job.Flag(r.ByAdmin).Bool(),
		AdminComments:   r.AdminComments,
	}, nil
}

func toViews(rows []jobRow) ([]JobView, error) {
	views := make([]JobView, 0, len(rows))
	for _, r := range rows {
		v, err := r.toView()
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func optionalID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

func terminalStatuses() []int {
	return []int{int(job.Completed), int(job.Cancelled), int(job.NotCarriedOutByCustomer)}
}
