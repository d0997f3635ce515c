package job

import (
	"time"

	"jobdispatch/internal/pkg/errs"
)

// UpdatePatch is a partial edit of the booking fields of a job. A nil field is left as stored.
type UpdatePatch struct {
	DueAt         *time.Time
	AdminComments *string
}

// IsEmpty reports whether applying the patch would write nothing.
func (p UpdatePatch) IsEmpty() bool {
	return p.DueAt == nil && p.AdminComments == nil
}

// ChangesSchedule reports whether the patch moves the due time.
func (p UpdatePatch) ChangesSchedule() bool {
	return p.DueAt != nil
}

// Update applies p. The due time may only move while no offer is out, because the offer
// deadline was derived from it, and never before the creation time.
func (j *Job) Update(p UpdatePatch) error {
	if p.DueAt != nil {
		if !j.status.IsOpen() {
			return errs.NewInvalidStateError("update due_at", j.status.String())
		}
		if err := j.setSchedule(j.createdAt, *p.DueAt); err != nil {
			return err
		}
	}

	if p.AdminComments != nil {
		j.adminComments = *p.AdminComments
	}
	return nil
}
