package job

import (
	"errors"
	"fmt"
	"time"

	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/pkg/errs"
)

// ErrJobIsNotConstructed is returned when a Job was not created through NewJob or RestoreJob.
var ErrJobIsNotConstructed = errors.New("Job must be created via NewJob or RestoreJob")

// Job is the aggregate root of the dispatch domain.
//
// Invariants:
//   - expiresAt, once set, is not before createdAt
//   - an Accepted, Completed or NotCarriedOutByCustomer job has a translator
//   - Completed and NotCarriedOutByCustomer are final; Cancelled only leaves through Reopen
//
// All timestamps are held in UTC.
type Job struct {
	id         kernel.UUID
	customerID kernel.UUID

	// translatorID is set by Accept and cleared by Cancel and Reopen.
	translatorID *kernel.UUID

	createdAt   time.Time
	dueAt       time.Time
	expiresAt   *time.Time
	completedAt *time.Time

	// cancelledBy is the actor of the last Cancel.
	cancelledBy *kernel.UUID

	status Status

	sessionTime     string
	flagged         Flag
	manuallyHandled Flag
	byAdmin         Flag
	adminComments   string

	isConstructed bool
}

// Snapshot is the flat state of a Job, used to restore it from storage and to render it.
type Snapshot struct {
	ID              kernel.UUID
	CustomerID      kernel.UUID
	TranslatorID    *kernel.UUID
	CreatedAt       time.Time
	DueAt           time.Time
	ExpiresAt       *time.Time
	CompletedAt     *time.Time
	CancelledBy     *kernel.UUID
	Status          Status
	SessionTime     string
	Flagged         Flag
	ManuallyHandled Flag
	ByAdmin         Flag
	AdminComments   string
}

// NewJob creates an Open job for a customer.
//
//	j, err := job.NewJob(kernel.NewUUID(), customerID, clock.Now(), dueAt)
//	if err != nil {
//	    return err
//	}
//
// dueAt must not be before createdAt.
func NewJob(id, customerID kernel.UUID, createdAt, dueAt time.Time) (*Job, error) {
	j := &Job{
		status:          Open,
		flagged:         FlagNo,
		manuallyHandled: FlagNo,
		byAdmin:         FlagNo,
		isConstructed:   true,
	}

	if err := errors.Join(
		j.setID(id),
		j.setCustomer(customerID),
		j.setSchedule(createdAt, dueAt),
	); err != nil {
		return nil, err
	}

	return j, nil
}

// RestoreJob rebuilds a job from persisted state and checks the aggregate invariants.
func RestoreJob(s Snapshot) (*Job, error) {
	if err := errors.Join(
		s.ID.Validate(),
		s.CustomerID.Validate(),
		s.Status.Validate(),
		s.Flagged.Validate(),
		s.ManuallyHandled.Validate(),
		s.ByAdmin.Validate(),
	); err != nil {
		return nil, err
	}

	if s.ExpiresAt != nil && s.ExpiresAt.Before(s.CreatedAt) {
		return nil, expiresBeforeCreated(*s.ExpiresAt, s.CreatedAt)
	}

	if s.Status.HasTranslator() && s.TranslatorID == nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"translator is invalid",
			fmt.Errorf("%s job must have a translator", s.Status),
		)
	}

	return &Job{
		id:              s.ID,
		customerID:      s.CustomerID,
		translatorID:    s.TranslatorID,
		createdAt:       s.CreatedAt.UTC(),
		dueAt:           s.DueAt.UTC(),
		expiresAt:       utcPtr(s.ExpiresAt),
		completedAt:     utcPtr(s.CompletedAt),
		cancelledBy:     s.CancelledBy,
		status:          s.Status,
		sessionTime:     s.SessionTime,
		flagged:         s.Flagged,
		manuallyHandled: s.ManuallyHandled,
		byAdmin:         s.ByAdmin,
		adminComments:   s.AdminComments,
		isConstructed:   true,
	}, nil
}

// Validate ensures the job was built through NewJob or RestoreJob.
func (j *Job) Validate() error {
	if j == nil || !j.isConstructed {
		return ErrJobIsNotConstructed
	}
	return nil
}

func (j *Job) IsEqual(other *Job) bool {
	return other != nil && j.id.IsEqual(other.id)
}

func (j *Job) ID() kernel.UUID           { return j.id }
func (j *Job) Customer() kernel.UUID     { return j.customerID }
func (j *Job) Translator() *kernel.UUID  { return j.translatorID }
func (j *Job) CreatedAt() time.Time      { return j.createdAt }
func (j *Job) DueAt() time.Time          { return j.dueAt }
func (j *Job) ExpiresAt() *time.Time     { return j.expiresAt }
func (j *Job) CompletedAt() *time.Time   { return j.completedAt }
func (j *Job) CancelledBy() *kernel.UUID { return j.cancelledBy }
func (j *Job) Status() Status            { return j.status }
func (j *Job) SessionTime() string       { return j.sessionTime }
func (j *Job) Flagged() Flag             { return j.flagged }
func (j *Job) ManuallyHandled() Flag     { return j.manuallyHandled }
func (j *Job) ByAdmin() Flag             { return j.byAdmin }
func (j *Job) AdminComments() string     { return j.adminComments }

// Snapshot returns a copy of the job state.
func (j *Job) Snapshot() Snapshot {
	return Snapshot{
		ID:              j.id,
		CustomerID:      j.customerID,
		TranslatorID:    j.translatorID,
		CreatedAt:       j.createdAt,
		DueAt:           j.dueAt,
		ExpiresAt:       j.expiresAt,
		CompletedAt:     j.completedAt,
		CancelledBy:     j.cancelledBy,
		Status:          j.status,
		SessionTime:     j.sessionTime,
		Flagged:         j.flagged,
		ManuallyHandled: j.manuallyHandled,
		ByAdmin:         j.byAdmin,
		AdminComments:   j.adminComments,
	}
}

// IsParticipant reports whether user is the customer or the assigned translator.
func (j *Job) IsParticipant(user kernel.UUID) bool {
	if j.customerID.IsEqual(user) {
		return true
	}
	return j.translatorID != nil && j.translatorID.IsEqual(user)
}

// Offer posts the job to translators until expiresAt.
func (j *Job) Offer(expiresAt time.Time) error {
	newStatus, err := j.status.Offer()
	if err != nil {
		return err
	}

	expiresAt = expiresAt.UTC()
	if expiresAt.Before(j.createdAt) {
		return expiresBeforeCreated(expiresAt, j.createdAt)
	}

	j.status = newStatus
	j.expiresAt = &expiresAt
	j.translatorID = nil
	return nil
}

// Accept assigns the job to translator.
//
// Errors:
//   - errs.AlreadyAcceptedError when the job is already Accepted
//   - errs.InvalidStateError when the job is not Offered
//   - errs.OfferExpiredError when now is at or after the offer deadline
//
// The job is left unchanged on error.
func (j *Job) Accept(translator kernel.UUID, now time.Time) error {
	if err := translator.Validate(); err != nil {
		return err
	}

	if j.status == Accepted {
		return errs.NewAlreadyAcceptedError(j.id.String())
	}

	newStatus, err := j.status.Accept()
	if err != nil {
		return err
	}

	if j.expiresAt != nil && !now.Before(*j.expiresAt) {
		return errs.NewOfferExpiredError(j.id.String(), *j.expiresAt, now.UTC())
	}

	j.status = newStatus
	j.translatorID = &translator
	return nil
}

// Expire cancels an Offered job whose deadline has passed.
func (j *Job) Expire(now time.Time) error {
	newStatus, err := j.status.Expire()
	if err != nil {
		return err
	}

	if j.expiresAt == nil || now.Before(*j.expiresAt) {
		return errs.NewValueIsInvalidErrorWithCause(
			"expires_at is invalid",
			fmt.Errorf("offer of job %s has not expired at %s", j.id, now.UTC().Format(time.RFC3339)),
		)
	}

	j.status = newStatus
	return nil
}

// End completes an Accepted job.
func (j *Job) End(now time.Time) error {
	newStatus, err := j.status.End()
	if err != nil {
		return err
	}

	completedAt := now.UTC()
	j.status = newStatus
	j.completedAt = &completedAt
	return nil
}

// MarkCustomerNotCall closes an Accepted job the customer did not attend. The translator
// stays assigned and the completion time is stamped as with End.
func (j *Job) MarkCustomerNotCall(now time.Time) error {
	newStatus, err := j.status.CustomerNotCall()
	if err != nil {
		return err
	}

	completedAt := now.UTC()
	j.status = newStatus
	j.completedAt = &completedAt
	return nil
}

// Cancel cancels an Offered or Accepted job on behalf of actor and clears the assignment.
// Cancelling a Cancelled job changes nothing and reports changed == false.
func (j *Job) Cancel(actor kernel.UUID) (changed bool, err error) {
	if err = actor.Validate(); err != nil {
		return false, err
	}

	if j.status == Cancelled {
		return false, nil
	}

	newStatus, err := j.status.Cancel()
	if err != nil {
		return false, err
	}

	j.status = newStatus
	j.translatorID = nil
	j.cancelledBy = &actor
	return true, nil
}

// Reopen returns the job to Open, clearing the translator and the offer deadline.
func (j *Job) Reopen() error {
	newStatus, err := j.status.Reopen()
	if err != nil {
		return err
	}

	j.status = newStatus
	j.translatorID = nil
	j.expiresAt = nil
	j.cancelledBy = nil
	return nil
}

// ApplyTelemetry writes the job columns present in p. The distance part is stored separately.
func (j *Job) ApplyTelemetry(p TelemetryPatch) {
	if p.SessionTime != nil {
		j.sessionTime = *p.SessionTime
	}
	if p.AdminComments != nil {
		j.adminComments = *p.AdminComments
	}
	if p.Flagged != nil {
		j.flagged = *p.Flagged
	}
	if p.ManuallyHandled != nil {
		j.manuallyHandled = *p.ManuallyHandled
	}
	if p.ByAdmin != nil {
		j.byAdmin = *p.ByAdmin
	}
}

func (j *Job) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	j.id = id
	return nil
}

func (j *Job) setCustomer(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer", err)
	}
	j.customerID = customerID
	return nil
}

func (j *Job) setSchedule(createdAt, dueAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created_at")
	}
	if dueAt.IsZero() {
		return errs.NewValueIsRequiredError("due_at")
	}
	if dueAt.Before(createdAt) {
		return errs.NewValueIsInvalidErrorWithCause(
			"due_at is invalid",
			fmt.Errorf("%s is before creation time %s", dueAt.UTC().Format(time.RFC3339), createdAt.UTC().Format(time.RFC3339)),
		)
	}
	j.createdAt = createdAt.UTC()
	j.dueAt = dueAt.UTC()
	return nil
}

func expiresBeforeCreated(expiresAt, createdAt time.Time) error {
	return errs.NewValueIsInvalidErrorWithCause(
		"expires_at is invalid",
		fmt.Errorf("%s is before creation time %s",
			expiresAt.UTC().Format(time.RFC3339), createdAt.UTC().Format(time.RFC3339)),
	)
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
