package dispatch

import (
	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/pkg/errs"
)

// Caller is the authenticated identity the transport layer attaches to a request.
type Caller struct {
	UserID string
	Role   string
}

type ListJobsInput struct {
	Caller   Caller
	UserID   string
	Page     int
	PageSize int
}

type GetJobInput struct {
	JobID string
}

// CreateJobInput creates a job for CustomerID, or for the caller when it is empty.
// DueAt is "2006-01-02 15:04:05" in UTC or RFC 3339.
type CreateJobInput struct {
	Caller     Caller
	CustomerID string
	DueAt      string
}

// OfferJobInput offers a job to Translators, or to every eligible translator when empty.
type OfferJobInput struct {
	JobID       string
	Translators []string
}

// AcceptJobInput accepts on behalf of TranslatorID, or of the caller when it is empty.
type AcceptJobInput struct {
	Caller       Caller
	JobID        string
	TranslatorID string
}

// CancelJobInput cancels on behalf of ActorID, or of the caller when it is empty.
type CancelJobInput struct {
	Caller  Caller
	JobID   string
	ActorID string
}

type EndJobInput struct {
	JobID string
}

type CustomerNotCallInput struct {
	JobID string
}

// UpdateJobInput edits the booking fields of a job. Nil fields are left as stored.
// DueAt uses the same formats as CreateJobInput.
type UpdateJobInput struct {
	JobID         string
	DueAt         *string
	AdminComments *string
}

type ReopenJobInput struct {
	JobID string
}

// ResendNotificationsInput re-pushes the offer to Translators, or to every eligible
// translator when empty.
type ResendNotificationsInput struct {
	JobID       string
	Translators []string
}

type ResendSMSNotificationInput struct {
	JobID        string
	TranslatorID string
}

// FeedTelemetryInput carries a partial telemetry update. Nil fields are absent.
type FeedTelemetryInput struct {
	JobID           string
	Distance        *string
	Time            *string
	SessionTime     *string
	Flagged         *string
	ManuallyHandled *string
	ByAdmin         *string
	AdminComments   *string
}

type GetHistoryInput struct {
	UserID   string
	Page     int
	PageSize int
}

type ListPotentialJobsInput struct {
	TranslatorID string
}

func parseID(param, raw string) (kernel.UUID, error) {
	if raw == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(param)
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return id, nil
}

func parseIDs(param string, raw []string) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := parseID(param, r)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
