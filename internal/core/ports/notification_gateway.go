package ports

import (
	"context"
	"slices"
	"time"

	"jobdispatch/internal/core/domain/model/kernel"
)

// Channel is a notification transport.
type Channel string

const (
	ChannelPush Channel = "push"
	ChannelSMS  Channel = "sms"
)

// NotificationKind tells the receiving app which template to render.
type NotificationKind string

const (
	NotificationJobOffered  NotificationKind = "job_offered"
	NotificationJobResent   NotificationKind = "job_offer_resent"
	NotificationJobAccepted NotificationKind = "job_accepted"
)

// Targets selects push recipients: either every eligible translator or an explicit set.
// The zero value addresses nobody.
type Targets struct {
	all bool
	ids []kernel.UUID
}

// AllEligible targets every translator the gateway considers eligible for the job.
func AllEligible() Targets {
	return Targets{all: true}
}

// ExplicitSet targets exactly ids.
func ExplicitSet(ids ...kernel.UUID) Targets {
	return Targets{ids: slices.Clone(ids)}
}

func (t Targets) IsAll() bool {
	return t.all
}

// IDs returns a copy of the explicit recipients; empty for AllEligible.
func (t Targets) IDs() []kernel.UUID {
	return slices.Clone(t.ids)
}

// IsEmpty reports whether the targets address nobody.
func (t Targets) IsEmpty() bool {
	return !t.all && len(t.ids) == 0
}

// NotificationPayload is derived from the job at send time and never persisted.
type NotificationPayload struct {
	Kind       NotificationKind
	JobID      kernel.UUID
	CustomerID kernel.UUID
	Status     string
	DueAt      time.Time
	ExpiresAt  *time.Time
	Message    string
}

// NotificationGateway delivers offer notifications.
type NotificationGateway interface {
	// SendPush delivers payload to targets. Callers treat failures as best-effort.
	SendPush(ctx context.Context, targets Targets, payload NotificationPayload) error

	// SendSMS delivers payload to a single translator.
	SendSMS(ctx context.Context, translator kernel.UUID, payload NotificationPayload) error
}
