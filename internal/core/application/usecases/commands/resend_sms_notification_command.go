package commands

import (
	"errors"

	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/pkg/guard"
)

var ErrResendSMSNotificationCommandIsNotConstructed = errors.New(
	"ResendSMSNotificationCommand must be created via NewResendSMSNotificationCommand constructor",
)

// ResendSMSNotificationCommand sends the offer of a job to one translator by SMS.
type ResendSMSNotificationCommand struct { //nolint:recvcheck //using for validation
	jobID        kernel.UUID
	translatorID kernel.UUID

	guard guard.ConstructorGuard
}

func NewResendSMSNotificationCommand(jobID, translatorID kernel.UUID) (ResendSMSNotificationCommand, error) {
	if err := errors.Join(
		requireID("job_id", jobID),
		requireID("translator_id", translatorID),
	); err != nil {
		return ResendSMSNotificationCommand{}, err
	}

	return ResendSMSNotificationCommand{
		jobID:        jobID,
		translatorID: translatorID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c ResendSMSNotificationCommand) Validate() error {
	return c.guard.Validate(ErrResendSMSNotificationCommandIsNotConstructed)
}

func (c ResendSMSNotificationCommand) JobID() kernel.UUID {
	return c.jobID
}

func (c ResendSMSNotificationCommand) TranslatorID() kernel.UUID {
	return c.translatorID
}
