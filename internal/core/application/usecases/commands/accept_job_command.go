package commands

import (
	"errors"

	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/pkg/guard"
)

var ErrAcceptJobCommandIsNotConstructed = errors.New(
	"AcceptJobCommand must be created via NewAcceptJobCommand constructor",
)

// AcceptJobCommand assigns an Offered job to the translator accepting it.
type AcceptJobCommand struct { //nolint:recvcheck //using for validation
	jobID        kernel.UUID
	translatorID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAcceptJobCommand(jobID, translatorID kernel.UUID) (AcceptJobCommand, error) {
	cmd := AcceptJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requireID("job_id", jobID),
		requireID("translator_id", translatorID),
	); err != nil {
		return AcceptJobCommand{}, err
	}

	cmd.jobID = jobID
	cmd.translatorID = translatorID
	return cmd, nil
}

func (c AcceptJobCommand) Validate() error {
	return c.guard.Validate(ErrAcceptJobCommandIsNotConstructed)
}

func (c AcceptJobCommand) JobID() kernel.UUID {
	return c.jobID
}

func (c AcceptJobCommand) TranslatorID() kernel.UUID {
	return c.translatorID
}
