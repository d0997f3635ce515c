package commands

import (
	"errors"

	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/core/ports"
	"jobdispatch/internal/pkg/guard"
)

var ErrResendNotificationsCommandIsNotConstructed = errors.New(
	"ResendNotificationsCommand must be created via NewResendNotificationsCommand constructor",
)

// ResendNotificationsCommand repeats the push fan-out of a job without touching its state.
type ResendNotificationsCommand struct { //nolint:recvcheck //using for validation
	jobID   kernel.UUID
	targets ports.Targets

	guard guard.ConstructorGuard
}

// NewResendNotificationsCommand addresses every eligible translator when targets is empty.
func NewResendNotificationsCommand(jobID kernel.UUID, targets ports.Targets) (ResendNotificationsCommand, error) {
	if err := requireID("job_id", jobID); err != nil {
		return ResendNotificationsCommand{}, err
	}

	for _, id := range targets.IDs() {
		if err := requireID("translator_id", id); err != nil {
			return ResendNotificationsCommand{}, err
		}
	}

	if targets.IsEmpty() {
		targets = ports.AllEligible()
	}

	return ResendNotificationsCommand{
		jobID:   jobID,
		targets: targets,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ResendNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrResendNotificationsCommandIsNotConstructed)
}

func (c ResendNotificationsCommand) JobID() kernel.UUID {
	return c.jobID
}

func (c ResendNotificationsCommand) Targets() ports.Targets {
	return c.targets
}
