package commands

import (
	"errors"
	"slices"

	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/core/ports"
	"jobdispatch/internal/pkg/guard"
)

var ErrOfferJobCommandIsNotConstructed = errors.New(
	"OfferJobCommand must be created via NewOfferJobCommand constructor",
)

// OfferJobCommand posts an Open job to translators. With no translators listed the offer
// goes to every eligible translator.
type OfferJobCommand struct { //nolint:recvcheck //using for validation
	jobID       kernel.UUID
	translators []kernel.UUID

	guard guard.ConstructorGuard
}

func NewOfferJobCommand(jobID kernel.UUID, translators ...kernel.UUID) (OfferJobCommand, error) {
	cmd := OfferJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := requireID("job_id", jobID); err != nil {
		return OfferJobCommand{}, err
	}
	cmd.jobID = jobID

	for _, id := range translators {
		if err := requireID("translator_id", id); err != nil {
			return OfferJobCommand{}, err
		}
	}
	cmd.translators = slices.Clone(translators)

	return cmd, nil
}

func (c OfferJobCommand) Validate() error {
	return c.guard.Validate(ErrOfferJobCommandIsNotConstructed)
}

func (c OfferJobCommand) JobID() kernel.UUID {
	return c.jobID
}

// Targets returns the push recipients of the offer.
func (c OfferJobCommand) Targets() ports.Targets {
	if len(c.translators) == 0 {
		return ports.AllEligible()
	}
	return ports.ExplicitSet(c.translators...)
}
