package queries

import (
	"errors"
	"time"

	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/pkg/errs"
	"jobdispatch/internal/pkg/guard"
)

var ErrListPotentialJobsQueryIsNotConstructed = errors.New(
	"ListPotentialJobsQuery must be created via NewListPotentialJobsQuery constructor",
)

// ListPotentialJobsQuery lists the offers a translator can still accept at a given instant.
type ListPotentialJobsQuery struct {
	translatorID kernel.UUID
	now          time.Time

	guard guard.ConstructorGuard
}

func NewListPotentialJobsQuery(translatorID kernel.UUID, now time.Time) (ListPotentialJobsQuery, error) {
	if err := translatorID.Validate(); err != nil {
		return ListPotentialJobsQuery{}, errs.NewValueIsRequiredErrorWithCause("translator_id", err)
	}
	if now.IsZero() {
		return ListPotentialJobsQuery{}, errs.NewValueIsRequiredError("now")
	}
	return ListPotentialJobsQuery{
		translatorID: translatorID,
		now:          now.UTC(),
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (q ListPotentialJobsQuery) Validate() error {
	return q.guard.Validate(ErrListPotentialJobsQueryIsNotConstructed)
}

func (q ListPotentialJobsQuery) TranslatorID() kernel.UUID {
	return q.translatorID
}

func (q ListPotentialJobsQuery) Now() time.Time {
	return q.now
}
