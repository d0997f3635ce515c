package commands

import (
	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/pkg/errs"
)

func requireID(paramName string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(paramName, err)
	}
	return nil
}
