package commands

import (
	"errors"

	"jobdispatch/internal/pkg/errs"
	"jobdispatch/internal/pkg/guard"
)

var ErrExpireOffersCommandIsNotConstructed = errors.New(
	"ExpireOffersCommand must be created via NewExpireOffersCommand constructor",
)

const (
	DefaultExpireBatchSize = 100
	MaxExpireBatchSize     = 1000
)

// ExpireOffersCommand cancels Offered jobs whose deadline has passed, in batches.
type ExpireOffersCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

func NewExpireOffersCommand(batchSize int) (ExpireOffersCommand, error) {
	if batchSize < 1 || batchSize > MaxExpireBatchSize {
		return ExpireOffersCommand{}, errs.NewValueIsOutOfRangeError("batch_size", batchSize, 1, MaxExpireBatchSize)
	}

	return ExpireOffersCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ExpireOffersCommand) Validate() error {
	return c.guard.Validate(ErrExpireOffersCommandIsNotConstructed)
}

func (c ExpireOffersCommand) BatchSize() int {
	return c.batchSize
}
