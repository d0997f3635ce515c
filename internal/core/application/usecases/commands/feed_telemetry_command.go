package commands

import (
	"errors"

	"jobdispatch/internal/core/domain/model/job"
	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/pkg/guard"
)

var ErrFeedTelemetryCommandIsNotConstructed = errors.New(
	"FeedTelemetryCommand must be created via NewFeedTelemetryCommand constructor",
)

// FeedTelemetryCommand merges a partial telemetry feed into a job.
type FeedTelemetryCommand struct { //nolint:recvcheck //using for validation
	jobID kernel.UUID
	patch job.TelemetryPatch

	guard guard.ConstructorGuard
}

func NewFeedTelemetryCommand(jobID kernel.UUID, input job.TelemetryInput) (FeedTelemetryCommand, error) {
	if err := requireID("job_id", jobID); err != nil {
		return FeedTelemetryCommand{}, err
	}

	return FeedTelemetryCommand{
		jobID: jobID,
		patch: job.NewTelemetryPatch(input),
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c FeedTelemetryCommand) Validate() error {
	return c.guard.Validate(ErrFeedTelemetryCommandIsNotConstructed)
}

func (c FeedTelemetryCommand) JobID() kernel.UUID {
	return c.jobID
}

func (c FeedTelemetryCommand) Patch() job.TelemetryPatch {
	return c.patch
}
