package ports

import (
	"context"
	"time"

	"jobdispatch/internal/core/domain/model/kernel"
)

// JobChangedEvent is emitted after a committed lifecycle or telemetry write.
type JobChangedEvent struct {
	JobID        kernel.UUID
	Operation    string
	Status       string
	TranslatorID *kernel.UUID
	OccurredAt   time.Time
}

// JobEventPublisher publishes job change events to downstream consumers.
type JobEventPublisher interface {
	PublishJobChanged(ctx context.Context, event JobChangedEvent) error
}
