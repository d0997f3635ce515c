package commands

import (
	"context"

	"jobdispatch/internal/core/ports"
)

// ResendNotificationsCommandHandler re-derives the offer payload from the stored job and
// dispatches it over push. Push failures are logged by the dispatcher, never returned.
type ResendNotificationsCommandHandler struct {
	uowFactory JobUoWFactory
	pusher     *PushDispatcher
}

func NewResendNotificationsCommandHandler(uowFactory JobUoWFactory, pusher *PushDispatcher) ResendNotificationsCommandHandler {
	return ResendNotificationsCommandHandler{
		uowFactory: uowFactory,
		pusher:     pusher,
	}
}

func (h ResendNotificationsCommandHandler) Handle(ctx context.Context, cmd ResendNotificationsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := h.uowFactory.Create().JobRepository().Get(ctx, cmd.JobID())
	if err != nil {
		return err
	}

	h.pusher.Dispatch(ctx, cmd.Targets(), payloadFor(ports.NotificationJobResent, aggregate))
	return nil
}
