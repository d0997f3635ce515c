package commands

import (
	"context"
	"time"

	"jobdispatch/internal/core/ports"
	"jobdispatch/internal/pkg/errs"
)

// ResendSMSNotificationCommandHandler sends exactly one SMS and waits for the gateway.
// A gateway failure is returned as errs.GatewayError.
type ResendSMSNotificationCommandHandler struct {
	uowFactory JobUoWFactory
	gateway    ports.NotificationGateway
	timeout    time.Duration
}

func NewResendSMSNotificationCommandHandler(
	uowFactory JobUoWFactory, gateway ports.NotificationGateway, timeout time.Duration,
) ResendSMSNotificationCommandHandler {
	if timeout <= 0 {
		timeout = DefaultPushTimeout
	}
	return ResendSMSNotificationCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		timeout:    timeout,
	}
}

func (h ResendSMSNotificationCommandHandler) Handle(ctx context.Context, cmd ResendSMSNotificationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := h.uowFactory.Create().JobRepository().Get(ctx, cmd.JobID())
	if err != nil {
		return err
	}

	smsCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	if err = h.gateway.SendSMS(smsCtx, cmd.TranslatorID(), payloadFor(ports.NotificationJobResent, aggregate)); err != nil {
		return errs.NewGatewayError(string(ports.ChannelSMS), err)
	}

	return nil
}
