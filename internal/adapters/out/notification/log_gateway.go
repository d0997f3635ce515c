package notification

import (
	"context"
	"log/slog"

	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/core/ports"
)

// LogGateway writes notifications to the log instead of delivering them.
// It is wired when no messaging service is configured.
type LogGateway struct {
	logger *slog.Logger
}

func NewLogGateway(logger *slog.Logger) *LogGateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogGateway{logger: logger.With("component", "notification-gateway")}
}

func (g *LogGateway) SendPush(ctx context.Context, targets ports.Targets, payload ports.NotificationPayload) error {
	g.logger.InfoContext(ctx, "push notification",
		"kind", string(payload.Kind),
		"job_id", payload.JobID.String(),
		"all_eligible", targets.IsAll(),
		"targets", idStrings(targets.IDs()),
	)
	return nil
}

func (g *LogGateway) SendSMS(ctx context.Context, translator kernel.UUID, payload ports.NotificationPayload) error {
	g.logger.InfoContext(ctx, "sms notification",
		"kind", string(payload.Kind),
		"job_id", payload.JobID.String(),
		"translator_id", translator.String(),
	)
	return nil
}
