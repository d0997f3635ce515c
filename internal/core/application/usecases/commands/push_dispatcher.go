package commands

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"jobdispatch/internal/core/ports"
)

// DefaultPushTimeout bounds a single background push when none is configured.
const DefaultPushTimeout = 10 * time.Second

// PushDispatcher sends push notifications in the background. The caller's request is never
// held up by, or failed by, a push. Failures are logged.
//
// Wait drains in-flight pushes and is called on shutdown.
type PushDispatcher struct {
	gateway ports.NotificationGateway
	timeout time.Duration
	logger  *slog.Logger
	wg      sync.WaitGroup
}

func NewPushDispatcher(gateway ports.NotificationGateway, timeout time.Duration, logger *slog.Logger) *PushDispatcher {
	if timeout <= 0 {
		timeout = DefaultPushTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PushDispatcher{
		gateway: gateway,
		timeout: timeout,
		logger:  logger.With("component", "push-dispatcher"),
	}
}

// Dispatch starts the push and returns immediately. The push outlives ctx cancellation but
// keeps its values.
func (d *PushDispatcher) Dispatch(ctx context.Context, targets ports.Targets, payload ports.NotificationPayload) {
	if targets.IsEmpty() {
		return
	}

	pushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer cancel()

		if err := d.gateway.SendPush(pushCtx, targets, payload); err != nil {
			d.logger.ErrorContext(pushCtx, "push notification failed",
				"job_id", payload.JobID.String(),
				"kind", string(payload.Kind),
				"error", err,
			)
			return
		}

		d.logger.DebugContext(pushCtx, "push notification sent",
			"job_id", payload.JobID.String(),
			"kind", string(payload.Kind),
		)
	}()
}

// Wait blocks until every dispatched push has finished or ctx is done.
func (d *PushDispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
