// Package notification delivers push and SMS notifications to the messaging service.
package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/core/ports"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
)

const (
	pushPath = "/v1/notifications/push"
	smsPath  = "/v1/notifications/sms"

	// DefaultBreakerFailures is the number of consecutive failures that opens the circuit.
	DefaultBreakerFailures = 5
	// DefaultBreakerCooldown is how long the circuit stays open before a trial request.
	DefaultBreakerCooldown = 30 * time.Second
)

// HTTPGatewayConfig configures HTTPGateway.
type HTTPGatewayConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration

	BreakerFailures uint32
	BreakerCooldown time.Duration
}

// HTTPGateway implements ports.NotificationGateway over the messaging service's REST API.
// Every call goes through a circuit breaker, so a dead upstream fails fast with
// gobreaker.ErrOpenState instead of holding goroutines for the full timeout.
type HTTPGateway struct {
	client  *resty.Client
	breaker *gobreaker.CircuitBreaker
	logger  *slog.Logger
}

func NewHTTPGateway(cfg HTTPGatewayConfig, logger *slog.Logger) *HTTPGateway {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "notification-gateway")

	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = DefaultBreakerFailures
	}
	if cfg.BreakerCooldown <= 0 {
		cfg.BreakerCooldown = DefaultBreakerCooldown
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Content-Type", "application/json")
	if cfg.APIKey != "" {
		client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	}
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	failures := cfg.BreakerFailures
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "notification-gateway",
		Timeout: cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	return &HTTPGateway{
		client:  client,
		breaker: breaker,
		logger:  logger,
	}
}

type targetsBody struct {
	All bool     `json:"all"`
	IDs []string `json:"ids,omitempty"`
}

type notificationBody struct {
	Kind       string     `json:"kind"`
	JobID      string     `json:"job_id"`
	CustomerID string     `json:"customer_id"`
	Status     string     `json:"status"`
	DueAt      time.Time  `json:"due_at"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	Message    string     `json:"message"`
}

type pushRequest struct {
	Targets      targetsBody      `json:"targets"`
	Notification notificationBody `json:"notification"`
}

type smsRequest struct {
	TranslatorID string           `json:"translator_id"`
	Notification notificationBody `json:"notification"`
}

// SendPush posts the payload to the push endpoint.
func (g *HTTPGateway) SendPush(ctx context.Context, targets ports.Targets, payload ports.NotificationPayload) error {
	body := pushRequest{
		Targets:      targetsBody{All: targets.IsAll(), IDs: idStrings(targets.IDs())},
		Notification: toNotificationBody(payload),
	}
	return g.post(ctx, ports.ChannelPush, pushPath, body)
}

// SendSMS posts the payload to the SMS endpoint for a single translator.
func (g *HTTPGateway) SendSMS(ctx context.Context, translator kernel.UUID, payload ports.NotificationPayload) error {
	body := smsRequest{
		TranslatorID: translator.String(),
		Notification: toNotificationBody(payload),
	}
	return g.post(ctx, ports.ChannelSMS, smsPath, body)
}

func (g *HTTPGateway) post(ctx context.Context, channel ports.Channel, path string, body any) error {
	_, err := g.breaker.Execute(func() (interface{}, error) {
		resp, err := g.client.R().
			SetContext(ctx).
			SetBody(body).
			Post(path)
		if err != nil {
			return nil, fmt.Errorf("failed to call messaging service: %w", err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("messaging service error: status %d: %s", resp.StatusCode(), resp.String())
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("%s notification: %w", channel, err)
	}
	return nil
}

func toNotificationBody(p ports.NotificationPayload) notificationBody {
	return notificationBody{
		Kind:       string(p.Kind),
		JobID:      p.JobID.String(),
		CustomerID: p.CustomerID.String(),
		Status:     p.Status,
		DueAt:      p.DueAt,
		ExpiresAt:  p.ExpiresAt,
		Message:    p.Message,
	}
}

func idStrings(ids []kernel.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
