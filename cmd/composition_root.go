package cmd

import (
	"context"
	"errors"
	"log/slog"

	httpadapter "jobdispatch/internal/adapters/in/http"
	"jobdispatch/internal/adapters/out/kafka"
	"jobdispatch/internal/adapters/out/notification"
	"jobdispatch/internal/adapters/out/postgres"
	"jobdispatch/internal/core/application/dispatch"
	"jobdispatch/internal/core/application/usecases/commands"
	"jobdispatch/internal/core/application/usecases/queries"
	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/core/domain/services"
	"jobdispatch/internal/core/ports"
	"jobdispatch/internal/jobs"

	"gorm.io/gorm"
)

// EventPublisher is a job event publisher that holds a connection.
type EventPublisher interface {
	ports.JobEventPublisher
	Close() error
}

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	clock      kernel.Clock
	evaluator  services.ExpiryEvaluator
	gateway    ports.NotificationGateway
	publisher  EventPublisher
	pusher     *commands.PushDispatcher
	logger     *slog.Logger
}

// NewCompositionRoot wires the outbound adapters. Without NOTIFICATION_BASE_URL notifications
// are only logged; without KAFKA_BROKERS job events are dropped.
func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	tiers, err := services.ExpiryTiersByName(configs.ExpiryTierTable)
	if err != nil {
		return nil, err
	}

	var gateway ports.NotificationGateway
	if configs.NotificationBaseURL != "" {
		gateway = notification.NewHTTPGateway(configs.NotificationConfig(), logger)
	} else {
		logger.Warn("NOTIFICATION_BASE_URL is not set, notifications are logged only")
		gateway = notification.NewLogGateway(logger)
	}

	var publisher EventPublisher = kafka.NoopPublisher{}
	if len(configs.KafkaBrokers) > 0 {
		publisher = kafka.NewJobChangedPublisher(
			configs.KafkaBrokers, configs.KafkaJobChangedTopic, configs.KafkaPublishTimeout,
		)
	}

	return &CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		clock:      kernel.SystemClock{},
		evaluator:  services.NewExpiryEvaluator(tiers),
		gateway:    gateway,
		publisher:  publisher,
		pusher:     commands.NewPushDispatcher(gateway, configs.NotificationTimeout, logger),
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) jobUoWFactory() commands.JobUoWFactory {
	return FuncJobUoWFactory(func() commands.JobUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateJobCommandHandler() commands.CreateJobCommandHandler {
	return commands.NewCreateJobCommandHandler(c.jobUoWFactory(), c.clock, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateOfferJobCommandHandler() commands.OfferJobCommandHandler {
	return commands.NewOfferJobCommandHandler(c.jobUoWFactory(), c.evaluator, c.pusher, c.clock, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAcceptJobCommandHandler() commands.AcceptJobCommandHandler {
	return commands.NewAcceptJobCommandHandler(c.jobUoWFactory(), c.pusher, c.clock, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCancelJobCommandHandler() commands.CancelJobCommandHandler {
	return commands.NewCancelJobCommandHandler(c.jobUoWFactory(), c.clock, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateEndJobCommandHandler() commands.EndJobCommandHandler {
	return commands.NewEndJobCommandHandler(c.jobUoWFactory(), c.clock, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateReopenJobCommandHandler() commands.ReopenJobCommandHandler {
	return commands.NewReopenJobCommandHandler(c.jobUoWFactory(), c.clock, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCustomerNotCallCommandHandler() commands.CustomerNotCallCommandHandler {
	return commands.NewCustomerNotCallCommandHandler(c.jobUoWFactory(), c.clock, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateUpdateJobCommandHandler() commands.UpdateJobCommandHandler {
	return commands.NewUpdateJobCommandHandler(c.jobUoWFactory(), c.clock, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateExpireOffersCommandHandler() commands.ExpireOffersCommandHandler {
	return commands.NewExpireOffersCommandHandler(c.jobUoWFactory(), c.clock, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateResendNotificationsCommandHandler() commands.ResendNotificationsCommandHandler {
	return commands.NewResendNotificationsCommandHandler(c.jobUoWFactory(), c.pusher)
}

func (c *CompositionRoot) CreateResendSMSNotificationCommandHandler() commands.ResendSMSNotificationCommandHandler {
	return commands.NewResendSMSNotificationCommandHandler(c.jobUoWFactory(), c.gateway, c.configs.NotificationTimeout)
}

func (c *CompositionRoot) CreateFeedTelemetryCommandHandler() commands.FeedTelemetryCommandHandler {
	return commands.NewFeedTelemetryCommandHandler(c.jobUoWFactory(), c.clock, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateGetJobQueryHandler() queries.GetJobQueryHandler {
	return queries.NewGetJobQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListUserJobsQueryHandler() queries.ListUserJobsQueryHandler {
	return queries.NewListUserJobsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListUserJobsHistoryQueryHandler() queries.ListUserJobsHistoryQueryHandler {
	return queries.NewListUserJobsHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListAllJobsQueryHandler() queries.ListAllJobsQueryHandler {
	return queries.NewListAllJobsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListPotentialJobsQueryHandler() queries.ListPotentialJobsQueryHandler {
	return queries.NewListPotentialJobsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateDispatchFacade() (*dispatch.Facade, error) {
	return dispatch.NewFacade(c.configs.DispatchConfig(), dispatch.Handlers{
		CreateJob:             c.CreateCreateJobCommandHandler(),
		OfferJob:              c.CreateOfferJobCommandHandler(),
		AcceptJob:             c.CreateAcceptJobCommandHandler(),
		CancelJob:             c.CreateCancelJobCommandHandler(),
		EndJob:                c.CreateEndJobCommandHandler(),
		ReopenJob:             c.CreateReopenJobCommandHandler(),
		CustomerNotCall:       c.CreateCustomerNotCallCommandHandler(),
		UpdateJob:             c.CreateUpdateJobCommandHandler(),
		ResendNotifications:   c.CreateResendNotificationsCommandHandler(),
		ResendSMSNotification: c.CreateResendSMSNotificationCommandHandler(),
		FeedTelemetry:         c.CreateFeedTelemetryCommandHandler(),
		GetJob:                c.CreateGetJobQueryHandler(),
		ListUserJobs:          c.CreateListUserJobsQueryHandler(),
		ListUserJobsHistory:   c.CreateListUserJobsHistoryQueryHandler(),
		ListAllJobs:           c.CreateListAllJobsQueryHandler(),
		ListPotentialJobs:     c.CreateListPotentialJobsQueryHandler(),
	}, c.clock, c.logger)
}

func (c *CompositionRoot) CreateHTTPServer() (*httpadapter.Server, error) {
	facade, err := c.CreateDispatchFacade()
	if err != nil {
		return nil, err
	}
	return httpadapter.NewServer(facade), nil
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.configs.JobsConfig(), c.CreateExpireOffersCommandHandler(), c.logger)
}

// Close drains in-flight pushes, then closes the event publisher.
func (c *CompositionRoot) Close(ctx context.Context) error {
	return errors.Join(c.pusher.Wait(ctx), c.publisher.Close())
}

type FuncJobUoWFactory func() commands.JobUoW

func (f FuncJobUoWFactory) Create() commands.JobUoW {
	return f()
}
