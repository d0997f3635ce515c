// Package dispatch is the boundary the transport layer calls. Each method validates its
// input struct once, makes exactly one command or query call and translates the outcome
// into a result struct or an *Error. No business rules live here.
package dispatch

import (
	"context"
	"log/slog"

	"jobdispatch/internal/core/application/usecases/commands"
	"jobdispatch/internal/core/application/usecases/queries"
	"jobdispatch/internal/core/domain/model/job"
	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/core/ports"
	"jobdispatch/internal/pkg/errs"
)

type (
	CreateJobHandler interface {
		Handle(ctx context.Context, cmd commands.CreateJobCommand) (*job.Job, error)
	}
	OfferJobHandler interface {
		Handle(ctx context.Context, cmd commands.OfferJobCommand) (*job.Job, error)
	}
	AcceptJobHandler interface {
		Handle(ctx context.Context, cmd commands.AcceptJobCommand) (*job.Job, error)
	}
	CancelJobHandler interface {
		Handle(ctx context.Context, cmd commands.CancelJobCommand) (*job.Job, error)
	}
	EndJobHandler interface {
		Handle(ctx context.Context, cmd commands.EndJobCommand) (*job.Job, error)
	}
	ReopenJobHandler interface {
		Handle(ctx context.Context, cmd commands.ReopenJobCommand) (*job.Job, error)
	}
	CustomerNotCallHandler interface {
		Handle(ctx context.Context, cmd commands.CustomerNotCallCommand) (*job.Job, error)
	}
	UpdateJobHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateJobCommand) (*job.Job, error)
	}
	ResendNotificationsHandler interface {
		Handle(ctx context.Context, cmd commands.ResendNotificationsCommand) error
	}
	ResendSMSNotificationHandler interface {
		Handle(ctx context.Context, cmd commands.ResendSMSNotificationCommand) error
	}
	FeedTelemetryHandler interface {
		Handle(ctx context.Context, cmd commands.FeedTelemetryCommand) (commands.FeedTelemetryResult, error)
	}
	GetJobHandler interface {
		Handle(ctx context.Context, query queries.GetJobQuery) (queries.GetJobQueryResponse, error)
	}
	ListUserJobsHandler interface {
		Handle(ctx context.Context, query queries.ListUserJobsQuery) ([]queries.JobView, error)
	}
	ListUserJobsHistoryHandler interface {
		Handle(ctx context.Context, query queries.ListUserJobsHistoryQuery) (queries.JobPage, error)
	}
	ListAllJobsHandler interface {
		Handle(ctx context.Context, query queries.ListAllJobsQuery) (queries.JobPage, error)
	}
	ListPotentialJobsHandler interface {
		Handle(ctx context.Context, query queries.ListPotentialJobsQuery) ([]queries.JobView, error)
	}
)

// Handlers holds one use case handler per facade operation. All fields are required.
type Handlers struct {
	CreateJob             CreateJobHandler
	OfferJob              OfferJobHandler
	AcceptJob             AcceptJobHandler
	CancelJob             CancelJobHandler
	EndJob                EndJobHandler
	ReopenJob             ReopenJobHandler
	CustomerNotCall       CustomerNotCallHandler
	UpdateJob             UpdateJobHandler
	ResendNotifications   ResendNotificationsHandler
	ResendSMSNotification ResendSMSNotificationHandler
	FeedTelemetry         FeedTelemetryHandler
	GetJob                GetJobHandler
	ListUserJobs          ListUserJobsHandler
	ListUserJobsHistory   ListUserJobsHistoryHandler
	ListAllJobs           ListAllJobsHandler
	ListPotentialJobs     ListPotentialJobsHandler
}

func (h Handlers) validate() error {
	required := map[string]any{
		"create_job":              h.CreateJob,
		"offer_job":               h.OfferJob,
		"accept_job":              h.AcceptJob,
		"cancel_job":              h.CancelJob,
		"end_job":                 h.EndJob,
		"reopen_job":              h.ReopenJob,
		"customer_not_call":       h.CustomerNotCall,
		"update_job":              h.UpdateJob,
		"resend_notifications":    h.ResendNotifications,
		"resend_sms_notification": h.ResendSMSNotification,
		"feed_telemetry":          h.FeedTelemetry,
		"get_job":                 h.GetJob,
		"list_user_jobs":          h.ListUserJobs,
		"list_user_jobs_history":  h.ListUserJobsHistory,
		"list_all_jobs":           h.ListAllJobs,
		"list_potential_jobs":     h.ListPotentialJobs,
	}
	for name, handler := range required {
		if handler == nil {
			return errs.NewValueIsRequiredError(name + "_handler")
		}
	}
	return nil
}

// Facade exposes one method per dispatch verb. Every returned error is an *Error.
type Facade struct {
	cfg      Config
	handlers Handlers
	clock    kernel.Clock
	logger   *slog.Logger
}

func NewFacade(cfg Config, handlers Handlers, clock kernel.Clock, logger *slog.Logger) (*Facade, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := handlers.validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Facade{
		cfg:      cfg,
		handlers: handlers,
		clock:    clock,
		logger:   logger.With("component", "dispatch"),
	}, nil
}

// ListJobs lists the jobs of in.UserID when given. Otherwise callers whose role may list
// all jobs get every job and everyone else gets an empty list.
func (f *Facade) ListJobs(ctx context.Context, in ListJobsInput) (JobList, error) {
	if in.Caller.Role != "" && !f.cfg.IsRecognised(in.Caller.Role) {
		return JobList{}, newForbiddenError("role " + in.Caller.Role + " is not recognised")
	}

	if in.UserID != "" {
		userID, err := parseID("user_id", in.UserID)
		if err != nil {
			return JobList{}, f.fail(ctx, "list_jobs", err)
		}
		query, err := queries.NewListUserJobsQuery(userID)
		if err != nil {
			return JobList{}, f.fail(ctx, "list_jobs", err)
		}
		views, err := f.handlers.ListUserJobs.Handle(ctx, query)
		if err != nil {
			return JobList{}, f.fail(ctx, "list_jobs", err)
		}
		return listFromViews(views), nil
	}

	if !f.cfg.CanListAll(in.Caller.Role) {
		return JobList{Jobs: []Job{}, Page: 1}, nil
	}

	pagination, err := queries.NewPagination(in.Page, in.PageSize)
	if err != nil {
		return JobList{}, f.fail(ctx, "list_jobs", err)
	}
	page, err := f.handlers.ListAllJobs.Handle(ctx, queries.NewListAllJobsQuery(pagination))
	if err != nil {
		return JobList{}, f.fail(ctx, "list_jobs", err)
	}
	return listFromPage(page), nil
}

// GetJob returns the job together with its distance record, if any.
func (f *Facade) GetJob(ctx context.Context, in GetJobInput) (Job, error) {
	jobID, err := parseID("job_id", in.JobID)
	if err != nil {
		return Job{}, f.fail(ctx, "get_job", err)
	}
	query, err := queries.NewGetJobQuery(jobID)
	if err != nil {
		return Job{}, f.fail(ctx, "get_job", err)
	}

	response, err := f.handlers.GetJob.Handle(ctx, query)
	if err != nil {
		return Job{}, f.fail(ctx, "get_job", err)
	}

	result := jobFromView(response.Job)
	if response.Distance != nil {
		result.Distance = &Distance{Distance: response.Distance.Distance, Time: response.Distance.Time}
	}
	return result, nil
}

func (f *Facade) CreateJob(ctx context.Context, in CreateJobInput) (Job, error) {
	customerID, err := parseID("customer_id", firstNonEmpty(in.CustomerID, in.Caller.UserID))
	if err != nil {
		return Job{}, f.fail(ctx, "create_job", err)
	}
	dueAt, err := kernel.ParseTimestamp("due_at", in.DueAt)
	if err != nil {
		return Job{}, f.fail(ctx, "create_job", err)
	}
	cmd, err := commands.NewCreateJobCommand(customerID, dueAt)
	if err != nil {
		return Job{}, f.fail(ctx, "create_job", err)
	}

	created, err := f.handlers.CreateJob.Handle(ctx, cmd)
	if err != nil {
		return Job{}, f.fail(ctx, "create_job", err)
	}
	return jobFromAggregate(created), nil
}

func (f *Facade) OfferJob(ctx context.Context, in OfferJobInput) (Job, error) {
	jobID, err := parseID("job_id", in.JobID)
	if err != nil {
		return Job{}, f.fail(ctx, "offer_job", err)
	}
	translators, err := parseIDs("translators", in.Translators)
	if err != nil {
		return Job{}, f.fail(ctx, "offer_job", err)
	}
	cmd, err := commands.NewOfferJobCommand(jobID, translators...)
	if err != nil {
		return Job{}, f.fail(ctx, "offer_job", err)
	}

	offered, err := f.handlers.OfferJob.Handle(ctx, cmd)
	if err != nil {
		return Job{}, f.fail(ctx, "offer_job", err)
	}
	return jobFromAggregate(offered), nil
}

func (f *Facade) AcceptJob(ctx context.Context, in AcceptJobInput) (Job, error) {
	jobID, err := parseID("job_id", in.JobID)
	if err != nil {
		return Job{}, f.fail(ctx, "accept_job", err)
	}
	translatorID, err := parseID("translator_id", firstNonEmpty(in.TranslatorID, in.Caller.UserID))
	if err != nil {
		return Job{}, f.fail(ctx, "accept_job", err)
	}
	cmd, err := commands.NewAcceptJobCommand(jobID, translatorID)
	if err != nil {
		return Job{}, f.fail(ctx, "accept_job", err)
	}

	accepted, err := f.handlers.AcceptJob.Handle(ctx, cmd)
	if err != nil {
		return Job{}, f.fail(ctx, "accept_job", err)
	}
	return jobFromAggregate(accepted), nil
}

// CancelJob succeeds without change when the job is already cancelled.
func (f *Facade) CancelJob(ctx context.Context, in CancelJobInput) (Job, error) {
	jobID, err := parseID("job_id", in.JobID)
	if err != nil {
		return Job{}, f.fail(ctx, "cancel_job", err)
	}
	actorID, err := parseID("actor_id", firstNonEmpty(in.ActorID, in.Caller.UserID))
	if err != nil {
		return Job{}, f.fail(ctx, "cancel_job", err)
	}
	cmd, err := commands.NewCancelJobCommand(jobID, actorID)
	if err != nil {
		return Job{}, f.fail(ctx, "cancel_job", err)
	}

	cancelled, err := f.handlers.CancelJob.Handle(ctx, cmd)
	if err != nil {
		return Job{}, f.fail(ctx, "cancel_job", err)
	}
	return jobFromAggregate(cancelled), nil
}

func (f *Facade) EndJob(ctx context.Context, in EndJobInput) (Job, error) {
	jobID, err := parseID("job_id", in.JobID)
	if err != nil {
		return Job{}, f.fail(ctx, "end_job", err)
	}
	cmd, err := commands.NewEndJobCommand(jobID)
	if err != nil {
		return Job{}, f.fail(ctx, "end_job", err)
	}

	ended, err := f.handlers.EndJob.Handle(ctx, cmd)
	if err != nil {
		return Job{}, f.fail(ctx, "end_job", err)
	}
	return jobFromAggregate(ended), nil
}

func (f *Facade) ReopenJob(ctx context.Context, in ReopenJobInput) (Job, error) {
	jobID, err := parseID("job_id", in.JobID)
	if err != nil {
		return Job{}, f.fail(ctx, "reopen_job", err)
	}
	cmd, err := commands.NewReopenJobCommand(jobID)
	if err != nil {
		return Job{}, f.fail(ctx, "reopen_job", err)
	}

	reopened, err := f.handlers.ReopenJob.Handle(ctx, cmd)
	if err != nil {
		return Job{}, f.fail(ctx, "reopen_job", err)
	}
	return jobFromAggregate(reopened), nil
}

// CustomerNotCall closes an Accepted job the customer did not attend.
func (f *Facade) CustomerNotCall(ctx context.Context, in CustomerNotCallInput) (Job, error) {
	jobID, err := parseID("job_id", in.JobID)
	if err != nil {
		return Job{}, f.fail(ctx, "customer_not_call", err)
	}
	cmd, err := commands.NewCustomerNotCallCommand(jobID)
	if err != nil {
		return Job{}, f.fail(ctx, "customer_not_call", err)
	}

	closed, err := f.handlers.CustomerNotCall.Handle(ctx, cmd)
	if err != nil {
		return Job{}, f.fail(ctx, "customer_not_call", err)
	}
	return jobFromAggregate(closed), nil
}

// UpdateJob writes only the fields present in the input.
func (f *Facade) UpdateJob(ctx context.Context, in UpdateJobInput) (Job, error) {
	jobID, err := parseID("job_id", in.JobID)
	if err != nil {
		return Job{}, f.fail(ctx, "update_job", err)
	}

	patch := job.UpdatePatch{AdminComments: in.AdminComments}
	if in.DueAt != nil {
		dueAt, parseErr := kernel.ParseTimestamp("due_at", *in.DueAt)
		if parseErr != nil {
			return Job{}, f.fail(ctx, "update_job", parseErr)
		}
		patch.DueAt = &dueAt
	}

	cmd, err := commands.NewUpdateJobCommand(jobID, patch)
	if err != nil {
		return Job{}, f.fail(ctx, "update_job", err)
	}

	updated, err := f.handlers.UpdateJob.Handle(ctx, cmd)
	if err != nil {
		return Job{}, f.fail(ctx, "update_job", err)
	}
	return jobFromAggregate(updated), nil
}

// ResendNotifications returns once the push is dispatched; delivery happens in the background.
func (f *Facade) ResendNotifications(ctx context.Context, in ResendNotificationsInput) (NotificationResult, error) {
	jobID, err := parseID("job_id", in.JobID)
	if err != nil {
		return NotificationResult{}, f.fail(ctx, "resend_notifications", err)
	}
	translators, err := parseIDs("translators", in.Translators)
	if err != nil {
		return NotificationResult{}, f.fail(ctx, "resend_notifications", err)
	}

	targets := ports.AllEligible()
	if len(translators) > 0 {
		targets = ports.ExplicitSet(translators...)
	}
	cmd, err := commands.NewResendNotificationsCommand(jobID, targets)
	if err != nil {
		return NotificationResult{}, f.fail(ctx, "resend_notifications", err)
	}

	if err = f.handlers.ResendNotifications.Handle(ctx, cmd); err != nil {
		return NotificationResult{}, f.fail(ctx, "resend_notifications", err)
	}
	return NotificationResult{JobID: jobID.String(), Channel: string(ports.ChannelPush), Status: "dispatched"}, nil
}

// ResendSMSNotification waits for the gateway; a failed send is a KindGateway error.
func (f *Facade) ResendSMSNotification(ctx context.Context, in ResendSMSNotificationInput) (NotificationResult, error) {
	jobID, err := parseID("job_id", in.JobID)
	if err != nil {
		return NotificationResult{}, f.fail(ctx, "resend_sms_notification", err)
	}
	translatorID, err := parseID("translator_id", in.TranslatorID)
	if err != nil {
		return NotificationResult{}, f.fail(ctx, "resend_sms_notification", err)
	}
	cmd, err := commands.NewResendSMSNotificationCommand(jobID, translatorID)
	if err != nil {
		return NotificationResult{}, f.fail(ctx, "resend_sms_notification", err)
	}

	if err = f.handlers.ResendSMSNotification.Handle(ctx, cmd); err != nil {
		return NotificationResult{}, f.fail(ctx, "resend_sms_notification", err)
	}
	return NotificationResult{JobID: jobID.String(), Channel: string(ports.ChannelSMS), Status: "sent"}, nil
}

// FeedTelemetry merges the present fields and returns the job with its distance record.
func (f *Facade) FeedTelemetry(ctx context.Context, in FeedTelemetryInput) (Job, error) {
	jobID, err := parseID("job_id", in.JobID)
	if err != nil {
		return Job{}, f.fail(ctx, "feed_telemetry", err)
	}
	cmd, err := commands.NewFeedTelemetryCommand(jobID, job.TelemetryInput{
		Distance:        in.Distance,
		Time:            in.Time,
		SessionTime:     in.SessionTime,
		Flagged:         in.Flagged,
		ManuallyHandled: in.ManuallyHandled,
		ByAdmin:         in.ByAdmin,
		AdminComments:   in.AdminComments,
	})
	if err != nil {
		return Job{}, f.fail(ctx, "feed_telemetry", err)
	}

	fed, err := f.handlers.FeedTelemetry.Handle(ctx, cmd)
	if err != nil {
		return Job{}, f.fail(ctx, "feed_telemetry", err)
	}

	result := jobFromAggregate(fed.Job)
	if fed.Distance != nil {
		result.Distance = &Distance{Distance: fed.Distance.Distance, Time: fed.Distance.Time}
	}
	return result, nil
}

// GetHistory pages through the user's completed and cancelled jobs, newest first.
func (f *Facade) GetHistory(ctx context.Context, in GetHistoryInput) (JobList, error) {
	userID, err := parseID("user_id", in.UserID)
	if err != nil {
		return JobList{}, f.fail(ctx, "get_history", err)
	}
	pagination, err := queries.NewPagination(in.Page, in.PageSize)
	if err != nil {
		return JobList{}, f.fail(ctx, "get_history", err)
	}
	query, err := queries.NewListUserJobsHistoryQuery(userID, pagination)
	if err != nil {
		return JobList{}, f.fail(ctx, "get_history", err)
	}

	page, err := f.handlers.ListUserJobsHistory.Handle(ctx, query)
	if err != nil {
		return JobList{}, f.fail(ctx, "get_history", err)
	}
	return listFromPage(page), nil
}

// ListPotentialJobs lists the offers the translator can still accept right now.
func (f *Facade) ListPotentialJobs(ctx context.Context, in ListPotentialJobsInput) (JobList, error) {
	translatorID, err := parseID("translator_id", in.TranslatorID)
	if err != nil {
		return JobList{}, f.fail(ctx, "list_potential_jobs", err)
	}
	query, err := queries.NewListPotentialJobsQuery(translatorID, f.clock.Now())
	if err != nil {
		return JobList{}, f.fail(ctx, "list_potential_jobs", err)
	}

	views, err := f.handlers.ListPotentialJobs.Handle(ctx, query)
	if err != nil {
		return JobList{}, f.fail(ctx, "list_potential_jobs", err)
	}
	return listFromViews(views), nil
}

func (f *Facade) fail(ctx context.Context, operation string, err error) error {
	e := toError(err)
	if e.Kind == KindInternal || e.Kind == KindGateway {
		f.logger.ErrorContext(ctx, "dispatch operation failed",
			"operation", operation,
			"kind", string(e.Kind),
			"error", err,
		)
	}
	return e
}
