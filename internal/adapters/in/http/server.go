package http

import (
	"context"
	"net/http"

	"jobdispatch/internal/core/application/dispatch"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Facade is the part of dispatch.Facade the HTTP adapter calls.
type Facade interface {
	ListJobs(ctx context.Context, in dispatch.ListJobsInput) (dispatch.JobList, error)
	GetJob(ctx context.Context, in dispatch.GetJobInput) (dispatch.Job, error)
	CreateJob(ctx context.Context, in dispatch.CreateJobInput) (dispatch.Job, error)
	OfferJob(ctx context.Context, in dispatch.OfferJobInput) (dispatch.Job, error)
	AcceptJob(ctx context.Context, in dispatch.AcceptJobInput) (dispatch.Job, error)
	CancelJob(ctx context.Context, in dispatch.CancelJobInput) (dispatch.Job, error)
	EndJob(ctx context.Context, in dispatch.EndJobInput) (dispatch.Job, error)
	ReopenJob(ctx context.Context, in dispatch.ReopenJobInput) (dispatch.Job, error)
	CustomerNotCall(ctx context.Context, in dispatch.CustomerNotCallInput) (dispatch.Job, error)
	UpdateJob(ctx context.Context, in dispatch.UpdateJobInput) (dispatch.Job, error)
	ResendNotifications(ctx context.Context, in dispatch.ResendNotificationsInput) (dispatch.NotificationResult, error)
	ResendSMSNotification(ctx context.Context, in dispatch.ResendSMSNotificationInput) (dispatch.NotificationResult, error)
	FeedTelemetry(ctx context.Context, in dispatch.FeedTelemetryInput) (dispatch.Job, error)
	GetHistory(ctx context.Context, in dispatch.GetHistoryInput) (dispatch.JobList, error)
	ListPotentialJobs(ctx context.Context, in dispatch.ListPotentialJobsInput) (dispatch.JobList, error)
}

// Server translates HTTP requests into facade calls.
type Server struct {
	facade Facade
}

func NewServer(facade Facade) *Server {
	return &Server{facade: facade}
}

// ListJobs handles GET /api/v1/jobs.
func (s *Server) ListJobs(ctx echo.Context) error {
	var userID *openapi_types.UUID
	if err := runtime.BindQueryParameter("form", true, false, "user_id", ctx.QueryParams(), &userID); err != nil {
		return writeBadRequest(ctx, "invalid user_id: "+err.Error())
	}
	page, pageSize, ok, err := bindPagination(ctx)
	if !ok {
		return err
	}

	list, err := s.facade.ListJobs(ctx.Request().Context(), dispatch.ListJobsInput{
		Caller:   caller(ctx),
		UserID:   optionalUUID(userID),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toJobList(list))
}

// CreateJob handles POST /api/v1/jobs.
func (s *Server) CreateJob(ctx echo.Context) error {
	var body CreateJobRequest
	if err := ctx.Bind(&body); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	created, err := s.facade.CreateJob(ctx.Request().Context(), dispatch.CreateJobInput{
		Caller:     caller(ctx),
		CustomerID: body.CustomerID,
		DueAt:      body.DueAt,
	})
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toJob(created))
}

// GetJob handles GET /api/v1/jobs/{jobId}.
func (s *Server) GetJob(ctx echo.Context) error {
	jobID, ok, err := bindJobID(ctx)
	if !ok {
		return err
	}

	found, err := s.facade.GetJob(ctx.Request().Context(), dispatch.GetJobInput{JobID: jobID})
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toJob(found))
}

// OfferJob handles POST /api/v1/jobs/{jobId}/offer.
func (s *Server) OfferJob(ctx echo.Context) error {
	jobID, ok, err := bindJobID(ctx)
	if !ok {
		return err
	}
	var body TranslatorsRequest
	if err = ctx.Bind(&body); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	offered, err := s.facade.OfferJob(ctx.Request().Context(), dispatch.OfferJobInput{
		JobID:       jobID,
		Translators: body.Translators,
	})
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toJob(offered))
}

// AcceptJob handles POST /api/v1/jobs/{jobId}/accept.
func (s *Server) AcceptJob(ctx echo.Context) error {
	jobID, ok, err := bindJobID(ctx)
	if !ok {
		return err
	}
	var body AcceptJobRequest
	if err = ctx.Bind(&body); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	accepted, err := s.facade.AcceptJob(ctx.Request().Context(), dispatch.AcceptJobInput{
		Caller:       caller(ctx),
		JobID:        jobID,
		TranslatorID: body.TranslatorID,
	})
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toJob(accepted))
}

// CancelJob handles POST /api/v1/jobs/{jobId}/cancel.
func (s *Server) CancelJob(ctx echo.Context) error {
	jobID, ok, err := bindJobID(ctx)
	if !ok {
		return err
	}
	var body CancelJobRequest
	if err = ctx.Bind(&body); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	cancelled, err := s.facade.CancelJob(ctx.Request().Context(), dispatch.CancelJobInput{
		Caller:  caller(ctx),
		JobID:   jobID,
		ActorID: body.ActorID,
	})
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toJob(cancelled))
}

// EndJob handles POST /api/v1/jobs/{jobId}/end.
func (s *Server) EndJob(ctx echo.Context) error {
	jobID, ok, err := bindJobID(ctx)
	if !ok {
		return err
	}

	ended, err := s.facade.EndJob(ctx.Request().Context(), dispatch.EndJobInput{JobID: jobID})
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toJob(ended))
}

// ReopenJob handles POST /api/v1/jobs/{jobId}/reopen.
func (s *Server) ReopenJob(ctx echo.Context) error {
	jobID, ok, err := bindJobID(ctx)
	if !ok {
		return err
	}

	reopened, err := s.facade.ReopenJob(ctx.Request().Context(), dispatch.ReopenJobInput{JobID: jobID})
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toJob(reopened))
}

// CustomerNotCall handles POST /api/v1/jobs/{jobId}/customer-not-call.
func (s *Server) CustomerNotCall(ctx echo.Context) error {
	jobID, ok, err := bindJobID(ctx)
	if !ok {
		return err
	}

	closed, err := s.facade.CustomerNotCall(ctx.Request().Context(), dispatch.CustomerNotCallInput{JobID: jobID})
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toJob(closed))
}

// UpdateJob handles PATCH /api/v1/jobs/{jobId}.
func (s *Server) UpdateJob(ctx echo.Context) error {
	jobID, ok, err := bindJobID(ctx)
	if !ok {
		return err
	}
	var body UpdateJobRequest
	if err = ctx.Bind(&body); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	updated, err := s.facade.UpdateJob(ctx.Request().Context(), dispatch.UpdateJobInput{
		JobID:         jobID,
		DueAt:         body.DueAt,
		AdminComments: body.AdminComments,
	})
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toJob(updated))
}

// ResendNotifications handles POST /api/v1/jobs/{jobId}/notifications/push.
func (s *Server) ResendNotifications(ctx echo.Context) error {
	jobID, ok, err := bindJobID(ctx)
	if !ok {
		return err
	}
	var body TranslatorsRequest
	if err = ctx.Bind(&body); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	result, err := s.facade.ResendNotifications(ctx.Request().Context(), dispatch.ResendNotificationsInput{
		JobID:       jobID,
		Translators: body.Translators,
	})
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toNotificationResult(result))
}

// ResendSMSNotification handles POST /api/v1/jobs/{jobId}/notifications/sms.
func (s *Server) ResendSMSNotification(ctx echo.Context) error {
	jobID, ok, err := bindJobID(ctx)
	if !ok {
		return err
	}
	var body SMSRequest
	if err = ctx.Bind(&body); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	result, err := s.facade.ResendSMSNotification(ctx.Request().Context(), dispatch.ResendSMSNotificationInput{
		JobID:        jobID,
		TranslatorID: body.TranslatorID,
	})
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toNotificationResult(result))
}

// FeedTelemetry handles POST /api/v1/jobs/{jobId}/telemetry.
func (s *Server) FeedTelemetry(ctx echo.Context) error {
	jobID, ok, err := bindJobID(ctx)
	if !ok {
		return err
	}
	var body TelemetryRequest
	if err = ctx.Bind(&body); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	fed, err := s.facade.FeedTelemetry(ctx.Request().Context(), dispatch.FeedTelemetryInput{
		JobID:           jobID,
		Distance:        body.Distance,
		Time:            body.Time,
		SessionTime:     body.SessionTime,
		Flagged:         body.Flagged,
		ManuallyHandled: body.ManuallyHandled,
		ByAdmin:         body.ByAdmin,
		AdminComments:   body.adminComments(),
	})
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toJob(fed))
}

// GetHistory handles GET /api/v1/users/{userId}/jobs/history.
func (s *Server) GetHistory(ctx echo.Context) error {
	userID, ok, err := bindPathUUID(ctx, "userId")
	if !ok {
		return err
	}
	page, pageSize, ok, err := bindPagination(ctx)
	if !ok {
		return err
	}

	list, err := s.facade.GetHistory(ctx.Request().Context(), dispatch.GetHistoryInput{
		UserID:   userID,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toJobList(list))
}

// ListPotentialJobs handles GET /api/v1/translators/{translatorId}/potential-jobs.
func (s *Server) ListPotentialJobs(ctx echo.Context) error {
	translatorID, ok, err := bindPathUUID(ctx, "translatorId")
	if !ok {
		return err
	}

	list, err := s.facade.ListPotentialJobs(ctx.Request().Context(), dispatch.ListPotentialJobsInput{
		TranslatorID: translatorID,
	})
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toJobList(list))
}

func caller(ctx echo.Context) dispatch.Caller {
	return dispatch.Caller{
		UserID: ctx.Request().Header.Get(HeaderUserID),
		Role:   ctx.Request().Header.Get(HeaderUserRole),
	}
}

func bindJobID(ctx echo.Context) (string, bool, error) {
	return bindPathUUID(ctx, "jobId")
}

// bindPathUUID reports ok == false once it has written a 400 response; err is then the
// result of writing it.
func bindPathUUID(ctx echo.Context, name string) (string, bool, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", false, writeBadRequest(ctx, "invalid "+name+": "+err.Error())
	}
	return id.String(), true, nil
}

// bindPagination leaves absent values at zero so the facade applies its defaults.
func bindPagination(ctx echo.Context) (page, pageSize int, ok bool, err error) {
	var rawPage, rawPageSize *int
	if err = runtime.BindQueryParameter("form", true, false, "page", ctx.QueryParams(), &rawPage); err != nil {
		return 0, 0, false, writeBadRequest(ctx, "invalid page: "+err.Error())
	}
	if err = runtime.BindQueryParameter("form", true, false, "page_size", ctx.QueryParams(), &rawPageSize); err != nil {
		return 0, 0, false, writeBadRequest(ctx, "invalid page_size: "+err.Error())
	}
	if rawPage != nil {
		page = *rawPage
	}
	if rawPageSize != nil {
		pageSize = *rawPageSize
	}
	return page, pageSize, true, nil
}

func optionalUUID(id *openapi_types.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
