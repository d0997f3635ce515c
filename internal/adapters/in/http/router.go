package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter builds the echo instance serving the dispatch API, /health and /swagger/*.
func NewRouter(ctx context.Context, server *Server, logger *slog.Logger) (*echo.Echo, error) {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}
	if err = RegisterSwaggerDoc(doc); err != nil {
		return nil, err
	}

	logger = logger.With("component", "http")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				logger.LogAttrs(c.Request().Context(), slog.LevelError, "request failed",
					slog.Group("request", attrs...), slog.String("error", v.Error.Error()))
				return nil
			}
			logger.DebugContext(c.Request().Context(), "request", attrs...)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", validator)
	api.GET("/jobs", server.ListJobs)
	api.POST("/jobs", server.CreateJob)
	api.GET("/jobs/:jobId", server.GetJob)
	api.PATCH("/jobs/:jobId", server.UpdateJob)
	api.POST("/jobs/:jobId/offer", server.OfferJob)
	api.POST("/jobs/:jobId/accept", server.AcceptJob)
	api.POST("/jobs/:jobId/cancel", server.CancelJob)
	api.POST("/jobs/:jobId/end", server.EndJob)
	api.POST("/jobs/:jobId/reopen", server.ReopenJob)
	api.POST("/jobs/:jobId/customer-not-call", server.CustomerNotCall)
	api.POST("/jobs/:jobId/notifications/push", server.ResendNotifications)
	api.POST("/jobs/:jobId/notifications/sms", server.ResendSMSNotification)
	api.POST("/jobs/:jobId/telemetry", server.FeedTelemetry)
	api.GET("/users/:userId/jobs/history", server.GetHistory)
	api.GET("/translators/:translatorId/potential-jobs", server.ListPotentialJobs)

	return e, nil
}
