package http

import (
	"time"

	"jobdispatch/internal/core/application/dispatch"
	"jobdispatch/internal/core/domain/model/kernel"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

type CreateJobRequest struct {
	CustomerID string `json:"customer_id"`
	DueAt      string `json:"due_at"`
}

type TranslatorsRequest struct {
	Translators []string `json:"translators"`
}

type AcceptJobRequest struct {
	TranslatorID string `json:"translator_id"`
}

type CancelJobRequest struct {
	ActorID string `json:"actor_id"`
}

type SMSRequest struct {
	TranslatorID string `json:"translator_id"`
}

// TelemetryRequest fields left out of the body are not written.
type TelemetryRequest struct {
	Distance        *string `json:"distance"`
	Time            *string `json:"time"`
	SessionTime     *string `json:"session_time"`
	Flagged         *string `json:"flagged"`
	ManuallyHandled *string `json:"manually_handled"`
	ByAdmin         *string `json:"by_admin"`
	AdminComments   *string `json:"admin_comments"`
	// AdminComment is the older key for AdminComments.
	AdminComment *string `json:"admincomment"`
}

// adminComments prefers admin_comments and falls back to admincomment.
func (r TelemetryRequest) adminComments() *string {
	if r.AdminComments != nil {
		return r.AdminComments
	}
	return r.AdminComment
}

// UpdateJobRequest fields left out of the body are not written.
type UpdateJobRequest struct {
	DueAt         *string `json:"due_at"`
	AdminComments *string `json:"admin_comments"`
}

type Distance struct {
	Distance string `json:"distance"`
	Time     string `json:"time"`
}

// Job timestamps use kernel.TimestampLayout in UTC.
type Job struct {
	ID              string    `json:"id"`
	CustomerID      string    `json:"customer_id"`
	TranslatorID    *string   `json:"translator_id"`
	Status          string    `json:"status"`
	CreatedAt       string    `json:"created_at"`
	DueAt           string    `json:"due_at"`
	ExpiresAt       *string   `json:"expires_at"`
	CompletedAt     *string   `json:"completed_at"`
	CancelledBy     *string   `json:"cancelled_by"`
	SessionTime     string    `json:"session_time"`
	Flagged         bool      `json:"flagged"`
	ManuallyHandled bool      `json:"manually_handled"`
	ByAdmin         bool      `json:"by_admin"`
	AdminComments   string    `json:"admin_comments"`
	Distance        *Distance `json:"distance,omitempty"`
}

type JobList struct {
	Data     []Job `json:"data"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

type NotificationResult struct {
	JobID   string `json:"job_id"`
	Channel string `json:"channel"`
	Status  string `json:"status"`
}

type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Channel string `json:"channel,omitempty"`
}

func toJob(j dispatch.Job) Job {
	response := Job{
		ID:              j.ID,
		CustomerID:      j.CustomerID,
		TranslatorID:    j.TranslatorID,
		Status:          j.Status,
		CreatedAt:       kernel.FormatTimestamp(j.CreatedAt),
		DueAt:           kernel.FormatTimestamp(j.DueAt),
		ExpiresAt:       formatOptional(j.ExpiresAt),
		CompletedAt:     formatOptional(j.CompletedAt),
		CancelledBy:     j.CancelledBy,
		SessionTime:     j.SessionTime,
		Flagged:         j.Flagged,
		ManuallyHandled: j.ManuallyHandled,
		ByAdmin:         j.ByAdmin,
		AdminComments:   j.AdminComments,
	}
	if j.Distance != nil {
		response.Distance = &Distance{Distance: j.Distance.Distance, Time: j.Distance.Time}
	}
	return response
}

func toJobList(list dispatch.JobList) JobList {
	data := make([]Job, 0, len(list.Jobs))
	for _, j := range list.Jobs {
		data = append(data, toJob(j))
	}
	return JobList{
		Data:     data,
		Total:    list.Total,
		Page:     list.Page,
		PageSize: list.PageSize,
	}
}

func toNotificationResult(r dispatch.NotificationResult) NotificationResult {
	return NotificationResult{JobID: r.JobID, Channel: r.Channel, Status: r.Status}
}

func formatOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := kernel.FormatTimestamp(*t)
	return &s
}
