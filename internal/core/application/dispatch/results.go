package dispatch

import (
	"time"

	"jobdispatch/internal/core/application/usecases/queries"
	"jobdispatch/internal/core/domain/model/job"
	"jobdispatch/internal/core/domain/model/kernel"
)

// Job is the caller-facing representation of a job.
type Job struct {
	ID              string
	CustomerID      string
	TranslatorID    *string
	Status          string
	CreatedAt       time.Time
	DueAt           time.Time
	ExpiresAt       *time.Time
	CompletedAt     *time.Time
	CancelledBy     *string
	SessionTime     string
	Flagged         bool
	ManuallyHandled bool
	ByAdmin         bool
	AdminComments   string
	Distance        *Distance
}

type Distance struct {
	Distance string
	Time     string
}

// JobList is a page of jobs. Unpaged listings report page 1 sized to the result.
type JobList struct {
	Jobs     []Job
	Total    int64
	Page     int
	PageSize int
}

// NotificationResult acknowledges a notification request. Status is "dispatched" for
// background pushes and "sent" for a delivered SMS.
type NotificationResult struct {
	JobID   string
	Channel string
	Status  string
}

func jobFromAggregate(j *job.Job) Job {
	s := j.Snapshot()
	return Job{
		ID:              s.ID.String(),
		CustomerID:      s.CustomerID.String(),
		TranslatorID:    idString(s.TranslatorID),
		Status:          s.Status.String(),
		CreatedAt:       s.CreatedAt,
		DueAt:           s.DueAt,
		ExpiresAt:       s.ExpiresAt,
		CompletedAt:     s.CompletedAt,
		CancelledBy:     idString(s.CancelledBy),
		SessionTime:     s.SessionTime,
		Flagged:         s.Flagged.Bool(),
		ManuallyHandled: s.ManuallyHandled.Bool(),
		ByAdmin:         s.ByAdmin.Bool(),
		AdminComments:   s.AdminComments,
	}
}

func jobFromView(v queries.JobView) Job {
	return Job{
		ID:              v.ID.String(),
		CustomerID:      v.CustomerID.String(),
		TranslatorID:    idString(v.TranslatorID),
		Status:          v.Status,
		CreatedAt:       v.CreatedAt,
		DueAt:           v.DueAt,
		ExpiresAt:       v.ExpiresAt,
		CompletedAt:     v.CompletedAt,
		CancelledBy:     idString(v.CancelledBy),
		SessionTime:     v.SessionTime,
		Flagged:         v.Flagged,
		ManuallyHandled: v.ManuallyHandled,
		ByAdmin:         v.ByAdmin,
		AdminComments:   v.AdminComments,
	}
}

func jobsFromViews(views []queries.JobView) []Job {
	jobs := make([]Job, 0, len(views))
	for _, v := range views {
		jobs = append(jobs, jobFromView(v))
	}
	return jobs
}

func listFromViews(views []queries.JobView) JobList {
	jobs := jobsFromViews(views)
	return JobList{Jobs: jobs, Total: int64(len(jobs)), Page: 1, PageSize: len(jobs)}
}

func listFromPage(page queries.JobPage) JobList {
	return JobList{
		Jobs:     jobsFromViews(page.Items),
		Total:    page.Total,
		Page:     page.Page,
		PageSize: page.PageSize,
	}
}

func idString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
