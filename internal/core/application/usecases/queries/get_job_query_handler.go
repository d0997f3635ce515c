package queries

import (
	"context"

	"jobdispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetJobQueryHandler struct {
	db *gorm.DB
}

func NewGetJobQueryHandler(db *gorm.DB) GetJobQueryHandler {
	return GetJobQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError for an unknown job.
func (h GetJobQueryHandler) Handle(ctx context.Context, query GetJobQuery) (GetJobQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetJobQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	id := query.JobID().Bytes()

	var rows []jobRow
	if err := db.Raw(`SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id).Scan(&rows).Error; err != nil {
		return GetJobQueryResponse{}, err
	}
	if len(rows) == 0 {
		return GetJobQueryResponse{}, errs.NewObjectNotFoundError("job", query.JobID().String())
	}

	view, err := rows[0].toView()
	if err != nil {
		return GetJobQueryResponse{}, err
	}

	var distances []DistanceView
	if err = db.Raw(`SELECT distance, time FROM job_distances WHERE job_id = ?`, id).Scan(&distances).Error; err != nil {
		return GetJobQueryResponse{}, err
	}

	response := GetJobQueryResponse{Job: view}
	if len(distances) > 0 {
		response.Distance = &distances[0]
	}

	return response, nil
}
