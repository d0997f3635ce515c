package queries

import (
	"context"

	"gorm.io/gorm"
)

type ListUserJobsQueryHandler struct {
	db *gorm.DB
}

func NewListUserJobsQueryHandler(db *gorm.DB) ListUserJobsQueryHandler {
	return ListUserJobsQueryHandler{db: db}
}

// Handle returns non-terminal jobs, soonest due first.
func (h ListUserJobsQueryHandler) Handle(ctx context.Context, query ListUserJobsQuery) ([]JobView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	user := query.UserID().Bytes()

	var rows []jobRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT `+jobColumns+`
		FROM jobs
		WHERE (customer_id = ? OR translator_id = ?)
			AND status NOT IN ?
		ORDER BY due_at, id
	`, user, user, terminalStatuses()).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return toViews(rows)
}
