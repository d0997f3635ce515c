package queries

import (
	"context"

	"gorm.io/gorm"
)

type ListUserJobsHistoryQueryHandler struct {
	db *gorm.DB
}

func NewListUserJobsHistoryQueryHandler(db *gorm.DB) ListUserJobsHistoryQueryHandler {
	return ListUserJobsHistoryQueryHandler{db: db}
}

// Handle returns the newest jobs first.
func (h ListUserJobsHistoryQueryHandler) Handle(ctx context.Context, query ListUserJobsHistoryQuery) (JobPage, error) {
	if err := query.Validate(); err != nil {
		return JobPage{}, err
	}

	db := h.db.WithContext(ctx)
	user := query.UserID().Bytes()
	p := query.Pagination()

	var total int64
	err := db.Raw(`
		SELECT COUNT(*)
		FROM jobs
		WHERE (customer_id = ? OR translator_id = ? OR cancelled_by = ?)
			AND status IN ?
	`, user, user, user, terminalStatuses()).Scan(&total).Error
	if err != nil {
		return JobPage{}, err
	}

	var rows []jobRow
	err = db.Raw(`
		SELECT `+jobColumns+`
		FROM jobs
		WHERE (customer_id = ? OR translator_id = ? OR cancelled_by = ?)
			AND status IN ?
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?
	`, user, user, user, terminalStatuses(), p.PageSize, p.Offset()).Scan(&rows).Error
	if err != nil {
		return JobPage{}, err
	}

	items, err := toViews(rows)
	if err != nil {
		return JobPage{}, err
	}

	return JobPage{Items: items, Total: total, Page: p.Page, PageSize: p.PageSize}, nil
}
