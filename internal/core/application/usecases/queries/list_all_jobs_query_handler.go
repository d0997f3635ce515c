package queries

import (
	"context"

	"gorm.io/gorm"
)

type ListAllJobsQueryHandler struct {
	db *gorm.DB
}

func NewListAllJobsQueryHandler(db *gorm.DB) ListAllJobsQueryHandler {
	return ListAllJobsQueryHandler{db: db}
}

func (h ListAllJobsQueryHandler) Handle(ctx context.Context, query ListAllJobsQuery) (JobPage, error) {
	if err := query.Validate(); err != nil {
		return JobPage{}, err
	}

	db := h.db.WithContext(ctx)
	p := query.Pagination()

	var total int64
	if err := db.Raw(`SELECT COUNT(*) FROM jobs`).Scan(&total).Error; err != nil {
		return JobPage{}, err
	}

	var rows []jobRow
	err := db.Raw(`
		SELECT `+jobColumns+`
		FROM jobs
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?
	`, p.PageSize, p.Offset()).Scan(&rows).Error
	if err != nil {
		return JobPage{}, err
	}

	items, err := toViews(rows)
	if err != nil {
		return JobPage{}, err
	}

	return JobPage{Items: items, Total: total, Page: p.Page, PageSize: p.PageSize}, nil
}
