package queries

import (
	"context"

	"jobdispatch/internal/core/domain/model/job"

	"gorm.io/gorm"
)

type ListPotentialJobsQueryHandler struct {
	db *gorm.DB
}

func NewListPotentialJobsQueryHandler(db *gorm.DB) ListPotentialJobsQueryHandler {
	return ListPotentialJobsQueryHandler{db: db}
}

// Handle returns Offered jobs whose deadline is still ahead, closest deadline first.
// A translator never sees jobs they posted as a customer.
//
// Offer targets only pick who gets the push and are not stored, so every live offer is
// listed for every translator. Accept does not check targets either.
func (h ListPotentialJobsQueryHandler) Handle(ctx context.Context, query ListPotentialJobsQuery) ([]JobView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []jobRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT `+jobColumns+`
		FROM jobs
		WHERE status = ?
			AND expires_at > ?
			AND customer_id <> ?
		ORDER BY expires_at, id
	`, int(job.Offered), query.Now(), query.TranslatorID().Bytes()).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return toViews(rows)
}
