package persistence

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"dealdrop/internal/domain"
	"dealdrop/pkg/errcodes"
)

type ClickRepository struct {
	db *sqlx.DB
}

func NewClickRepository(db *sqlx.DB) *ClickRepository {
	return &ClickRepository{db: db}
}

// RecordClick stores a single unlocked-deal navigation event.
func (r *ClickRepository) RecordClick(ctx context.Context, dealID string, clickedAt time.Time) error {
	query := `
		INSERT INTO unlock_clicks (deal_id, clicked_at)
		VALUES ($1, $2)`

	if _, err := r.db.ExecContext(ctx, query, dealID, clickedAt); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to record click")
	}

	return nil
}

// ClickCount returns how many times a deal was opened after unlocking.
func (r *ClickRepository) ClickCount(ctx context.Context, dealID string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM unlock_clicks
		WHERE deal_id = $1`

	var count int64
	if err := r.db.GetContext(ctx, &count, query, dealID); err != nil {
		return 0, domain.WrapError(err, errcodes.InternalServerError, "failed to count clicks")
	}

	return count, nil
}
