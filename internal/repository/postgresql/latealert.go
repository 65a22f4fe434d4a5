package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/smartattend/attendance-backend-go/internal/domain/latealert"
	"github.com/smartattend/attendance-backend-go/internal/pkg/database"
)

type lateAlertRepository struct {
	db *database.DB
}

func NewLateAlertRepository(db *database.DB) latealert.Repository {
	return &lateAlertRepository{db: db}
}

func (r *lateAlertRepository) ExistsForDate(ctx context.Context, userID string, date string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM late_alerts WHERE user_id = $1 AND late_date = $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, userID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check for existing late alert: %w", err)
	}

	return exists, nil
}

// Create races on uq_late_alerts_user_date when two late check-ins for
// the same user/day commit concurrently. ON CONFLICT DO NOTHING keeps
// the enclosing transaction healthy; the loser sees no returned row and
// is reported as duplicate rather than an error.
func (r *lateAlertRepository) Create(ctx context.Context, a latealert.Alert) (latealert.Alert, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO late_alerts (user_id, checkin_id, late_date)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, late_date) DO NOTHING
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, a.UserID, a.CheckinID, a.LateDate).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return latealert.Alert{}, true, nil
		}
		return latealert.Alert{}, false, fmt.Errorf("failed to create late alert: %w", err)
	}

	return a, false, nil
}
