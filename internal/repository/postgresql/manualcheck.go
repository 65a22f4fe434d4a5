package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/smartattend/attendance-backend-go/internal/domain/manualcheck"
	"github.com/smartattend/attendance-backend-go/internal/pkg/database"
)

type manualCheckRepository struct {
	db *database.DB
}

func NewManualCheckRepository(db *database.DB) manualcheck.Repository {
	return &manualCheckRepository{db: db}
}

func (r *manualCheckRepository) Create(ctx context.Context, req manualcheck.Request) (manualcheck.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO manual_check_requests (user_id, check_type, requested_ts, reason, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.UserID, req.CheckType, req.RequestedTS, req.Reason, req.Status,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return manualcheck.Request{}, fmt.Errorf("failed to create manual check request: %w", err)
	}

	return req, nil
}

func (r *manualCheckRepository) GetByID(ctx context.Context, id string) (manualcheck.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, check_type, requested_ts, reason, status, created_at, updated_at
		FROM manual_check_requests
		WHERE id = $1
	`

	var req manualcheck.Request
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.UserID, &req.CheckType, &req.RequestedTS,
		&req.Reason, &req.Status, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return manualcheck.Request{}, manualcheck.ErrRequestNotFound
		}
		return manualcheck.Request{}, fmt.Errorf("failed to get manual check request: %w", err)
	}

	return req, nil
}

func (r *manualCheckRepository) CountNonRejectedInWindow(ctx context.Context, userID string, from, to time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM manual_check_requests
		WHERE user_id = $1
		  AND requested_ts >= $2
		  AND requested_ts < $3
		  AND status <> $4
	`

	var count int
	if err := q.QueryRow(ctx, query, userID, from, to, manualcheck.StatusRejected).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count manual check requests: %w", err)
	}

	return count, nil
}

// TransitionStatus is a conditional PENDING-only update so that of two
// concurrent reviewers exactly one wins.
func (r *manualCheckRepository) TransitionStatus(ctx context.Context, id string, status manualcheck.Status) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE manual_check_requests
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3
	`

	tag, err := q.Exec(ctx, query, id, status, manualcheck.StatusPending)
	if err != nil {
		return false, fmt.Errorf("failed to transition manual check request: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *manualCheckRepository) List(ctx context.Context, filter manualcheck.ListFilter) ([]manualcheck.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT m.id, m.user_id, m.check_type, m.requested_ts, m.reason, m.status, m.created_at, m.updated_at, u.name
		FROM manual_check_requests m
		JOIN users u ON u.id = m.user_id
	`

	var conditions []string
	var args []interface{}
	argN := 1

	appendCond := func(cond string, arg interface{}) {
		conditions = append(conditions, fmt.Sprintf(cond, argN))
		args = append(args, arg)
		argN++
	}

	if filter.UserID != nil {
		appendCond("m.user_id = $%d", *filter.UserID)
	}
	if filter.DepartmentID != nil {
		appendCond("u.department_id = $%d", *filter.DepartmentID)
	}
	if filter.Status != nil {
		appendCond("m.status = $%d", *filter.Status)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY m.created_at DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list manual check requests: %w", err)
	}
	defer rows.Close()

	var requests []manualcheck.Request
	for rows.Next() {
		var req manualcheck.Request
		if err := rows.Scan(
			&req.ID, &req.UserID, &req.CheckType, &req.RequestedTS,
			&req.Reason, &req.Status, &req.CreatedAt, &req.UpdatedAt, &req.UserName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan manual check request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}
