package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/smartattend/attendance-backend-go/internal/domain/leave"
	"github.com/smartattend/attendance-backend-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.Repository {
	return &leaveRepository{db: db}
}

func (r *leaveRepository) Create(ctx context.Context, a leave.Application) (leave.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_applications (user_id, leave_type, start_time, end_time, reason, attachment_path, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		a.UserID, a.LeaveType, a.StartTime, a.EndTime, a.Reason, a.AttachmentPath, a.Status,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return leave.Application{}, fmt.Errorf("failed to create leave application: %w", err)
	}

	return a, nil
}

func (r *leaveRepository) GetByID(ctx context.Context, id string) (leave.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, leave_type, start_time, end_time, reason, attachment_path, status, reviewer_id, created_at, updated_at
		FROM leave_applications
		WHERE id = $1
	`

	var a leave.Application
	err := q.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.UserID, &a.LeaveType, &a.StartTime, &a.EndTime,
		&a.Reason, &a.AttachmentPath, &a.Status, &a.ReviewerID, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Application{}, leave.ErrApplicationNotFound
		}
		return leave.Application{}, fmt.Errorf("failed to get leave application: %w", err)
	}

	return a, nil
}

func (r *leaveRepository) Review(ctx context.Context, id string, status leave.Status, reviewerID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_applications
		SET status = $2, reviewer_id = $3, updated_at = NOW()
		WHERE id = $1 AND status = $4
	`

	tag, err := q.Exec(ctx, query, id, status, reviewerID, leave.StatusPending)
	if err != nil {
		return false, fmt.Errorf("failed to review leave application: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *leaveRepository) List(ctx context.Context, filter leave.ListFilter) ([]leave.Application, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.id, l.user_id, l.leave_type, l.start_time, l.end_time, l.reason, l.attachment_path, l.status, l.reviewer_id, l.created_at, l.updated_at, u.name
		FROM leave_applications l
		JOIN users u ON u.id = l.user_id
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
		appendCond("l.user_id = $%d", *filter.UserID)
	}
	if filter.DepartmentID != nil {
		appendCond("u.department_id = $%d", *filter.DepartmentID)
	}
	if filter.Status != nil {
		appendCond("l.status = $%d", *filter.Status)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY l.created_at DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave applications: %w", err)
	}
	defer rows.Close()

	var applications []leave.Application
	for rows.Next() {
		var a leave.Application
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.LeaveType, &a.StartTime, &a.EndTime,
			&a.Reason, &a.AttachmentPath, &a.Status, &a.ReviewerID,
			&a.CreatedAt, &a.UpdatedAt, &a.UserName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave application: %w", err)
		}
		applications = append(applications, a)
	}

	return applications, rows.Err()
}
