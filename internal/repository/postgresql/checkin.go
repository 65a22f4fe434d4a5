package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/smartattend/attendance-backend-go/internal/domain/checkin"
	"github.com/smartattend/attendance-backend-go/internal/pkg/database"
)

type checkinRepository struct {
	db *database.DB
}

func NewCheckinRepository(db *database.DB) checkin.Repository {
	return &checkinRepository{db: db}
}

func (r *checkinRepository) Create(ctx context.Context, rec checkin.Record) (checkin.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO checkin_records (user_id, check_type, ts, latitude, longitude, is_late)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		rec.UserID, rec.CheckType, rec.Timestamp, rec.Latitude, rec.Longitude, rec.IsLate,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return checkin.Record{}, fmt.Errorf("failed to create checkin record: %w", err)
	}

	return rec, nil
}

func (r *checkinRepository) Exists(ctx context.Context, userID string, checkType checkin.CheckType, ts time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM checkin_records
			WHERE user_id = $1 AND check_type = $2 AND ts = $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, userID, checkType, ts).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check for existing checkin record: %w", err)
	}

	return exists, nil
}

func (r *checkinRepository) List(ctx context.Context, filter checkin.ListFilter) ([]checkin.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT c.id, c.user_id, c.check_type, c.ts, c.latitude, c.longitude, c.is_late, c.created_at, u.name
		FROM checkin_records c
		JOIN users u ON u.id = c.user_id
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
		appendCond("c.user_id = $%d", *filter.UserID)
	}
	if filter.DepartmentID != nil {
		appendCond("u.department_id = $%d", *filter.DepartmentID)
	}
	if filter.From != nil {
		appendCond("c.ts >= $%d", *filter.From)
	}
	if filter.To != nil {
		appendCond("c.ts < $%d", *filter.To)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY c.ts DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkin records: %w", err)
	}
	defer rows.Close()

	var records []checkin.Record
	for rows.Next() {
		var rec checkin.Record
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.CheckType, &rec.Timestamp,
			&rec.Latitude, &rec.Longitude, &rec.IsLate, &rec.CreatedAt, &rec.UserName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan checkin record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
