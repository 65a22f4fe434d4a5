package checkin

import (
	"context"
	"time"
)

// ListFilter narrows a listing to the caller's visibility. Exactly one
// of UserID/DepartmentID is set for scoped queries; both nil means
// unrestricted (admin).
type ListFilter struct {
	UserID       *string
	DepartmentID *string
	From         *time.Time
	To           *time.Time
}

type Repository interface {
	Create(ctx context.Context, r Record) (Record, error)
	// Exists reports whether a record with identical (user, type,
	// timestamp) is already present. Approval materialization must be
	// idempotent against duplicates.
	Exists(ctx context.Context, userID string, checkType CheckType, ts time.Time) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]Record, error)
}
