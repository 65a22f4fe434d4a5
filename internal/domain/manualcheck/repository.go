package manualcheck

import (
	"context"
	"time"
)

type ListFilter struct {
	UserID       *string
	DepartmentID *string
	Status       *Status
}

type Repository interface {
	Create(ctx context.Context, r Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	// CountNonRejectedInWindow counts this user's requests with a
	// requested timestamp in [from, to) whose status is not REJECTED.
	CountNonRejectedInWindow(ctx context.Context, userID string, from, to time.Time) (int, error)
	// TransitionStatus moves the request from PENDING to status and
	// reports whether the conditional update won. A false return means
	// a concurrent reviewer already transitioned it.
	TransitionStatus(ctx context.Context, id string, status Status) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]Request, error)
}
