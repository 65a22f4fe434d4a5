package leave

import "context"

type ListFilter struct {
	UserID       *string
	DepartmentID *string
	Status       *Status
}

type Repository interface {
	Create(ctx context.Context, a Application) (Application, error)
	GetByID(ctx context.Context, id string) (Application, error)
	// Review moves the application from PENDING to status, recording
	// the reviewer and refreshing updated_at. A false return means the
	// application was no longer pending.
	Review(ctx context.Context, id string, status Status, reviewerID string) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]Application, error)
}
