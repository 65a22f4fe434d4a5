package department

import "context"

type Repository interface {
	Create(ctx context.Context, d Department) (Department, error)
	GetByID(ctx context.Context, id string) (Department, error)
	// GetByManagerID resolves the department a user manages, if any.
	GetByManagerID(ctx context.Context, managerID string) (Department, error)
	Update(ctx context.Context, d Department) error
	List(ctx context.Context) ([]Department, error)
}
