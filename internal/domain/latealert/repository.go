package latealert

import "context"

type Repository interface {
	// ExistsForDate reports whether an alert already exists for the
	// user on the given calendar date.
	ExistsForDate(ctx context.Context, userID string, date string) (bool, error)
	// Create inserts the alert row. Losing the (user, date) uniqueness
	// race is reported as duplicate=true, not an error.
	Create(ctx context.Context, a Alert) (created Alert, duplicate bool, err error)
}
