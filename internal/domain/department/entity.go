package department

import "time"

// Department carries the lateness rule configuration for its members.
// The workflow engine only ever reads LateStartTime and
// LateGraceMinutes; mutation is an admin concern.
type Department struct {
	ID               string
	Name             string
	ManagerID        *string
	LateStartTime    string // "HH:MM" wall-clock start of day
	LateGraceMinutes int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
