package timerule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/smartattend/attendance-backend-go/internal/domain/department"
	"github.com/smartattend/attendance-backend-go/internal/domain/user"
)

// Rule is the lateness threshold applicable to a user: nominal start of
// day plus a grace period.
type Rule struct {
	StartHour    int
	StartMinute  int
	GraceMinutes int
}

// DefaultRule applies when a user has no department or the department
// carries no usable configuration.
var DefaultRule = Rule{StartHour: 9, StartMinute: 0, GraceMinutes: 5}

// GraceEnd places the rule's threshold on the calendar day of t, in
// t's location.
func (r Rule) GraceEnd(t time.Time) time.Time {
	start := time.Date(t.Year(), t.Month(), t.Day(), r.StartHour, r.StartMinute, 0, 0, t.Location())
	return start.Add(time.Duration(r.GraceMinutes) * time.Minute)
}

// IsLate reports whether t falls strictly after the grace end on t's
// day. Arriving at the threshold exactly is on time.
func (r Rule) IsLate(t time.Time) bool {
	return t.After(r.GraceEnd(t))
}

// Resolver computes the lateness rule for a user from department
// configuration. It is a pure read and safe to call repeatedly within
// a transaction.
type Resolver interface {
	Resolve(ctx context.Context, userID string) (Rule, error)
}

type resolver struct {
	users       user.Repository
	departments department.Repository
}

func NewResolver(users user.Repository, departments department.Repository) Resolver {
	return &resolver{users: users, departments: departments}
}

// Resolve never fails on malformed configuration: a missing user,
// missing department or unparseable HH:MM string falls back to
// DefaultRule. Only storage errors propagate.
func (r *resolver) Resolve(ctx context.Context, userID string) (Rule, error) {
	u, err := r.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return DefaultRule, nil
		}
		return Rule{}, fmt.Errorf("failed to resolve user for time rule: %w", err)
	}

	if u.DepartmentID == nil {
		return DefaultRule, nil
	}

	d, err := r.departments.GetByID(ctx, *u.DepartmentID)
	if err != nil {
		if errors.Is(err, department.ErrDepartmentNotFound) {
			return DefaultRule, nil
		}
		return Rule{}, fmt.Errorf("failed to resolve department for time rule: %w", err)
	}

	return FromDepartment(d), nil
}

// FromDepartment builds a Rule from stored configuration, falling back
// field-wise: a bad HH:MM keeps the default start, an out-of-bounds
// grace keeps the default grace.
func FromDepartment(d department.Department) Rule {
	rule := DefaultRule

	if parsed, err := time.Parse("15:04", d.LateStartTime); err == nil {
		rule.StartHour = parsed.Hour()
		rule.StartMinute = parsed.Minute()
	}

	if d.LateGraceMinutes >= 0 && d.LateGraceMinutes <= 120 {
		rule.GraceMinutes = d.LateGraceMinutes
	}

	return rule
}
