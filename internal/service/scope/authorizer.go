package scope

import (
	"context"
	"errors"
	"fmt"

	"github.com/smartattend/attendance-backend-go/internal/domain/department"
	"github.com/smartattend/attendance-backend-go/internal/domain/user"
)

// Scope is the visibility boundary for list and review queries.
// Exactly one of the fields is meaningful:
//   - All: no restriction (admin)
//   - DepartmentID: records of that department's members (manager)
//   - UserID: the caller's own records (employee)
//   - None: nothing visible; list operations return empty, not an error
type Scope struct {
	All          bool
	DepartmentID *string
	UserID       *string
	None         bool
}

// Authorizer resolves a caller's department scope. Resolution happens
// per request so department reassignment takes effect immediately.
type Authorizer interface {
	DepartmentScopeFor(ctx context.Context, identity user.Identity) (Scope, error)
}

type authorizer struct {
	users       user.Repository
	departments department.Repository
}

func NewAuthorizer(users user.Repository, departments department.Repository) Authorizer {
	return &authorizer{users: users, departments: departments}
}

func (a *authorizer) DepartmentScopeFor(ctx context.Context, identity user.Identity) (Scope, error) {
	switch identity.Role {
	case user.RoleAdmin:
		return Scope{All: true}, nil

	case user.RoleManager:
		// Prefer the department the manager owns; fall back to the
		// department they are assigned to as a member.
		d, err := a.departments.GetByManagerID(ctx, identity.UserID)
		if err == nil {
			return Scope{DepartmentID: &d.ID}, nil
		}
		if !errors.Is(err, department.ErrDepartmentNotFound) {
			return Scope{}, fmt.Errorf("failed to resolve managed department: %w", err)
		}

		u, err := a.users.GetByID(ctx, identity.UserID)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return Scope{None: true}, nil
			}
			return Scope{}, fmt.Errorf("failed to resolve manager user: %w", err)
		}
		if u.DepartmentID != nil {
			return Scope{DepartmentID: u.DepartmentID}, nil
		}
		return Scope{None: true}, nil

	default:
		userID := identity.UserID
		return Scope{UserID: &userID}, nil
	}
}
