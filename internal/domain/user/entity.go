package user

import "time"

type Role string

const (
	RoleEmployee Role = "employee" // Records own attendance
	RoleManager  Role = "manager"  // Reviews requests within own department
	RoleAdmin    Role = "admin"    // Full access, no department scoping
)

// ValidRole reports whether r is one of the closed set of roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleEmployee, RoleManager, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         Role
	Name         string
	Email        *string
	DepartmentID *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the authenticated caller handed to the workflow engine.
// It is extracted from verified token claims by the auth middleware and
// trusted verbatim downstream.
type Identity struct {
	UserID string
	Role   Role
}

func (i Identity) IsAdmin() bool   { return i.Role == RoleAdmin }
func (i Identity) IsManager() bool { return i.Role == RoleManager }
