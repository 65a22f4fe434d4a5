package user

import (
	"context"

	"github.com/smartattend/attendance-backend-go/internal/pkg/validator"
)

type CreateUserRequest struct {
	Username     string  `json:"username"`
	Password     string  `json:"password"`
	Role         string  `json:"role"`
	Name         string  `json:"name"`
	Email        *string `json:"email"`
	DepartmentID *string `json:"department_id"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	}

	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	if !ValidRole(Role(r.Role)) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be employee, manager or admin",
		})
	}

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email address is invalid",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateUserRequest struct {
	ID           string  `json:"-"`
	Role         *string `json:"role"`
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	DepartmentID *string `json:"department_id"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Role != nil && !ValidRole(Role(*r.Role)) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be employee, manager or admin",
		})
	}

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email address is invalid",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UserResponse struct {
	ID           string  `json:"id"`
	Username     string  `json:"username"`
	Role         string  `json:"role"`
	Name         string  `json:"name"`
	Email        *string `json:"email,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	Update(ctx context.Context, req UpdateUserRequest) (UserResponse, error)
	List(ctx context.Context) ([]UserResponse, error)
}
