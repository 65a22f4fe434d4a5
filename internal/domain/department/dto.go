package department

import (
	"context"
	"time"

	"github.com/smartattend/attendance-backend-go/internal/pkg/validator"
)

type CreateDepartmentRequest struct {
	Name             string  `json:"name"`
	ManagerID        *string `json:"manager_id"`
	LateStartTime    *string `json:"late_start_time"`
	LateGraceMinutes *int    `json:"late_grace_minutes"`
}

func (r *CreateDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	errs = append(errs, validateRuleConfig(r.LateStartTime, r.LateGraceMinutes)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateDepartmentRequest struct {
	ID               string  `json:"-"`
	Name             *string `json:"name"`
	ManagerID        *string `json:"manager_id"`
	LateStartTime    *string `json:"late_start_time"`
	LateGraceMinutes *int    `json:"late_grace_minutes"`
}

func (r *UpdateDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	errs = append(errs, validateRuleConfig(r.LateStartTime, r.LateGraceMinutes)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// The stored rule config is bound at the API edge so the resolver can
// trust persisted values, while still defaulting defensively on read.
func validateRuleConfig(startTime *string, graceMinutes *int) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if startTime != nil {
		if _, err := time.Parse("15:04", *startTime); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "late_start_time",
				Message: "late_start_time must be in HH:MM format",
			})
		}
	}

	if graceMinutes != nil && (*graceMinutes < 0 || *graceMinutes > 120) {
		errs = append(errs, validator.ValidationError{
			Field:   "late_grace_minutes",
			Message: "late_grace_minutes must be between 0 and 120",
		})
	}

	return errs
}

type DepartmentResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	ManagerID        *string `json:"manager_id,omitempty"`
	LateStartTime    string  `json:"late_start_time"`
	LateGraceMinutes int     `json:"late_grace_minutes"`
	CreatedAt        string  `json:"created_at"`
}

type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	Update(ctx context.Context, req UpdateDepartmentRequest) (DepartmentResponse, error)
	List(ctx context.Context) ([]DepartmentResponse, error)
}
