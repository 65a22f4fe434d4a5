package checkin

import (
	"context"

	"github.com/smartattend/attendance-backend-go/internal/domain/user"
	"github.com/smartattend/attendance-backend-go/internal/pkg/validator"
)

type RecordRequest struct {
	CheckType string   `json:"check_type"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (r *RecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CheckType) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_type",
			Message: "check_type is required",
		})
	}

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID        string   `json:"id"`
	UserID    string   `json:"user_id"`
	UserName  *string  `json:"user_name,omitempty"`
	CheckType string   `json:"check_type"`
	Timestamp string   `json:"ts"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	IsLate    bool     `json:"is_late"`
}

type ListRequest struct {
	From *string `json:"from"`
	To   *string `json:"to"`
}

type Service interface {
	// Record validates and persists one check-in/out event for the
	// authenticated user, tagging lateness per the department rule.
	Record(ctx context.Context, identity user.Identity, req RecordRequest) (RecordResponse, error)
	// List returns records visible to the caller's department scope.
	List(ctx context.Context, identity user.Identity, req ListRequest) ([]RecordResponse, error)
}
