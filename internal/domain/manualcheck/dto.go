package manualcheck

import (
	"context"

	"github.com/smartattend/attendance-backend-go/internal/domain/user"
	"github.com/smartattend/attendance-backend-go/internal/pkg/validator"
)

type SubmitRequest struct {
	CheckType   string  `json:"check_type"`
	RequestedTS string  `json:"requested_ts"`
	Reason      *string `json:"reason"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CheckType) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_type",
			Message: "check_type is required",
		})
	}

	if _, ok := validator.IsValidDateTime(r.RequestedTS); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "requested_ts",
			Message: "requested_ts must be a valid ISO8601 timestamp",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReviewAction string

const (
	ActionApprove ReviewAction = "APPROVE"
	ActionReject  ReviewAction = "REJECT"
)

type ReviewRequest struct {
	ID     string `json:"-"`
	Action string `json:"action"`
}

type RequestResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	UserName    *string `json:"user_name,omitempty"`
	CheckType   string  `json:"check_type"`
	RequestedTS string  `json:"requested_ts"`
	Reason      *string `json:"reason,omitempty"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
}

type Service interface {
	// Submit files a PENDING correction request, enforcing the
	// per-month quota against the requested timestamp's month.
	Submit(ctx context.Context, identity user.Identity, req SubmitRequest) (RequestResponse, error)
	// Review approves or rejects a pending request. Approval
	// materializes the corresponding check-in record idempotently and
	// raises a late alert when the materialized IN is late.
	Review(ctx context.Context, identity user.Identity, req ReviewRequest) (RequestResponse, error)
	List(ctx context.Context, identity user.Identity) ([]RequestResponse, error)
}
