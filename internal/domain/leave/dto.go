package leave

import (
	"context"
	"io"
	"time"

	"github.com/smartattend/attendance-backend-go/internal/domain/user"
	"github.com/smartattend/attendance-backend-go/internal/pkg/validator"
)

type ApplyRequest struct {
	LeaveType string  `json:"leave_type"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Reason    *string `json:"reason"`

	// Optional attachment, delegated to the file service. The engine
	// stores the returned path only.
	Attachment         io.Reader `json:"-"`
	AttachmentFilename string    `json:"-"`
}

func (r *ApplyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type is required",
		})
	}

	start, okStart := validator.IsValidDateTime(r.StartTime)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be a valid ISO8601 timestamp",
		})
	}

	end, okEnd := validator.IsValidDateTime(r.EndTime)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be a valid ISO8601 timestamp",
		})
	}

	if okStart && okEnd && !end.After(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be after start_time",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Window returns the parsed [start, end] pair. Validate must have
// passed first.
func (r *ApplyRequest) Window() (time.Time, time.Time) {
	start, _ := validator.IsValidDateTime(r.StartTime)
	end, _ := validator.IsValidDateTime(r.EndTime)
	return start, end
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

type ApplicationResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	UserName       *string `json:"user_name,omitempty"`
	LeaveType      string  `json:"leave_type"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	Reason         *string `json:"reason,omitempty"`
	AttachmentPath *string `json:"attachment_path,omitempty"`
	Status         string  `json:"status"`
	ReviewerID     *string `json:"reviewer_id,omitempty"`
	UpdatedAt      string  `json:"updated_at"`
}

type Service interface {
	Apply(ctx context.Context, identity user.Identity, req ApplyRequest) (ApplicationResponse, error)
	Review(ctx context.Context, identity user.Identity, req ReviewRequest) (ApplicationResponse, error)
	List(ctx context.Context, identity user.Identity) ([]ApplicationResponse, error)
}
