package response

import (
	"errors"
	"net/http"

	"github.com/smartattend/attendance-backend-go/internal/domain/auth"
	"github.com/smartattend/attendance-backend-go/internal/domain/checkin"
	"github.com/smartattend/attendance-backend-go/internal/domain/department"
	"github.com/smartattend/attendance-backend-go/internal/domain/leave"
	"github.com/smartattend/attendance-backend-go/internal/domain/manualcheck"
	"github.com/smartattend/attendance-backend-go/internal/domain/user"
	"github.com/smartattend/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Field-level input errors
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrAdminAccessRequired),
		errors.Is(err, user.ErrReviewerAccessRequired):
		Forbidden(w, err.Error())

	// Malformed arguments
	case errors.Is(err, checkin.ErrInvalidCheckType),
		errors.Is(err, manualcheck.ErrInvalidAction),
		errors.Is(err, leave.ErrInvalidAction),
		errors.Is(err, user.ErrInvalidRole):
		BadRequest(w, err.Error(), nil)

	// Quota
	case errors.Is(err, manualcheck.ErrQuotaExceeded):
		BadRequest(w, err.Error(), nil)

	// Missing entities
	case errors.Is(err, manualcheck.ErrRequestNotFound),
		errors.Is(err, leave.ErrApplicationNotFound),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, err.Error())

	// Invalid state transitions, including concurrent review losers
	case errors.Is(err, manualcheck.ErrAlreadyProcessed),
		errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, err.Error())

	// Uniqueness conflicts
	case errors.Is(err, user.ErrUsernameExists),
		errors.Is(err, department.ErrNameExists):
		Conflict(w, err.Error())

	// Default: storage and other unexpected failures
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
