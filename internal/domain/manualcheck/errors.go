package manualcheck

import "errors"

var (
	ErrQuotaExceeded    = errors.New("monthly manual check-in quota reached")
	ErrRequestNotFound  = errors.New("manual check request not found")
	ErrAlreadyProcessed = errors.New("manual check request has already been reviewed")
	ErrInvalidAction    = errors.New("action must be APPROVE or REJECT")
)
