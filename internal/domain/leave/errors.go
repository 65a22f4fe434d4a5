package leave

import "errors"

var (
	ErrApplicationNotFound = errors.New("leave application not found")
	ErrAlreadyProcessed    = errors.New("leave application has already been reviewed")
	ErrInvalidAction       = errors.New("action must be APPROVE or REJECT")
)
