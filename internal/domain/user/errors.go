package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrUsernameExists         = errors.New("username already taken")
	ErrInvalidRole            = errors.New("role must be employee, manager or admin")
	ErrAdminAccessRequired    = errors.New("admin access required")
	ErrReviewerAccessRequired = errors.New("manager or admin access required")
)
