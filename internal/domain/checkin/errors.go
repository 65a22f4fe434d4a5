package checkin

import "errors"

var (
	ErrInvalidCheckType = errors.New("check_type must be IN or OUT")
)
