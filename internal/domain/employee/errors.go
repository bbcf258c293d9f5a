package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrInvalidWorkType  = errors.New("work type must be REMOTE or ONSITE")
)
