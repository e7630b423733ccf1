package request

import "errors"

var (
	ErrUserNotFound    = errors.New("User not found")
	ErrRequestNotFound = errors.New("Request not found")
	ErrEmptyRequest    = errors.New("request description must not be empty")
)
