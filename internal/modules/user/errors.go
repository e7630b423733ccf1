package user

import "errors"

var (
	ErrUserNotFound = errors.New("User not found")
	ErrInvalidEmail = errors.New("invalid email address")
	ErrEmptyUser    = errors.New("name and email are required")
	ErrEmailTaken   = errors.New("email already in use")
)
