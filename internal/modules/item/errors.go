package item

import "errors"

var (
	ErrUserNotFound      = errors.New("User not found")
	ErrItemNotFound      = errors.New("Item not found")
	ErrRequestNotFound   = errors.New("Request not found")
	ErrNotOwner          = errors.New("user is not the owner of the item")
	ErrInvalidItem       = errors.New("invalid item data")
	ErrEmptyComment      = errors.New("comment text must not be empty")
	ErrNoCompletedRental = errors.New("User did not rent this item or the rental period has not ended")
)
