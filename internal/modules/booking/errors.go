package booking

import "errors"

var (
	// ErrInvalidInterval is raised before any lookup when end is not
	// strictly after start or either bound is missing.
	ErrInvalidInterval = errors.New("invalid booking interval")
	// ErrEmptyState guards the owner-side query only; the booker-side
	// query treats an absent state as ALL.
	ErrEmptyState = errors.New("state must not be empty")

	ErrUserNotFound    = errors.New("user not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrBookingNotFound = errors.New("booking not found")

	ErrItemUnavailable = errors.New("item is not available")

	ErrNotOwner     = errors.New("not the owner of the item")
	ErrAccessDenied = errors.New("neither the booker nor the owner")
)
