package booking

import (
	"context"
	"time"

	"shareit/internal/domain"
)

// BookingRepository is the persistence contract the lifecycle engine relies
// on. Temporal queries take the evaluation instant explicitly; nothing is
// stored on the booking for CURRENT/PAST/FUTURE.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error

	FindCurrentByBooker(ctx context.Context, bookerID int64, at time.Time) ([]domain.Booking, error)
	FindPastByBooker(ctx context.Context, bookerID int64, at time.Time) ([]domain.Booking, error)
	FindFutureByBooker(ctx context.Context, bookerID int64, at time.Time) ([]domain.Booking, error)
	FindByBookerAndStatus(ctx context.Context, bookerID int64, status domain.BookingStatus) ([]domain.Booking, error)
	FindAllByBooker(ctx context.Context, bookerID int64) ([]domain.Booking, error)

	FindCurrentByOwner(ctx context.Context, ownerID int64, at time.Time) ([]domain.Booking, error)
	FindPastByOwner(ctx context.Context, ownerID int64, at time.Time) ([]domain.Booking, error)
	FindFutureByOwner(ctx context.Context, ownerID int64, at time.Time) ([]domain.Booking, error)
	FindByOwnerAndStatus(ctx context.Context, ownerID int64, status domain.BookingStatus) ([]domain.Booking, error)
	FindAllByOwner(ctx context.Context, ownerID int64) ([]domain.Booking, error)
}

// UserRepository resolves bookers and owners.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ListByIDs(ctx context.Context, ids []int64) ([]domain.User, error)
}

// ItemRepository resolves the items bookings refer to.
type ItemRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	ListByIDs(ctx context.Context, ids []int64) ([]domain.Item, error)
}
