package item

import (
	"context"
	"time"

	"shareit/internal/domain"
)

type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	Update(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Item, error)
	SearchAvailable(ctx context.Context, text string) ([]domain.Item, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ListByIDs(ctx context.Context, ids []int64) ([]domain.User, error)
}

type BookingRepository interface {
	FindByItemAndBooker(ctx context.Context, itemID, bookerID int64) ([]domain.Booking, error)
	FindLastByItem(ctx context.Context, itemID int64, before time.Time) (*domain.Booking, error)
	FindNextByItem(ctx context.Context, itemID int64, after time.Time) (*domain.Booking, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	FindByItem(ctx context.Context, itemID int64) ([]domain.Comment, error)
}

type RequestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ItemRequest, error)
}
