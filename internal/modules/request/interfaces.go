package request

import (
	"context"

	"shareit/internal/domain"
)

type RequestRepository interface {
	Create(ctx context.Context, req *domain.ItemRequest) error
	GetByID(ctx context.Context, id int64) (*domain.ItemRequest, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]domain.ItemRequest, error)
	ListAll(ctx context.Context, excludeRequesterID int64) ([]domain.ItemRequest, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type ItemRepository interface {
	ListByRequests(ctx context.Context, requestIDs []int64) ([]domain.Item, error)
}
