package request

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shareit/internal/domain"
)

type Service struct {
	requests RequestRepository
	users    UserRepository
	items    ItemRepository
	logger   *zap.Logger
}

func NewService(requests RequestRepository, users UserRepository, items ItemRepository, logger *zap.Logger) *Service {
	return &Service{requests: requests, users: users, items: items, logger: logger}
}

func (s *Service) Create(ctx context.Context, requesterID int64, req CreateRequestRequest) (*RequestResponse, error) {
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrEmptyRequest
	}

	if _, err := s.users.GetByID(ctx, requesterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id = %d", ErrUserNotFound, requesterID)
		}
		return nil, err
	}

	r := &domain.ItemRequest{
		Description: req.Description,
		RequesterID: requesterID,
		Created:     time.Now(),
	}
	if err := s.requests.Create(ctx, r); err != nil {
		return nil, err
	}

	s.logger.Info("item request created",
		zap.Int64("request_id", r.ID),
		zap.Int64("requester_id", requesterID),
	)

	return &RequestResponse{
		ID:          r.ID,
		Description: r.Description,
		Created:     r.Created,
		Items:       []OfferedItem{},
	}, nil
}

// ListOwn returns the user's own requests, newest first, each with the items
// offered in answer.
func (s *Service) ListOwn(ctx context.Context, requesterID int64) ([]RequestResponse, error) {
	if _, err := s.users.GetByID(ctx, requesterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id = %d", ErrUserNotFound, requesterID)
		}
		return nil, err
	}

	requests, err := s.requests.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return s.hydrateAll(ctx, requests)
}

// ListAll returns everyone else's requests, newest first.
func (s *Service) ListAll(ctx context.Context, userID int64) ([]RequestResponse, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id = %d", ErrUserNotFound, userID)
		}
		return nil, err
	}

	requests, err := s.requests.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.hydrateAll(ctx, requests)
}

func (s *Service) GetByID(ctx context.Context, userID, requestID int64) (*RequestResponse, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id = %d", ErrUserNotFound, userID)
		}
		return nil, err
	}

	r, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id = %d", ErrRequestNotFound, requestID)
		}
		return nil, err
	}

	out, err := s.hydrateAll(ctx, []domain.ItemRequest{*r})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *Service) hydrateAll(ctx context.Context, requests []domain.ItemRequest) ([]RequestResponse, error) {
	ids := make([]int64, 0, len(requests))
	for i := range requests {
		ids = append(ids, requests[i].ID)
	}

	byRequest := make(map[int64][]OfferedItem, len(requests))
	if len(ids) > 0 {
		items, err := s.items.ListByRequests(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range items {
			if items[i].RequestID == nil {
				continue
			}
			rid := *items[i].RequestID
			byRequest[rid] = append(byRequest[rid], OfferedItem{
				ID:          items[i].ID,
				Name:        items[i].Name,
				Description: items[i].Description,
				Available:   items[i].Available,
				OwnerID:     items[i].OwnerID,
			})
		}
	}

	out := make([]RequestResponse, 0, len(requests))
	for i := range requests {
		offered := byRequest[requests[i].ID]
		if offered == nil {
			offered = []OfferedItem{}
		}
		out = append(out, RequestResponse{
			ID:          requests[i].ID,
			Description: requests[i].Description,
			Created:     requests[i].Created,
			Items:       offered,
		})
	}
	return out, nil
}
