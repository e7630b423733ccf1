package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shareit/internal/domain"
	"shareit/internal/metrics"
)

// Service is the booking lifecycle engine: it creates bookings, runs the
// owner's approve/reject transition, authorizes reads and classifies
// bookings into temporal/state buckets at query time.
type Service struct {
	bookings BookingRepository
	users    UserRepository
	items    ItemRepository
	logger   *zap.Logger
}

func NewService(bookings BookingRepository, users UserRepository, items ItemRepository, logger *zap.Logger) *Service {
	return &Service{
		bookings: bookings,
		users:    users,
		items:    items,
		logger:   logger,
	}
}

// Create validates the interval before touching the store, then resolves the
// booker and the item, rejects unavailable items and persists a WAITING
// booking. Availability is not flipped: overlapping WAITING requests against
// the same item are allowed and resolved later by the owner.
func (s *Service) Create(ctx context.Context, bookerID int64, req CreateBookingRequest) (*BookingResponse, error) {
	if req.Start.IsZero() || req.End.IsZero() || !req.End.After(req.Start) {
		return nil, fmt.Errorf("%w: end must be strictly after start", ErrInvalidInterval)
	}

	booker, err := s.users.GetByID(ctx, bookerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id = %d", ErrUserNotFound, bookerID)
		}
		return nil, err
	}

	item, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id = %d", ErrItemNotFound, req.ItemID)
		}
		return nil, err
	}
	if !item.Available {
		return nil, fmt.Errorf("%w: id = %d", ErrItemUnavailable, item.ID)
	}

	b := &domain.Booking{
		ItemID:   item.ID,
		BookerID: booker.ID,
		Start:    req.Start,
		End:      req.End,
		Status:   domain.BookingWaiting,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	metrics.IncBookingCreated()
	s.logger.Info("booking created",
		zap.Int64("booking_id", b.ID),
		zap.Int64("item_id", item.ID),
		zap.Int64("booker_id", booker.ID),
	)

	return s.hydrate(ctx, b, item, booker)
}

// Approve runs the single status transition WAITING -> APPROVED|REJECTED.
// Only the owner of the booking's item may call it; anyone else gets
// ErrNotOwner, which is distinct from not-found. Re-transitioning a booking
// that is already terminal is permitted and simply re-persists the status.
func (s *Service) Approve(ctx context.Context, ownerID, bookingID int64, approved bool) (*BookingResponse, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id = %d", ErrBookingNotFound, bookingID)
		}
		return nil, err
	}

	item, err := s.items.GetByID(ctx, b.ItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id = %d", ErrItemNotFound, b.ItemID)
		}
		return nil, err
	}
	if item.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: user with id = %d is not the owner of item with id = %d",
			ErrNotOwner, ownerID, item.ID)
	}

	status := domain.BookingRejected
	if approved {
		status = domain.BookingApproved
	}
	if err := s.bookings.UpdateStatus(ctx, b.ID, status); err != nil {
		return nil, err
	}
	b.Status = status

	metrics.IncBookingTransition(string(status))
	s.logger.Info("booking transitioned",
		zap.Int64("booking_id", b.ID),
		zap.String("status", string(status)),
	)

	return s.hydrate(ctx, b, item, nil)
}

// GetByID returns the booking to its booker or to the owner of its item.
// Any third party gets ErrAccessDenied.
func (s *Service) GetByID(ctx context.Context, bookingID, userID int64) (*BookingResponse, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id = %d", ErrBookingNotFound, bookingID)
		}
		return nil, err
	}

	item, err := s.items.GetByID(ctx, b.ItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id = %d", ErrItemNotFound, b.ItemID)
		}
		return nil, err
	}
	if b.BookerID != userID && item.OwnerID != userID {
		return nil, fmt.Errorf("%w: user with id = %d", ErrAccessDenied, userID)
	}

	return s.hydrate(ctx, b, item, nil)
}

// ListByState returns the booker's bookings classified against the clock at
// query time. The state token is case-insensitive; anything outside the
// known set (including "ALL") means no temporal or status filter.
func (s *Service) ListByState(ctx context.Context, bookerID int64, state string) ([]BookingResponse, error) {
	if _, err := s.users.GetByID(ctx, bookerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id = %d", ErrUserNotFound, bookerID)
		}
		return nil, err
	}

	now := time.Now()
	var (
		bookings []domain.Booking
		err      error
	)
	switch strings.ToUpper(state) {
	case "CURRENT":
		bookings, err = s.bookings.FindCurrentByBooker(ctx, bookerID, now)
	case "PAST":
		bookings, err = s.bookings.FindPastByBooker(ctx, bookerID, now)
	case "FUTURE":
		bookings, err = s.bookings.FindFutureByBooker(ctx, bookerID, now)
	case "WAITING":
		bookings, err = s.bookings.FindByBookerAndStatus(ctx, bookerID, domain.BookingWaiting)
	case "REJECTED":
		bookings, err = s.bookings.FindByBookerAndStatus(ctx, bookerID, domain.BookingRejected)
	default:
		bookings, err = s.bookings.FindAllByBooker(ctx, bookerID)
	}
	if err != nil {
		return nil, err
	}

	return s.hydrateAll(ctx, bookings)
}

// ListByOwnerState is the owner's view of the same five-way classification,
// scoped to bookings on the owner's items. Unlike the booker side, an empty
// state is a hard input error.
func (s *Service) ListByOwnerState(ctx context.Context, ownerID int64, state string) ([]BookingResponse, error) {
	if state == "" {
		return nil, ErrEmptyState
	}

	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id = %d", ErrUserNotFound, ownerID)
		}
		return nil, err
	}

	now := time.Now()
	var (
		bookings []domain.Booking
		err      error
	)
	switch strings.ToUpper(state) {
	case "CURRENT":
		bookings, err = s.bookings.FindCurrentByOwner(ctx, ownerID, now)
	case "PAST":
		bookings, err = s.bookings.FindPastByOwner(ctx, ownerID, now)
	case "FUTURE":
		bookings, err = s.bookings.FindFutureByOwner(ctx, ownerID, now)
	case "WAITING":
		bookings, err = s.bookings.FindByOwnerAndStatus(ctx, ownerID, domain.BookingWaiting)
	case "REJECTED":
		bookings, err = s.bookings.FindByOwnerAndStatus(ctx, ownerID, domain.BookingRejected)
	default:
		bookings, err = s.bookings.FindAllByOwner(ctx, ownerID)
	}
	if err != nil {
		return nil, err
	}

	return s.hydrateAll(ctx, bookings)
}

// --- Hydration helpers ---

// hydrate builds the client-facing view. item is always required; booker may
// be nil and is then resolved together with the item's owner.
func (s *Service) hydrate(ctx context.Context, b *domain.Booking, item *domain.Item, booker *domain.User) (*BookingResponse, error) {
	ids := []int64{item.OwnerID}
	if booker == nil {
		ids = append(ids, b.BookerID)
	}
	users, err := s.users.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	owner := byID[item.OwnerID]
	if booker == nil {
		u := byID[b.BookerID]
		booker = &u
	}

	resp := toBookingResponse(b, item, &owner, booker)
	return &resp, nil
}

func (s *Service) hydrateAll(ctx context.Context, bookings []domain.Booking) ([]BookingResponse, error) {
	out := make([]BookingResponse, 0, len(bookings))
	if len(bookings) == 0 {
		return out, nil
	}

	itemIDs := make([]int64, 0, len(bookings))
	seenItems := make(map[int64]struct{}, len(bookings))
	for _, b := range bookings {
		if _, ok := seenItems[b.ItemID]; !ok {
			seenItems[b.ItemID] = struct{}{}
			itemIDs = append(itemIDs, b.ItemID)
		}
	}
	items, err := s.items.ListByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	itemByID := make(map[int64]domain.Item, len(items))
	for _, i := range items {
		itemByID[i.ID] = i
	}

	userIDs := make([]int64, 0, 2*len(bookings))
	seenUsers := make(map[int64]struct{}, 2*len(bookings))
	add := func(id int64) {
		if _, ok := seenUsers[id]; !ok {
			seenUsers[id] = struct{}{}
			userIDs = append(userIDs, id)
		}
	}
	for _, b := range bookings {
		add(b.BookerID)
		if i, ok := itemByID[b.ItemID]; ok {
			add(i.OwnerID)
		}
	}
	users, err := s.users.ListByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	userByID := make(map[int64]domain.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}

	for i := range bookings {
		b := bookings[i]
		item := itemByID[b.ItemID]
		owner := userByID[item.OwnerID]
		booker := userByID[b.BookerID]
		out = append(out, toBookingResponse(&b, &item, &owner, &booker))
	}
	return out, nil
}

func toBookingResponse(b *domain.Booking, item *domain.Item, owner, booker *domain.User) BookingResponse {
	return BookingResponse{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: b.Status,
		Item: ItemView{
			ID:   item.ID,
			Name: item.Name,
			Owner: UserView{
				ID:    owner.ID,
				Name:  owner.Name,
				Email: owner.Email,
			},
		},
		Booker: UserView{
			ID:    booker.ID,
			Name:  booker.Name,
			Email: booker.Email,
		},
	}
}
