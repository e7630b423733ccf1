package item

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

type Service struct {
	items    ItemRepository
	users    UserRepository
	bookings BookingRepository
	comments CommentRepository
	requests RequestRepository
	logger   *zap.Logger
}

func NewService(items ItemRepository, users UserRepository, bookings BookingRepository, comments CommentRepository, requests RequestRepository, logger *zap.Logger) *Service {
	return &Service{
		items:    items,
		users:    users,
		bookings: bookings,
		comments: comments,
		requests: requests,
		logger:   logger,
	}
}

func (s *Service) Create(ctx context.Context, ownerID int64, req CreateItemRequest) (*ItemResponse, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Description) == "" || req.Available == nil {
		return nil, fmt.Errorf("%w: name, description and available are required", ErrInvalidItem)
	}

	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id = %d", ErrUserNotFound, ownerID)
		}
		return nil, err
	}

	if req.RequestID != nil {
		if _, err := s.requests.GetByID(ctx, *req.RequestID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: id = %d", ErrRequestNotFound, *req.RequestID)
			}
			return nil, err
		}
	}

	item := &domain.Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		OwnerID:     ownerID,
		RequestID:   req.RequestID,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("item created",
		zap.Int64("item_id", item.ID),
		zap.Int64("owner_id", ownerID),
	)

	resp := toItemResponse(item)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, ownerID, itemID int64, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id = %d", ErrItemNotFound, itemID)
		}
		return nil, err
	}

	if item.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: user with id = %d cannot edit item with id = %d", ErrNotOwner, ownerID, itemID)
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		item.Name = *req.Name
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) != "" {
		item.Description = *req.Description
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}

	resp := toItemResponse(item)
	return &resp, nil
}

// GetByID returns the item with its comments. The owner additionally sees
// the nearest past and upcoming bookings; anyone else gets null markers and
// the booking storage is not consulted at all.
func (s *Service) GetByID(ctx context.Context, itemID, userID int64) (*ItemDetails, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id = %d", ErrItemNotFound, itemID)
		}
		return nil, err
	}

	details := &ItemDetails{ItemResponse: toItemResponse(item)}

	if item.OwnerID == userID {
		if err := s.attachMarkers(ctx, details, itemID, time.Now()); err != nil {
			return nil, err
		}
	}

	comments, err := s.loadComments(ctx, itemID)
	if err != nil {
		return nil, err
	}
	details.Comments = comments

	return details, nil
}

// ListByOwner returns the owner's items with the same enriched shape the
// owner sees in GetByID.
func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]ItemDetails, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id = %d", ErrUserNotFound, ownerID)
		}
		return nil, err
	}

	items, err := s.items.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	out := make([]ItemDetails, 0, len(items))
	for i := range items {
		details := ItemDetails{ItemResponse: toItemResponse(&items[i])}

		if err := s.attachMarkers(ctx, &details, items[i].ID, now); err != nil {
			return nil, err
		}

		comments, err := s.loadComments(ctx, items[i].ID)
		if err != nil {
			return nil, err
		}
		details.Comments = comments

		out = append(out, details)
	}
	return out, nil
}

// Search matches available items by name or description. Blank text is a
// valid query that matches nothing.
func (s *Service) Search(ctx context.Context, text string) ([]ItemResponse, error) {
	if strings.TrimSpace(text) == "" {
		return []ItemResponse{}, nil
	}

	items, err := s.items.SearchAvailable(ctx, text)
	if err != nil {
		return nil, err
	}

	out := make([]ItemResponse, 0, len(items))
	for i := range items {
		out = append(out, toItemResponse(&items[i]))
	}
	return out, nil
}

// CreateComment lets a past renter review the item. Eligibility is judged at
// calendar-day granularity: both the start and end dates of at least one
// booking must fall strictly before today, and the booking must span more
// than a single day. The booking's approval status is not consulted.
func (s *Service) CreateComment(ctx context.Context, userID, itemID int64, req CreateCommentRequest) (*CommentResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, ErrEmptyComment
	}

	author, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id = %d", ErrUserNotFound, userID)
		}
		return nil, err
	}

	if _, err := s.items.GetByID(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id = %d", ErrItemNotFound, itemID)
		}
		return nil, err
	}

	bookings, err := s.bookings.FindByItemAndBooker(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}

	if !hasCompletedRental(bookings, time.Now()) {
		return nil, ErrNoCompletedRental
	}

	comment := &domain.Comment{
		ItemID:   itemID,
		AuthorID: userID,
		Text:     req.Text,
		Created:  time.Now(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	metrics.IncCommentCreated()
	s.logger.Info("comment created",
		zap.Int64("comment_id", comment.ID),
		zap.Int64("item_id", itemID),
		zap.Int64("author_id", userID),
	)

	return &CommentResponse{
		ID:         comment.ID,
		Text:       comment.Text,
		AuthorName: author.Name,
		Created:    comment.Created,
	}, nil
}

func (s *Service) attachMarkers(ctx context.Context, details *ItemDetails, itemID int64, now time.Time) error {
	last, err := s.bookings.FindLastByItem(ctx, itemID, now)
	if err != nil {
		return err
	}
	next, err := s.bookings.FindNextByItem(ctx, itemID, now)
	if err != nil {
		return err
	}
	details.LastBooking = toMarker(last)
	details.NextBooking = toMarker(next)
	return nil
}

func hasCompletedRental(bookings []domain.Booking, now time.Time) bool {
	today := dateOf(now)
	for i := range bookings {
		start := dateOf(bookings[i].Start)
		end := dateOf(bookings[i].End)
		if start.Before(today) && end.Before(today) && !start.Equal(end) {
			return true
		}
	}
	return false
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (s *Service) loadComments(ctx context.Context, itemID int64) ([]CommentResponse, error) {
	comments, err := s.comments.FindByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	authorIDs := make([]int64, 0, len(comments))
	seen := make(map[int64]bool, len(comments))
	for i := range comments {
		if !seen[comments[i].AuthorID] {
			seen[comments[i].AuthorID] = true
			authorIDs = append(authorIDs, comments[i].AuthorID)
		}
	}

	names := make(map[int64]string, len(authorIDs))
	if len(authorIDs) > 0 {
		authors, err := s.users.ListByIDs(ctx, authorIDs)
		if err != nil {
			return nil, err
		}
		for i := range authors {
			names[authors[i].ID] = authors[i].Name
		}
	}

	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, CommentResponse{
			ID:         comments[i].ID,
			Text:       comments[i].Text,
			AuthorName: names[comments[i].AuthorID],
			Created:    comments[i].Created,
		})
	}
	return out, nil
}

func toItemResponse(item *domain.Item) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Available:   item.Available,
		RequestID:   item.RequestID,
	}
}

func toMarker(b *domain.Booking) *BookingMarker {
	if b == nil {
		return nil
	}
	return &BookingMarker{
		ID:       b.ID,
		BookerID: b.BookerID,
		Start:    b.Start,
		End:      b.End,
	}
}
