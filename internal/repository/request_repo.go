package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"shareit/internal/domain"
)

type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

type requestModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Description string    `gorm:"column:description"`
	RequesterID int64     `gorm:"column:requester_id"`
	Created     time.Time `gorm:"column:created"`
}

func (requestModel) TableName() string { return "item_requests" }

func toDomainRequest(m requestModel) *domain.ItemRequest {
	return &domain.ItemRequest{
		ID:          m.ID,
		Description: m.Description,
		RequesterID: m.RequesterID,
		Created:     m.Created,
	}
}

func (r *RequestRepository) Create(ctx context.Context, req *domain.ItemRequest) error {
	m := requestModel{
		Description: req.Description,
		RequesterID: req.RequesterID,
		Created:     req.Created,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*req = *toDomainRequest(m)
	return nil
}

func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*domain.ItemRequest, error) {
	var m requestModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRequest(m), nil
}

func (r *RequestRepository) ListByRequester(ctx context.Context, requesterID int64) ([]domain.ItemRequest, error) {
	var ms []requestModel
	tx := r.db.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Order("created DESC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.ItemRequest, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainRequest(m))
	}
	return out, nil
}

// ListAll returns requests raised by everyone except the given user, newest
// first.
func (r *RequestRepository) ListAll(ctx context.Context, excludeRequesterID int64) ([]domain.ItemRequest, error) {
	var ms []requestModel
	tx := r.db.WithContext(ctx).
		Where("requester_id <> ?", excludeRequesterID).
		Order("created DESC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.ItemRequest, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainRequest(m))
	}
	return out, nil
}
