package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"shareit/internal/domain"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

type commentModel struct {
	ID       int64     `gorm:"column:id;primaryKey"`
	ItemID   int64     `gorm:"column:item_id"`
	AuthorID int64     `gorm:"column:author_id"`
	Text     string    `gorm:"column:text"`
	Created  time.Time `gorm:"column:created"`
}

func (commentModel) TableName() string { return "comments" }

func toDomainComment(m commentModel) *domain.Comment {
	return &domain.Comment{
		ID:       m.ID,
		ItemID:   m.ItemID,
		AuthorID: m.AuthorID,
		Text:     m.Text,
		Created:  m.Created,
	}
}

func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	m := commentModel{
		ItemID:   c.ItemID,
		AuthorID: c.AuthorID,
		Text:     c.Text,
		Created:  c.Created,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*c = *toDomainComment(m)
	return nil
}

func (r *CommentRepository) FindByItem(ctx context.Context, itemID int64) ([]domain.Comment, error) {
	var ms []commentModel
	tx := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created ASC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Comment, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainComment(m))
	}
	return out, nil
}
