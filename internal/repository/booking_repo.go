package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"shareit/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	ItemID    int64     `gorm:"column:item_id"`
	BookerID  int64     `gorm:"column:booker_id"`
	StartDate time.Time `gorm:"column:start_date"`
	EndDate   time.Time `gorm:"column:end_date"`
	Status    string    `gorm:"column:status"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:        m.ID,
		ItemID:    m.ItemID,
		BookerID:  m.BookerID,
		Start:     m.StartDate,
		End:       m.EndDate,
		Status:    domain.BookingStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:        b.ID,
		ItemID:    b.ItemID,
		BookerID:  b.BookerID,
		StartDate: b.Start,
		EndDate:   b.End,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func toDomainBookings(ms []bookingModel) []domain.Booking {
	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

// UpdateStatus persists the status transition. There is no guard against
// re-transitioning a terminal booking and no version column; concurrent
// transitions are last-write-wins.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": string(status), "updated_at": time.Now()})
	return tx.Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// --- Booker-side state queries. CURRENT/PAST/FUTURE are ordered start DESC,
// status and unfiltered queries by insertion (id ASC). ---

func (r *BookingRepository) FindCurrentByBooker(ctx context.Context, bookerID int64, at time.Time) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.db.WithContext(ctx).
		Where("booker_id = ? AND start_date <= ? AND end_date >= ?", bookerID, at, at).
		Order("start_date DESC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(ms), nil
}

func (r *BookingRepository) FindPastByBooker(ctx context.Context, bookerID int64, at time.Time) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.db.WithContext(ctx).
		Where("booker_id = ? AND end_date < ?", bookerID, at).
		Order("start_date DESC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(ms), nil
}

func (r *BookingRepository) FindFutureByBooker(ctx context.Context, bookerID int64, at time.Time) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.db.WithContext(ctx).
		Where("booker_id = ? AND start_date > ?", bookerID, at).
		Order("start_date DESC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(ms), nil
}

func (r *BookingRepository) FindByBookerAndStatus(ctx context.Context, bookerID int64, status domain.BookingStatus) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.db.WithContext(ctx).
		Where("booker_id = ? AND status = ?", bookerID, string(status)).
		Order("id ASC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(ms), nil
}

func (r *BookingRepository) FindAllByBooker(ctx context.Context, bookerID int64) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.db.WithContext(ctx).
		Where("booker_id = ?", bookerID).
		Order("id ASC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(ms), nil
}

// --- Owner-side state queries, joined through item ownership.
// Every branch is ordered start ASC. ---

func (r *BookingRepository) ownerScope(ctx context.Context, ownerID int64) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("bookings").
		Select("bookings.*").
		Joins("JOIN items ON items.id = bookings.item_id").
		Where("items.owner_id = ?", ownerID).
		Order("bookings.start_date ASC")
}

func (r *BookingRepository) FindCurrentByOwner(ctx context.Context, ownerID int64, at time.Time) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.ownerScope(ctx, ownerID).
		Where("bookings.start_date <= ? AND bookings.end_date >= ?", at, at).
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(ms), nil
}

func (r *BookingRepository) FindPastByOwner(ctx context.Context, ownerID int64, at time.Time) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.ownerScope(ctx, ownerID).
		Where("bookings.end_date < ?", at).
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(ms), nil
}

func (r *BookingRepository) FindFutureByOwner(ctx context.Context, ownerID int64, at time.Time) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.ownerScope(ctx, ownerID).
		Where("bookings.start_date > ?", at).
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(ms), nil
}

func (r *BookingRepository) FindByOwnerAndStatus(ctx context.Context, ownerID int64, status domain.BookingStatus) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.ownerScope(ctx, ownerID).
		Where("bookings.status = ?", string(status)).
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(ms), nil
}

func (r *BookingRepository) FindAllByOwner(ctx context.Context, ownerID int64) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.ownerScope(ctx, ownerID).Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(ms), nil
}

// --- Item-scoped queries used by the catalog views and the comment gate. ---

// FindByItemAndBooker returns every booking of the pair regardless of status.
func (r *BookingRepository) FindByItemAndBooker(ctx context.Context, itemID, bookerID int64) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.db.WithContext(ctx).
		Where("item_id = ? AND booker_id = ?", itemID, bookerID).
		Order("id ASC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(ms), nil
}

// FindLastByItem returns the booking with the latest end before the given
// instant, or nil when the item has none.
func (r *BookingRepository) FindLastByItem(ctx context.Context, itemID int64, before time.Time) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).
		Where("item_id = ? AND end_date < ?", itemID, before).
		Order("end_date DESC").
		First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// FindNextByItem returns the booking with the earliest start after the given
// instant, or nil when the item has none.
func (r *BookingRepository) FindNextByItem(ctx context.Context, itemID int64, after time.Time) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).
		Where("item_id = ? AND start_date > ?", itemID, after).
		Order("start_date ASC").
		First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}
