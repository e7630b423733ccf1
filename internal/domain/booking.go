package domain

import "time"

type BookingStatus string

const (
	BookingWaiting  BookingStatus = "WAITING"
	BookingApproved BookingStatus = "APPROVED"
	BookingRejected BookingStatus = "REJECTED"
)

// Booking references exactly one item and one booker. Item and booker never
// change after creation; only Status does, through the owner's approval.
type Booking struct {
	ID        int64         `json:"id"`
	ItemID    int64         `json:"item_id"`
	BookerID  int64         `json:"booker_id"`
	Start     time.Time     `json:"start" gorm:"column:start_date"`
	End       time.Time     `json:"end" gorm:"column:end_date"`
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	Item   *Item `json:"item,omitempty" gorm:"foreignKey:ItemID"`
	Booker *User `json:"booker,omitempty" gorm:"foreignKey:BookerID"`
}
