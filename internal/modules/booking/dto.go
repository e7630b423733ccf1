package booking

import (
	"time"

	"shareit/internal/domain"
)

type CreateBookingRequest struct {
	ItemID int64     `json:"item_id" binding:"required"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

type UserView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type ItemView struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Owner UserView `json:"owner"`
}

type BookingResponse struct {
	ID     int64                `json:"id"`
	Start  time.Time            `json:"start"`
	End    time.Time            `json:"end"`
	Status domain.BookingStatus `json:"status"`
	Item   ItemView             `json:"item"`
	Booker UserView             `json:"booker"`
}
