package domain

import "time"

// ItemRequest is a wish-list entry: "I need an item like this".
// Items may later be created in answer to it.
type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description" gorm:"type:text"`
	RequesterID int64     `json:"requester_id"`
	Created     time.Time `json:"created"`

	Requester *User `json:"requester,omitempty" gorm:"foreignKey:RequesterID"`
}
