package domain

import "time"

// Comment is immutable once created.
type Comment struct {
	ID       int64     `json:"id"`
	ItemID   int64     `json:"item_id"`
	AuthorID int64     `json:"author_id"`
	Text     string    `json:"text" gorm:"type:text"`
	Created  time.Time `json:"created"`
}
