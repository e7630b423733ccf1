package request

import "time"

type CreateRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

// OfferedItem is an item published in answer to a request.
type OfferedItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"owner_id"`
}

type RequestResponse struct {
	ID          int64         `json:"id"`
	Description string        `json:"description"`
	Created     time.Time     `json:"created"`
	Items       []OfferedItem `json:"items"`
}
