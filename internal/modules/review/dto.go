package review

import "time"

type ImportReviewRequest struct {
	StoreID    int64     `json:"store_id" validate:"required,gt=0"`
	GoogleID   string    `json:"google_id,omitempty"`
	AuthorName string    `json:"author_name,omitempty"`
	Rating     int       `json:"rating" validate:"required,gte=1,lte=5"`
	Text       string    `json:"text,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

type ReplyRequest struct {
	Text string `json:"text" validate:"required"`
}
