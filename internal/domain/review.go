package domain

import "time"

type Review struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"user_id"`
	StoreID    int64      `json:"store_id"`
	GoogleID   string     `json:"google_id,omitempty"`
	AuthorName string     `json:"author_name,omitempty"`
	Rating     int        `json:"rating"`
	Text       string     `json:"text,omitempty"`
	Replied    bool       `json:"replied"`
	ReplyText  *string    `json:"reply_text,omitempty"`
	RepliedAt  *time.Time `json:"replied_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
