package domain

import "time"

// AISettings controls AI reply generation per user, optionally per store.
// A store-scoped row overrides the user-level one.
type AISettings struct {
	ID                         int64     `json:"id"`
	UserID                     int64     `json:"user_id"`
	StoreID                    *int64    `json:"store_id,omitempty"`
	CustomPromptEnabled        bool      `json:"custom_prompt_enabled"`
	PositivePrompt             string    `json:"positive_prompt,omitempty"`
	NeutralPrompt              string    `json:"neutral_prompt,omitempty"`
	NegativePrompt             string    `json:"negative_prompt,omitempty"`
	NoCommentPrompt            string    `json:"no_comment_prompt,omitempty"`
	AutoReplyEnabled           bool      `json:"auto_reply_enabled"`
	AutoReplyDelayMinutes      int       `json:"auto_reply_delay_minutes"`
	AutoReplyBusinessHoursOnly bool      `json:"auto_reply_business_hours_only"`
	BusinessHoursStart         string    `json:"business_hours_start"`
	BusinessHoursEnd           string    `json:"business_hours_end"`
	AutoReplyMinRating         int       `json:"auto_reply_min_rating"`
	AutoReplyMaxRating         int       `json:"auto_reply_max_rating"`
	CreatedAt                  time.Time `json:"created_at"`
	UpdatedAt                  time.Time `json:"updated_at"`
}

// DefaultAISettings are returned when a user has not saved settings yet.
func DefaultAISettings(userID int64, storeID *int64) *AISettings {
	return &AISettings{
		UserID:                     userID,
		StoreID:                    storeID,
		CustomPromptEnabled:        false,
		AutoReplyEnabled:           false,
		AutoReplyDelayMinutes:      60,
		AutoReplyBusinessHoursOnly: false,
		BusinessHoursStart:         "09:00",
		BusinessHoursEnd:           "18:00",
		AutoReplyMinRating:         1,
		AutoReplyMaxRating:         5,
	}
}
