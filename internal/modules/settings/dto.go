package settings

type UpdateSettingsRequest struct {
	StoreID                    *int64 `json:"store_id,omitempty"`
	CustomPromptEnabled        bool   `json:"custom_prompt_enabled"`
	PositivePrompt             string `json:"positive_prompt,omitempty"`
	NeutralPrompt              string `json:"neutral_prompt,omitempty"`
	NegativePrompt             string `json:"negative_prompt,omitempty"`
	NoCommentPrompt            string `json:"no_comment_prompt,omitempty"`
	AutoReplyEnabled           bool   `json:"auto_reply_enabled"`
	AutoReplyDelayMinutes      int    `json:"auto_reply_delay_minutes" validate:"gte=0"`
	AutoReplyBusinessHoursOnly bool   `json:"auto_reply_business_hours_only"`
	BusinessHoursStart         string `json:"business_hours_start" validate:"required"`
	BusinessHoursEnd           string `json:"business_hours_end" validate:"required"`
	AutoReplyMinRating         int    `json:"auto_reply_min_rating" validate:"gte=1,lte=5"`
	AutoReplyMaxRating         int    `json:"auto_reply_max_rating" validate:"gte=1,lte=5"`
}
