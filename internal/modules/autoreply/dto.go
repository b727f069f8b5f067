package autoreply

type RunRequest struct {
	StoreID *int64 `json:"store_id,omitempty"`
	Force   bool   `json:"force"`
}

type ReplyResult struct {
	ReviewID int64  `json:"review_id"`
	Success  bool   `json:"success"`
	Reply    string `json:"reply,omitempty"`
	Error    string `json:"error,omitempty"`
}

type BatchResult struct {
	Processed  int           `json:"processed"`
	Total      int           `json:"total"`
	SkipReason string        `json:"skip_reason,omitempty"`
	Results    []ReplyResult `json:"results"`
}
