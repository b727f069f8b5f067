package domain

import "time"

type Store struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	Name            string    `json:"name"`
	BranchName      string    `json:"branch_name,omitempty"`
	GooglePlaceID   string    `json:"google_place_id,omitempty"`
	GoogleReviewURL *string   `json:"google_review_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DisplayName is the label substituted into reply prompts.
func (s *Store) DisplayName() string {
	if s.BranchName != "" {
		return s.Name + " " + s.BranchName
	}
	return s.Name
}
