package store

type UpsertStoreRequest struct {
	Name            string  `json:"name" validate:"required"`
	BranchName      string  `json:"branch_name,omitempty"`
	GooglePlaceID   string  `json:"google_place_id,omitempty"`
	GoogleReviewURL *string `json:"google_review_url,omitempty" validate:"omitempty,url"`
}
