package survey

import (
	"context"

	"reviewloop/internal/domain"
)

// SurveyRepository is the persistence boundary for surveys and their
// append-only response records.
type SurveyRepository interface {
	Create(ctx context.Context, s *domain.Survey) error
	Update(ctx context.Context, s *domain.Survey) error
	GetByID(ctx context.Context, id int64) (*domain.Survey, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Survey, error)
	SetActive(ctx context.Context, id int64, active bool) error
	CountResponses(ctx context.Context, surveyID int64) (int64, error)
	AppendResponse(ctx context.Context, resp *domain.SurveyResponse) error
	GetResponse(ctx context.Context, id int64) (*domain.SurveyResponse, error)
	AddImprovement(ctx context.Context, responseID int64, text string) error
	ListResponses(ctx context.Context, surveyID int64, limit, offset int) ([]domain.SurveyResponse, error)
}

// StoreLookup resolves a store's public Google review page at response
// time.
type StoreLookup interface {
	GetGoogleReviewURL(ctx context.Context, storeID int64) (string, error)
}
