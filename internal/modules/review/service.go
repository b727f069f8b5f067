package review

import (
	"context"
	"errors"
	"strings"
	"time"

	"reviewloop/internal/domain"
	"reviewloop/internal/repository"

	"gorm.io/gorm"
)

type StoreGate interface {
	GetByID(ctx context.Context, id int64) (*domain.Store, error)
}

type Service struct {
	reviews *repository.ReviewRepository
	stores  StoreGate
}

func NewService(reviews *repository.ReviewRepository, stores StoreGate) *Service {
	return &Service{reviews: reviews, stores: stores}
}

// Import records a review fetched from the Google Business Profile of
// one of the user's stores.
func (s *Service) Import(ctx context.Context, userID int64, req ImportReviewRequest) (*domain.Review, error) {
	if userID <= 0 || req.StoreID <= 0 || req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRequest
	}

	st, err := s.stores.GetByID(ctx, req.StoreID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if st.UserID != userID {
		return nil, ErrForbidden
	}

	createdAt := req.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	rv := &domain.Review{
		UserID:     userID,
		StoreID:    req.StoreID,
		GoogleID:   req.GoogleID,
		AuthorName: req.AuthorName,
		Rating:     req.Rating,
		Text:       req.Text,
		CreatedAt:  createdAt,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *Service) List(ctx context.Context, userID int64, storeID *int64, limit, offset int) ([]domain.Review, error) {
	if userID <= 0 {
		return nil, ErrInvalidRequest
	}
	return s.reviews.ListByUser(ctx, userID, storeID, limit, offset)
}

// Reply posts a manual reply. The replied transition is one-way; a
// racing auto-reply shows up here as ErrAlreadyReplied.
func (s *Service) Reply(ctx context.Context, userID, reviewID int64, text string) (*domain.Review, error) {
	if userID <= 0 || reviewID <= 0 || strings.TrimSpace(text) == "" {
		return nil, ErrInvalidRequest
	}

	rv, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if rv.UserID != userID {
		return nil, ErrForbidden
	}
	if rv.Replied {
		return nil, ErrAlreadyReplied
	}

	ok, err := s.reviews.MarkReplied(ctx, reviewID, strings.TrimSpace(text))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAlreadyReplied
	}

	return s.reviews.GetByID(ctx, reviewID)
}
