package store

import (
	"context"
	"errors"
	"strings"

	"reviewloop/internal/domain"
	"reviewloop/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	stores *repository.StoreRepository
}

func NewService(stores *repository.StoreRepository) *Service {
	return &Service{stores: stores}
}

func (s *Service) Create(ctx context.Context, userID int64, req UpsertStoreRequest) (*domain.Store, error) {
	if userID <= 0 || strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidRequest
	}
	st := &domain.Store{
		UserID:          userID,
		Name:            strings.TrimSpace(req.Name),
		BranchName:      strings.TrimSpace(req.BranchName),
		GooglePlaceID:   strings.TrimSpace(req.GooglePlaceID),
		GoogleReviewURL: req.GoogleReviewURL,
	}
	if err := s.stores.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Service) Update(ctx context.Context, userID, storeID int64, req UpsertStoreRequest) (*domain.Store, error) {
	st, err := s.getOwned(ctx, userID, storeID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidRequest
	}
	st.Name = strings.TrimSpace(req.Name)
	st.BranchName = strings.TrimSpace(req.BranchName)
	st.GooglePlaceID = strings.TrimSpace(req.GooglePlaceID)
	st.GoogleReviewURL = req.GoogleReviewURL
	if err := s.stores.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Service) Delete(ctx context.Context, userID, storeID int64) error {
	if _, err := s.getOwned(ctx, userID, storeID); err != nil {
		return err
	}
	return s.stores.Delete(ctx, storeID)
}

func (s *Service) List(ctx context.Context, userID int64) ([]domain.Store, error) {
	if userID <= 0 {
		return nil, ErrInvalidRequest
	}
	return s.stores.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, storeID int64) (*domain.Store, error) {
	return s.getOwned(ctx, userID, storeID)
}

func (s *Service) getOwned(ctx context.Context, userID, storeID int64) (*domain.Store, error) {
	if userID <= 0 || storeID <= 0 {
		return nil, ErrInvalidRequest
	}
	st, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if st.UserID != userID {
		return nil, ErrForbidden
	}
	return st, nil
}
