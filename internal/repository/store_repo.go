package repository

import (
	"context"

	"reviewloop/internal/domain"

	"gorm.io/gorm"
)

type StoreRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

func (r *StoreRepository) Create(ctx context.Context, st *domain.Store) error {
	return r.db.WithContext(ctx).Create(st).Error
}

func (r *StoreRepository) Update(ctx context.Context, st *domain.Store) error {
	return r.db.WithContext(ctx).Save(st).Error
}

func (r *StoreRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Store{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *StoreRepository) GetByID(ctx context.Context, id int64) (*domain.Store, error) {
	var st domain.Store
	tx := r.db.WithContext(ctx).First(&st, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &st, nil
}

func (r *StoreRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Store, error) {
	var out []domain.Store
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&out)
	return out, tx.Error
}

// GetGoogleReviewURL returns "" when the store is missing or has no
// public review page configured.
func (r *StoreRepository) GetGoogleReviewURL(ctx context.Context, storeID int64) (string, error) {
	st, err := r.GetByID(ctx, storeID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil
		}
		return "", err
	}
	if st.GoogleReviewURL == nil {
		return "", nil
	}
	return *st.GoogleReviewURL, nil
}

func (r *StoreRepository) GetDisplayName(ctx context.Context, storeID int64) (string, error) {
	st, err := r.GetByID(ctx, storeID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil
		}
		return "", err
	}
	return st.DisplayName(), nil
}
