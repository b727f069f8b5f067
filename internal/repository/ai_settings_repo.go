package repository

import (
	"context"
	"errors"

	"reviewloop/internal/domain"

	"gorm.io/gorm"
)

type AISettingsRepository struct {
	db *gorm.DB
}

func NewAISettingsRepository(db *gorm.DB) *AISettingsRepository {
	return &AISettingsRepository{db: db}
}

// Get resolves settings for a user, preferring a store-scoped row over
// the user-level one. Returns (nil, nil) when nothing is saved.
func (r *AISettingsRepository) Get(ctx context.Context, userID int64, storeID *int64) (*domain.AISettings, error) {
	if storeID != nil {
		var scoped domain.AISettings
		tx := r.db.WithContext(ctx).
			Where("user_id = ? AND store_id = ?", userID, *storeID).
			First(&scoped)
		if tx.Error == nil {
			return &scoped, nil
		}
		if !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, tx.Error
		}
	}

	var s domain.AISettings
	tx := r.db.WithContext(ctx).
		Where("user_id = ? AND store_id IS NULL", userID).
		First(&s)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return &s, nil
}

// Upsert replaces the whole settings row for the scope.
func (r *AISettingsRepository) Upsert(ctx context.Context, s *domain.AISettings) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.AISettings
		q := tx.Where("user_id = ?", s.UserID)
		if s.StoreID != nil {
			q = q.Where("store_id = ?", *s.StoreID)
		} else {
			q = q.Where("store_id IS NULL")
		}
		err := q.First(&existing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return tx.Create(s).Error
			}
			return err
		}
		s.ID = existing.ID
		s.CreatedAt = existing.CreatedAt
		return tx.Save(s).Error
	})
}

func (r *AISettingsRepository) Delete(ctx context.Context, userID int64, storeID *int64) error {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if storeID != nil {
		q = q.Where("store_id = ?", *storeID)
	} else {
		q = q.Where("store_id IS NULL")
	}
	tx := q.Delete(&domain.AISettings{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
