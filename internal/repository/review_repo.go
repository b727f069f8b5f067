package repository

import (
	"context"
	"time"

	"reviewloop/internal/domain"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	var rv domain.Review
	tx := r.db.WithContext(ctx).First(&rv, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &rv, nil
}

func (r *ReviewRepository) ListByUser(ctx context.Context, userID int64, storeID *int64, limit, offset int) ([]domain.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if storeID != nil {
		q = q.Where("store_id = ?", *storeID)
	}
	var out []domain.Review
	tx := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&out)
	return out, tx.Error
}

func (r *ReviewRepository) ListUnreplied(ctx context.Context, userID int64, storeID *int64) ([]domain.Review, error) {
	q := r.db.WithContext(ctx).Where("user_id = ? AND replied = ?", userID, false)
	if storeID != nil {
		q = q.Where("store_id = ?", *storeID)
	}
	var out []domain.Review
	tx := q.Order("created_at ASC").Find(&out)
	return out, tx.Error
}

// MarkReplied flips a review to replied and fixes the reply text. The
// transition is one-way: a review already replied is left untouched and
// false is returned, which also covers double-reply races.
func (r *ReviewRepository) MarkReplied(ctx context.Context, reviewID int64, replyText string) (bool, error) {
	now := time.Now()
	tx := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Where("id = ? AND replied = ?", reviewID, false).
		Updates(map[string]interface{}{
			"replied":    true,
			"reply_text": replyText,
			"replied_at": now,
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
