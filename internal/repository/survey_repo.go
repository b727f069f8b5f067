package repository

import (
	"context"
	"time"

	"reviewloop/internal/domain"

	"gorm.io/gorm"
)

type SurveyRepository struct {
	db *gorm.DB
}

func NewSurveyRepository(db *gorm.DB) *SurveyRepository {
	return &SurveyRepository{db: db}
}

func (r *SurveyRepository) Create(ctx context.Context, s *domain.Survey) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SurveyRepository) Update(ctx context.Context, s *domain.Survey) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("survey_id = ?", s.ID).Delete(&domain.Question{}).Error; err != nil {
		return err
	}
	return tx.Save(s).Error
}

func (r *SurveyRepository) GetByID(ctx context.Context, id int64) (*domain.Survey, error) {
	var s domain.Survey
	tx := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&s, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &s, nil
}

func (r *SurveyRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Survey, error) {
	var out []domain.Survey
	tx := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&out)
	return out, tx.Error
}

func (r *SurveyRepository) SetActive(ctx context.Context, id int64, active bool) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Survey{}).
		Where("id = ?", id).
		Update("is_active", active)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *SurveyRepository) CountResponses(ctx context.Context, surveyID int64) (int64, error) {
	var n int64
	tx := r.db.WithContext(ctx).
		Model(&domain.SurveyResponse{}).
		Where("survey_id = ?", surveyID).
		Count(&n)
	return n, tx.Error
}

func (r *SurveyRepository) AppendResponse(ctx context.Context, resp *domain.SurveyResponse) error {
	if resp.SubmittedAt.IsZero() {
		resp.SubmittedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(resp).Error
}

func (r *SurveyRepository) GetResponse(ctx context.Context, id int64) (*domain.SurveyResponse, error) {
	var resp domain.SurveyResponse
	tx := r.db.WithContext(ctx).First(&resp, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &resp, nil
}

// AddImprovement merges the follow-up feedback into an already stored
// answer set. The record is otherwise never mutated after creation.
func (r *SurveyRepository) AddImprovement(ctx context.Context, responseID int64, text string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var resp domain.SurveyResponse
		if err := tx.First(&resp, responseID).Error; err != nil {
			return err
		}
		if resp.Answers == nil {
			resp.Answers = domain.AnswerSet{}
		}
		resp.Answers[domain.ImprovementKey] = text
		// Save instead of a single-column Update: gorm only runs the
		// answers json serializer when writing through the struct.
		return tx.Select("answers").Save(&resp).Error
	})
}

func (r *SurveyRepository) ListResponses(ctx context.Context, surveyID int64, limit, offset int) ([]domain.SurveyResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var out []domain.SurveyResponse
	tx := r.db.WithContext(ctx).
		Where("survey_id = ?", surveyID).
		Order("submitted_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&out)
	return out, tx.Error
}
