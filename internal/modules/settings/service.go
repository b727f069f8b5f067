package settings

import (
	"context"
	"errors"
	"time"

	"reviewloop/internal/domain"

	"gorm.io/gorm"
)

type SettingsRepository interface {
	Get(ctx context.Context, userID int64, storeID *int64) (*domain.AISettings, error)
	Upsert(ctx context.Context, s *domain.AISettings) error
	Delete(ctx context.Context, userID int64, storeID *int64) error
}

type Service struct {
	repo SettingsRepository
}

func NewService(repo SettingsRepository) *Service {
	return &Service{repo: repo}
}

// Get returns the stored settings, or the defaults when the user has
// not saved any yet. Settings are created lazily: the defaults are not
// persisted until the first update.
func (s *Service) Get(ctx context.Context, userID int64, storeID *int64) (*domain.AISettings, error) {
	if userID <= 0 {
		return nil, ErrInvalidRequest
	}
	cfg, err := s.repo.Get(ctx, userID, storeID)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return domain.DefaultAISettings(userID, storeID), nil
	}
	return cfg, nil
}

// Update replaces the whole settings row for the scope.
func (s *Service) Update(ctx context.Context, userID int64, req UpdateSettingsRequest) (*domain.AISettings, error) {
	if userID <= 0 {
		return nil, ErrInvalidRequest
	}
	if !validHHMM(req.BusinessHoursStart) || !validHHMM(req.BusinessHoursEnd) {
		return nil, ErrValidation
	}
	if req.AutoReplyMinRating < 1 || req.AutoReplyMaxRating > 5 ||
		req.AutoReplyMinRating > req.AutoReplyMaxRating {
		return nil, ErrValidation
	}
	if req.AutoReplyDelayMinutes < 0 {
		return nil, ErrValidation
	}

	cfg := &domain.AISettings{
		UserID:                     userID,
		StoreID:                    req.StoreID,
		CustomPromptEnabled:        req.CustomPromptEnabled,
		PositivePrompt:             req.PositivePrompt,
		NeutralPrompt:              req.NeutralPrompt,
		NegativePrompt:             req.NegativePrompt,
		NoCommentPrompt:            req.NoCommentPrompt,
		AutoReplyEnabled:           req.AutoReplyEnabled,
		AutoReplyDelayMinutes:      req.AutoReplyDelayMinutes,
		AutoReplyBusinessHoursOnly: req.AutoReplyBusinessHoursOnly,
		BusinessHoursStart:         req.BusinessHoursStart,
		BusinessHoursEnd:           req.BusinessHoursEnd,
		AutoReplyMinRating:         req.AutoReplyMinRating,
		AutoReplyMaxRating:         req.AutoReplyMaxRating,
	}
	if err := s.repo.Upsert(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *Service) Delete(ctx context.Context, userID int64, storeID *int64) error {
	if userID <= 0 {
		return ErrInvalidRequest
	}
	if err := s.repo.Delete(ctx, userID, storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// validHHMM accepts zero-padded 24h HH:MM only, matching the string
// comparison the business-hours gate relies on.
func validHHMM(v string) bool {
	if len(v) != 5 {
		return false
	}
	_, err := time.Parse("15:04", v)
	return err == nil
}
