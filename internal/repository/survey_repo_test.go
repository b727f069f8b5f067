package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewloop/internal/database"
	"reviewloop/internal/domain"
)

func newSurveyRepo(t *testing.T) *SurveyRepository {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Survey{},
		&domain.Question{},
		&domain.SurveyResponse{},
	))
	return NewSurveyRepository(db)
}

func TestSurveyRepository_AddImprovement(t *testing.T) {
	repo := newSurveyRepo(t)
	ctx := context.Background()

	survey := &domain.Survey{
		UserID:   1,
		Title:    "接客アンケート",
		IsActive: true,
		Questions: []domain.Question{
			{Type: domain.QuestionRating, Text: "接客はいかがでしたか", Scale: 5, Position: 1},
		},
	}
	require.NoError(t, repo.Create(ctx, survey))

	resp := &domain.SurveyResponse{
		SurveyID:      survey.ID,
		Answers:       domain.AnswerSet{"1": "2"},
		AverageRating: 2,
	}
	require.NoError(t, repo.AppendResponse(ctx, resp))

	require.NoError(t, repo.AddImprovement(ctx, resp.ID, "待ち時間が長かった"))

	stored, err := repo.GetResponse(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "待ち時間が長かった", stored.Answers[domain.ImprovementKey])
	assert.Equal(t, "2", stored.Answers["1"], "original answers survive the merge")
	assert.InDelta(t, 2, stored.AverageRating, 0.001)
}

func TestSurveyRepository_AddImprovement_MissingResponse(t *testing.T) {
	repo := newSurveyRepo(t)

	err := repo.AddImprovement(context.Background(), 9999, "なし")
	assert.Error(t, err)
}
