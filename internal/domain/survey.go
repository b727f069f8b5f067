package domain

import "time"

type QuestionType string

const (
	QuestionRating QuestionType = "rating"
	QuestionText   QuestionType = "text"
	QuestionChoice QuestionType = "choice"
)

const DefaultRatingScale = 5

type Question struct {
	ID       int64        `json:"id"`
	SurveyID int64        `json:"survey_id"`
	Type     QuestionType `json:"type"`
	Text     string       `json:"text"`
	Required bool         `json:"required"`
	Options  []string     `json:"options,omitempty" gorm:"serializer:json"`
	Scale    int          `json:"scale,omitempty"`
	Position int          `json:"position"`
}

type Survey struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	StoreID     *int64     `json:"store_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	IsActive    bool       `json:"is_active"`
	Questions   []Question `json:"questions" gorm:"foreignKey:SurveyID"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// RatingQuestions returns the survey's rating-type questions in order.
func (s *Survey) RatingQuestions() []Question {
	out := make([]Question, 0, len(s.Questions))
	for _, q := range s.Questions {
		if q.Type == QuestionRating {
			out = append(out, q)
		}
	}
	return out
}
