package domain

import "time"

// AnswerSet maps a question ID (decimal string) to the submitted value:
// the rating digit for rating questions, the chosen option for choice
// questions, free text otherwise. The synthetic "improvement" key holds
// the follow-up feedback collected when the average rating is low.
type AnswerSet map[string]string

const ImprovementKey = "improvement"

type SurveyResponse struct {
	ID            int64     `json:"id"`
	SurveyID      int64     `json:"survey_id"`
	Answers       AnswerSet `json:"answers" gorm:"serializer:json"`
	AverageRating float64   `json:"average_rating"`
	SubmittedAt   time.Time `json:"submitted_at"`
}
