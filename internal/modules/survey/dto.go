package survey

type QuestionInput struct {
	Type     string   `json:"type" validate:"required,oneof=rating text choice"`
	Text     string   `json:"text" validate:"required"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
	Scale    int      `json:"scale,omitempty" validate:"omitempty,gte=2,lte=10"`
}

type CreateSurveyRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description,omitempty"`
	StoreID     *int64          `json:"store_id,omitempty"`
	IsActive    bool            `json:"is_active"`
	Questions   []QuestionInput `json:"questions" validate:"required,min=1,dive"`
}

type SubmitRequest struct {
	Answers       map[string]string `json:"answers" validate:"required"`
	ViewportWidth int               `json:"viewport_width,omitempty"`
}

type ImprovementRequest struct {
	ResponseID  int64  `json:"response_id" validate:"required,gt=0"`
	Improvement string `json:"improvement" validate:"required"`
}
