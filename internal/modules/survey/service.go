package survey

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"reviewloop/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// RedirectThreshold is the inclusive average rating at which a
// respondent is routed to the public Google review page instead of the
// improvement form.
const RedirectThreshold = 4.0

const requiredMessage = "this field is required"

type Outcome string

const (
	OutcomeRedirect        Outcome = "redirect"
	OutcomeImprovementForm Outcome = "improvement_form"
	OutcomeThankYou        Outcome = "thank_you"
)

type SubmitResult struct {
	ResponseID    int64
	AverageRating float64
	Outcome       Outcome
	RedirectURL   string
}

// EventSink receives dashboard notifications; delivery is best effort.
type EventSink interface {
	SurveyResponseReceived(userID, surveyID, responseID int64, averageRating float64, outcome string)
}

type Service struct {
	surveys SurveyRepository
	stores  StoreLookup
	events  EventSink
}

func NewService(surveys SurveyRepository, stores StoreLookup, events EventSink) *Service {
	return &Service{surveys: surveys, stores: stores, events: events}
}

// Validate checks every required question in one pass and returns all
// failures keyed by question ID, so the caller can highlight every
// offending field at once. nil means the answer set is valid.
func (s *Service) Validate(sv *domain.Survey, answers domain.AnswerSet) map[string]string {
	var fieldErrs map[string]string
	for _, q := range sv.Questions {
		if !q.Required {
			continue
		}
		key := strconv.FormatInt(q.ID, 10)
		if strings.TrimSpace(answers[key]) == "" {
			if fieldErrs == nil {
				fieldErrs = make(map[string]string)
			}
			fieldErrs[key] = requiredMessage
		}
	}
	return fieldErrs
}

// ComputeAverageRating averages the answered rating questions. Rating
// questions without an answer (or with an unparsable one) do not count
// toward sum or divisor. Zero answered rating questions yield 0.
func (s *Service) ComputeAverageRating(sv *domain.Survey, answers domain.AnswerSet) float64 {
	sum, count := 0, 0
	for _, q := range sv.RatingQuestions() {
		raw, ok := answers[strconv.FormatInt(q.ID, 10)]
		if !ok {
			continue
		}
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		sum += v
		count++
	}
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}

// Classify decides the post-submission path. Exactly RedirectThreshold
// routes to the redirect; a rating below it always gets the improvement
// form, even when no review URL exists.
func (s *Service) Classify(averageRating float64, reviewURL string) Outcome {
	if averageRating < RedirectThreshold {
		return OutcomeImprovementForm
	}
	if reviewURL == "" {
		return OutcomeThankYou
	}
	return OutcomeRedirect
}

// Submit validates and persists one survey response, then classifies the
// outcome. Validation failures come back in the map together with
// ErrValidation. A persistence failure is retryable: nothing is stored
// and the caller may resubmit the same answers.
func (s *Service) Submit(ctx context.Context, surveyID int64, answers domain.AnswerSet) (*SubmitResult, map[string]string, error) {
	sv, err := s.surveys.GetByID(ctx, surveyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	if !sv.IsActive {
		return nil, nil, ErrInactive
	}

	if fieldErrs := s.Validate(sv, answers); fieldErrs != nil {
		return nil, fieldErrs, ErrValidation
	}

	avg := s.ComputeAverageRating(sv, answers)

	resp := &domain.SurveyResponse{
		SurveyID:      sv.ID,
		Answers:       answers,
		AverageRating: avg,
	}
	if err := s.surveys.AppendResponse(ctx, resp); err != nil {
		if isUniqueViolation(err) {
			return nil, nil, ErrConflict
		}
		return nil, nil, err
	}

	reviewURL := ""
	if avg >= RedirectThreshold && sv.StoreID != nil {
		url, err := s.stores.GetGoogleReviewURL(ctx, *sv.StoreID)
		if err == nil {
			reviewURL = url
		}
		// lookup failure degrades to the thank-you screen rather than
		// failing a response that is already stored
	}

	outcome := s.Classify(avg, reviewURL)

	if s.events != nil {
		s.events.SurveyResponseReceived(sv.UserID, sv.ID, resp.ID, avg, string(outcome))
	}

	return &SubmitResult{
		ResponseID:    resp.ID,
		AverageRating: avg,
		Outcome:       outcome,
		RedirectURL:   reviewURL,
	}, nil, nil
}

// SubmitImprovement attaches the follow-up feedback to an existing
// response and resolves the flow to its final thank-you state.
func (s *Service) SubmitImprovement(ctx context.Context, surveyID, responseID int64, improvement string) error {
	if strings.TrimSpace(improvement) == "" {
		return ErrValidation
	}
	resp, err := s.surveys.GetResponse(ctx, responseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if resp.SurveyID != surveyID {
		return ErrNotFound
	}
	return s.surveys.AddImprovement(ctx, responseID, strings.TrimSpace(improvement))
}

// GetPublic returns the survey as shown on the public /s/:id page.
func (s *Service) GetPublic(ctx context.Context, surveyID int64) (*domain.Survey, error) {
	sv, err := s.surveys.GetByID(ctx, surveyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !sv.IsActive {
		return nil, ErrInactive
	}
	return sv, nil
}

func (s *Service) CreateSurvey(ctx context.Context, userID int64, req CreateSurveyRequest) (*domain.Survey, error) {
	if userID <= 0 || strings.TrimSpace(req.Title) == "" || len(req.Questions) == 0 {
		return nil, ErrInvalidRequest
	}
	questions, err := buildQuestions(req.Questions)
	if err != nil {
		return nil, err
	}
	sv := &domain.Survey{
		UserID:      userID,
		StoreID:     req.StoreID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		IsActive:    req.IsActive,
		Questions:   questions,
	}
	if err := s.surveys.Create(ctx, sv); err != nil {
		return nil, err
	}
	return sv, nil
}

// UpdateSurvey replaces title, description, store link and questions.
// Question edits are refused once responses exist: stored answer sets
// are keyed by question ID and would become ambiguous.
func (s *Service) UpdateSurvey(ctx context.Context, userID, surveyID int64, req CreateSurveyRequest) (*domain.Survey, error) {
	sv, err := s.surveys.GetByID(ctx, surveyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if sv.UserID != userID {
		return nil, ErrForbidden
	}

	n, err := s.surveys.CountResponses(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrHasResponses
	}

	questions, err := buildQuestions(req.Questions)
	if err != nil {
		return nil, err
	}
	for i := range questions {
		questions[i].SurveyID = sv.ID
	}
	sv.Title = strings.TrimSpace(req.Title)
	sv.Description = req.Description
	sv.StoreID = req.StoreID
	sv.IsActive = req.IsActive
	sv.Questions = questions

	if err := s.surveys.Update(ctx, sv); err != nil {
		return nil, err
	}
	return sv, nil
}

func (s *Service) ListSurveys(ctx context.Context, userID int64) ([]domain.Survey, error) {
	return s.surveys.ListByUser(ctx, userID)
}

func (s *Service) SetActive(ctx context.Context, userID, surveyID int64, active bool) error {
	sv, err := s.surveys.GetByID(ctx, surveyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if sv.UserID != userID {
		return ErrForbidden
	}
	return s.surveys.SetActive(ctx, surveyID, active)
}

func (s *Service) ListResponses(ctx context.Context, userID, surveyID int64, limit, offset int) ([]domain.SurveyResponse, error) {
	sv, err := s.surveys.GetByID(ctx, surveyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if sv.UserID != userID {
		return nil, ErrForbidden
	}
	return s.surveys.ListResponses(ctx, surveyID, limit, offset)
}

func buildQuestions(inputs []QuestionInput) ([]domain.Question, error) {
	questions := make([]domain.Question, 0, len(inputs))
	for i, in := range inputs {
		qt := domain.QuestionType(in.Type)
		switch qt {
		case domain.QuestionRating, domain.QuestionText, domain.QuestionChoice:
		default:
			return nil, ErrInvalidRequest
		}
		if strings.TrimSpace(in.Text) == "" {
			return nil, ErrInvalidRequest
		}
		if qt == domain.QuestionChoice && len(in.Options) == 0 {
			return nil, ErrInvalidRequest
		}
		scale := in.Scale
		if qt == domain.QuestionRating && scale <= 0 {
			scale = domain.DefaultRatingScale
		}
		questions = append(questions, domain.Question{
			Type:     qt,
			Text:     strings.TrimSpace(in.Text),
			Required: in.Required,
			Options:  in.Options,
			Scale:    scale,
			Position: i,
		})
	}
	return questions, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "23505")
}
