package survey

import (
	"net/http"
	"strconv"

	"reviewloop/internal/modules/redirect"
	"reviewloop/internal/pkg/response"
	"reviewloop/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc        *Service
	dispatcher *redirect.Dispatcher
}

func NewHandler(svc *Service, dispatcher *redirect.Dispatcher) *Handler {
	return &Handler{svc: svc, dispatcher: dispatcher}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	if public != nil {
		public.GET("/s/:id", h.GetPublic)
		public.POST("/s/:id/responses", h.Submit)
		public.POST("/s/:id/improvement", h.SubmitImprovement)
	}

	if protected != nil {
		protected.POST("/surveys", h.Create)
		protected.GET("/surveys", h.List)
		protected.PUT("/surveys/:id", h.Update)
		protected.PATCH("/surveys/:id/active", h.SetActive)
		protected.GET("/surveys/:id/responses", h.ListResponses)
	}
}

// GetPublic serves the respondent-facing survey page data.
func (h *Handler) GetPublic(c *gin.Context) {
	surveyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || surveyID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid survey ID")
		return
	}

	sv, err := h.svc.GetPublic(c.Request.Context(), surveyID)
	if err != nil {
		switch err {
		case ErrNotFound, ErrInactive:
			response.Error(c, http.StatusNotFound, "UNAVAILABLE", "This survey is not available")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusOK, sv)
}

// Submit stores a response and returns the post-submission outcome. On
// the redirect outcome the payload carries a navigation plan built for
// the respondent's device, plus the retry URL for the manual "open now"
// button.
func (h *Handler) Submit(c *gin.Context) {
	surveyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || surveyID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid survey ID")
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	result, fieldErrs, err := h.svc.Submit(c.Request.Context(), surveyID, req.Answers)
	if err != nil {
		switch err {
		case ErrValidation:
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Required answers are missing", fieldErrs)
		case ErrNotFound, ErrInactive:
			response.Error(c, http.StatusNotFound, "UNAVAILABLE", "This survey is not available")
		case ErrConflict:
			response.Error(c, http.StatusConflict, "CONFLICT", "Response already submitted")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Could not save your response, please try again")
		}
		return
	}

	payload := gin.H{
		"response_id":    result.ResponseID,
		"average_rating": result.AverageRating,
		"outcome":        result.Outcome,
	}
	if result.Outcome == OutcomeRedirect {
		device := redirect.Classify(c.GetHeader("User-Agent"), req.ViewportWidth)
		plan := redirect.NewPlan()
		payload["redirect"] = h.dispatcher.Dispatch(plan, result.RedirectURL, device)
		payload["redirect_steps"] = plan.Steps
	}

	response.Success(c, http.StatusCreated, payload)
}

func (h *Handler) SubmitImprovement(c *gin.Context) {
	surveyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || surveyID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid survey ID")
		return
	}

	var req ImprovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid input", errs)
		return
	}

	if err := h.svc.SubmitImprovement(c.Request.Context(), surveyID, req.ResponseID, req.Improvement); err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "Feedback text is required")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Response not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Could not save your feedback, please try again")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"response_id": req.ResponseID})
}

func (h *Handler) Create(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req CreateSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid input", errs)
		return
	}

	sv, err := h.svc.CreateSurvey(c.Request.Context(), userID, req)
	if err != nil {
		if err == ErrInvalidRequest {
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid input")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}

	response.Success(c, http.StatusCreated, sv)
}

func (h *Handler) List(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	items, err := h.svc.ListSurveys(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}

	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Update(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	surveyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || surveyID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid survey ID")
		return
	}

	var req CreateSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid input", errs)
		return
	}

	sv, err := h.svc.UpdateSurvey(c.Request.Context(), userID, surveyID, req)
	if err != nil {
		switch err {
		case ErrInvalidRequest:
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid input")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Survey not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this survey")
		case ErrHasResponses:
			response.Error(c, http.StatusConflict, "HAS_RESPONSES", "Survey already has responses and can no longer be edited")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusOK, sv)
}

func (h *Handler) SetActive(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	surveyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || surveyID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid survey ID")
		return
	}

	var req struct {
		IsActive bool `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if err := h.svc.SetActive(c.Request.Context(), userID, surveyID, req.IsActive); err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Survey not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this survey")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": surveyID, "is_active": req.IsActive})
}

func (h *Handler) ListResponses(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	surveyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || surveyID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid survey ID")
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	items, err := h.svc.ListResponses(c.Request.Context(), userID, surveyID, limit, offset)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Survey not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this survey")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusOK, items)
}
