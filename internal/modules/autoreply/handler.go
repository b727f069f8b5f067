package autoreply

import (
	"net/http"

	"reviewloop/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	scheduler *Scheduler
}

func NewHandler(scheduler *Scheduler) *Handler {
	return &Handler{scheduler: scheduler}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	if protected != nil {
		protected.POST("/auto-reply/run", h.Run)
	}
}

// Run triggers one auto-reply batch for the authenticated user.
func (h *Handler) Run(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	result, err := h.scheduler.Run(c.Request.Context(), userID, req.StoreID, req.Force)
	if err != nil {
		switch err {
		case ErrInvalidRequest:
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid input")
		case ErrSettingsMissing:
			response.Error(c, http.StatusPreconditionFailed, "SETTINGS_MISSING", "AI settings must be configured before running auto-reply")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusOK, result)
}
