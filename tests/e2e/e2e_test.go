package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"reviewloop/internal/database"
	"reviewloop/internal/domain"
	"reviewloop/internal/middleware"
	"reviewloop/internal/modules/auth"
	"reviewloop/internal/modules/autoreply"
	"reviewloop/internal/modules/redirect"
	"reviewloop/internal/modules/review"
	"reviewloop/internal/modules/settings"
	"reviewloop/internal/modules/store"
	"reviewloop/internal/modules/survey"
	jwtsvc "reviewloop/internal/pkg/jwt"
	"reviewloop/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type E2ETestSuite struct {
	router     *gin.Engine
	db         *gorm.DB
	jwtService *jwtsvc.Service
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// cannedGenerator stands in for the OpenAI client in tests.
type cannedGenerator struct{}

func (cannedGenerator) Generate(ctx context.Context, prompt, reviewText string, rating int) (string, error) {
	return "ご来店ありがとうございます。またのお越しをお待ちしております。", nil
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")

	models := []interface{}{
		&domain.User{},
		&domain.Store{},
		&domain.Survey{},
		&domain.Question{},
		&domain.SurveyResponse{},
		&domain.Review{},
		&domain.AISettings{},
	}
	for _, model := range models {
		err := db.AutoMigrate(model)
		require.NoError(t, err, fmt.Sprintf("Failed to migrate %T", model))
	}

	userRepo := repository.NewUserRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	surveyRepo := repository.NewSurveyRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	settingsRepo := repository.NewAISettingsRepository(db)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	authHandler := auth.NewHandler(auth.NewService(userRepo, jwtService))
	storeHandler := store.NewHandler(store.NewService(storeRepo))
	surveyHandler := survey.NewHandler(
		survey.NewService(surveyRepo, storeRepo, nil),
		redirect.NewDispatcher(redirect.DefaultCompletionDelay),
	)
	reviewHandler := review.NewHandler(review.NewService(reviewRepo, storeRepo))
	settingsHandler := settings.NewHandler(settings.NewService(settingsRepo))

	scheduler := autoreply.NewScheduler(settingsRepo, reviewRepo, storeRepo, cannedGenerator{}, nil, 0)
	autoReplyHandler := autoreply.NewHandler(scheduler)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	public := r.Group("/")
	surveyHandler.RegisterRoutes(public, nil)

	v1 := r.Group("/api/v1")
	authHandler.RegisterPublicRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.Auth(jwtService))
	{
		authHandler.RegisterProtectedRoutes(protected)
		storeHandler.RegisterRoutes(protected, middleware.NewOwnershipChecker(storeRepo).CheckStoreOwnership())
		surveyHandler.RegisterRoutes(nil, protected)
		reviewHandler.RegisterRoutes(protected)
		settingsHandler.RegisterRoutes(protected)
		autoReplyHandler.RegisterRoutes(protected)
	}

	return &E2ETestSuite{router: r, db: db, jwtService: jwtService}
}

func (s *E2ETestSuite) makeRequest(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	var resp TestResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err, "Failed to parse response. Status: %d, Body: %s", w.Code, w.Body.String())
	return &resp
}

func (s *E2ETestSuite) registerOwner(t *testing.T, email string) string {
	w := s.makeRequest(http.MethodPost, "/api/v1/auth/register", map[string]interface{}{
		"email":    email,
		"password": "secret-pass",
		"name":     "Owner",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := parseResponse(t, w)
	token, _ := resp.Data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func (s *E2ETestSuite) createStore(t *testing.T, token string) int64 {
	w := s.makeRequest(http.MethodPost, "/api/v1/stores", map[string]interface{}{
		"name":              "カフェ・ルポ",
		"branch_name":       "渋谷店",
		"google_review_url": "https://search.google.com/local/writereview?placeid=test",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := parseResponse(t, w)
	return int64(resp.Data["id"].(float64))
}

func (s *E2ETestSuite) createActiveSurvey(t *testing.T, token string, storeID int64) (int64, []int64) {
	w := s.makeRequest(http.MethodPost, "/api/v1/surveys", map[string]interface{}{
		"title":     "ご来店アンケート",
		"store_id":  storeID,
		"is_active": true,
		"questions": []map[string]interface{}{
			{"type": "rating", "text": "接客はいかがでしたか", "required": true},
			{"type": "rating", "text": "商品はいかがでしたか", "required": true},
			{"type": "text", "text": "ご意見をお聞かせください"},
		},
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := parseResponse(t, w)
	surveyID := int64(resp.Data["id"].(float64))

	questions := resp.Data["questions"].([]interface{})
	ids := make([]int64, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, int64(q.(map[string]interface{})["id"].(float64)))
	}
	require.Len(t, ids, 3)
	return surveyID, ids
}

func TestFlow_SurveySubmission(t *testing.T) {
	suite := setupTestSuite(t)
	token := suite.registerOwner(t, "owner@example.com")
	storeID := suite.createStore(t, token)
	surveyID, qIDs := suite.createActiveSurvey(t, token, storeID)

	surveyPath := fmt.Sprintf("/s/%d", surveyID)

	t.Run("public survey page", func(t *testing.T) {
		w := suite.makeRequest(http.MethodGet, surveyPath, nil, "")
		assert.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		assert.Equal(t, "ご来店アンケート", resp.Data["title"])
	})

	t.Run("missing required answers are all reported", func(t *testing.T) {
		w := suite.makeRequest(http.MethodPost, surveyPath+"/responses", map[string]interface{}{
			"answers": map[string]string{},
		}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		resp := parseResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "VALIDATION_FAILED", resp.Error.Code)
		details := resp.Error.Details.(map[string]interface{})
		assert.Len(t, details, 2)
	})

	t.Run("high rating redirects with a navigation plan", func(t *testing.T) {
		body := map[string]interface{}{
			"answers": map[string]string{
				fmt.Sprintf("%d", qIDs[0]): "5",
				fmt.Sprintf("%d", qIDs[1]): "4",
			},
			"viewport_width": 390,
		}
		w := suite.makeRequest(http.MethodPost, surveyPath+"/responses", body, "")
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		assert.Equal(t, "redirect", resp.Data["outcome"])
		assert.InDelta(t, 4.5, resp.Data["average_rating"].(float64), 1e-9)

		rd := resp.Data["redirect"].(map[string]interface{})
		assert.Equal(t, "succeeded", rd["state"])
		assert.Equal(t, "mobile", rd["device"])
		assert.Equal(t, "https://search.google.com/local/writereview?placeid=test", rd["retry_url"])
		// the delay is data for the client, the handler never sleeps on it
		assert.InDelta(t, 1000, rd["completion_delay_ms"].(float64), 1e-9)

		steps := resp.Data["redirect_steps"].([]interface{})
		assert.Equal(t, "same_tab", steps[0])
	})

	t.Run("low rating routes to the improvement form", func(t *testing.T) {
		body := map[string]interface{}{
			"answers": map[string]string{
				fmt.Sprintf("%d", qIDs[0]): "2",
				fmt.Sprintf("%d", qIDs[1]): "3",
			},
		}
		w := suite.makeRequest(http.MethodPost, surveyPath+"/responses", body, "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		assert.Equal(t, "improvement_form", resp.Data["outcome"])
		_, hasRedirect := resp.Data["redirect"]
		assert.False(t, hasRedirect)

		responseID := int64(resp.Data["response_id"].(float64))

		w = suite.makeRequest(http.MethodPost, surveyPath+"/improvement", map[string]interface{}{
			"response_id": responseID,
			"improvement": "待ち時間を短くしてほしいです",
		}, "")
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var stored domain.SurveyResponse
		require.NoError(t, suite.db.First(&stored, responseID).Error)
		assert.Equal(t, "待ち時間を短くしてほしいです", stored.Answers[domain.ImprovementKey])
	})

	t.Run("responses are listed for the owner", func(t *testing.T) {
		w := suite.makeRequest(http.MethodGet, fmt.Sprintf("/api/v1/surveys/%d/responses", surveyID), nil, token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("question edits are refused once responses exist", func(t *testing.T) {
		w := suite.makeRequest(http.MethodPut, fmt.Sprintf("/api/v1/surveys/%d", surveyID), map[string]interface{}{
			"title":     "改訂版",
			"is_active": true,
			"questions": []map[string]interface{}{
				{"type": "rating", "text": "総合評価", "required": true},
			},
		}, token)
		assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	t.Run("deactivated survey disappears from the public page", func(t *testing.T) {
		w := suite.makeRequest(http.MethodPatch, fmt.Sprintf("/api/v1/surveys/%d/active", surveyID), map[string]interface{}{
			"is_active": false,
		}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = suite.makeRequest(http.MethodGet, surveyPath, nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestFlow_ReviewsAndAutoReply(t *testing.T) {
	suite := setupTestSuite(t)
	token := suite.registerOwner(t, "owner@example.com")
	storeID := suite.createStore(t, token)

	importReview := func(t *testing.T, googleID string, rating int, text string, createdAt time.Time) int64 {
		w := suite.makeRequest(http.MethodPost, "/api/v1/reviews", map[string]interface{}{
			"store_id":   storeID,
			"google_id":  googleID,
			"rating":     rating,
			"text":       text,
			"created_at": createdAt.Format(time.RFC3339),
		}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		resp := parseResponse(t, w)
		return int64(resp.Data["id"].(float64))
	}

	old := time.Now().Add(-2 * time.Hour)
	first := importReview(t, "g-1", 5, "最高でした", old)
	importReview(t, "g-2", 3, "普通でした", old)
	importReview(t, "g-3", 1, "残念でした", old)

	t.Run("manual reply is one-way", func(t *testing.T) {
		w := suite.makeRequest(http.MethodPost, fmt.Sprintf("/api/v1/reviews/%d/reply", first), map[string]interface{}{
			"text": "ありがとうございます!",
		}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = suite.makeRequest(http.MethodPost, fmt.Sprintf("/api/v1/reviews/%d/reply", first), map[string]interface{}{
			"text": "二回目の返信",
		}, token)
		assert.Equal(t, http.StatusConflict, w.Code)
		resp := parseResponse(t, w)
		assert.Equal(t, "ALREADY_REPLIED", resp.Error.Code)
	})

	t.Run("auto-reply without settings is a precondition failure", func(t *testing.T) {
		w := suite.makeRequest(http.MethodPost, "/api/v1/auto-reply/run", map[string]interface{}{}, token)
		assert.Equal(t, http.StatusPreconditionFailed, w.Code, w.Body.String())
	})

	t.Run("auto-reply batch replies to the remaining reviews", func(t *testing.T) {
		w := suite.makeRequest(http.MethodPut, "/api/v1/ai-settings", map[string]interface{}{
			"auto_reply_enabled":       true,
			"auto_reply_delay_minutes": 60,
			"business_hours_start":     "00:00",
			"business_hours_end":       "23:59",
			"auto_reply_min_rating":    1,
			"auto_reply_max_rating":    5,
		}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = suite.makeRequest(http.MethodPost, "/api/v1/auto-reply/run", map[string]interface{}{}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		assert.Equal(t, float64(2), resp.Data["total"])
		assert.Equal(t, float64(2), resp.Data["processed"])

		var remaining int64
		require.NoError(t, suite.db.Model(&domain.Review{}).Where("replied = ?", false).Count(&remaining).Error)
		assert.Equal(t, int64(0), remaining)
	})

	t.Run("second run has nothing to do", func(t *testing.T) {
		w := suite.makeRequest(http.MethodPost, "/api/v1/auto-reply/run", map[string]interface{}{}, token)
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		assert.Equal(t, float64(0), resp.Data["total"])
	})
}

func TestFlow_AuthAndOwnership(t *testing.T) {
	suite := setupTestSuite(t)
	token := suite.registerOwner(t, "owner@example.com")
	storeID := suite.createStore(t, token)

	t.Run("login and me", func(t *testing.T) {
		w := suite.makeRequest(http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
			"email":    "owner@example.com",
			"password": "secret-pass",
		}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := parseResponse(t, w)
		loginToken := resp.Data["token"].(string)

		w = suite.makeRequest(http.MethodGet, "/api/v1/users/me", nil, loginToken)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("protected routes reject missing tokens", func(t *testing.T) {
		w := suite.makeRequest(http.MethodGet, "/api/v1/stores", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("another user cannot touch the store", func(t *testing.T) {
		otherToken := suite.registerOwner(t, "intruder@example.com")

		w := suite.makeRequest(http.MethodGet, fmt.Sprintf("/api/v1/stores/%d", storeID), nil, otherToken)
		assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
		assert.Equal(t, "FORBIDDEN", parseResponse(t, w).Error.Code)

		w = suite.makeRequest(http.MethodPut, fmt.Sprintf("/api/v1/stores/%d", storeID), map[string]interface{}{
			"name": "乗っ取り店",
		}, otherToken)
		assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

		w = suite.makeRequest(http.MethodPost, "/api/v1/reviews", map[string]interface{}{
			"store_id": storeID,
			"rating":   5,
		}, otherToken)
		assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})
}
