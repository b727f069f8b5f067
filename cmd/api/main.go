package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"reviewloop/internal/config"
	"reviewloop/internal/database"
	"reviewloop/internal/middleware"
	"reviewloop/internal/modules/auth"
	"reviewloop/internal/modules/autoreply"
	"reviewloop/internal/modules/events"
	"reviewloop/internal/modules/redirect"
	"reviewloop/internal/modules/review"
	"reviewloop/internal/modules/settings"
	"reviewloop/internal/modules/store"
	"reviewloop/internal/modules/survey"
	jwtsvc "reviewloop/internal/pkg/jwt"
	"reviewloop/internal/repository"
)

func main() {
	// Missing .env is fine: real deployments pass env directly.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded")
	}

	cfg, err := config.LoadRuntimeConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	surveyRepo := repository.NewSurveyRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	settingsRepo := repository.NewAISettingsRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)
	ownership := middleware.NewOwnershipChecker(storeRepo)
	hub := events.NewHub()
	defer hub.Close()

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	storeService := store.NewService(storeRepo)
	storeHandler := store.NewHandler(storeService)

	surveyService := survey.NewService(surveyRepo, storeRepo, hub)
	surveyHandler := survey.NewHandler(surveyService, redirect.NewDispatcher(redirect.DefaultCompletionDelay))

	reviewService := review.NewService(reviewRepo, storeRepo)
	reviewHandler := review.NewHandler(reviewService)

	settingsService := settings.NewService(settingsRepo)
	settingsHandler := settings.NewHandler(settingsService)

	generator := autoreply.NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	scheduler := autoreply.NewScheduler(settingsRepo, reviewRepo, storeRepo, generator, hub, cfg.ReplyDelay)
	scheduler.SetGenerateTimeout(cfg.ReplyTimeout)
	autoReplyHandler := autoreply.NewHandler(scheduler)

	eventsHandler := events.NewHandler(hub, j)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	// Respondent-facing endpoints live at the root: survey links are
	// opened straight from QR codes and must stay short.
	public := r.Group("/")
	surveyHandler.RegisterRoutes(public, nil)
	eventsHandler.RegisterRoutes(public)

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			storeHandler.RegisterRoutes(protected, ownership.CheckStoreOwnership())
			surveyHandler.RegisterRoutes(nil, protected)
			reviewHandler.RegisterRoutes(protected)
			settingsHandler.RegisterRoutes(protected)
			autoReplyHandler.RegisterRoutes(protected)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
