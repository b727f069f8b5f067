package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"reviewloop/internal/config"
	"reviewloop/internal/database"
	"reviewloop/internal/modules/autoreply"
	"reviewloop/internal/repository"
)

// Runs one auto-reply batch from the command line, for cron jobs and
// one-off operator runs.
func main() {
	userID := flag.Int64("user", 0, "user ID to run the batch for (required)")
	storeID := flag.Int64("store", 0, "restrict the batch to one store (optional)")
	force := flag.Bool("force", false, "ignore the enabled flag, delay and business hours")
	flag.Parse()

	if *userID <= 0 {
		log.Fatal("-user is required")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded")
	}

	cfg, err := config.LoadRuntimeConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	settingsRepo := repository.NewAISettingsRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	generator := autoreply.NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)

	scheduler := autoreply.NewScheduler(settingsRepo, reviewRepo, storeRepo, generator, nil, cfg.ReplyDelay)
	scheduler.SetGenerateTimeout(cfg.ReplyTimeout)

	var store *int64
	if *storeID > 0 {
		store = storeID
	}

	result, err := scheduler.Run(context.Background(), *userID, store, *force)
	if err != nil {
		log.Fatalf("auto-reply run failed: %v", err)
	}

	if result.SkipReason != "" {
		log.Printf("auto-reply skipped: %s", result.SkipReason)
		return
	}

	for _, r := range result.Results {
		if r.Success {
			log.Printf("review=%d replied", r.ReviewID)
		} else {
			log.Printf("review=%d failed: %s", r.ReviewID, r.Error)
		}
	}
	log.Printf("auto-reply completed: processed=%d total=%d", result.Processed, result.Total)
}
