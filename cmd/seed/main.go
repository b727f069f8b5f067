package main

import (
	"log"

	"reviewloop/internal/database"
	"reviewloop/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	db, err := database.Connect("reviewloop.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	// AutoMigrate to ensure schema is up to date
	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Store{},
		&domain.Survey{},
		&domain.Question{},
		&domain.SurveyResponse{},
		&domain.Review{},
		&domain.AISettings{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM ai_settings")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM survey_responses")
	db.Exec("DELETE FROM questions")
	db.Exec("DELETE FROM surveys")
	db.Exec("DELETE FROM stores")
	db.Exec("DELETE FROM users")

	log.Println("Creating demo user...")
	hash, _ := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	user := domain.User{
		Email:        "demo@reviewloop.jp",
		PasswordHash: string(hash),
		Name:         "デモユーザー",
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatal("create user failed:", err)
	}

	log.Println("Creating demo store...")
	reviewURL := "https://search.google.com/local/writereview?placeid=demo-place-id"
	st := domain.Store{
		UserID:          user.ID,
		Name:            "カフェ・レビューループ",
		BranchName:      "渋谷店",
		GoogleReviewURL: &reviewURL,
	}
	if err := db.Create(&st).Error; err != nil {
		log.Fatal("create store failed:", err)
	}

	log.Println("Creating demo survey...")
	sv := domain.Survey{
		UserID:   user.ID,
		StoreID:  &st.ID,
		Title:    "ご来店アンケート",
		IsActive: true,
		Questions: []domain.Question{
			{Text: "接客の満足度を教えてください", Type: domain.QuestionRating, Scale: domain.DefaultRatingScale, Required: true, Position: 1},
			{Text: "商品の満足度を教えてください", Type: domain.QuestionRating, Scale: domain.DefaultRatingScale, Required: true, Position: 2},
			{Text: "ご意見・ご感想をお聞かせください", Type: domain.QuestionText, Required: false, Position: 3},
		},
	}
	if err := db.Create(&sv).Error; err != nil {
		log.Fatal("create survey failed:", err)
	}

	log.Println("Creating demo reviews...")
	reviews := []domain.Review{
		{UserID: user.ID, StoreID: st.ID, GoogleID: "seed-review-1", AuthorName: "田中", Rating: 5, Text: "コーヒーがとても美味しかったです。"},
		{UserID: user.ID, StoreID: st.ID, GoogleID: "seed-review-2", AuthorName: "佐藤", Rating: 3, Text: "普通でした。"},
		{UserID: user.ID, StoreID: st.ID, GoogleID: "seed-review-3", AuthorName: "鈴木", Rating: 2, Text: "待ち時間が長かったです。"},
		{UserID: user.ID, StoreID: st.ID, GoogleID: "seed-review-4", AuthorName: "高橋", Rating: 4, Text: ""},
	}
	for i := range reviews {
		if err := db.Create(&reviews[i]).Error; err != nil {
			log.Fatal("create review failed:", err)
		}
	}

	log.Println("Creating default AI settings...")
	cfg := domain.DefaultAISettings(user.ID, &st.ID)
	cfg.AutoReplyEnabled = true
	if err := db.Create(cfg).Error; err != nil {
		log.Fatal("create ai settings failed:", err)
	}

	log.Printf("Seed complete: user=%s password=demo1234 survey=/s/%d", user.Email, sv.ID)
}
