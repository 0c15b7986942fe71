package main

import (
	"log"
	"os"

	"gammanotes-be/internal/model"
	"gammanotes-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Starting GORM migration...")

	// Extensions GORM AutoMigrate does not manage.
	color.Cyan("Step 1: Extensions...")
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			color.Yellow("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	color.Cyan("Step 2: AutoMigrate...")
	models := []interface{}{
		&model.User{},
		&model.Notebook{},
		&model.Page{},
		&model.Message{},
		&model.PageEmbedding{},
		&model.QuizState{},
		&model.StudyCardSet{},
		&model.StudyGuide{},
		&model.SubscriptionPlan{},
		&model.Subscription{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	color.Cyan("Step 3: Seeding subscription plans...")
	seedPlans(db)

	color.Green("✅ Success: Database migration completed.")
}

// seedPlans inserts the default plans. ON CONFLICT keeps reruns idempotent.
func seedPlans(db *gorm.DB) {
	plans := []struct {
		name, slug, description, cycle string
		price                          int64
		pageQuota                      int
		aiEnabled                      bool
	}{
		{"Free", "free", "Up to 50 pages, no AI generation", "monthly", 0, 50, false},
		{"Pro Monthly", "pro-monthly", "Unlimited pages with AI note, quiz and flashcard generation", "monthly", 49000, 0, true},
		{"Pro Yearly", "pro-yearly", "Pro, billed yearly", "yearly", 490000, 0, true},
	}

	for _, p := range plans {
		err := db.Exec(
			`INSERT INTO subscription_plans (name, slug, description, price, billing_cycle, page_quota, ai_enabled)
			 VALUES (?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT (slug) DO NOTHING`,
			p.name, p.slug, p.description, p.price, p.cycle, p.pageQuota, p.aiEnabled,
		).Error
		if err != nil {
			color.Yellow("Warn: Failed to seed plan %s: %v", p.slug, err)
		}
	}
}
