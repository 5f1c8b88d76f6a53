package database

import (
	"fmt"
	"log"
	"os"

	"skillytics-api/internal/domain/billing"
	"skillytics-api/internal/domain/certs"
	"skillytics-api/internal/domain/learning"
	"skillytics-api/internal/domain/market"
	"skillytics-api/internal/domain/orgs"
	"skillytics-api/internal/domain/plans"
	"skillytics-api/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	if err := DB.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Fatal("❌ Failed to enable pgcrypto extension:", err)
	}

	if err := DB.AutoMigrate(
		// core
		&users.User{},
		&users.VerificationToken{},
		&plans.Plan{},
		&billing.Transaction{},
		&billing.WebhookEvent{},

		// learning
		&learning.SkillModule{},
		&learning.Mission{},
		&learning.MissionProgress{},
		&learning.Submission{},
		&learning.DailyAnalytics{},

		// certifications
		&certs.Certification{},
		&certs.UserCertification{},

		// enterprise
		&orgs.Organization{},
		&orgs.Invitation{},
		&orgs.LearningPath{},

		// marketplace
		&market.Creator{},
		&market.Item{},
		&market.Purchase{},
	); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}
