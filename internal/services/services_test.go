package services_test

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/knowbargain/knowbargain/internal/models"
	"github.com/knowbargain/knowbargain/internal/services"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB returns a fresh in-memory database with the full schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Deal{},
		&models.Vote{},
		&models.Comment{},
		&models.PriceHistory{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()

	user := models.User{
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: "x",
	}

	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to seed user %s: %v", username, err)
	}

	return user
}

func seedDeal(t *testing.T, db *gorm.DB, userID uint, title string, price float64) models.Deal {
	t.Helper()

	deal, err := services.CreateDeal(db, services.CreateDealInput{
		Title:  title,
		Price:  price,
		UserID: userID,
	})
	if err != nil {
		t.Fatalf("Failed to seed deal %s: %v", title, err)
	}

	return deal
}

func countVotes(t *testing.T, db *gorm.DB, userID, dealID uint) int64 {
	t.Helper()

	var count int64

	err := db.Model(&models.Vote{}).
		Where("user_id = ? AND deal_id = ?", userID, dealID).
		Count(&count).Error
	if err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}

	return count
}
