// Package db handles database connection, schema migration and seeding.
package db

import (
	"fmt"
	"log"
	"time"

	"github.com/diewo77/go-freelance/internal/config"
	"github.com/diewo77/go-freelance/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect opens the configured database. Postgres connections are retried
// a few times to let the server come up in container setups.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	if cfg.Driver == "sqlite" {
		return gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{})
	}

	var conn *gorm.DB
	var err error
	for i := 0; i < 5; i++ {
		conn, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
		if err == nil {
			return conn, nil
		}
		log.Printf("database connection attempt %d/5 failed, retrying...", i+1)
		time.Sleep(2 * time.Second)
	}
	return nil, fmt.Errorf("database connection failed: %w", err)
}

// Migrate applies GORM auto-migrations for all models.
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}
	return nil
}

// defaultCategories are the expense categories created for every new
// account. Labels are French, matching the product language.
var defaultCategories = []models.ExpenseCategory{
	{Name: "Alimentation", Color: "orange", Icon: "utensils", IsDefault: true},
	{Name: "Transport", Color: "blue", Icon: "car", IsDefault: true},
	{Name: "Shopping", Color: "pink", Icon: "shopping-bag", IsDefault: true},
	{Name: "Factures & Charges", Color: "yellow", Icon: "file-text", IsDefault: true},
	{Name: "Loisirs", Color: "purple", Icon: "film", IsDefault: true},
	{Name: "Santé", Color: "green", Icon: "heart", IsDefault: true},
	{Name: "Business", Color: "slate", Icon: "briefcase", IsDefault: true},
	{Name: "Autre", Color: "gray", Icon: "more-horizontal", IsDefault: true},
}

// SeedDefaultCategories creates the default expense categories for a user.
// It is idempotent: nothing happens if the user already has defaults.
func SeedDefaultCategories(conn *gorm.DB, userID uint) error {
	var count int64
	if err := conn.Model(&models.ExpenseCategory{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	categories := make([]models.ExpenseCategory, len(defaultCategories))
	copy(categories, defaultCategories)
	for i := range categories {
		categories[i].UserID = userID
	}
	return conn.Create(&categories).Error
}
