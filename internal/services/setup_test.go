package services

import (
	"strings"
	"testing"

	"github.com/diewo77/go-freelance/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupDB opens an isolated in-memory database migrated with all models.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dbi, err := gorm.Open(sqlite.Open("file:svc_"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := dbi.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return dbi
}

// createUser inserts a user and returns its id.
func createUser(t *testing.T, dbi *gorm.DB, email string) uint {
	t.Helper()
	u := models.User{Email: email, Password: "hash"}
	if err := dbi.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u.ID
}
