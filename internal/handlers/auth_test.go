package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/diewo77/go-freelance/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthHandler_Signup(t *testing.T) {
	db := setupTestDB(t)
	handler := NewAuthHandler(db)

	r := postForm("/signup", url.Values{
		"email":    {"new@example.com"},
		"password": {"secret123"},
		"name":     {"Nadia"},
	})
	rr := httptest.NewRecorder()
	handler.Signup(rr, r)

	wantRedirect(t, rr, "/dashboard")

	var user models.User
	if err := db.Where("email = ?", "new@example.com").First(&user).Error; err != nil {
		t.Fatalf("user not created: %v", err)
	}
	if user.Password == "secret123" {
		t.Error("password stored in clear")
	}

	// Signup seeds the default expense categories.
	var count int64
	db.Model(&models.ExpenseCategory{}).Where("user_id = ? AND is_default = ?", user.ID, true).Count(&count)
	if count != 8 {
		t.Errorf("expected 8 default categories, got %d", count)
	}

	cookies := rr.Result().Cookies()
	found := false
	for _, c := range cookies {
		if c.Name == "session" && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("expected a session cookie")
	}
}

func TestAuthHandler_Login(t *testing.T) {
	db := setupTestDB(t)
	handler := NewAuthHandler(db)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	db.Create(&models.User{Email: "me@example.com", Password: string(hash)})

	r := postForm("/login", url.Values{
		"email":    {"me@example.com"},
		"password": {"secret123"},
	})
	rr := httptest.NewRecorder()
	handler.Login(rr, r)
	wantRedirect(t, rr, "/dashboard")
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	db := setupTestDB(t)
	handler := NewAuthHandler(db)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	db.Create(&models.User{Email: "me@example.com", Password: string(hash)})

	r := postForm("/login", url.Values{
		"email":    {"me@example.com"},
		"password": {"nope"},
	})
	rr := httptest.NewRecorder()
	handler.Login(rr, r)

	if rr.Code == http.StatusSeeOther && strings.Contains(rr.Header().Get("Location"), "dashboard") {
		t.Fatal("login should fail with a wrong password")
	}
}
