package handlers

import (
	"log/slog"
	"net/http"

	"github.com/diewo77/go-freelance/internal/auth"
	"github.com/diewo77/go-freelance/internal/db"
	"github.com/diewo77/go-freelance/internal/models"
	"github.com/diewo77/go-freelance/internal/view"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db *gorm.DB
}

func NewAuthHandler(conn *gorm.DB) *AuthHandler {
	return &AuthHandler{db: conn}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		view.Render(w, r, "login.html", nil)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		view.Render(w, r, "login.html", map[string]any{"Error": "Invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		view.Render(w, r, "login.html", map[string]any{"Error": "Invalid email or password"})
		return
	}

	auth.CreateSession(w, user.ID)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		view.Render(w, r, "signup.html", nil)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	name := r.FormValue("name")

	if email == "" || password == "" {
		view.Render(w, r, "signup.html", map[string]any{"Error": "Email and password are required"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		view.Render(w, r, "signup.html", map[string]any{"Error": "Internal server error"})
		return
	}

	user := models.User{
		Email:    email,
		Password: string(hashedPassword),
		Name:     name,
	}

	if err := h.db.Create(&user).Error; err != nil {
		view.Render(w, r, "signup.html", map[string]any{"Error": "Email already exists"})
		return
	}

	// New accounts start with the default expense categories.
	if err := db.SeedDefaultCategories(h.db, user.ID); err != nil {
		slog.ErrorContext(r.Context(), "seed default categories", "user_id", user.ID, "err", err)
	}

	auth.CreateSession(w, user.ID)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
