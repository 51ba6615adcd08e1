package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/diewo77/go-freelance/internal/models"
)

func TestClientHandler_Create(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	handler := NewClientHandler(db)

	req := authed(postForm("/clients", url.Values{
		"name":    {"Alice Martin"},
		"company": {"Acme SARL"},
		"email":   {"alice@acme.test"},
	}), user.ID)
	rr := httptest.NewRecorder()
	handler.Create(rr, req)

	wantRedirect(t, rr, "/clients")

	var client models.Client
	if err := db.Where("user_id = ?", user.ID).First(&client).Error; err != nil {
		t.Fatalf("client not created: %v", err)
	}
	if client.Name != "Alice Martin" || client.Company != "Acme SARL" {
		t.Errorf("unexpected client: %+v", client)
	}
}

func TestClientHandler_Create_RequiresName(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	handler := NewClientHandler(db)

	req := authed(postForm("/clients", url.Values{"email": {"x@y.test"}}), user.ID)
	rr := httptest.NewRecorder()
	handler.Create(rr, req)

	if rr.Code == http.StatusSeeOther {
		t.Fatal("expected validation failure, got redirect")
	}
	var count int64
	db.Model(&models.Client{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no clients, got %d", count)
	}
}

func TestClientHandler_Update_ScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	stranger := createTestUser(t, db, "stranger@example.com")
	handler := NewClientHandler(db)

	client := models.Client{UserID: owner.ID, Name: "Mine"}
	db.Create(&client)

	req := authed(postForm("/clients/1", url.Values{"name": {"Hijacked"}}), stranger.ID)
	req.SetPathValue("id", "1")
	rr := httptest.NewRecorder()
	handler.Update(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign client, got %d", rr.Code)
	}

	var reloaded models.Client
	db.First(&reloaded, client.ID)
	if reloaded.Name != "Mine" {
		t.Errorf("client was modified by another user: %q", reloaded.Name)
	}
}

func TestClientHandler_Delete(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	handler := NewClientHandler(db)

	client := models.Client{UserID: user.ID, Name: "Gone"}
	db.Create(&client)

	req := authed(postForm("/clients/1/delete", nil), user.ID)
	req.SetPathValue("id", "1")
	rr := httptest.NewRecorder()
	handler.Delete(rr, req)

	wantRedirect(t, rr, "/clients")

	var count int64
	db.Model(&models.Client{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected client deleted, found %d", count)
	}
}
