package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/example/donorfinder/internal/models"
)

type userPage struct {
	Items []models.User `json:"items"`
	Total int64         `json:"total"`
}

func TestAdminListUsersWithSearch(t *testing.T) {
	app, db, cfg := newTestApp(t)
	createUser(t, db, "Asha Menon", "asha@x.com", "1000000001", "O+", "Kochi", true)
	createUser(t, db, "Binu Thomas", "binu@x.com", "1000000002", "A+", "Chennai", true)
	admin := createAdmin(t, db, "mod@x.com")
	token := adminToken(t, cfg, admin)

	resp := doJSON(t, app, "GET", "/api/admin/users", nil, token)
	var page userPage
	decodeBody(t, resp, &page)
	if page.Total != 2 {
		t.Fatalf("expected 2 users, got %d", page.Total)
	}

	resp = doJSON(t, app, "GET", "/api/admin/users?search=asha", nil, token)
	decodeBody(t, resp, &page)
	if page.Total != 1 || page.Items[0].FullName != "Asha Menon" {
		t.Fatalf("search failed: %+v", page)
	}
}

func TestAdminCreateUser(t *testing.T) {
	app, db, cfg := newTestApp(t)
	admin := createAdmin(t, db, "mod@x.com")
	token := adminToken(t, cfg, admin)

	resp := doJSON(t, app, "POST", "/api/admin/users", map[string]string{
		"full_name":   "Chitra Pillai",
		"email":       "chitra@x.com",
		"phone":       "1000000003",
		"country":     "IN",
		"state":       "KL",
		"blood_group": "B+",
		"password":    "password123",
	}, token)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var user models.User
	if err := db.First(&user, "email = ?", "chitra@x.com").Error; err != nil {
		t.Fatalf("created user missing: %v", err)
	}
	if !user.Availability || user.Role != models.RoleUser {
		t.Fatalf("unexpected defaults: %+v", user)
	}

	// Duplicate rejected.
	resp = doJSON(t, app, "POST", "/api/admin/users", map[string]string{
		"full_name":   "Chitra Clone",
		"email":       "chitra@x.com",
		"phone":       "1000000004",
		"country":     "IN",
		"state":       "KL",
		"blood_group": "B+",
		"password":    "password123",
	}, token)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate: expected 400, got %d", resp.StatusCode)
	}
}

func TestAdminUpdateUser(t *testing.T) {
	app, db, cfg := newTestApp(t)
	user := createUser(t, db, "Asha", "asha@x.com", "1000000001", "O+", "Kochi", true)
	createUser(t, db, "Binu", "binu@x.com", "1000000002", "A+", "Chennai", true)
	admin := createAdmin(t, db, "mod@x.com")
	token := adminToken(t, cfg, admin)

	resp := doJSON(t, app, "PUT", fmt.Sprintf("/api/admin/users/%s", user.ID), map[string]interface{}{
		"city":         "Trivandrum",
		"availability": false,
	}, token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", resp.StatusCode)
	}

	var updated models.User
	if err := db.First(&updated, "id = ?", user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if updated.City != "Trivandrum" || updated.Availability {
		t.Fatalf("update not applied: %+v", updated)
	}

	// Stealing another account's email is rejected.
	resp = doJSON(t, app, "PUT", fmt.Sprintf("/api/admin/users/%s", user.ID), map[string]string{
		"email": "binu@x.com",
	}, token)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("email collision: expected 400, got %d", resp.StatusCode)
	}

	// Unknown user id.
	resp = doJSON(t, app, "PUT", "/api/admin/users/7b7c2a66-0b6e-4a8e-9a3e-111111111111", map[string]string{
		"city": "Kochi",
	}, token)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown user: expected 404, got %d", resp.StatusCode)
	}
}

func TestAdminDeleteUserCascadesReports(t *testing.T) {
	app, db, cfg := newTestApp(t)
	user := createUser(t, db, "Asha", "asha@x.com", "1000000001", "O+", "Kochi", true)
	admin := createAdmin(t, db, "mod@x.com")
	token := adminToken(t, cfg, admin)

	resp := doJSON(t, app, "POST", "/api/users/report-donor", map[string]string{
		"donor_id": user.ID.String(),
		"reason":   "spam",
	}, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("submit report: expected 201, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, "DELETE", fmt.Sprintf("/api/admin/users/%s", user.ID), nil, token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", resp.StatusCode)
	}

	var users, reports int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.DonorReport{}).Count(&reports)
	if users != 0 || reports != 0 {
		t.Fatalf("expected user and reports gone, have users=%d reports=%d", users, reports)
	}

	resp = doJSON(t, app, "DELETE", fmt.Sprintf("/api/admin/users/%s", user.ID), nil, token)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", resp.StatusCode)
	}
}

func TestAdminStats(t *testing.T) {
	app, db, cfg := newTestApp(t)
	createUser(t, db, "Asha", "asha@x.com", "1000000001", "O+", "Kochi", true)
	admin := createAdmin(t, db, "mod@x.com")
	token := adminToken(t, cfg, admin)

	resp := doJSON(t, app, "GET", "/api/admin/stats", nil, token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var stats map[string]int64
	decodeBody(t, resp, &stats)
	if stats["total_users"] != 1 || stats["pending_reports"] != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
