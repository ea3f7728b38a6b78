package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/example/donorfinder/internal/models"
)

func TestAnonymousComment(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/comments", map[string]string{
		"name":    "Passerby",
		"content": "thank you for this site",
	}, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var comment models.Comment
	decodeBody(t, resp, &comment)
	if comment.UserID != nil || comment.Name != "Passerby" {
		t.Fatalf("unexpected comment: %+v", comment)
	}
}

func TestRegisteredComment(t *testing.T) {
	app, db, _ := newTestApp(t)
	user := createUser(t, db, "Asha", "asha@x.com", "1000000001", "O+", "Kochi", true)

	resp := doJSON(t, app, "POST", "/api/comments", map[string]string{
		"user_id": user.ID.String(),
		"content": "happy to donate again",
	}, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var comment models.Comment
	decodeBody(t, resp, &comment)
	if comment.UserID == nil || *comment.UserID != user.ID {
		t.Fatalf("comment not attributed to user: %+v", comment)
	}
	if comment.Name != "Asha" {
		t.Fatalf("expected display name from profile, got %q", comment.Name)
	}
}

func TestCommentValidation(t *testing.T) {
	app, _, _ := newTestApp(t)

	// No content.
	resp := doJSON(t, app, "POST", "/api/comments", map[string]string{"name": "Passerby"}, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing content: expected 400, got %d", resp.StatusCode)
	}

	// Anonymous without a display name.
	resp = doJSON(t, app, "POST", "/api/comments", map[string]string{"content": "hello"}, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing name: expected 400, got %d", resp.StatusCode)
	}

	// Unknown registered user.
	resp = doJSON(t, app, "POST", "/api/comments", map[string]string{
		"user_id": "7b7c2a66-0b6e-4a8e-9a3e-111111111111",
		"content": "hello",
	}, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown user: expected 404, got %d", resp.StatusCode)
	}
}

func TestCommentsNewestFirst(t *testing.T) {
	app, db, _ := newTestApp(t)

	older := models.Comment{Name: "First", Content: "older"}
	if err := db.Create(&older).Error; err != nil {
		t.Fatalf("create older comment: %v", err)
	}
	newer := models.Comment{Name: "Second", Content: "newer"}
	newer.CreatedAt = time.Now().Add(time.Minute)
	if err := db.Create(&newer).Error; err != nil {
		t.Fatalf("create newer comment: %v", err)
	}

	resp := doJSON(t, app, "GET", "/api/comments", nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var comments []models.Comment
	decodeBody(t, resp, &comments)
	if len(comments) != 2 || comments[0].Name != "Second" {
		t.Fatalf("expected newest first, got %+v", comments)
	}
}
