package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/example/donorfinder/internal/config"
	"github.com/example/donorfinder/internal/database"
	"github.com/example/donorfinder/internal/handlers"
	"github.com/example/donorfinder/internal/models"
	"github.com/example/donorfinder/internal/routes"
	"github.com/example/donorfinder/internal/utils"
)

func testConfig() *config.Config {
	return &config.Config{
		AppPort:           "0",
		UserJWTSecret:     "user-test-secret",
		AdminJWTSecret:    "admin-test-secret",
		UserTokenExpires:  time.Hour,
		AdminTokenExpires: 24 * time.Hour,
	}
}

// newTestApp builds the full route table over an in-memory database. Each
// test gets its own database name so state never leaks between tests.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, *config.Config) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := testConfig()
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	routes.Register(app, db, cfg)

	return app, db, cfg
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func createUser(t *testing.T, db *gorm.DB, fullName, email, phone, bloodGroup, city string, available bool) models.User {
	t.Helper()

	hash, err := utils.HashPassword("password123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := models.User{
		FullName:     fullName,
		Email:        email,
		Phone:        phone,
		Country:      "IN",
		State:        "KL",
		City:         city,
		BloodGroup:   bloodGroup,
		PasswordHash: hash,
		Availability: available,
		Role:         models.RoleUser,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func createAdmin(t *testing.T, db *gorm.DB, email string) models.Admin {
	t.Helper()

	hash, err := utils.HashPassword("adminpass")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	admin := models.Admin{
		Name:         "Moderator",
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("create admin: %v", err)
	}
	return admin
}

func adminToken(t *testing.T, cfg *config.Config, admin models.Admin) string {
	t.Helper()
	token, err := utils.GenerateToken(cfg.AdminJWTSecret, admin.ID, models.RoleAdmin, cfg.AdminTokenExpires)
	if err != nil {
		t.Fatalf("sign admin token: %v", err)
	}
	return token
}

func userToken(t *testing.T, cfg *config.Config, user models.User) string {
	t.Helper()
	token, err := utils.GenerateToken(cfg.UserJWTSecret, user.ID, user.Role, cfg.UserTokenExpires)
	if err != nil {
		t.Fatalf("sign user token: %v", err)
	}
	return token
}
