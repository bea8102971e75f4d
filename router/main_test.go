package router

import (
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academic-records-api/database"
	"github.com/sahilchouksey/academic-records-api/model"
	"github.com/sahilchouksey/academic-records-api/utils/auth"
	"gorm.io/gorm"
)

// TestDeleteRoutesRequireAdmin verifies the role gate on destructive routes:
// every DELETE under /api/v1 rejects staff tokens with 403 and anonymous
// requests with 401. It requires:
// 1. RUN_INTEGRATION_TESTS=true
// 2. The DB_* environment variables pointing at a PostgreSQL instance
func TestDeleteRoutesRequireAdmin(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run")
	}
	if os.Getenv("JWT_SECRET") == "" {
		t.Setenv("JWT_SECRET", "integration-test-secret")
	}

	store, err := database.StartGORM()
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	db := store.GetDB().(*gorm.DB)

	app := fiber.New()
	SetupRoutes(app, store)

	suffix := time.Now().UnixNano()
	staff := model.User{
		Email:        fmt.Sprintf("staff.%d@universidad.cl", suffix),
		PasswordHash: "x",
		Name:         "Staff Tester",
		Role:         "staff",
	}
	admin := model.User{
		Email:        fmt.Sprintf("admin.%d@universidad.cl", suffix),
		PasswordHash: "x",
		Name:         "Admin Tester",
		Role:         "admin",
	}
	for _, u := range []*model.User{&staff, &admin} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("create user: %v", err)
		}
	}
	t.Cleanup(func() {
		db.Delete(&model.User{}, staff.ID)
		db.Delete(&model.User{}, admin.ID)
	})

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret:        os.Getenv("JWT_SECRET"),
		Expiry:        time.Hour,
		RefreshExpiry: time.Hour,
		Issuer:        "academic-records-api",
	})
	staffToken, _, err := jwtManager.GenerateAccessToken(staff.ID, staff.Email, staff.Role, staff.TokenVersion)
	if err != nil {
		t.Fatalf("generate staff token: %v", err)
	}
	adminToken, _, err := jwtManager.GenerateAccessToken(admin.ID, admin.Email, admin.Role, admin.TokenVersion)
	if err != nil {
		t.Fatalf("generate admin token: %v", err)
	}

	request := func(t *testing.T, path, token string) int {
		t.Helper()
		req, err := http.NewRequest(http.MethodDelete, path, nil)
		if err != nil {
			t.Fatalf("build request: %v", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := app.Test(req, 5000)
		if err != nil {
			t.Fatalf("request %s: %v", path, err)
		}
		resp.Body.Close()
		return resp.StatusCode
	}

	paths := []string{
		"/api/v1/students/999999",
		"/api/v1/professors/999999",
		"/api/v1/courses/999999",
		"/api/v1/courses/999999/professors/999999",
		"/api/v1/enrollments/999999",
		"/api/v1/grades/999999",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			if code := request(t, path, ""); code != fiber.StatusUnauthorized {
				t.Errorf("anonymous delete = %d, want 401", code)
			}
			if code := request(t, path, staffToken); code != fiber.StatusForbidden {
				t.Errorf("staff delete = %d, want 403", code)
			}
			// Admin clears the gate and reaches the handler, which reports
			// the row as missing.
			if code := request(t, path, adminToken); code != fiber.StatusNotFound {
				t.Errorf("admin delete = %d, want 404", code)
			}
		})
	}
}
