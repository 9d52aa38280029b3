// Package test contains cross-layer integration tests that drive the full
// HTTP stack against an in-memory database.
package test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lumen/internal/config"
	"lumen/internal/middleware"
	"lumen/internal/models"
	"lumen/internal/server"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type authUser struct {
	ID    uint
	Token string
}

func newLumenTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Role{},
		&models.Rank{},
		&models.User{},
		&models.Post{},
		&models.Tag{},
		&models.Category{},
		&models.Reaction{},
		&models.PostReaction{},
		&models.Comment{},
		&models.Bookmark{},
		&models.Follower{},
	))

	cfg := &config.Config{
		JWTSecret: "integration-test-secret",
		Env:       "test",
	}
	middleware.InitMiddleware(cfg)

	srv, err := server.NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New()
	srv.SetupRoutes(app)
	return app, db
}

// registerUser creates an account directly and logs in through the API so
// the returned token went through the real auth path.
func registerUser(t *testing.T, app *fiber.App, db *gorm.DB, username string, admin bool) authUser {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("integration-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username:  username,
		Password:  string(hash),
		FirstName: "Flow",
		LastName:  username,
	}
	require.NoError(t, db.Create(user).Error)

	if admin {
		role := models.Role{RoleName: models.AdminRoleName}
		require.NoError(t, db.Where("role_name = ?", models.AdminRoleName).
			FirstOrCreate(&role).Error)
		require.NoError(t, db.Model(user).UpdateColumn("role_id", role.ID).Error)
	}

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username,
		"password": "integration-pass",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Token  string `json:"token"`
		UserID uint   `json:"userId"`
	}
	decode(t, resp, &body)
	require.NotEmpty(t, body.Token)
	return authUser{ID: body.UserID, Token: "Bearer " + body.Token}
}

func doJSON(t *testing.T, app *fiber.App, method, path, auth string, payload interface{}) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if auth != "" {
		req.Header.Set(fiber.HeaderAuthorization, auth)
	}
	resp, err := app.Test(req, int(30*time.Second/time.Millisecond))
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, dest interface{}) {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, dest))
}
