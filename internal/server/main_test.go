package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"testing"

	"lumen/internal/config"
	"lumen/internal/middleware"
	"lumen/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestApp wires the full route table over an in-memory database. Redis is
// absent, so caching and rate limiting fall back to their passthrough paths.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
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
		JWTSecret:    "server-test-secret",
		Env:          "test",
		FeatureFlags: "new_profile=on,canary_feed=0%",
	}
	middleware.InitMiddleware(cfg)

	srv, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return models.RespondWithError(c, models.NewInternalError(err))
		},
	})
	srv.SetupRoutes(app)
	return app, db
}

func createUser(t *testing.T, db *gorm.DB, username, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Username:  username,
		Password:  string(hash),
		FirstName: "Test",
		LastName:  username,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createAdmin(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	role := &models.Role{RoleName: models.AdminRoleName}
	require.NoError(t, db.Create(role).Error)
	user := createUser(t, db, username, "admin-password")
	require.NoError(t, db.Model(user).UpdateColumn("role_id", role.ID).Error)
	return user
}

func createPost(t *testing.T, db *gorm.DB, userID uint, title string) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:       title,
		Type:        "image/png",
		MediaSource: []byte{0x89, 0x50, 0x4E, 0x47},
		UserID:      userID,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func bearerFor(t *testing.T, userID uint) string {
	t.Helper()
	token, err := middleware.GenerateToken(userID, tokenTTL)
	require.NoError(t, err)
	return "Bearer " + token
}

func decodeBody(t *testing.T, resp *http.Response, dest interface{}) {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, dest))
}
