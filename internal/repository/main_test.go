package repository

import (
	"context"
	"testing"
	"time"

	"lumen/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database per test and migrates the
// full model set, so cross-entity cascades behave like production.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
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
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:  username,
		Password:  "hash",
		FirstName: "Test",
		LastName:  username,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedPost(t *testing.T, db *gorm.DB, userID uint, title string) *models.Post {
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

// seedPostAt pins created_at so feed ordering tests are deterministic.
func seedPostAt(t *testing.T, db *gorm.DB, userID uint, title string, createdAt time.Time) *models.Post {
	t.Helper()
	post := seedPost(t, db, userID, title)
	require.NoError(t, db.Model(post).UpdateColumn("created_at", createdAt).Error)
	post.CreatedAt = createdAt
	return post
}

func seedTag(t *testing.T, db *gorm.DB, name string) *models.Tag {
	t.Helper()
	tag := &models.Tag{TagName: name}
	require.NoError(t, db.Create(tag).Error)
	return tag
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{CategoryName: name}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedReaction(t *testing.T, db *gorm.DB, kind string) *models.Reaction {
	t.Helper()
	reaction := &models.Reaction{ReactionType: kind}
	require.NoError(t, db.Create(reaction).Error)
	return reaction
}

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func testCtx() context.Context {
	return context.Background()
}
