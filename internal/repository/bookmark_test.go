package repository

import (
	"errors"
	"testing"

	"lumen/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestBookmarkUniquePairProbe(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookmarkRepository(db)
	user := seedUser(t, db, "saver")
	post := seedPost(t, db, user.ID, "saved")

	absent, err := repo.GetByUserAndPost(testCtx(), user.ID, post.ID)
	require.NoError(t, err)
	assert.Nil(t, absent)

	bookmark := &models.Bookmark{UserID: user.ID, PostID: post.ID}
	require.NoError(t, repo.Create(testCtx(), bookmark))

	got, err := repo.GetByUserAndPost(testCtx(), user.ID, post.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, bookmark.ID, got.ID)

	// the unique index rejects the duplicate pair at the storage layer too
	dup := &models.Bookmark{UserID: user.ID, PostID: post.ID}
	err = repo.Create(testCtx(), dup)
	require.Error(t, err)
	assert.Equal(t, models.KindInternal, models.KindOf(err))
}

func TestBookmarkDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookmarkRepository(db)
	user := seedUser(t, db, "saver")
	post := seedPost(t, db, user.ID, "saved")

	bookmark := &models.Bookmark{UserID: user.ID, PostID: post.ID}
	require.NoError(t, repo.Create(testCtx(), bookmark))
	require.NoError(t, repo.Delete(testCtx(), bookmark.ID))

	err := repo.Delete(testCtx(), bookmark.ID)
	require.Error(t, err)
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
}

// setupMockDB backs gorm with sqlmock so storage failures can be injected.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestBookmarkListStorageFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewBookmarkRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "bookmarks"`).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.ListByUser(testCtx(), 1)
	require.Error(t, err)
	assert.Equal(t, models.KindInternal, models.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
