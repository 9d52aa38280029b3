package bootstrap

import (
	"testing"

	"lumen/internal/config"
	"lumen/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupBootstrapDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Role{}, &models.Rank{}, &models.User{}))
	return db
}

func TestEnsureDevRootAdminCreates(t *testing.T) {
	db := setupBootstrapDB(t)
	cfg := &config.Config{
		Env:              "development",
		DevBootstrapRoot: true,
		DevRootUsername:  "root",
		DevRootPassword:  "root-password",
	}

	require.NoError(t, ensureDevRootAdmin(cfg, db))

	var root models.User
	require.NoError(t, db.Preload("Role").Where("username = ?", "root").First(&root).Error)
	require.NotNil(t, root.Role)
	assert.Equal(t, models.AdminRoleName, root.Role.RoleName)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(root.Password), []byte("root-password")))
}

func TestEnsureDevRootAdminIsIdempotent(t *testing.T) {
	db := setupBootstrapDB(t)
	cfg := &config.Config{
		Env:              "development",
		DevBootstrapRoot: true,
		DevRootUsername:  "root",
		DevRootPassword:  "root-password",
	}

	require.NoError(t, ensureDevRootAdmin(cfg, db))
	require.NoError(t, ensureDevRootAdmin(cfg, db))

	var userCount, roleCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Role{}).Count(&roleCount).Error)
	assert.Equal(t, int64(1), userCount)
	assert.Equal(t, int64(1), roleCount)
}

func TestEnsureDevRootAdminSkipsOutsideDevelopment(t *testing.T) {
	db := setupBootstrapDB(t)
	cfg := &config.Config{
		Env:              "production",
		DevBootstrapRoot: true,
		DevRootPassword:  "root-password",
	}

	require.NoError(t, ensureDevRootAdmin(cfg, db))

	var userCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	assert.Zero(t, userCount)
}

func TestEnsureDevRootAdminRequiresPassword(t *testing.T) {
	db := setupBootstrapDB(t)
	cfg := &config.Config{
		Env:              "development",
		DevBootstrapRoot: true,
	}

	assert.Error(t, ensureDevRootAdmin(cfg, db))
}
