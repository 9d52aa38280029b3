// Package bootstrap wires the shared runtime pieces (database, Redis,
// development fixtures) used by the server and the maintenance commands.
package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"lumen/internal/cache"
	"lumen/internal/config"
	"lumen/internal/database"
	"lumen/internal/models"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// InitRuntime connects to the database and Redis. Redis being unreachable is
// not fatal: the returned client is nil and caching degrades to passthrough.
func InitRuntime(cfg *config.Config) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	rdb := cache.GetClient()

	if err := ensureDevRootAdmin(cfg, db); err != nil {
		return nil, nil, fmt.Errorf("bootstrapping development root admin: %w", err)
	}

	return db, rdb, nil
}

// ensureDevRootAdmin creates (or repairs) a known admin account so a fresh
// development database is usable without running the seeder. It refuses to
// run outside the development environment.
func ensureDevRootAdmin(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	if !strings.EqualFold(cfg.Env, "development") || !cfg.DevBootstrapRoot {
		return nil
	}

	username := strings.TrimSpace(cfg.DevRootUsername)
	if username == "" {
		username = "lumen_root"
	}
	if cfg.DevRootPassword == "" {
		return errors.New("DEV_ROOT_PASSWORD must be set when DEV_BOOTSTRAP_ROOT is enabled")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.DevRootPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing root password: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		adminRole := models.Role{RoleName: models.AdminRoleName}
		if err := tx.Where("role_name = ?", models.AdminRoleName).
			FirstOrCreate(&adminRole).Error; err != nil {
			return err
		}

		var root models.User
		findErr := tx.Where("username = ?", username).First(&root).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			root = models.User{
				Username:  username,
				Password:  string(hash),
				FirstName: "Root",
				LastName:  "Admin",
				RoleID:    adminRole.ID,
			}
			if err := tx.Create(&root).Error; err != nil {
				return err
			}
			slog.Info("created development root admin", "username", username)
		case findErr != nil:
			return findErr
		default:
			updates := map[string]any{
				"role_id":  adminRole.ID,
				"password": string(hash),
			}
			if err := tx.Model(&models.User{}).Where("id = ?", root.ID).
				Updates(updates).Error; err != nil {
				return err
			}
			slog.Info("refreshed development root admin", "username", username)
		}
		return nil
	})
}
