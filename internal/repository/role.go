package repository

import (
	"context"
	"errors"

	"lumen/internal/models"

	"gorm.io/gorm"
)

// RoleRepository defines the interface for role data operations
type RoleRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Role, error)
	ListWithUsers(ctx context.Context) ([]models.Role, error)
}

type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) GetByID(ctx context.Context, id uint) (*models.Role, error) {
	var role models.Role
	if err := r.db.WithContext(ctx).First(&role, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Role", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &role, nil
}

func (r *roleRepository) ListWithUsers(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	err := r.db.WithContext(ctx).
		Preload("Users", func(db *gorm.DB) *gorm.DB {
			return db.Select(userListColumns)
		}).
		Order("id ASC").
		Find(&roles).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return roles, nil
}
