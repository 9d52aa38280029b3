package repository

import (
	"context"
	"errors"
	"strings"

	"lumen/internal/cache"
	"lumen/internal/models"

	"gorm.io/gorm"
)

// UserImage is a raw image payload served by the avatar/cover endpoints.
type UserImage struct {
	ContentType string
	Source      []byte
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsernameInsensitive(ctx context.Context, username string) (*models.User, error)
	GetWithRole(ctx context.Context, id uint) (*models.User, error)
	GetProfile(ctx context.Context, id uint) (*models.User, error)
	GetAvatar(ctx context.Context, id uint) (*UserImage, error)
	GetCoverImage(ctx context.Context, id uint) (*UserImage, error)
	ListForAdmin(ctx context.Context, excludeUserID uint) ([]models.User, error)
	SearchByFullName(ctx context.Context, name string) ([]models.User, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

// userRepository implements UserRepository
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// userListColumns excludes the credential hash and both image blobs.
var userListColumns = []string{
	"users.id", "users.username", "users.first_name", "users.last_name",
	"users.email", "users.phone", "users.description",
	"users.profile_photo_url", "users.cover_image_url",
	"users.role_id", "users.rank_id", "users.created_at", "users.updated_at",
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Select(userListColumns).
		First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsernameInsensitive(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("LOWER(username) = ?", strings.ToLower(username)).
		First(&user).Error
	if err != nil {
		// Absence is a regular outcome here: callers use this as an
		// existence probe for login and uniqueness checks.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetWithRole(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Select(userListColumns).
		Preload("Role").
		First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Select(userListColumns).
		Preload("Role").
		Preload("Rank").
		Preload("Posts", func(db *gorm.DB) *gorm.DB {
			return db.Select(postListColumns).Order("posts.created_at DESC, posts.id DESC")
		}).
		Preload("Posts.Tags").
		Preload("Posts.Categories").
		Preload("Posts.Reactions").
		Preload("Posts.Comments").
		Preload("Posts.Bookmarks").
		First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetAvatar(ctx context.Context, id uint) (*UserImage, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Select("img_type", "photo_source").
		First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &UserImage{ContentType: user.ImgType, Source: user.PhotoSource}, nil
}

func (r *userRepository) GetCoverImage(ctx context.Context, id uint) (*UserImage, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Select("cover_image_type", "cover_image_source").
		First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &UserImage{ContentType: user.CoverImageType, Source: user.CoverImageSource}, nil
}

func (r *userRepository) ListForAdmin(ctx context.Context, excludeUserID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Select(userListColumns).
		Where("users.id <> ?", excludeUserID).
		Preload("Role").
		Preload("Rank").
		Preload("Posts", func(db *gorm.DB) *gorm.DB {
			return db.Select("posts.id", "posts.user_id")
		}).
		Order("users.id DESC").
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) SearchByFullName(ctx context.Context, name string) ([]models.User, error) {
	like := "%" + strings.ToLower(strings.TrimSpace(name)) + "%"
	var users []models.User
	err := r.db.WithContext(ctx).
		Select(userListColumns).
		Where("LOWER(first_name || ' ' || last_name) LIKE ?", like).
		Preload("Posts", func(db *gorm.DB) *gorm.DB {
			return db.Select("posts.id", "posts.user_id")
		}).
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("User", id)
	}
	cache.InvalidateUser(ctx, id)
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := cascadeUserDelete(tx, id); err != nil {
			return err
		}
		result := tx.Delete(&models.User{}, id)
		if result.Error != nil {
			return models.NewInternalError(result.Error)
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("User", id)
		}
		return nil
	})
	if err != nil {
		return err
	}
	cache.InvalidateUser(ctx, id)
	cache.InvalidatePostsList(ctx)
	return nil
}
