package repository

import (
	"context"

	"lumen/internal/models"

	"gorm.io/gorm"
)

// FollowerRepository defines the interface for follower graph operations.
// Edges are directed: FollowerID follows UserID.
type FollowerRepository interface {
	Create(ctx context.Context, userID, followerID uint) error
	Exists(ctx context.Context, userID, followerID uint) (bool, error)
	Delete(ctx context.Context, userID, followerID uint) error
	ListFollowers(ctx context.Context, userID uint) ([]models.User, error)
	ListFollowing(ctx context.Context, followerID uint) ([]models.User, error)
	CountFollowers(ctx context.Context, userID uint) (int64, error)
}

type followerRepository struct {
	db *gorm.DB
}

// NewFollowerRepository creates a new follower repository
func NewFollowerRepository(db *gorm.DB) FollowerRepository {
	return &followerRepository{db: db}
}

func (r *followerRepository) Create(ctx context.Context, userID, followerID uint) error {
	edge := models.Follower{UserID: userID, FollowerID: followerID}
	if err := r.db.WithContext(ctx).Create(&edge).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *followerRepository) Exists(ctx context.Context, userID, followerID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follower{}).
		Where("user_id = ? AND follower_id = ?", userID, followerID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *followerRepository) Delete(ctx context.Context, userID, followerID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND follower_id = ?", userID, followerID).
		Delete(&models.Follower{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundMessageError("Follower edge not found")
	}
	return nil
}

// ListFollowers returns the users following userID, with ranks preloaded for
// the follower projection. The join is parameterized end to end.
func (r *followerRepository) ListFollowers(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Select(userListColumns).
		Joins("JOIN followers ON followers.follower_id = users.id").
		Where("followers.user_id = ?", userID).
		Preload("Rank").
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

// ListFollowing returns the users that followerID follows.
func (r *followerRepository) ListFollowing(ctx context.Context, followerID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Select(userListColumns).
		Joins("JOIN followers ON followers.user_id = users.id").
		Where("followers.follower_id = ?", followerID).
		Preload("Rank").
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *followerRepository) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follower{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
