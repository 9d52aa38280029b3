package repository

import (
	"context"
	"errors"

	"lumen/internal/models"

	"gorm.io/gorm"
)

// BookmarkRepository defines the interface for bookmark data operations
type BookmarkRepository interface {
	Create(ctx context.Context, bookmark *models.Bookmark) error
	GetByID(ctx context.Context, id uint) (*models.Bookmark, error)
	GetByUserAndPost(ctx context.Context, userID, postID uint) (*models.Bookmark, error)
	ListByPost(ctx context.Context, postID uint) ([]models.Bookmark, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Bookmark, error)
	Delete(ctx context.Context, id uint) error
}

type bookmarkRepository struct {
	db *gorm.DB
}

// NewBookmarkRepository creates a new bookmark repository
func NewBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

func (r *bookmarkRepository) Create(ctx context.Context, bookmark *models.Bookmark) error {
	if err := r.db.WithContext(ctx).Create(bookmark).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *bookmarkRepository) GetByID(ctx context.Context, id uint) (*models.Bookmark, error) {
	var bookmark models.Bookmark
	if err := r.db.WithContext(ctx).First(&bookmark, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Bookmark", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &bookmark, nil
}

// GetByUserAndPost returns nil, nil when the pair is not bookmarked.
func (r *bookmarkRepository) GetByUserAndPost(ctx context.Context, userID, postID uint) (*models.Bookmark, error) {
	var bookmark models.Bookmark
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&bookmark).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &bookmark, nil
}

func (r *bookmarkRepository) ListByPost(ctx context.Context, postID uint) ([]models.Bookmark, error) {
	var bookmarks []models.Bookmark
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Find(&bookmarks).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return bookmarks, nil
}

func (r *bookmarkRepository) ListByUser(ctx context.Context, userID uint) ([]models.Bookmark, error) {
	var bookmarks []models.Bookmark
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&bookmarks).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return bookmarks, nil
}

func (r *bookmarkRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Bookmark{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Bookmark", id)
	}
	return nil
}
