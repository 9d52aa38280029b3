package repository

import (
	"context"
	"errors"

	"lumen/internal/models"

	"gorm.io/gorm"
)

// ReactionRepository defines the interface for reaction data operations
type ReactionRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Reaction, error)
	ListWithPostReactions(ctx context.Context) ([]models.Reaction, error)
	AddPostReaction(ctx context.Context, pr *models.PostReaction) error
	RemovePostReaction(ctx context.Context, id uint) error
	GetPostReaction(ctx context.Context, userID, postID uint) (*models.PostReaction, error)
	ListReactedByUser(ctx context.Context, userID uint) ([]models.PostReaction, error)
}

type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository creates a new reaction repository
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) GetByID(ctx context.Context, id uint) (*models.Reaction, error) {
	var reaction models.Reaction
	if err := r.db.WithContext(ctx).First(&reaction, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Reaction", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &reaction, nil
}

func (r *reactionRepository) ListWithPostReactions(ctx context.Context) ([]models.Reaction, error) {
	var reactions []models.Reaction
	err := r.db.WithContext(ctx).
		Preload("PostReactions").
		Order("id ASC").
		Find(&reactions).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reactions, nil
}

func (r *reactionRepository) AddPostReaction(ctx context.Context, pr *models.PostReaction) error {
	if err := r.db.WithContext(ctx).Create(pr).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reactionRepository) RemovePostReaction(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.PostReaction{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("PostReaction", id)
	}
	return nil
}

// GetPostReaction returns nil, nil when the user has not reacted to the post.
func (r *reactionRepository) GetPostReaction(ctx context.Context, userID, postID uint) (*models.PostReaction, error) {
	var pr models.PostReaction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&pr).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &pr, nil
}

func (r *reactionRepository) ListReactedByUser(ctx context.Context, userID uint) ([]models.PostReaction, error) {
	var rows []models.PostReaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Reaction").
		Find(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return rows, nil
}
