// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"lumen/internal/cache"
	"lumen/internal/models"

	"gorm.io/gorm"
)

// FeedPageSize is the fixed page size of the post feed.
const FeedPageSize = 30

// PostFilter narrows a feed query. Tag and category filters combine
// conjunctively when both are present.
type PostFilter struct {
	TagID      *uint
	CategoryID *uint
}

// PostMedia is the raw payload returned by the byte-retrieval operation.
type PostMedia struct {
	Type        string
	MediaSource []byte
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	ReplaceTags(ctx context.Context, post *models.Post, tagIDs []uint) error
	ReplaceCategories(ctx context.Context, post *models.Post, categoryIDs []uint) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetMedia(ctx context.Context, id uint) (*PostMedia, error)
	List(ctx context.Context, filter PostFilter, limit, offset int) ([]*models.Post, error)
	ListByUserID(ctx context.Context, userID uint) ([]*models.Post, error)
	ListBookmarkedByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error)
	IncrementViews(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// postListColumns selects everything except media_source, so list and detail
// queries never drag blobs into JSON responses.
var postListColumns = []string{
	"posts.id", "posts.title", "posts.short_title", "posts.description",
	"posts.location", "posts.longitude", "posts.latitude", "posts.type",
	"posts.size", "posts.video_ytb_url", "posts.image_url", "posts.views",
	"posts.user_id", "posts.created_at", "posts.updated_at",
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePostsList(ctx)
	return nil
}

func (r *postRepository) ReplaceTags(ctx context.Context, post *models.Post, tagIDs []uint) error {
	tags := make([]models.Tag, 0, len(tagIDs))
	for _, id := range tagIDs {
		tags = append(tags, models.Tag{ID: id})
	}
	if err := r.db.WithContext(ctx).Model(post).Association("Tags").Replace(tags); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) ReplaceCategories(ctx context.Context, post *models.Post, categoryIDs []uint) error {
	categories := make([]models.Category, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		categories = append(categories, models.Category{ID: id})
	}
	if err := r.db.WithContext(ctx).Model(post).Association("Categories").Replace(categories); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// preloadChildren attaches every to-many child collection a post view needs.
// Children are loaded in separate queries, so a post with N tags still yields
// exactly one root row.
func preloadChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Tags").
		Preload("Categories").
		Preload("Reactions").
		Preload("Reactions.Reaction").
		Preload("Comments").
		Preload("Comments.User").
		Preload("Bookmarks")
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := preloadChildren(r.db.WithContext(ctx)).
		Select(postListColumns).
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) GetMedia(ctx context.Context, id uint) (*PostMedia, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Select("type", "media_source").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &PostMedia{Type: post.Type, MediaSource: post.MediaSource}, nil
}

func (r *postRepository) List(ctx context.Context, filter PostFilter, limit, offset int) ([]*models.Post, error) {
	query := preloadChildren(r.db.WithContext(ctx)).
		Select(postListColumns)

	// Each filter joins its link table on an exact id, so any post matches at
	// most one link row per filter and roots stay unique.
	if filter.TagID != nil {
		query = query.
			Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Where("post_tags.tag_id = ?", *filter.TagID)
	}
	if filter.CategoryID != nil {
		query = query.
			Joins("JOIN post_categories ON post_categories.post_id = posts.id").
			Where("post_categories.category_id = ?", *filter.CategoryID)
	}

	var posts []*models.Post
	err := query.
		Order("posts.created_at DESC, posts.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListByUserID(ctx context.Context, userID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := preloadChildren(r.db.WithContext(ctx)).
		Select(postListColumns).
		Where("posts.user_id = ?", userID).
		Order("posts.created_at DESC, posts.id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListBookmarkedByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := preloadChildren(r.db.WithContext(ctx)).
		Select(postListColumns).
		Joins("JOIN bookmarks ON bookmarks.post_id = posts.id").
		Where("bookmarks.user_id = ?", userID).
		Order("posts.created_at DESC, posts.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) IncrementViews(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Post", id)
	}
	cache.Invalidate(ctx, cache.PostKey(id))
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := cascadePostDelete(tx, id); err != nil {
			return err
		}
		result := tx.Delete(&models.Post{}, id)
		if result.Error != nil {
			return models.NewInternalError(result.Error)
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("Post", id)
		}
		return nil
	})
	if err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.PostKey(id))
	cache.InvalidatePostsList(ctx)
	return nil
}
