// Package service implements the application's business logic on top of the
// repository layer. Services validate input, enforce authorization and
// assemble the response views.
package service

import (
	"context"
	"net/url"
	"strings"

	"lumen/internal/cache"
	"lumen/internal/middleware"
	"lumen/internal/models"
	"lumen/internal/observability"
	"lumen/internal/repository"
	"lumen/internal/views"
)

type PostService struct {
	postRepo     repository.PostRepository
	userRepo     repository.UserRepository
	tagRepo      repository.TagRepository
	categoryRepo repository.CategoryRepository
}

type CreatePostInput struct {
	UserID      uint
	Title       string
	ShortTitle  string
	Description string
	Location    string
	Longitude   string
	Latitude    string
	Type        string
	Size        float64
	MediaSource []byte
	VideoYtbURL string
	ImageURL    string
	TagIDs      []uint
	CategoryIDs []uint
}

type ListPostsInput struct {
	Page          int
	TagID         *uint
	CategoryID    *uint
	CurrentUserID uint
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	tagRepo repository.TagRepository,
	categoryRepo repository.CategoryRepository,
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		userRepo:     userRepo,
		tagRepo:      tagRepo,
		categoryRepo: categoryRepo,
	}
}

func isYouTubeURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	return host == "youtube.com" || host == "youtu.be" || host == "m.youtube.com"
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*views.PostView, error) {
	const maxTitleLen = 255

	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 255 characters)")
	}
	if in.Type == "" {
		return nil, models.NewValidationError("Type is required")
	}

	if in.Type == models.PostTypeVideo {
		if in.VideoYtbURL == "" {
			return nil, models.NewValidationError("videoYtbUrl is required for video posts")
		}
		if !isYouTubeURL(in.VideoYtbURL) {
			return nil, models.NewValidationError("videoYtbUrl must be a valid YouTube URL")
		}
	} else {
		if !strings.HasPrefix(in.Type, "image/") && !strings.HasPrefix(in.Type, "video/") {
			return nil, models.NewValidationError("Type must be a media MIME type or \"video\"")
		}
		if len(in.MediaSource) == 0 {
			return nil, models.NewValidationError("Media payload is required for uploaded posts")
		}
	}

	// Author and every referenced tag/category must exist before anything
	// is written.
	if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}
	if len(in.TagIDs) > 0 {
		ok, err := s.tagRepo.ExistAll(ctx, in.TagIDs)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, models.NewNotFoundMessageError("One or more tags not found")
		}
	}
	if len(in.CategoryIDs) > 0 {
		ok, err := s.categoryRepo.ExistAll(ctx, in.CategoryIDs)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, models.NewNotFoundMessageError("One or more categories not found")
		}
	}

	post := &models.Post{
		Title:       in.Title,
		ShortTitle:  in.ShortTitle,
		Description: in.Description,
		Location:    in.Location,
		Longitude:   in.Longitude,
		Latitude:    in.Latitude,
		Type:        in.Type,
		Size:        in.Size,
		MediaSource: in.MediaSource,
		VideoYtbURL: in.VideoYtbURL,
		ImageURL:    in.ImageURL,
		UserID:      in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	// The post row exists from here on. If tag or category attachment fails
	// the post is reported as partially created rather than rolled back.
	if len(in.TagIDs) > 0 {
		if err := s.postRepo.ReplaceTags(ctx, post, in.TagIDs); err != nil {
			return nil, models.NewPartialFailureError("Post created but attaching tags failed", err)
		}
	}
	if len(in.CategoryIDs) > 0 {
		if err := s.postRepo.ReplaceCategories(ctx, post, in.CategoryIDs); err != nil {
			return nil, models.NewPartialFailureError("Post created but attaching categories failed", err)
		}
	}

	created, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	view := views.BuildPostView(created)
	return &view, nil
}

// ListPosts returns one feed page of post views, newest first. Page numbering
// starts at zero and each page holds repository.FeedPageSize posts.
func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]views.PostView, error) {
	if in.Page < 0 {
		return nil, models.NewValidationError("Page must not be negative")
	}

	filter := repository.PostFilter{TagID: in.TagID, CategoryID: in.CategoryID}
	offset := in.Page * repository.FeedPageSize

	observability.FeedRequests.WithLabelValues(feedFilterLabel(filter)).Inc()

	// Only the unfiltered first page is hot enough to cache, and only for
	// anonymous viewers: bookmark state is per-user and must not be shared.
	if in.CurrentUserID == 0 && in.Page == 0 && filter.TagID == nil && filter.CategoryID == nil {
		var cached []views.PostView
		err := cache.Aside(ctx, cache.FeedKey(0), &cached, cache.FeedTTL, func() error {
			posts, fetchErr := s.postRepo.List(ctx, filter, repository.FeedPageSize, 0)
			if fetchErr != nil {
				return fetchErr
			}
			cached = views.BuildPostViews(posts)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return cached, nil
	}

	posts, err := s.postRepo.List(ctx, filter, repository.FeedPageSize, offset)
	if err != nil {
		return nil, err
	}
	if in.CurrentUserID != 0 {
		out := make([]views.PostView, 0, len(posts))
		for _, post := range posts {
			out = append(out, views.BuildBookmarkedPostView(post, in.CurrentUserID))
		}
		return out, nil
	}
	return views.BuildPostViews(posts), nil
}

func feedFilterLabel(f repository.PostFilter) string {
	switch {
	case f.TagID != nil && f.CategoryID != nil:
		return "both"
	case f.TagID != nil:
		return "tag"
	case f.CategoryID != nil:
		return "category"
	default:
		return "none"
	}
}

// GetPost returns the full view of one post. When currentUserID is non-zero
// the view carries the viewer's bookmark state.
func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID uint) (*views.PostView, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var view views.PostView
	if currentUserID != 0 {
		view = views.BuildBookmarkedPostView(post, currentUserID)
	} else {
		view = views.BuildPostView(post)
	}
	return &view, nil
}

// GetMedia returns the stored media bytes and content type for a post.
// This is the only post read that touches the media column.
func (s *PostService) GetMedia(ctx context.Context, id uint) (*repository.PostMedia, error) {
	media, err := s.postRepo.GetMedia(ctx, id)
	if err != nil {
		return nil, err
	}
	middleware.MediaServed.WithLabelValues("post").Inc()
	return media, nil
}

// IncrementViews records one view of the post.
func (s *PostService) IncrementViews(ctx context.Context, id uint) error {
	if err := s.postRepo.IncrementViews(ctx, id); err != nil {
		return err
	}
	middleware.PostViews.Inc()
	return nil
}

// ListUserPosts returns all posts by a single author, newest first.
func (s *PostService) ListUserPosts(ctx context.Context, userID uint) ([]views.PostView, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	posts, err := s.postRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return views.BuildPostViews(posts), nil
}

// DeletePost removes a post and its dependent rows. Only the author may
// delete their own post here; administrative deletion goes through AdminService.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return err
	}
	if post.UserID != in.UserID {
		return models.NewForbiddenError("Only the author can delete this post")
	}
	return s.postRepo.Delete(ctx, in.PostID)
}
