package service

import (
	"context"

	"lumen/internal/models"
	"lumen/internal/observability"
	"lumen/internal/repository"
	"lumen/internal/views"
)

type BookmarkService struct {
	bookmarkRepo repository.BookmarkRepository
	postRepo     repository.PostRepository
	userRepo     repository.UserRepository
}

func NewBookmarkService(
	bookmarkRepo repository.BookmarkRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
) *BookmarkService {
	return &BookmarkService{
		bookmarkRepo: bookmarkRepo,
		postRepo:     postRepo,
		userRepo:     userRepo,
	}
}

// AddBookmark saves a post for a user. The user and the post are checked
// independently so the error names the missing resource.
func (s *BookmarkService) AddBookmark(ctx context.Context, userID, postID uint) (*views.BookmarkView, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	existing, err := s.bookmarkRepo.GetByUserAndPost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Post is already bookmarked")
	}

	bookmark := &models.Bookmark{UserID: userID, PostID: postID}
	if err := s.bookmarkRepo.Create(ctx, bookmark); err != nil {
		return nil, err
	}

	observability.BookmarkEvents.WithLabelValues("add").Inc()
	view := views.BuildBookmarkView(bookmark)
	return &view, nil
}

// ListBookmarkedPosts returns one page of the user's saved posts, each view
// carrying the user's own bookmark id and flag.
func (s *BookmarkService) ListBookmarkedPosts(ctx context.Context, userID uint, page int) ([]views.PostView, error) {
	if page < 0 {
		return nil, models.NewValidationError("Page must not be negative")
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	posts, err := s.postRepo.ListBookmarkedByUser(ctx, userID, repository.FeedPageSize, page*repository.FeedPageSize)
	if err != nil {
		return nil, err
	}

	out := make([]views.PostView, 0, len(posts))
	for _, p := range posts {
		out = append(out, views.BuildBookmarkedPostView(p, userID))
	}
	return out, nil
}

// DeleteBookmark removes a saved post by bookmark id. The bookmark must
// belong to the calling user.
func (s *BookmarkService) DeleteBookmark(ctx context.Context, userID, bookmarkID uint) error {
	bookmark, err := s.bookmarkRepo.GetByID(ctx, bookmarkID)
	if err != nil {
		return err
	}
	if bookmark.UserID != userID {
		return models.NewForbiddenError("Bookmark belongs to another user")
	}
	if err := s.bookmarkRepo.Delete(ctx, bookmarkID); err != nil {
		return err
	}
	observability.BookmarkEvents.WithLabelValues("remove").Inc()
	return nil
}
