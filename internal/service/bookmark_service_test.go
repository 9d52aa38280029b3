package service

import (
	"context"
	"testing"

	"lumen/internal/models"
	"lumen/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddBookmarkUserNotFound(t *testing.T) {
	userRepo := &userRepoStub{getByIDFn: missingUser}
	svc := NewBookmarkService(&bookmarkRepoStub{}, &postRepoStub{}, userRepo)

	_, err := svc.AddBookmark(context.Background(), 1, 2)
	require.Error(t, err)
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
}

func TestAddBookmarkPostNotFound(t *testing.T) {
	userRepo := &userRepoStub{getByIDFn: existingUser()}
	postRepo := &postRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post", id)
		},
	}
	svc := NewBookmarkService(&bookmarkRepoStub{}, postRepo, userRepo)

	_, err := svc.AddBookmark(context.Background(), 1, 2)
	require.Error(t, err)
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
}

func TestAddBookmarkDuplicate(t *testing.T) {
	userRepo := &userRepoStub{getByIDFn: existingUser()}
	postRepo := &postRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id}, nil
		},
	}
	bookmarkRepo := &bookmarkRepoStub{
		getByUserAndPostFn: func(_ context.Context, userID, postID uint) (*models.Bookmark, error) {
			return &models.Bookmark{ID: 5, UserID: userID, PostID: postID}, nil
		},
	}
	svc := NewBookmarkService(bookmarkRepo, postRepo, userRepo)

	_, err := svc.AddBookmark(context.Background(), 1, 2)
	require.Error(t, err)
	assert.Equal(t, models.KindConflict, models.KindOf(err))
}

func TestAddBookmarkSuccess(t *testing.T) {
	userRepo := &userRepoStub{getByIDFn: existingUser()}
	postRepo := &postRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id}, nil
		},
	}
	bookmarkRepo := &bookmarkRepoStub{
		getByUserAndPostFn: func(_ context.Context, _, _ uint) (*models.Bookmark, error) {
			return nil, nil
		},
		createFn: func(_ context.Context, bookmark *models.Bookmark) error {
			bookmark.ID = 8
			return nil
		},
	}
	svc := NewBookmarkService(bookmarkRepo, postRepo, userRepo)

	view, err := svc.AddBookmark(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, uint(8), view.BookmarkID)
	assert.Equal(t, uint(1), view.UserID)
	assert.Equal(t, uint(2), view.PostID)
}

func TestListBookmarkedPostsHoistsFlag(t *testing.T) {
	userRepo := &userRepoStub{getByIDFn: existingUser()}
	postRepo := &postRepoStub{
		listBookmarkedByUserFn: func(_ context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
			assert.Equal(t, repository.FeedPageSize, limit)
			assert.Equal(t, 0, offset)
			return []*models.Post{
				{
					ID: 1,
					Bookmarks: []models.Bookmark{
						{ID: 40, UserID: userID, PostID: 1},
					},
				},
			}, nil
		},
	}
	svc := NewBookmarkService(&bookmarkRepoStub{}, postRepo, userRepo)

	out, err := svc.ListBookmarkedPosts(context.Background(), 9, 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].IsBookmarked)
	assert.Equal(t, uint(40), out[0].BookmarkID)
}

func TestListBookmarkedPostsNegativePage(t *testing.T) {
	svc := NewBookmarkService(&bookmarkRepoStub{}, &postRepoStub{}, &userRepoStub{})

	_, err := svc.ListBookmarkedPosts(context.Background(), 9, -1)
	require.Error(t, err)
	assert.Equal(t, models.KindValidation, models.KindOf(err))
}

func TestDeleteBookmarkOwnership(t *testing.T) {
	bookmarkRepo := &bookmarkRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Bookmark, error) {
			return &models.Bookmark{ID: id, UserID: 3, PostID: 1}, nil
		},
	}
	svc := NewBookmarkService(bookmarkRepo, &postRepoStub{}, &userRepoStub{})

	err := svc.DeleteBookmark(context.Background(), 4, 10)
	require.Error(t, err)
	assert.Equal(t, models.KindForbidden, models.KindOf(err))
}

func TestDeleteBookmarkMissing(t *testing.T) {
	bookmarkRepo := &bookmarkRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Bookmark, error) {
			return nil, models.NewNotFoundError("Bookmark", id)
		},
	}
	svc := NewBookmarkService(bookmarkRepo, &postRepoStub{}, &userRepoStub{})

	err := svc.DeleteBookmark(context.Background(), 4, 10)
	require.Error(t, err)
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
}

func TestDeleteBookmarkSuccess(t *testing.T) {
	deleted := false
	bookmarkRepo := &bookmarkRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Bookmark, error) {
			return &models.Bookmark{ID: id, UserID: 4, PostID: 1}, nil
		},
		deleteFn: func(_ context.Context, _ uint) error {
			deleted = true
			return nil
		},
	}
	svc := NewBookmarkService(bookmarkRepo, &postRepoStub{}, &userRepoStub{})

	require.NoError(t, svc.DeleteBookmark(context.Background(), 4, 10))
	assert.True(t, deleted)
}
