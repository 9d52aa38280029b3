package service

import (
	"context"
	"errors"
	"testing"

	"lumen/internal/models"
	"lumen/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreatePostInput() CreatePostInput {
	return CreatePostInput{
		UserID:      1,
		Title:       "Sunset over the bay",
		Type:        "image/jpeg",
		MediaSource: []byte{0xFF, 0xD8},
	}
}

func newPostService(postRepo *postRepoStub, tagRepo *tagRepoStub, categoryRepo *categoryRepoStub) *PostService {
	userRepo := &userRepoStub{getByIDFn: existingUser()}
	return NewPostService(postRepo, userRepo, tagRepo, categoryRepo)
}

func TestCreatePostValidation(t *testing.T) {
	svc := newPostService(&postRepoStub{}, &tagRepoStub{}, &categoryRepoStub{})

	tests := []struct {
		name   string
		mutate func(*CreatePostInput)
	}{
		{"missing title", func(in *CreatePostInput) { in.Title = "" }},
		{"blank title", func(in *CreatePostInput) { in.Title = "   " }},
		{"missing type", func(in *CreatePostInput) { in.Type = "" }},
		{"non-media type", func(in *CreatePostInput) { in.Type = "application/pdf" }},
		{"media without payload", func(in *CreatePostInput) { in.MediaSource = nil }},
		{"video without url", func(in *CreatePostInput) {
			in.Type = models.PostTypeVideo
			in.VideoYtbURL = ""
		}},
		{"video with non-youtube url", func(in *CreatePostInput) {
			in.Type = models.PostTypeVideo
			in.VideoYtbURL = "https://vimeo.com/12345"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validCreatePostInput()
			tt.mutate(&in)
			_, err := svc.CreatePost(context.Background(), in)
			require.Error(t, err)
			assert.Equal(t, models.KindValidation, models.KindOf(err))
		})
	}
}

func TestCreatePostMissingTag(t *testing.T) {
	tagRepo := &tagRepoStub{
		existAllFn: func(_ context.Context, _ []uint) (bool, error) { return false, nil },
	}
	svc := newPostService(&postRepoStub{}, tagRepo, &categoryRepoStub{})

	in := validCreatePostInput()
	in.TagIDs = []uint{3, 99}
	_, err := svc.CreatePost(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
}

func TestCreatePostMissingAuthor(t *testing.T) {
	userRepo := &userRepoStub{getByIDFn: missingUser}
	svc := NewPostService(&postRepoStub{}, userRepo, &tagRepoStub{}, &categoryRepoStub{})

	_, err := svc.CreatePost(context.Background(), validCreatePostInput())
	require.Error(t, err)
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
}

func TestCreatePostPartialFailureOnTagAttach(t *testing.T) {
	postRepo := &postRepoStub{
		createFn: func(_ context.Context, post *models.Post) error {
			post.ID = 7
			return nil
		},
		replaceTagsFn: func(_ context.Context, _ *models.Post, _ []uint) error {
			return models.NewInternalError(errors.New("join table write failed"))
		},
	}
	tagRepo := &tagRepoStub{
		existAllFn: func(_ context.Context, _ []uint) (bool, error) { return true, nil },
	}
	svc := newPostService(postRepo, tagRepo, &categoryRepoStub{})

	in := validCreatePostInput()
	in.TagIDs = []uint{3}
	_, err := svc.CreatePost(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, models.KindPartialFailure, models.KindOf(err))
}

func TestCreatePostSuccess(t *testing.T) {
	var storedID uint
	postRepo := &postRepoStub{
		createFn: func(_ context.Context, post *models.Post) error {
			post.ID = 11
			storedID = post.ID
			return nil
		},
		replaceTagsFn: func(_ context.Context, _ *models.Post, _ []uint) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{
				ID:    id,
				Title: "Sunset over the bay",
				Type:  "image/jpeg",
				Tags:  []models.Tag{{ID: 3, TagName: "landscape"}},
			}, nil
		},
	}
	tagRepo := &tagRepoStub{
		existAllFn: func(_ context.Context, _ []uint) (bool, error) { return true, nil },
	}
	svc := newPostService(postRepo, tagRepo, &categoryRepoStub{})

	in := validCreatePostInput()
	in.TagIDs = []uint{3}
	view, err := svc.CreatePost(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, uint(11), storedID)
	assert.Equal(t, uint(11), view.ID)
	require.Len(t, view.Tags, 1)
	assert.Equal(t, "landscape", view.Tags[0].TagName)
}

func TestListPostsNegativePage(t *testing.T) {
	svc := newPostService(&postRepoStub{}, &tagRepoStub{}, &categoryRepoStub{})

	_, err := svc.ListPosts(context.Background(), ListPostsInput{Page: -1})
	require.Error(t, err)
	assert.Equal(t, models.KindValidation, models.KindOf(err))
}

func TestListPostsPaging(t *testing.T) {
	var gotLimit, gotOffset int
	postRepo := &postRepoStub{
		listFn: func(_ context.Context, _ repository.PostFilter, limit, offset int) ([]*models.Post, error) {
			gotLimit, gotOffset = limit, offset
			return nil, nil
		},
	}
	svc := newPostService(postRepo, &tagRepoStub{}, &categoryRepoStub{})

	out, err := svc.ListPosts(context.Background(), ListPostsInput{Page: 2})
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, repository.FeedPageSize, gotLimit)
	assert.Equal(t, 2*repository.FeedPageSize, gotOffset)
}

func TestListPostsFilterPassthrough(t *testing.T) {
	tagID := uint(4)
	var gotFilter repository.PostFilter
	postRepo := &postRepoStub{
		listFn: func(_ context.Context, filter repository.PostFilter, _, _ int) ([]*models.Post, error) {
			gotFilter = filter
			return nil, nil
		},
	}
	svc := newPostService(postRepo, &tagRepoStub{}, &categoryRepoStub{})

	// A filtered page zero must bypass the feed cache and hit the repository.
	_, err := svc.ListPosts(context.Background(), ListPostsInput{Page: 0, TagID: &tagID})
	require.NoError(t, err)
	require.NotNil(t, gotFilter.TagID)
	assert.Equal(t, tagID, *gotFilter.TagID)
}

func TestGetPostHoistsViewerBookmark(t *testing.T) {
	postRepo := &postRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{
				ID: id,
				Bookmarks: []models.Bookmark{
					{ID: 21, UserID: 5, PostID: id},
					{ID: 22, UserID: 9, PostID: id},
				},
			}, nil
		},
	}
	svc := newPostService(postRepo, &tagRepoStub{}, &categoryRepoStub{})

	view, err := svc.GetPost(context.Background(), 1, 9)
	require.NoError(t, err)
	assert.True(t, view.IsBookmarked)
	assert.Equal(t, uint(22), view.BookmarkID)

	anon, err := svc.GetPost(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.False(t, anon.IsBookmarked)
	assert.Zero(t, anon.BookmarkID)
}

func TestListPostsHoistsViewerBookmark(t *testing.T) {
	feed := []*models.Post{
		{ID: 1, Bookmarks: []models.Bookmark{{ID: 31, UserID: 9, PostID: 1}}},
		{ID: 2, Bookmarks: []models.Bookmark{{ID: 32, UserID: 5, PostID: 2}}},
	}
	calls := 0
	postRepo := &postRepoStub{
		listFn: func(context.Context, repository.PostFilter, int, int) ([]*models.Post, error) {
			calls++
			return feed, nil
		},
	}
	svc := newPostService(postRepo, &tagRepoStub{}, &categoryRepoStub{})

	// An authenticated page zero skips the shared feed cache so the
	// viewer-specific bookmark fields never leak between users.
	out, err := svc.ListPosts(context.Background(), ListPostsInput{Page: 0, CurrentUserID: 9})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 1, calls)
	assert.True(t, out[0].IsBookmarked)
	assert.Equal(t, uint(31), out[0].BookmarkID)
	assert.False(t, out[1].IsBookmarked)
	assert.Zero(t, out[1].BookmarkID)

	anon, err := svc.ListPosts(context.Background(), ListPostsInput{Page: 0})
	require.NoError(t, err)
	require.Len(t, anon, 2)
	assert.False(t, anon[0].IsBookmarked)
}

func TestDeletePostForbiddenForNonAuthor(t *testing.T) {
	postRepo := &postRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 1}, nil
		},
	}
	svc := newPostService(postRepo, &tagRepoStub{}, &categoryRepoStub{})

	err := svc.DeletePost(context.Background(), DeletePostInput{UserID: 2, PostID: 3})
	require.Error(t, err)
	assert.Equal(t, models.KindForbidden, models.KindOf(err))
}

func TestDeletePostByAuthor(t *testing.T) {
	deleted := false
	postRepo := &postRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 2}, nil
		},
		deleteFn: func(_ context.Context, _ uint) error {
			deleted = true
			return nil
		},
	}
	svc := newPostService(postRepo, &tagRepoStub{}, &categoryRepoStub{})

	require.NoError(t, svc.DeletePost(context.Background(), DeletePostInput{UserID: 2, PostID: 3}))
	assert.True(t, deleted)
}

func TestIncrementViewsPassthrough(t *testing.T) {
	postRepo := &postRepoStub{
		incrementViewsFn: func(_ context.Context, id uint) error {
			if id != 4 {
				return models.NewNotFoundError("Post", id)
			}
			return nil
		},
	}
	svc := newPostService(postRepo, &tagRepoStub{}, &categoryRepoStub{})

	assert.NoError(t, svc.IncrementViews(context.Background(), 4))
	err := svc.IncrementViews(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
}
