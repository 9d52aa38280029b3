package server

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"lumen/internal/views"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartPost(t *testing.T, fields map[string]string, media []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if media != nil {
		part, err := w.CreateFormFile("media", "upload.png")
		require.NoError(t, err)
		_, err = part.Write(media)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestCreatePostMultipart(t *testing.T) {
	app, db := newTestApp(t)
	user := createUser(t, db, "author", "pw")

	body, contentType := multipartPost(t, map[string]string{
		"title": "Sunset over the bay",
		"type":  "image/png",
	}, []byte{0x89, 0x50, 0x4E, 0x47})

	req := httptest.NewRequest(http.MethodPost, "/api/posts", body)
	req.Header.Set(fiber.HeaderContentType, contentType)
	req.Header.Set(fiber.HeaderAuthorization, bearerFor(t, user.ID))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var view views.PostView
	decodeBody(t, resp, &view)
	assert.Equal(t, "Sunset over the bay", view.Title)
	assert.Equal(t, user.ID, view.UserID)
	assert.NotZero(t, view.ID)
}

func TestCreatePostMissingTitle(t *testing.T) {
	app, db := newTestApp(t)
	user := createUser(t, db, "author", "pw")

	body, contentType := multipartPost(t, map[string]string{
		"type": "image/png",
	}, []byte{0x01})

	req := httptest.NewRequest(http.MethodPost, "/api/posts", body)
	req.Header.Set(fiber.HeaderContentType, contentType)
	req.Header.Set(fiber.HeaderAuthorization, bearerFor(t, user.ID))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetPostsFeed(t *testing.T) {
	app, db := newTestApp(t)
	user := createUser(t, db, "author", "pw")
	createPost(t, db, user.ID, "first")
	createPost(t, db, user.ID, "second")

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var feed []views.PostView
	decodeBody(t, resp, &feed)
	require.Len(t, feed, 2)
}

func TestGetPostsNegativePage(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/posts?page=-1", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetPostNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/posts/999", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetPostInvalidID(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/posts/banana", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetPostMediaContentType(t *testing.T) {
	app, db := newTestApp(t)
	user := createUser(t, db, "author", "pw")
	post := createPost(t, db, user.ID, "with media")

	req := httptest.NewRequest(http.MethodGet, "/api/posts/"+itoa(post.ID)+"/media", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get(fiber.HeaderContentType))

	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, data)
}

func TestIncrementPostViews(t *testing.T) {
	app, db := newTestApp(t)
	user := createUser(t, db, "author", "pw")
	post := createPost(t, db, user.ID, "counted")

	req := httptest.NewRequest(http.MethodPost, "/api/posts/"+itoa(post.ID)+"/views", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	var viewCount int64
	require.NoError(t, db.Table("posts").Where("id = ?", post.ID).
		Select("views").Scan(&viewCount).Error)
	assert.Equal(t, int64(1), viewCount)
}

func TestDeletePostByStranger(t *testing.T) {
	app, db := newTestApp(t)
	author := createUser(t, db, "author", "pw")
	stranger := createUser(t, db, "stranger", "pw")
	post := createPost(t, db, author.ID, "mine")

	req := httptest.NewRequest(http.MethodDelete, "/api/posts/"+itoa(post.ID), nil)
	req.Header.Set(fiber.HeaderAuthorization, bearerFor(t, stranger.ID))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestDeletePostByAuthor(t *testing.T) {
	app, db := newTestApp(t)
	author := createUser(t, db, "author", "pw")
	post := createPost(t, db, author.ID, "mine")

	req := httptest.NewRequest(http.MethodDelete, "/api/posts/"+itoa(post.ID), nil)
	req.Header.Set(fiber.HeaderAuthorization, bearerFor(t, author.ID))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	req = httptest.NewRequest(http.MethodDelete, "/api/posts/"+itoa(post.ID), nil)
	req.Header.Set(fiber.HeaderAuthorization, bearerFor(t, author.ID))
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
