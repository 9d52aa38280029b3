package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, app *fiber.App, path, auth string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if auth != "" {
		req.Header.Set(fiber.HeaderAuthorization, auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestLoginSuccess(t *testing.T) {
	app, db := newTestApp(t)
	user := createUser(t, db, "margaret", "correct horse")

	resp := postJSON(t, app, "/api/auth/login", "", fiber.Map{
		"username": "margaret",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Token    string `json:"token"`
		UserID   uint   `json:"userId"`
		Username string `json:"username"`
	}
	decodeBody(t, resp, &out)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, user.ID, out.UserID)
	assert.Equal(t, "margaret", out.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	app, db := newTestApp(t)
	createUser(t, db, "margaret", "correct horse")

	resp := postJSON(t, app, "/api/auth/login", "", fiber.Map{
		"username": "margaret",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestLoginUnknownUser(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/auth/login", "", fiber.Map{
		"username": "nobody",
		"password": "anything",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRouteRejectsGarbageToken(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer not-a-token")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
