package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"chirp/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestServer builds a full server on an in-memory database and miniredis.
func newTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()

	db := testutil.TestDB(t)
	rdb := testutil.TestRedis(t)

	srv, err := NewServerWithDeps(testutil.TestConfig(t), db, rdb)
	require.NoError(t, err)

	return srv, srv.App(), db
}

// postForm submits a urlencoded form the way a browser would.
func postForm(t *testing.T, app *fiber.App, path string, values url.Values, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// login authenticates an existing account and returns its session cookie.
func login(t *testing.T, app *fiber.App, username, password string) *http.Cookie {
	t.Helper()

	resp := postForm(t, app, "/users/authentication", url.Values{
		"username": {username},
		"password": {password},
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	for _, cookie := range resp.Cookies() {
		if cookie.Name == "chirp_session" && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}
