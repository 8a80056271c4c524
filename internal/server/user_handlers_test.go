package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"chirp/internal/models"
	"chirp/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	_, app, db := newTestServer(t)

	register := func(t *testing.T, values url.Values) *http.Response {
		t.Helper()
		return postForm(t, app, "/users", values)
	}

	valid := func(username, email string) url.Values {
		return url.Values{
			"username":     {username},
			"email":        {email},
			"display_name": {"Some Body"},
			"password1":    {"hunter2hunter2"},
			"password2":    {"hunter2hunter2"},
		}
	}

	userCount := func() int64 {
		var count int64
		db.Model(&models.User{}).Count(&count)
		return count
	}

	t.Run("success redirects to login", func(t *testing.T) {
		resp := register(t, valid("mara", "mara@example.com"))
		defer resp.Body.Close()

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/users/login", resp.Header.Get("Location"))

		var user models.User
		require.NoError(t, db.Where("username = ?", "mara").First(&user).Error)
		assert.True(t, user.IsActive)
		assert.Equal(t, models.DefaultAvatar, user.Avatar)
		assert.NotEqual(t, "hunter2hunter2", user.Password)
	})

	t.Run("duplicate username adds no row", func(t *testing.T) {
		before := userCount()
		resp := register(t, valid("mara", "other@example.com"))
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), "A user with that username already exists.")
		assert.Equal(t, before, userCount())
	})

	t.Run("duplicate email adds no row", func(t *testing.T) {
		before := userCount()
		resp := register(t, valid("notmara", "mara@example.com"))
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), "A user with that email already exists.")
		assert.Equal(t, before, userCount())
	})

	t.Run("129 character username is rejected", func(t *testing.T) {
		before := userCount()
		resp := register(t, valid(strings.Repeat("a", 129), "long@example.com"))
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), "must not exceed 128 characters")
		assert.Equal(t, before, userCount())
	})

	t.Run("password mismatch is rejected", func(t *testing.T) {
		values := valid("padma", "padma@example.com")
		values.Set("password2", "something-else-14")
		before := userCount()
		resp := register(t, values)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), "didn&#39;t match")
		assert.Equal(t, before, userCount())
	})
}

func TestShowProfile(t *testing.T) {
	_, app, db := newTestServer(t)
	user := testutil.CreateUser(t, db, "mara", "hunter2hunter2")
	testutil.CreateTweet(t, db, user, "older tweet")
	testutil.CreateTweet(t, db, user, "newer tweet")

	t.Run("existing shows the user's tweets", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/mara", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), "older tweet")
		assert.Contains(t, string(body), "newer tweet")
	})

	t.Run("unknown username is 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/nobody", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestShowEditProfileRequiresSession(t *testing.T) {
	_, app, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/users/edit", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/users/login", resp.Header.Get("Location"))
}

func TestUpdateProfile(t *testing.T) {
	_, app, db := newTestServer(t)
	user := testutil.CreateUser(t, db, "mara", "hunter2hunter2")
	other := testutil.CreateUser(t, db, "zain", "hunter2hunter2")
	cookie := login(t, app, "mara", "hunter2hunter2")

	t.Run("path identity must match the session", func(t *testing.T) {
		resp := postForm(t, app, "/users/2", url.Values{
			"email":        {"hijack@example.com"},
			"display_name": {"Hijacked"},
		}, cookie)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/users/edit", resp.Header.Get("Location"))

		var stored models.User
		require.NoError(t, db.First(&stored, other.ID).Error)
		assert.Equal(t, "zain@example.com", stored.Email)
		assert.Equal(t, "zain", stored.DisplayName)

		// The redirect target shows the authorization error.
		req := httptest.NewRequest(http.MethodGet, "/users/edit", nil)
		req.AddCookie(cookie)
		for _, flash := range resp.Cookies() {
			if flash.Name == "chirp_flash" {
				req.AddCookie(flash)
			}
		}
		page, err := app.Test(req, -1)
		require.NoError(t, err)
		defer page.Body.Close()
		body, _ := io.ReadAll(page.Body)
		assert.Contains(t, string(body), "can not update")
	})

	t.Run("invalid email re-renders the form", func(t *testing.T) {
		resp := postForm(t, app, "/users/1", url.Values{
			"email":        {"not-an-email"},
			"display_name": {"Mara"},
		}, cookie)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), "invalid email format")

		var stored models.User
		require.NoError(t, db.First(&stored, user.ID).Error)
		assert.Equal(t, "mara@example.com", stored.Email)
	})

	t.Run("success persists and redirects to the profile", func(t *testing.T) {
		resp := postForm(t, app, "/users/1", url.Values{
			"email":        {"new@example.com"},
			"display_name": {"Mara Reborn"},
		}, cookie)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/users/mara", resp.Header.Get("Location"))

		var stored models.User
		require.NoError(t, db.First(&stored, user.ID).Error)
		assert.Equal(t, "new@example.com", stored.Email)
		assert.Equal(t, "Mara Reborn", stored.DisplayName)
		assert.Equal(t, "mara", stored.Username)
	})
}

func TestUpdateProfileThenLoginAgain(t *testing.T) {
	_, app, db := newTestServer(t)
	user := testutil.CreateUser(t, db, "mara", "hunter2hunter2")
	cookie := login(t, app, "mara", "hunter2hunter2")

	// Browse the edit page twice so the session lookup serves the account
	// from the cache before the update.
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/users/edit", nil)
		req.AddCookie(cookie)
		page, err := app.Test(req, -1)
		require.NoError(t, err)
		page.Body.Close()
		require.Equal(t, http.StatusOK, page.StatusCode)
	}

	resp := postForm(t, app, "/users/1", url.Values{
		"email":        {"new@example.com"},
		"display_name": {"Mara Reborn"},
	}, cookie)
	defer resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.NotEmpty(t, stored.Password)

	again := login(t, app, "mara", "hunter2hunter2")
	assert.NotEmpty(t, again.Value)
}
