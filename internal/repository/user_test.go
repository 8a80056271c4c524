package repository

import (
	"context"
	"testing"

	"chirp/internal/cache"
	"chirp/internal/models"
	"chirp/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepositoryCreateEnforcesUniqueness(t *testing.T) {
	db := testutil.TestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	testutil.CreateUser(t, db, "mara", "hunter2hunter2")

	err := repo.Create(ctx, &models.User{
		Username:    "mara",
		Email:       "mara2@example.com",
		Password:    "x",
		DisplayName: "Mara",
	})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUserRepositoryLookups(t *testing.T) {
	db := testutil.TestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	created := testutil.CreateUser(t, db, "mara", "hunter2hunter2")

	t.Run("by username", func(t *testing.T) {
		user, err := repo.GetByUsername(ctx, "mara")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, created.ID, user.ID)
	})

	t.Run("unknown username is nil, not an error", func(t *testing.T) {
		user, err := repo.GetByUsername(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("by email", func(t *testing.T) {
		user, err := repo.GetByEmail(ctx, "mara@example.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, created.ID, user.ID)
	})

	t.Run("by id", func(t *testing.T) {
		user, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "mara", user.Username)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, created.ID+100)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}

func TestUserRepositoryDeleteCascadesTweets(t *testing.T) {
	db := testutil.TestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "mara", "hunter2hunter2")
	testutil.CreateTweet(t, db, user, "doomed")

	require.NoError(t, repo.Delete(ctx, user.ID))

	var users, tweets int64
	db.Model(&models.User{}).Count(&users)
	db.Model(&models.Tweet{}).Count(&tweets)
	assert.Zero(t, users)
	assert.Zero(t, tweets)
}

func TestUserRepositoryGetByIDKeepsPasswordThroughCache(t *testing.T) {
	db := testutil.TestDB(t)
	cache.SetClient(testutil.TestRedis(t))
	t.Cleanup(func() { cache.SetClient(nil) })

	repo := NewUserRepository(db)
	ctx := context.Background()

	created := testutil.CreateUser(t, db, "mara", "hunter2hunter2")

	// First lookup fills the cache, second is served from it.
	_, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	cached, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Password, cached.Password)

	// Saving the cached copy must not blank the stored hash.
	cached.DisplayName = "Mara M."
	require.NoError(t, repo.Update(ctx, cached))

	var stored models.User
	require.NoError(t, db.First(&stored, created.ID).Error)
	assert.Equal(t, created.Password, stored.Password)
}
