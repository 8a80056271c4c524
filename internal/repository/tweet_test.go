package repository

import (
	"context"
	"testing"

	"chirp/internal/models"
	"chirp/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTweetRepositoryIncrementLikes(t *testing.T) {
	db := testutil.TestDB(t)
	repo := NewTweetRepository(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "mara", "hunter2hunter2")
	tweet := testutil.CreateTweet(t, db, user, "like target")

	t.Run("increments by exactly one and returns the new value", func(t *testing.T) {
		likes, err := repo.IncrementLikes(ctx, tweet.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, likes)

		likes, err = repo.IncrementLikes(ctx, tweet.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, likes)

		var stored models.Tweet
		require.NoError(t, db.First(&stored, tweet.ID).Error)
		assert.Equal(t, 2, stored.Likes)
	})

	t.Run("unknown id is a not-found error", func(t *testing.T) {
		_, err := repo.IncrementLikes(ctx, tweet.ID+1)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
		assert.Equal(t, "Tweet not found", appErr.Message)
	})
}

func TestTweetRepositoryListOrdersOldestFirst(t *testing.T) {
	db := testutil.TestDB(t)
	repo := NewTweetRepository(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "mara", "hunter2hunter2")
	first := testutil.CreateTweet(t, db, user, "first")
	second := testutil.CreateTweet(t, db, user, "second")

	tweets, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, tweets, 2)
	assert.Equal(t, first.ID, tweets[0].ID)
	assert.Equal(t, second.ID, tweets[1].ID)
	// Authors come preloaded for rendering.
	assert.Equal(t, "mara", tweets[0].User.Username)
}

func TestTweetRepositoryListByUser(t *testing.T) {
	db := testutil.TestDB(t)
	repo := NewTweetRepository(db)
	ctx := context.Background()

	mara := testutil.CreateUser(t, db, "mara", "hunter2hunter2")
	zain := testutil.CreateUser(t, db, "zain", "hunter2hunter2")
	testutil.CreateTweet(t, db, mara, "mine")
	testutil.CreateTweet(t, db, zain, "not mine")

	tweets, err := repo.ListByUser(ctx, mara.ID)
	require.NoError(t, err)
	require.Len(t, tweets, 1)
	assert.Equal(t, "mine", tweets[0].Message)
}

func TestTweetRepositoryGetByID(t *testing.T) {
	db := testutil.TestDB(t)
	repo := NewTweetRepository(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "mara", "hunter2hunter2")
	created := testutil.CreateTweet(t, db, user, "fetch me")

	tweet, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "fetch me", tweet.Message)
	assert.Equal(t, "mara", tweet.User.Username)

	_, err = repo.GetByID(ctx, created.ID+1)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
