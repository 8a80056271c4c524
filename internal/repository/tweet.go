package repository

import (
	"context"
	"errors"
	"time"

	"chirp/internal/cache"
	"chirp/internal/models"

	"gorm.io/gorm"
)

// TweetRepository defines the interface for tweet data operations
type TweetRepository interface {
	Create(ctx context.Context, tweet *models.Tweet) error
	GetByID(ctx context.Context, id uint) (*models.Tweet, error)
	List(ctx context.Context) ([]models.Tweet, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Tweet, error)
	IncrementLikes(ctx context.Context, id uint) (int, error)
}

// tweetRepository implements TweetRepository
type tweetRepository struct {
	db *gorm.DB
}

// NewTweetRepository creates a new tweet repository
func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) Create(ctx context.Context, tweet *models.Tweet) error {
	if err := r.db.WithContext(ctx).Create(tweet).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tweetRepository) GetByID(ctx context.Context, id uint) (*models.Tweet, error) {
	var tweet models.Tweet
	if err := r.db.WithContext(ctx).Preload("User").First(&tweet, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Tweet")
		}
		return nil, models.NewInternalError(err)
	}
	return &tweet, nil
}

// List returns the global feed, oldest first.
func (r *tweetRepository) List(ctx context.Context) ([]models.Tweet, error) {
	var tweets []models.Tweet
	if err := r.db.WithContext(ctx).
		Preload("User").
		Order("id ASC").
		Find(&tweets).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return tweets, nil
}

// ListByUser returns a user's tweets, newest first.
func (r *tweetRepository) ListByUser(ctx context.Context, userID uint) ([]models.Tweet, error) {
	var tweets []models.Tweet
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tweets).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return tweets, nil
}

// IncrementLikes bumps the like counter by exactly 1 in a single statement so
// concurrent likes from different sessions never lose an increment, and
// returns the new counter value. Repeated likes from the same user each count.
func (r *tweetRepository) IncrementLikes(ctx context.Context, id uint) (int, error) {
	var likes int
	res := r.db.WithContext(ctx).Raw(
		"UPDATE tweets SET likes = likes + 1, updated_at = ? WHERE id = ? RETURNING likes",
		time.Now().UTC(), id,
	).Scan(&likes)
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, models.NewNotFoundError("Tweet")
	}
	cache.InvalidateTweet(ctx, id)
	return likes, nil
}
