package service

import (
	"context"

	"chirp/internal/models"
	"chirp/internal/observability"
	"chirp/internal/repository"
)

// TweetService implements composing and liking tweets.
type TweetService struct {
	tweetRepo repository.TweetRepository
}

// NewTweetService returns a new TweetService.
func NewTweetService(tweetRepo repository.TweetRepository) *TweetService {
	return &TweetService{tweetRepo: tweetRepo}
}

// ComposeInput carries the validated compose form fields. UserID always comes
// from the authenticated session, never from the client.
type ComposeInput struct {
	UserID      uint
	Message     string
	Image       string
	ImageWidth  int
	ImageHeight int
}

// Compose persists a new tweet attributed to the session user.
func (s *TweetService) Compose(ctx context.Context, in ComposeInput) (*models.Tweet, error) {
	tweet := &models.Tweet{
		UserID:      in.UserID,
		Message:     in.Message,
		Image:       in.Image,
		ImageWidth:  in.ImageWidth,
		ImageHeight: in.ImageHeight,
	}

	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, err
	}

	observability.TweetsCreated.Inc()

	// Reload with the author association for rendering.
	return s.tweetRepo.GetByID(ctx, tweet.ID)
}

// Like increments the tweet's like counter by exactly 1 and returns the new
// value. There is no dedup: the same user liking twice counts twice.
func (s *TweetService) Like(ctx context.Context, id uint) (int, error) {
	likes, err := s.tweetRepo.IncrementLikes(ctx, id)
	if err != nil {
		return 0, err
	}
	observability.LikesTotal.Inc()
	return likes, nil
}
