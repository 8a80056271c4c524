// Package presenter projects persisted entities into display-ready fields for
// the rendering layer. Presenters hold no state beyond the wrapped record and
// perform no persistence.
package presenter

import (
	"time"

	"chirp/internal/media"
	"chirp/internal/models"
)

// TweetPresenter is a read-only view over a tweet and its author.
// The wrapped tweet must have its User association loaded.
type TweetPresenter struct {
	tweet models.Tweet
}

// NewTweet wraps a tweet for rendering.
func NewTweet(t models.Tweet) TweetPresenter {
	return TweetPresenter{tweet: t}
}

// NewTweets wraps a slice of tweets for rendering.
func NewTweets(tweets []models.Tweet) []TweetPresenter {
	presenters := make([]TweetPresenter, len(tweets))
	for i, t := range tweets {
		presenters[i] = NewTweet(t)
	}
	return presenters
}

func (p TweetPresenter) ID() uint {
	return p.tweet.ID
}

func (p TweetPresenter) Username() string {
	return p.tweet.User.Username
}

func (p TweetPresenter) DisplayName() string {
	return p.tweet.User.DisplayName
}

func (p TweetPresenter) AvatarURL() string {
	return p.tweet.User.AvatarURL()
}

// Message returns the full message text. Truncation is a display default of
// the entity's string form, not of this projection.
func (p TweetPresenter) Message() string {
	return p.tweet.Message
}

func (p TweetPresenter) HasImage() bool {
	return p.tweet.HasImage()
}

// ImageURL is meaningful only when HasImage reports true.
func (p TweetPresenter) ImageURL() string {
	return media.URL(p.tweet.Image)
}

func (p TweetPresenter) ImageWidth() int {
	return p.tweet.ImageWidth
}

func (p TweetPresenter) ImageHeight() int {
	return p.tweet.ImageHeight
}

func (p TweetPresenter) Likes() int {
	return p.tweet.Likes
}

// ButtonClass selects the like button style: the liked variant as soon as the
// counter is nonzero.
func (p TweetPresenter) ButtonClass() string {
	if p.tweet.Likes == 0 {
		return "tweet-footer__likes"
	}
	return "tweet-footer__liked"
}

func (p TweetPresenter) CreatedAt() time.Time {
	return p.tweet.CreatedAt
}
