package cache

import (
	"context"
	"fmt"
	"time"
)

// The user key is versioned: the cached payload changed shape when the
// password hash was added to it, and v1 entries must not be read back.
const (
	UserKeyPrefix  = "user:v2:%d"
	TweetKeyPrefix = "tweet:%d"
)

const (
	UserTTL  = 5 * time.Minute
	TweetTTL = 30 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func TweetKey(tweetID uint) string {
	return fmt.Sprintf(TweetKeyPrefix, tweetID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateTweet(ctx context.Context, tweetID uint) {
	Invalidate(ctx, TweetKey(tweetID))
}
