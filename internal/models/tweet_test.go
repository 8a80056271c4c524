package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTweetString(t *testing.T) {
	user := User{Username: "mara"}

	t.Run("long message is cut at 40 characters", func(t *testing.T) {
		message := strings.Repeat("a", 60)
		tweet := Tweet{User: user, Message: message}

		assert.Equal(t, "mara: "+message[:40]+"...", tweet.String())
	})

	t.Run("short message still gets the ellipsis", func(t *testing.T) {
		tweet := Tweet{User: user, Message: "hi"}

		assert.Equal(t, "mara: hi...", tweet.String())
	})

	t.Run("cut respects multibyte runes", func(t *testing.T) {
		message := strings.Repeat("ü", 50)
		tweet := Tweet{User: user, Message: message}

		assert.Equal(t, "mara: "+strings.Repeat("ü", 40)+"...", tweet.String())
	})
}

func TestUserString(t *testing.T) {
	assert.Equal(t, "mara", User{Username: "mara", DisplayName: "Mara"}.String())
}

func TestUserAvatarURL(t *testing.T) {
	assert.Equal(t, "/static/default_avatar.png", User{}.AvatarURL())
	assert.Equal(t, "/static/default_avatar.png", User{Avatar: DefaultAvatar}.AvatarURL())
	assert.Equal(t, "/media/avatars/abc.png", User{Avatar: "avatars/abc.png"}.AvatarURL())
}

func TestTweetHasImage(t *testing.T) {
	assert.False(t, Tweet{}.HasImage())
	assert.True(t, Tweet{Image: "attachments/x.png"}.HasImage())
}
