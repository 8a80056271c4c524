package models

import (
	"fmt"
	"time"
)

// TruncatedMessageLength is the cutoff used by a tweet's display string.
const TruncatedMessageLength = 40

// Tweet is a short text post owned by exactly one user, optionally carrying
// an image attachment and a monotonically increasing like counter.
type Tweet struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	User    User   `gorm:"foreignKey:UserID" json:"user"`
	Message string `gorm:"type:text;not null" json:"message"`
	// Image is the media-relative path of the attachment, empty when none.
	// Dimensions are probed once at upload time.
	Image       string `json:"image,omitempty"`
	ImageWidth  int    `json:"image_width,omitempty"`
	ImageHeight int    `json:"image_height,omitempty"`
	Likes       int    `gorm:"not null;default:0" json:"likes"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// String returns "<username>: <first 40 characters of message>...".
// The ellipsis and cutoff apply unconditionally, even to short messages.
func (t Tweet) String() string {
	message := []rune(t.Message)
	if len(message) > TruncatedMessageLength {
		message = message[:TruncatedMessageLength]
	}
	return fmt.Sprintf("%s: %s...", t.User.Username, string(message))
}

// HasImage reports whether the tweet carries an attachment.
func (t Tweet) HasImage() bool {
	return t.Image != ""
}
