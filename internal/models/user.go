// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// MaxFieldLength bounds username, email and display name.
const MaxFieldLength = 128

// DefaultAvatar is the placeholder asset used when a user has not uploaded one.
const DefaultAvatar = "default_avatar.png"

// User represents a registered account.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"size:128;uniqueIndex;not null" json:"username"`
	Email       string    `gorm:"size:128;uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"`
	DisplayName string    `gorm:"size:128;not null" json:"display_name"`
	Avatar      string    `gorm:"not null;default:default_avatar.png" json:"avatar"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	IsStaff     bool      `gorm:"not null;default:false" json:"is_staff"`
	IsAdmin     bool      `gorm:"not null;default:false" json:"is_admin"`
	IsSuperuser bool      `gorm:"not null;default:false" json:"is_superuser"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`

	Tweets []Tweet `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"tweets,omitempty"`
}

// String returns the canonical short form of a user, its username.
func (u User) String() string {
	return u.Username
}

// AvatarURL returns the public URL for the user's avatar. Users who never
// uploaded one get the bundled placeholder.
func (u User) AvatarURL() string {
	if u.Avatar == "" || u.Avatar == DefaultAvatar {
		return "/static/" + DefaultAvatar
	}
	return "/media/" + u.Avatar
}
