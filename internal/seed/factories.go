// Package seed creates demo data for development and testing.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"chirp/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoPassword is the plaintext password shared by all seeded accounts.
const DemoPassword = "chirpchirp"

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
	// Seeded accounts share one bcrypt hash; hashing per user makes large
	// seeds unbearably slow.
	passwordHash string
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) (*Factory, error) {
	gofakeit.Seed(time.Now().UnixNano())

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}

	return &Factory{
		db:           db,
		rand:         rand.New(rand.NewSource(time.Now().UnixNano())),
		passwordHash: string(hash),
	}, nil
}

// BuildUser constructs an unsaved user with fake but plausible fields.
func (f *Factory) BuildUser(overrides ...func(*models.User)) *models.User {
	first := gofakeit.FirstName()
	last := gofakeit.LastName()
	username := fmt.Sprintf("%s_%s%d", first, last, f.rand.Intn(1000))

	user := &models.User{
		Username:    username,
		Email:       fmt.Sprintf("%s@%s", username, gofakeit.DomainName()),
		Password:    f.passwordHash,
		DisplayName: first + " " + last,
		Avatar:      models.DefaultAvatar,
		IsActive:    true,
		CreatedAt:   f.pastTime(365),
	}
	for _, o := range overrides {
		o(user)
	}
	return user
}

// CreateUser persists a fake user.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := f.BuildUser(overrides...)
	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("seed user %s: %w", user.Username, err)
	}
	return user, nil
}

// BuildTweet constructs an unsaved tweet for the given author.
func (f *Factory) BuildTweet(user *models.User, overrides ...func(*models.Tweet)) *models.Tweet {
	tweet := &models.Tweet{
		UserID:    user.ID,
		Message:   gofakeit.Sentence(4 + f.rand.Intn(16)),
		Likes:     f.rand.Intn(50),
		CreatedAt: f.pastTime(90),
	}
	for _, o := range overrides {
		o(tweet)
	}
	return tweet
}

// CreateTweet persists a fake tweet attributed to the given author.
func (f *Factory) CreateTweet(user *models.User, overrides ...func(*models.Tweet)) (*models.Tweet, error) {
	tweet := f.BuildTweet(user, overrides...)
	if err := f.db.Create(tweet).Error; err != nil {
		return nil, fmt.Errorf("seed tweet for %s: %w", user.Username, err)
	}
	return tweet, nil
}

// pastTime returns a timestamp spread over the last maxDays days so seeded
// feeds look lived-in.
func (f *Factory) pastTime(maxDays int) time.Time {
	back := time.Duration(f.rand.Intn(maxDays))*24*time.Hour +
		time.Duration(f.rand.Intn(24))*time.Hour +
		time.Duration(f.rand.Intn(60))*time.Minute
	return time.Now().Add(-back)
}
