package seed

import (
	"fmt"
	"os"

	"chirp/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Profile controls how much data a seeding run creates.
type Profile struct {
	Users  int  `yaml:"users"`
	Tweets int  `yaml:"tweets"`
	Clean  bool `yaml:"clean"`
}

// DefaultProfile is used when no profile file or flags are given.
var DefaultProfile = Profile{Users: 25, Tweets: 150, Clean: true}

// LoadProfile reads a seeding profile from a YAML file. Missing fields keep
// their defaults.
func LoadProfile(path string) (Profile, error) {
	profile := DefaultProfile

	raw, err := os.ReadFile(path)
	if err != nil {
		return profile, fmt.Errorf("read seed profile: %w", err)
	}
	if err := yaml.Unmarshal(raw, &profile); err != nil {
		return profile, fmt.Errorf("parse seed profile: %w", err)
	}

	if profile.Users < 1 {
		return profile, fmt.Errorf("seed profile needs at least one user, got %d", profile.Users)
	}
	if profile.Tweets < 0 {
		return profile, fmt.Errorf("seed profile tweet count must not be negative, got %d", profile.Tweets)
	}
	return profile, nil
}

// Seeder fills the database with demo users and tweets.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the given database.
func NewSeeder(db *gorm.DB) (*Seeder, error) {
	factory, err := NewFactory(db)
	if err != nil {
		return nil, err
	}
	return &Seeder{db: db, factory: factory}, nil
}

// ClearAll removes all tweets and users. Tweets first so the user FK never
// blocks the delete.
func (s *Seeder) ClearAll() error {
	if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Tweet{}).Error; err != nil {
		return fmt.Errorf("clear tweets: %w", err)
	}
	if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.User{}).Error; err != nil {
		return fmt.Errorf("clear users: %w", err)
	}
	return nil
}

// Run executes a seeding pass per the profile and returns the created users.
func (s *Seeder) Run(profile Profile) ([]models.User, error) {
	if profile.Clean {
		if err := s.ClearAll(); err != nil {
			return nil, err
		}
	}

	users := make([]models.User, 0, profile.Users)
	for i := 0; i < profile.Users; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}

	for i := 0; i < profile.Tweets; i++ {
		author := &users[s.factory.rand.Intn(len(users))]
		if _, err := s.factory.CreateTweet(author); err != nil {
			return nil, err
		}
	}

	return users, nil
}
