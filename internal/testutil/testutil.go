// Package testutil provides shared fixtures for backend tests.
package testutil

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sync/atomic"
	"testing"

	"chirp/internal/config"
	"chirp/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbCounter atomic.Int64

// TestDB opens a fresh in-memory SQLite database with the schema applied.
// Each call gets its own database so parallel tests never share state.
func TestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Tweet{}); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return db
}

// TestRedis starts a miniredis instance and returns a client bound to it.
// Both are torn down with the test.
func TestRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// TestConfig returns a configuration suitable for handler tests.
func TestConfig(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		Port:          "0",
		SessionSecret: "test-secret-0123456789abcdef0123456789",
		SessionTTLMin: 60,
		MediaRoot:     t.TempDir(),
		Env:           "test",
	}
}

// CreateUser persists a user with a bcrypt-hashed password and sane defaults.
func CreateUser(t *testing.T, db *gorm.DB, username, password string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := &models.User{
		Username:    username,
		Email:       username + "@example.com",
		Password:    string(hash),
		DisplayName: username,
		Avatar:      models.DefaultAvatar,
		IsActive:    true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}

// CreateTweet persists a tweet for the given user.
func CreateTweet(t *testing.T, db *gorm.DB, user *models.User, message string) *models.Tweet {
	t.Helper()

	tweet := &models.Tweet{UserID: user.ID, Message: message}
	if err := db.Create(tweet).Error; err != nil {
		t.Fatalf("create test tweet: %v", err)
	}
	tweet.User = *user
	return tweet
}

// PNGBytes encodes a solid-color PNG of the given size for upload tests.
func PNGBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 30, G: 144, B: 255, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}
