// Package session implements Redis-backed browser sessions. The cookie value
// is a signed JWT whose jti keys a Redis record; deleting the record logs the
// user out everywhere even before the token expires.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CookieName is the browser cookie carrying the session token.
const CookieName = "chirp_session"

const sessionKeyFmt = "session:%s"

// ErrInvalidSession is returned when a token is missing, malformed, expired
// or its Redis record has been revoked.
var ErrInvalidSession = errors.New("invalid or expired session")

// Store issues, resolves and revokes session tokens.
type Store struct {
	rdb    *redis.Client
	secret []byte
	ttl    time.Duration
}

// NewStore returns a session store. A nil Redis client degrades to stateless
// JWT validation with no revocation support.
func NewStore(rdb *redis.Client, secret string, ttl time.Duration) *Store {
	return &Store{rdb: rdb, secret: []byte(secret), ttl: ttl}
}

// Issue creates a session for the given user and returns the signed token.
func (s *Store) Issue(ctx context.Context, userID uint) (string, error) {
	now := time.Now()
	jti := uuid.New().String()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": "chirp",
		"exp": now.Add(s.ttl).Unix(),
		"iat": now.Unix(),
		"jti": jti,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	if s.rdb != nil {
		key := fmt.Sprintf(sessionKeyFmt, jti)
		if err := s.rdb.Set(ctx, key, userID, s.ttl).Err(); err != nil {
			return "", fmt.Errorf("store session: %w", err)
		}
	}

	return token, nil
}

// Resolve validates the token and returns the owning user ID. The Redis
// record's TTL slides on every successful resolution.
func (s *Store) Resolve(ctx context.Context, token string) (uint, error) {
	userID, jti, err := s.parse(token)
	if err != nil {
		return 0, ErrInvalidSession
	}

	if s.rdb != nil {
		key := fmt.Sprintf(sessionKeyFmt, jti)
		if err := s.rdb.Get(ctx, key).Err(); err != nil {
			return 0, ErrInvalidSession
		}
		_ = s.rdb.Expire(ctx, key, s.ttl).Err()
	}

	return userID, nil
}

// Revoke deletes the session record so the token stops resolving.
func (s *Store) Revoke(ctx context.Context, token string) error {
	_, jti, err := s.parse(token)
	if err != nil {
		// Nothing to revoke for a token we cannot parse.
		return nil
	}
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Del(ctx, fmt.Sprintf(sessionKeyFmt, jti)).Err()
}

func (s *Store) parse(tokenString string) (uint, string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, "", ErrInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", ErrInvalidSession
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, "", ErrInvalidSession
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, "", ErrInvalidSession
	}

	jti, ok := claims["jti"].(string)
	if !ok || jti == "" {
		return 0, "", ErrInvalidSession
	}

	return uint(userID), jti, nil
}
