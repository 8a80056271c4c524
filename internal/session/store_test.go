package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-0123456789abcdef0123456789"

func newTestStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewStore(client, testSecret, ttl), mr
}

func TestIssueAndResolve(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	token, err := store.Issue(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := store.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestResolveRejectsGarbage(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)

	_, err := store.Resolve(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestResolveRejectsWrongSecret(t *testing.T) {
	store, mr := newTestStore(t, time.Hour)
	ctx := context.Background()

	token, err := store.Issue(ctx, 1)
	require.NoError(t, err)

	other := NewStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "another-secret-entirely-0123456789", time.Hour)
	_, err = other.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestRevokeStopsResolution(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	token, err := store.Issue(ctx, 7)
	require.NoError(t, err)

	require.NoError(t, store.Revoke(ctx, token))

	_, err = store.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestRevokeUnparseableTokenIsNoop(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	assert.NoError(t, store.Revoke(context.Background(), "garbage"))
}

func TestExpiredRecordRejected(t *testing.T) {
	store, mr := newTestStore(t, time.Hour)
	ctx := context.Background()

	token, err := store.Issue(ctx, 9)
	require.NoError(t, err)

	// The Redis record dying logs the session out even though the JWT is
	// still within its exp window.
	mr.FastForward(2 * time.Hour)

	_, err = store.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestResolveSlidesTTL(t *testing.T) {
	store, mr := newTestStore(t, time.Hour)
	ctx := context.Background()

	token, err := store.Issue(ctx, 3)
	require.NoError(t, err)

	mr.FastForward(45 * time.Minute)
	_, err = store.Resolve(ctx, token)
	require.NoError(t, err)

	// Without the slide this would put us past the original expiry.
	mr.FastForward(45 * time.Minute)
	userID, err := store.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, uint(3), userID)
}

func TestNilRedisDegradesToStatelessValidation(t *testing.T) {
	store := NewStore(nil, testSecret, time.Hour)
	ctx := context.Background()

	token, err := store.Issue(ctx, 5)
	require.NoError(t, err)

	userID, err := store.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, uint(5), userID)

	// Revocation is unsupported without Redis; the token keeps resolving.
	require.NoError(t, store.Revoke(ctx, token))
	_, err = store.Resolve(ctx, token)
	assert.NoError(t, err)
}
