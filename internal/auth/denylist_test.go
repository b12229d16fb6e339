package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDenylist(t *testing.T) (*TokenDenylist, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewTokenDenylist(client), mr
}

func TestRevokeThenIsRevoked(t *testing.T) {
	dl, _ := newTestDenylist(t)
	ctx := context.Background()

	revoked, err := dl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, dl.Revoke(ctx, "jti-1", time.Hour))

	revoked, err = dl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestRevokeEntryExpires(t *testing.T) {
	dl, mr := newTestDenylist(t)
	ctx := context.Background()

	require.NoError(t, dl.Revoke(ctx, "jti-2", time.Minute))
	mr.FastForward(2 * time.Minute)

	revoked, err := dl.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked, "denylist entries live only as long as the token would")
}

func TestRevokeExpiredTokenIsNoop(t *testing.T) {
	dl, mr := newTestDenylist(t)
	ctx := context.Background()

	require.NoError(t, dl.Revoke(ctx, "jti-3", -time.Minute))
	require.NoError(t, dl.Revoke(ctx, "", time.Hour))
	assert.Empty(t, mr.Keys())
}
