package picking

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisSessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisSessionStore(client, time.Hour), mr
}

func TestRedisSessionStoreRoundTrip(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	_, ok, err := store.DefaultProduct(ctx, "sess-1", "7798123456789")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.RememberDefault(ctx, "sess-1", "7798123456789", 42))

	productID, ok, err := store.DefaultProduct(ctx, "sess-1", "7798123456789")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(42), productID)

	// Defaults are scoped to the session.
	_, ok, err = store.DefaultProduct(ctx, "sess-2", "7798123456789")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedisSessionStoreExpires(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.RememberDefault(ctx, "sess-1", "7798123456789", 42))

	mr.FastForward(2 * time.Hour)

	_, ok, err := store.DefaultProduct(ctx, "sess-1", "7798123456789")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemorySessionStoreRoundTrip(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	_, ok, err := store.DefaultProduct(ctx, "sess-1", "123")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.RememberDefault(ctx, "sess-1", "123", 7))

	productID, ok, err := store.DefaultProduct(ctx, "sess-1", "123")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(7), productID)
}
