package redislock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rpggio/showbill/internal/invoice"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestLocker_Exclusive(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	locker := New(client, time.Minute, nil)

	unlock, err := locker.Lock(ctx, "showbill:sync:s1")
	require.NoError(t, err)
	require.True(t, mr.Exists("showbill:sync:s1"))

	_, err = locker.Lock(ctx, "showbill:sync:s1")
	require.ErrorIs(t, err, invoice.ErrLocked)

	other, err := locker.Lock(ctx, "showbill:sync:s2")
	require.NoError(t, err)
	other()

	unlock()
	require.False(t, mr.Exists("showbill:sync:s1"))

	again, err := locker.Lock(ctx, "showbill:sync:s1")
	require.NoError(t, err)
	again()
}

func TestLocker_ExpiresAfterTTL(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	locker := New(client, 30*time.Second, nil)

	_, err := locker.Lock(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, 30*time.Second, mr.TTL("k"))

	mr.FastForward(31 * time.Second)

	_, err = locker.Lock(ctx, "k")
	require.NoError(t, err)
}

func TestLocker_StaleReleaseKeepsNewHolder(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	locker := New(client, 10*time.Second, nil)

	stale, err := locker.Lock(ctx, "k")
	require.NoError(t, err)
	mr.FastForward(11 * time.Second)

	_, err = locker.Lock(ctx, "k")
	require.NoError(t, err)

	stale()
	require.True(t, mr.Exists("k"))
}

func TestLocker_ReleaseAfterCancel(t *testing.T) {
	mr, client := newTestRedis(t)
	locker := New(client, time.Minute, nil)

	ctx, cancel := context.WithCancel(context.Background())
	unlock, err := locker.Lock(ctx, "k")
	require.NoError(t, err)

	cancel()
	unlock()
	require.False(t, mr.Exists("k"))
}

func TestLocker_RedisDown(t *testing.T) {
	mr, client := newTestRedis(t)
	mr.Close()

	_, err := New(client, 0, nil).Lock(context.Background(), "k")
	require.Error(t, err)
	require.NotErrorIs(t, err, invoice.ErrLocked)
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()

	client, err := NewClient(context.Background(), Config{Addr: addr})
	require.NoError(t, err)
	client.Close()

	mr.Close()
	_, err = NewClient(context.Background(), Config{Addr: addr})
	require.Error(t, err)
}
