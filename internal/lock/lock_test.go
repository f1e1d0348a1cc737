package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocker(t *testing.T, wait time.Duration) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisLocker(client, 5*time.Second, wait), mr
}

func TestLockAcquireAndRelease(t *testing.T) {
	locker, mr := newTestLocker(t, time.Second)

	release, err := locker.Lock(context.Background(), "TLS-SO@2024-03-05")
	require.NoError(t, err)
	assert.True(t, mr.Exists("lock:TLS-SO@2024-03-05"))
	assert.Equal(t, 5*time.Second, mr.TTL("lock:TLS-SO@2024-03-05"))

	release()
	assert.False(t, mr.Exists("lock:TLS-SO@2024-03-05"))
}

func TestLockContentionTimesOut(t *testing.T) {
	locker, _ := newTestLocker(t, 150*time.Millisecond)

	release, err := locker.Lock(context.Background(), "k")
	require.NoError(t, err)
	defer release()

	_, err = locker.Lock(context.Background(), "k")
	assert.ErrorIs(t, err, ErrLockTimeout)
}

func TestLockWaitsForRelease(t *testing.T) {
	locker, _ := newTestLocker(t, 2*time.Second)

	release, err := locker.Lock(context.Background(), "k")
	require.NoError(t, err)

	go func() {
		time.Sleep(100 * time.Millisecond)
		release()
	}()

	second, err := locker.Lock(context.Background(), "k")
	require.NoError(t, err)
	second()
}

func TestReleaseKeepsForeignLock(t *testing.T) {
	locker, mr := newTestLocker(t, time.Second)

	release, err := locker.Lock(context.Background(), "k")
	require.NoError(t, err)

	// The lock expired and another holder took it over.
	require.NoError(t, mr.Set("lock:k", "someone-else"))
	release()

	got, err := mr.Get("lock:k")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
}

func TestLockHonoursContext(t *testing.T) {
	locker, _ := newTestLocker(t, 5*time.Second)

	release, err := locker.Lock(context.Background(), "k")
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, "k")
	assert.Error(t, err)
}

func TestNoopLocker(t *testing.T) {
	release, err := NoopLocker{}.Lock(context.Background(), "k")
	require.NoError(t, err)
	release()
}
