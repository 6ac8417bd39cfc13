package kv

import (
	"context"
	"fmt"
	"os"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/agentpulse/internal/config"
)

func setupTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
		Password:     "",
		DB:           0,
		User:         "",
	}

	store, err := NewRedis(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestRedis_SetAndGet(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "agentpulse:dev:profile", []byte(`{"brokerName":"Ana"}`), 0))

	val, err := store.Get(ctx, "agentpulse:dev:profile")
	require.NoError(t, err)
	assert.JSONEq(t, `{"brokerName":"Ana"}`, string(val))
}

func TestRedis_GetNotFound(t *testing.T) {
	store, _ := setupTestRedis(t)

	_, err := store.Get(context.Background(), "no_such_key")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedis_TTLExpires(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "cache:abc", []byte("x"), time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "cache:abc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedis_DeleteAndKeys(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	for _, k := range []string{"agentpulse:a:profile", "agentpulse:a:leads", "agentpulse:b:profile"} {
		require.NoError(t, store.Set(ctx, k, []byte("1"), 0))
	}

	keys, err := store.Keys(ctx, "agentpulse:a:")
	require.NoError(t, err)
	sort.Strings(keys)
	assert.Equal(t, []string{"agentpulse:a:leads", "agentpulse:a:profile"}, keys)

	require.NoError(t, store.Delete(ctx, keys...))
	keys, err = store.Keys(ctx, "agentpulse:a:")
	require.NoError(t, err)
	assert.Empty(t, keys)

	assert.NoError(t, store.Delete(ctx))
	assert.NoError(t, store.Delete(ctx, "missing"))
}

func TestRedis_KeysEscapesPattern(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a*:x", []byte("1"), 0))
	require.NoError(t, store.Set(ctx, "ab:x", []byte("1"), 0))

	keys, err := store.Keys(ctx, "a*:")
	require.NoError(t, err)
	assert.Equal(t, []string{"a*:x"}, keys)
}

func TestRedis_CompareAndSwap(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	// ключ должен отсутствовать
	require.NoError(t, store.CompareAndSwap(ctx, "k", nil, []byte("v1"), 0))
	assert.ErrorIs(t, store.CompareAndSwap(ctx, "k", nil, []byte("v2"), 0), ErrConflict)

	// совпадающее предыдущее значение
	require.NoError(t, store.CompareAndSwap(ctx, "k", []byte("v1"), []byte("v2"), 0))
	assert.ErrorIs(t, store.CompareAndSwap(ctx, "k", []byte("v1"), []byte("v3"), 0), ErrConflict)

	val, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", string(val))

	assert.ErrorIs(t, store.CompareAndSwap(ctx, "absent", []byte("v1"), []byte("v2"), 0), ErrConflict)
}

func TestNewRedis_Unreachable(t *testing.T) {
	cfg := config.RedisConnection{
		AddressRedis: "127.0.0.1:1",
		DialTimeout:  100 * time.Millisecond,
	}
	_, err := NewRedis(context.Background(), cfg)
	assert.Error(t, err)
}

func TestRedis_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		req := testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(time.Minute),
		}
		container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		if err != nil {
			t.Skipf("docker is not available: %v", err)
		}
		t.Cleanup(func() {
			if err := container.Terminate(ctx); err != nil {
				t.Logf("failed to terminate redis container: %v", err)
			}
		})

		host, err := container.Host(ctx)
		require.NoError(t, err)
		port, err := container.MappedPort(ctx, "6379/tcp")
		require.NoError(t, err)
		addr = fmt.Sprintf("%s:%s", host, port.Port())
	}

	store, err := NewRedis(ctx, config.RedisConnection{AddressRedis: addr})
	require.NoError(t, err)
	defer store.Close()

	ns := NewNamespace(store, "agentpulse:it-device:")
	require.NoError(t, ns.CompareAndSwap(ctx, "profile", nil, []byte("v1"), 0))
	require.NoError(t, ns.Set(ctx, "cache:fp", []byte("payload"), time.Minute))
	assert.ErrorIs(t, ns.CompareAndSwap(ctx, "profile", []byte("stale"), []byte("v2"), 0), ErrConflict)

	require.NoError(t, ns.Clear(ctx))
	keys, err := ns.Keys(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestRedis_CompareAndDelete(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "agentpulse:dev:gateway:inflight", []byte("a"), time.Minute))

	assert.ErrorIs(t, store.CompareAndDelete(ctx, "agentpulse:dev:gateway:inflight", []byte("b")), ErrConflict)
	_, err := store.Get(ctx, "agentpulse:dev:gateway:inflight")
	require.NoError(t, err)

	require.NoError(t, store.CompareAndDelete(ctx, "agentpulse:dev:gateway:inflight", []byte("a")))
	_, err = store.Get(ctx, "agentpulse:dev:gateway:inflight")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, store.CompareAndDelete(ctx, "agentpulse:dev:gateway:inflight", []byte("a")), ErrConflict)
}
