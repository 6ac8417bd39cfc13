package kv

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/agentpulse/internal/metrics"
)

func TestNamespace_Isolation(t *testing.T) {
	store := NewMemory(4)
	ctx := context.Background()

	a := NewNamespace(store, "agentpulse:a:")
	b := NewNamespace(store, "agentpulse:b:")

	require.NoError(t, a.Set(ctx, "profile", []byte("A"), 0))
	require.NoError(t, b.Set(ctx, "profile", []byte("B"), 0))

	val, err := a.Get(ctx, "profile")
	require.NoError(t, err)
	assert.Equal(t, "A", string(val))

	raw, err := store.Get(ctx, "agentpulse:b:profile")
	require.NoError(t, err)
	assert.Equal(t, "B", string(raw))
}

func TestNamespace_SubAndKeys(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	device := NewNamespace(store, "agentpulse:dev1:")
	cache := device.Sub("cache:")
	assert.Equal(t, "agentpulse:dev1:cache:", cache.Prefix())

	require.NoError(t, cache.Set(ctx, "fp1", []byte("1"), time.Minute))
	require.NoError(t, cache.Set(ctx, "fp2", []byte("2"), time.Minute))
	require.NoError(t, device.Set(ctx, "profile", []byte("p"), 0))

	keys, err := cache.Keys(ctx, "")
	require.NoError(t, err)
	sort.Strings(keys)
	assert.Equal(t, []string{"fp1", "fp2"}, keys)

	keys, err = device.Keys(ctx, "cache:")
	require.NoError(t, err)
	sort.Strings(keys)
	assert.Equal(t, []string{"cache:fp1", "cache:fp2"}, keys)
}

func TestNamespace_Clear(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	device := NewNamespace(store, "agentpulse:dev1:")
	other := NewNamespace(store, "agentpulse:dev2:")
	require.NoError(t, device.Set(ctx, "profile", []byte("p"), 0))
	require.NoError(t, device.Set(ctx, "leads", []byte("[]"), 0))
	require.NoError(t, device.Set(ctx, "cache:fp", []byte("c"), time.Minute))
	require.NoError(t, other.Set(ctx, "profile", []byte("q"), 0))

	require.NoError(t, device.Clear(ctx))
	require.NoError(t, device.Clear(ctx))

	keys, err := device.Keys(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, keys)

	_, err = other.Get(ctx, "profile")
	assert.NoError(t, err)
}

func TestNamespace_DeleteAndCompareAndSwap(t *testing.T) {
	store := NewMemory(4)
	ctx := context.Background()
	ns := NewNamespace(store, "p:")

	require.NoError(t, ns.CompareAndSwap(ctx, "k", nil, []byte("1"), 0))
	assert.ErrorIs(t, ns.CompareAndSwap(ctx, "k", nil, []byte("2"), 0), ErrConflict)

	require.NoError(t, ns.Delete(ctx, "k"))
	_, err := store.Get(ctx, "p:k")
	assert.ErrorIs(t, err, ErrNotFound)
}

type lookupRecorder struct {
	metrics.Noop
	hits, misses int
}

func (r *lookupRecorder) IncStoreLookups(hit bool) {
	if hit {
		r.hits++
		return
	}
	r.misses++
}

func TestInstrumented_CountsLookups(t *testing.T) {
	rec := &lookupRecorder{}
	store := NewInstrumented(NewMemory(4), rec)
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "k", []byte("v"), 0))
	_, err = store.Get(ctx, "k")
	require.NoError(t, err)

	assert.Equal(t, 1, rec.hits)
	assert.Equal(t, 1, rec.misses)
}
