package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/magabrotheeeer/agentpulse/internal/config"
	"github.com/magabrotheeeer/agentpulse/internal/metrics"
	"github.com/magabrotheeeer/agentpulse/internal/storage/kv"
)

const (
	device      = "device-0001"
	fingerprint = "0123456789abcdef0123456789abcdef"
)

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time           { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func setupGateway(t *testing.T, cacheFirst bool) (*Gateway, kv.Store, *clock) {
	t.Helper()
	store := kv.NewMemory(4)
	cfg := config.AIGateway{
		CacheTTL:       180 * time.Minute,
		Cooldown:       60 * time.Second,
		CacheFirst:     cacheFirst,
		RequestTimeout: 45 * time.Second,
	}
	g := New(newNoopLogger(), store, cfg, metrics.Noop{})
	c := &clock{t: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	g.now = c.now
	return g, store, c
}

func live(payload string) ComputeFunc {
	return func(context.Context) ([]byte, error) { return []byte(payload), nil }
}

func failing(err error) ComputeFunc {
	return func(context.Context) ([]byte, error) { return nil, err }
}

var quotaErr = &googleapi.Error{Code: 429, Message: "Resource has been exhausted (e.g. check quota)."}

func TestFetchOrCompute_LiveCallStoresEntry(t *testing.T) {
	g, store, c := setupGateway(t, false)
	ctx := context.Background()

	res, err := g.FetchOrCompute(ctx, device, fingerprint, live(`{"leads":[]}`))
	require.NoError(t, err)
	assert.False(t, res.FromCache)
	assert.JSONEq(t, `{"leads":[]}`, string(res.Data))

	raw, err := kv.Device(store, device).Get(ctx, kv.CachePrefix+fingerprint)
	require.NoError(t, err)
	var entry Entry
	require.NoError(t, json.Unmarshal(raw, &entry))
	assert.Equal(t, c.t.UnixMilli(), entry.Timestamp)
	assert.JSONEq(t, `{"leads":[]}`, string(entry.Data))
}

func TestFetchOrCompute_DefaultModeAlwaysCallsLive(t *testing.T) {
	g, _, c := setupGateway(t, false)
	ctx := context.Background()

	_, err := g.FetchOrCompute(ctx, device, fingerprint, live(`{"v":1}`))
	require.NoError(t, err)
	c.advance(time.Minute)

	calls := 0
	res, err := g.FetchOrCompute(ctx, device, fingerprint, func(context.Context) ([]byte, error) {
		calls++
		return []byte(`{"v":2}`), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.False(t, res.FromCache)
	assert.JSONEq(t, `{"v":2}`, string(res.Data))
}

func TestFetchOrCompute_CacheFirst(t *testing.T) {
	g, _, c := setupGateway(t, true)
	ctx := context.Background()

	_, err := g.FetchOrCompute(ctx, device, fingerprint, live(`{"v":1}`))
	require.NoError(t, err)
	c.advance(10 * time.Minute)

	res, err := g.FetchOrCompute(ctx, device, fingerprint, failing(errors.New("must not be called")))
	require.NoError(t, err)
	assert.True(t, res.FromCache)
	assert.JSONEq(t, `{"v":1}`, string(res.Data))

	// устаревшая запись не используется
	c.advance(180 * time.Minute)
	res, err = g.FetchOrCompute(ctx, device, fingerprint, live(`{"v":3}`))
	require.NoError(t, err)
	assert.False(t, res.FromCache)
}

func TestFetchOrCompute_QuotaFallsBackToCache(t *testing.T) {
	g, _, c := setupGateway(t, false)
	ctx := context.Background()

	_, err := g.FetchOrCompute(ctx, device, fingerprint, live(`{"v":1}`))
	require.NoError(t, err)
	c.advance(179 * time.Minute)

	res, err := g.FetchOrCompute(ctx, device, fingerprint, failing(quotaErr))
	require.NoError(t, err)
	assert.True(t, res.FromCache)
	assert.JSONEq(t, `{"v":1}`, string(res.Data))

	// квота запускает охлаждение даже при ответе из кеша
	assert.Equal(t, 60*time.Second, g.CooldownRemaining(ctx, device))
}

func TestFetchOrCompute_QuotaWithStaleCache(t *testing.T) {
	g, _, c := setupGateway(t, false)
	ctx := context.Background()

	_, err := g.FetchOrCompute(ctx, device, fingerprint, live(`{"v":1}`))
	require.NoError(t, err)
	c.advance(180 * time.Minute)

	_, err = g.FetchOrCompute(ctx, device, fingerprint, failing(quotaErr))
	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, KindRateLimit, gwErr.Kind)
	assert.Equal(t, MsgRateLimit, err.Error())
}

func TestFetchOrCompute_NonQuotaErrorIgnoresCache(t *testing.T) {
	g, _, _ := setupGateway(t, false)
	ctx := context.Background()

	_, err := g.FetchOrCompute(ctx, device, fingerprint, live(`{"v":1}`))
	require.NoError(t, err)

	_, err = g.FetchOrCompute(ctx, device, fingerprint, failing(errors.New("API_KEY_INVALID")))
	assert.Equal(t, KindInvalidKey, Classify(err))
	assert.Zero(t, g.CooldownRemaining(ctx, device))
}

func TestFetchOrCompute_Cooldown(t *testing.T) {
	g, _, c := setupGateway(t, false)
	ctx := context.Background()

	_, err := g.FetchOrCompute(ctx, device, fingerprint, failing(errors.New("429 Too Many Requests")))
	require.Error(t, err)

	c.advance(20 * time.Second)
	called := false
	_, err = g.FetchOrCompute(ctx, device, "other", func(context.Context) ([]byte, error) {
		called = true
		return []byte(`{}`), nil
	})
	assert.ErrorIs(t, err, ErrCooldown)
	var cdErr *CooldownError
	require.ErrorAs(t, err, &cdErr)
	assert.Equal(t, 40*time.Second, cdErr.Remaining)
	assert.False(t, called)

	// другое устройство не затронуто
	_, err = g.FetchOrCompute(ctx, "device-0002", fingerprint, live(`{}`))
	assert.NoError(t, err)

	c.advance(41 * time.Second)
	_, err = g.FetchOrCompute(ctx, device, fingerprint, live(`{}`))
	assert.NoError(t, err)
}

func TestFetchOrCompute_Busy(t *testing.T) {
	g, _, _ := setupGateway(t, false)
	ctx := context.Background()

	started := make(chan struct{})
	finish := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := g.FetchOrCompute(ctx, device, fingerprint, func(context.Context) ([]byte, error) {
			close(started)
			<-finish
			return []byte(`{}`), nil
		})
		assert.NoError(t, err)
	}()

	<-started
	_, err := g.FetchOrCompute(ctx, device, fingerprint, live(`{}`))
	assert.ErrorIs(t, err, ErrBusy)

	close(finish)
	wg.Wait()

	_, err = g.FetchOrCompute(ctx, device, fingerprint, live(`{}`))
	assert.NoError(t, err)
}

func TestFetchOrCompute_MalformedEntryIsMiss(t *testing.T) {
	g, store, _ := setupGateway(t, true)
	ctx := context.Background()
	require.NoError(t, kv.Device(store, device).Set(ctx, kv.CachePrefix+fingerprint, []byte("{oops"), time.Hour))

	res, err := g.FetchOrCompute(ctx, device, fingerprint, live(`{"v":"fresh"}`))
	require.NoError(t, err)
	assert.False(t, res.FromCache)
	assert.JSONEq(t, `{"v":"fresh"}`, string(res.Data))

	_, err = g.FetchOrCompute(ctx, device, fingerprint, failing(quotaErr))
	require.NoError(t, err, "entry was overwritten by the successful call")
}

func TestFetchOrCompute_MissingKey(t *testing.T) {
	g, _, _ := setupGateway(t, false)

	_, err := g.FetchOrCompute(context.Background(), device, fingerprint, failing(&Error{Kind: KindMissingKey}))
	assert.Equal(t, KindMissingKey, Classify(err))
	assert.Equal(t, MsgMissingKey, err.Error())
}

func TestFetchOrCompute_ReleaseKeepsForeignLock(t *testing.T) {
	g, store, _ := setupGateway(t, false)
	ctx := context.Background()
	ns := kv.Device(store, device)

	_, err := g.FetchOrCompute(ctx, device, fingerprint, func(context.Context) ([]byte, error) {
		// блокировка истекла, и ее занял другой вызов
		require.NoError(t, ns.Set(ctx, keyInFlight, []byte("other-call"), time.Minute))
		return []byte(`{}`), nil
	})
	require.NoError(t, err)

	raw, err := ns.Get(ctx, keyInFlight)
	require.NoError(t, err)
	assert.Equal(t, "other-call", string(raw))

	_, err = g.FetchOrCompute(ctx, device, fingerprint, live(`{}`))
	assert.ErrorIs(t, err, ErrBusy)
}
