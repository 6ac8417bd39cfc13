// Package gateway оборачивает вызовы генеративной модели: кеширует результаты по отпечатку
// запроса, классифицирует ошибки и не дает устройству повторять вызов во время охлаждения
// после превышения квоты или пока предыдущий вызов не завершен.
//
// По умолчанию кеш используется только как запасной вариант: живой вызов выполняется
// всегда, а сохраненный результат возвращается лишь при ошибке квоты. Режим cache_first
// возвращает свежую запись без вызова модели.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/magabrotheeeer/agentpulse/internal/config"
	"github.com/magabrotheeeer/agentpulse/internal/lib/sl"
	"github.com/magabrotheeeer/agentpulse/internal/metrics"
	"github.com/magabrotheeeer/agentpulse/internal/storage/kv"
)

// ключи состояния шлюза в пространстве устройства
const (
	keyCooldown = "gateway:cooldown"
	keyInFlight = "gateway:inflight"
)

// срок блокировки вызова, если таймаут запроса не задан
const defaultLockTTL = time.Minute

// Entry запись кеша: время сохранения в миллисекундах и полезная нагрузка.
type Entry struct {
	Timestamp int64           `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// ComputeFunc живой вызов, результат которого кешируется.
type ComputeFunc func(ctx context.Context) ([]byte, error)

// Result результат FetchOrCompute.
type Result struct {
	Data      []byte
	FromCache bool
}

// Gateway шлюз вызовов генеративной модели.
type Gateway struct {
	store      kv.Store
	log        *slog.Logger
	metrics    metrics.Recorder
	ttl        time.Duration
	cooldown   time.Duration
	lockTTL    time.Duration
	cacheFirst bool
	now        func() time.Time
}

// New создает шлюз.
func New(log *slog.Logger, store kv.Store, cfg config.AIGateway, m metrics.Recorder) *Gateway {
	lockTTL := 2 * cfg.RequestTimeout
	if lockTTL <= 0 {
		lockTTL = defaultLockTTL
	}
	return &Gateway{
		store:      store,
		log:        log,
		metrics:    m,
		ttl:        cfg.CacheTTL,
		cooldown:   cfg.Cooldown,
		lockTTL:    lockTTL,
		cacheFirst: cfg.CacheFirst,
		now:        time.Now,
	}
}

// FetchOrCompute выполняет compute для отпечатка fingerprint с учетом кеша и ограничений устройства.
func (g *Gateway) FetchOrCompute(ctx context.Context, deviceID, fingerprint string, compute ComputeFunc) (Result, error) {
	const op = "gateway.FetchOrCompute"
	log := g.log.With(slog.String("op", op), sl.Device(deviceID), slog.String("fingerprint", fingerprint))

	release, err := g.acquire(ctx, deviceID)
	if err != nil {
		return Result{}, err
	}
	defer release()

	cached, hit := g.lookup(ctx, log, deviceID, fingerprint)
	if g.cacheFirst && hit {
		g.metrics.IncGatewayCalls(metrics.OutcomeCacheHit)
		log.Debug("served from cache")
		return Result{Data: cached, FromCache: true}, nil
	}

	data, err := compute(ctx)
	if err == nil {
		g.save(ctx, log, deviceID, fingerprint, data)
		g.metrics.IncGatewayCalls(metrics.OutcomeLive)
		return Result{Data: data}, nil
	}

	kind := Classify(err)
	g.metrics.IncUpstreamErrors(string(kind))
	log.Warn("upstream call failed", slog.String("kind", string(kind)), sl.Err(err))

	if kind == KindRateLimit {
		g.armCooldown(ctx, log, deviceID)
		if hit {
			g.metrics.IncGatewayCalls(metrics.OutcomeFallback)
			log.Info("quota exceeded, serving cached result")
			return Result{Data: cached, FromCache: true}, nil
		}
	}
	g.metrics.IncGatewayCalls(metrics.OutcomeError)
	return Result{}, &Error{Kind: kind, Err: err}
}

// CooldownRemaining оставшееся время охлаждения устройства.
func (g *Gateway) CooldownRemaining(ctx context.Context, deviceID string) time.Duration {
	raw, err := kv.Device(g.store, deviceID).Get(ctx, keyCooldown)
	if err != nil {
		return 0
	}
	until, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0
	}
	left := time.UnixMilli(until).Sub(g.now())
	if left < 0 {
		return 0
	}
	return left
}

// acquire проверяет охлаждение и занимает слот вызова устройства.
func (g *Gateway) acquire(ctx context.Context, deviceID string) (func(), error) {
	if left := g.CooldownRemaining(ctx, deviceID); left > 0 {
		g.metrics.IncGatewayCalls(metrics.OutcomeCooldown)
		return nil, &CooldownError{Remaining: left}
	}

	ns := kv.Device(g.store, deviceID)
	token := []byte(strconv.FormatInt(g.now().UnixNano(), 10))
	err := ns.CompareAndSwap(ctx, keyInFlight, nil, token, g.lockTTL)
	if errors.Is(err, kv.ErrConflict) {
		g.metrics.IncGatewayCalls(metrics.OutcomeBusy)
		return nil, ErrBusy
	}
	if err != nil {
		return nil, fmt.Errorf("gateway.acquire: %w", err)
	}

	return func() {
		// снимаем блокировку даже если контекст запроса уже отменен;
		// чужую блокировку, взятую после истечения нашей, не трогаем
		err := ns.CompareAndDelete(context.WithoutCancel(ctx), keyInFlight, token)
		switch {
		case errors.Is(err, kv.ErrConflict):
			g.log.Warn("in-flight lock expired before release", sl.Device(deviceID))
		case err != nil:
			g.log.Warn("failed to release in-flight lock", sl.Device(deviceID), sl.Err(err))
		}
	}, nil
}

func (g *Gateway) armCooldown(ctx context.Context, log *slog.Logger, deviceID string) {
	if g.cooldown <= 0 {
		return
	}
	until := g.now().Add(g.cooldown).UnixMilli()
	err := kv.Device(g.store, deviceID).Set(ctx, keyCooldown, []byte(strconv.FormatInt(until, 10)), g.cooldown)
	if err != nil {
		log.Warn("failed to arm cooldown", sl.Err(err))
	}
}

// lookup возвращает данные свежей записи кеша. Устаревшая или поврежденная запись считается промахом.
func (g *Gateway) lookup(ctx context.Context, log *slog.Logger, deviceID, fingerprint string) ([]byte, bool) {
	raw, err := kv.Device(g.store, deviceID).Sub(kv.CachePrefix).Get(ctx, fingerprint)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			log.Warn("failed to read cache entry", sl.Err(err))
		}
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil || len(entry.Data) == 0 {
		g.metrics.IncUpstreamErrors(string(KindMalformedCache))
		log.Warn("cache entry is malformed", slog.String("kind", string(KindMalformedCache)))
		return nil, false
	}

	age := g.now().Sub(time.UnixMilli(entry.Timestamp))
	if g.ttl > 0 && age >= g.ttl {
		return nil, false
	}
	return entry.Data, true
}

// save перезаписывает запись кеша. Ошибка записи не влияет на результат вызова.
func (g *Gateway) save(ctx context.Context, log *slog.Logger, deviceID, fingerprint string, data []byte) {
	if !json.Valid(data) {
		log.Warn("computed payload is not valid json, not caching")
		return
	}
	raw, err := json.Marshal(Entry{Timestamp: g.now().UnixMilli(), Data: data})
	if err != nil {
		log.Warn("failed to encode cache entry", sl.Err(err))
		return
	}
	if err := kv.Device(g.store, deviceID).Sub(kv.CachePrefix).Set(ctx, fingerprint, raw, g.ttl); err != nil {
		log.Warn("failed to write cache entry", sl.Err(err))
	}
}
