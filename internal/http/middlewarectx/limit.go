package middlewarectx

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/render"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/agentpulse/internal/http/response"
)

// через сколько неиспользуемый лимитер устройства удаляется
const limiterIdleTTL = 10 * time.Minute

type deviceLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// DeviceLimiter token bucket для каждого устройства.
type DeviceLimiter struct {
	mu       sync.Mutex
	rps      rate.Limit
	burst    int
	limiters map[string]*deviceLimiter
	lastGC   time.Time
	now      func() time.Time
}

// NewDeviceLimiter создает лимитер с rps запросами в секунду и запасом burst на устройство.
func NewDeviceLimiter(rps float64, burst int) *DeviceLimiter {
	return &DeviceLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		limiters: make(map[string]*deviceLimiter),
		now:      time.Now,
	}
}

// Allow расходует токен устройства.
func (l *DeviceLimiter) Allow(deviceID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastGC) > limiterIdleTTL {
		for id, dl := range l.limiters {
			if now.Sub(dl.lastSeen) > limiterIdleTTL {
				delete(l.limiters, id)
			}
		}
		l.lastGC = now
	}

	dl, ok := l.limiters[deviceID]
	if !ok {
		dl = &deviceLimiter{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.limiters[deviceID] = dl
	}
	dl.lastSeen = now
	return dl.limiter.AllowN(now, 1)
}

// RateLimitMiddleware ограничивает частоту запросов устройства. Должен стоять после DeviceMiddleware.
func RateLimitMiddleware(log *slog.Logger, limiter *DeviceLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := DeviceID(r.Context())
			if !limiter.Allow(id) {
				log.Warn("too many requests", slog.String("device_id", id))
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				render.JSON(w, r, response.RetryLater("too many requests", 1))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
