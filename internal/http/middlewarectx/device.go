// Package middlewarectx содержит HTTP middleware: идентификацию устройства,
// ограничение частоты запросов, проверку подписки, доступ администратора и метрики.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/agentpulse/internal/http/response"
	"github.com/magabrotheeeer/agentpulse/internal/storage/kv"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// Device: ключ идентификатора устройства в контексте
	Device Key = "device_id"
)

// HeaderDeviceID заголовок, в котором клиент передает идентификатор устройства.
const HeaderDeviceID = "X-Device-ID"

// DeviceID возвращает идентификатор устройства из контекста запроса.
func DeviceID(ctx context.Context) string {
	id, _ := ctx.Value(Device).(string)
	return id
}

// WithDeviceID кладет идентификатор устройства в контекст.
func WithDeviceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, Device, id)
}

// DeviceMiddleware проверяет заголовок X-Device-ID и добавляет идентификатор в контекст.
// Без корректного идентификатора запрос отклоняется с 400.
func DeviceMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.DeviceMiddleware"

			id := r.Header.Get(HeaderDeviceID)
			if !kv.ValidDeviceID(id) {
				log.Warn("missing or invalid device id",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())))
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error("missing or invalid X-Device-ID header"))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithDeviceID(r.Context(), id)))
		})
	}
}
