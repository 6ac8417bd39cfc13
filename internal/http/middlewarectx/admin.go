package middlewarectx

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/agentpulse/internal/http/response"
)

// HeaderAdminKey заголовок с ключом администратора.
const HeaderAdminKey = "X-Admin-Key"

// AdminMiddleware пропускает только запросы с ключом администратора.
// Если ключ в конфиге не задан, административные ручки недоступны.
func AdminMiddleware(log *slog.Logger, adminKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(HeaderAdminKey)
			if adminKey == "" || subtle.ConstantTimeCompare([]byte(got), []byte(adminKey)) != 1 {
				log.Warn("admin access denied", slog.String("path", r.URL.Path))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("forbidden"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
