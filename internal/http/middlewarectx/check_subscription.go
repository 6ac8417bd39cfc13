package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/agentpulse/internal/http/response"
	"github.com/magabrotheeeer/agentpulse/internal/lib/sl"
	"github.com/magabrotheeeer/agentpulse/internal/models"
)

// MsgSubscriptionExpired ответ на запрос с истекшей подпиской.
const MsgSubscriptionExpired = "ACESSO BLOQUEADO: Sua assinatura expirou. Renove para continuar."

// StatusService вычисляет статус подписки устройства.
type StatusService interface {
	Status(ctx context.Context, deviceID string) (models.SubscriptionStatus, error)
}

// SubscriptionStatusMiddleware пропускает запрос только при действующей подписке.
func SubscriptionStatusMiddleware(log *slog.Logger, service StatusService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := DeviceID(r.Context())
			if id == "" {
				log.Error("device identification missing")
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error("device identification missing"))
				return
			}

			status, err := service.Status(r.Context(), id)
			if err != nil {
				log.Error("failed to get subscription status", sl.Device(id), sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}

			if status.Expired {
				log.Info("subscription expired, access denied", sl.Device(id), slog.String("plan", status.PlanName))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error(MsgSubscriptionExpired))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
