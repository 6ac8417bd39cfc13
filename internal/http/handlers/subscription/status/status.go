// Package status реализует HTTP-обработчик статуса подписки устройства.
package status

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/agentpulse/internal/http/middlewarectx"
	"github.com/magabrotheeeer/agentpulse/internal/http/response"
	"github.com/magabrotheeeer/agentpulse/internal/lib/sl"
	"github.com/magabrotheeeer/agentpulse/internal/models"
)

// Handler обрабатывает запросы статуса подписки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service вычисляет статус подписки.
type Service interface {
	Status(ctx context.Context, deviceID string) (models.SubscriptionStatus, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Статус подписки
// @Description Возвращает план, оставшиеся дни и признак истечения доступа.
// @Tags Subscription
// @Produce  json
// @Param X-Device-ID header string true "Идентификатор устройства"
// @Success 200 {object} response.Response{data=models.SubscriptionStatus}
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /subscription [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.status"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	deviceID := middlewarectx.DeviceID(r.Context())
	st, err := h.service.Status(r.Context(), deviceID)
	if err != nil {
		log.Error("failed to evaluate subscription", sl.Device(deviceID), sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not evaluate subscription"))
		return
	}

	render.JSON(w, r, response.OKWithData(st))
}
