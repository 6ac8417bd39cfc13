// Package reset реализует HTTP-обработчик полного сброса данных устройства.
package reset

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/agentpulse/internal/http/middlewarectx"
	"github.com/magabrotheeeer/agentpulse/internal/http/response"
	"github.com/magabrotheeeer/agentpulse/internal/lib/sl"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс сброса данных.
type Service interface {
	Reset(ctx context.Context, deviceID string) error
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сбросить данные устройства
// @Description Удаляет профиль, лиды, тему и кеш устройства.
// @Tags Profile
// @Produce  json
// @Param X-Device-ID header string true "Идентификатор устройства"
// @Success 200 {object} response.Response
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /profile [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.reset"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	deviceID := middlewarectx.DeviceID(r.Context())
	if err := h.service.Reset(r.Context(), deviceID); err != nil {
		log.Error("failed to reset device", sl.Device(deviceID), sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not reset device data"))
		return
	}

	log.Info("device reset", sl.Device(deviceID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"reset": true,
	}))
}
