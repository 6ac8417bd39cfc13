// Package list реализует HTTP-обработчик списка лидов устройства.
package list

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

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service возвращает лиды устройства.
type Service interface {
	List(ctx context.Context, deviceID string) ([]models.Lead, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список лидов
// @Description Новые устройства получают демонстрационный список.
// @Tags Leads
// @Produce  json
// @Param X-Device-ID header string true "Идентификатор устройства"
// @Success 200 {object} response.Response{data=[]models.Lead}
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /leads [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.leads.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	deviceID := middlewarectx.DeviceID(r.Context())
	leads, err := h.service.List(r.Context(), deviceID)
	if err != nil {
		log.Error("failed to list leads", sl.Device(deviceID), sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list leads"))
		return
	}

	render.JSON(w, r, response.OKWithData(leads))
}
