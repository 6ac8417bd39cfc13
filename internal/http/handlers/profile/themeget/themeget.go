// Package themeget реализует HTTP-обработчик чтения темы оформления.
package themeget

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

// Service описывает интерфейс чтения темы.
type Service interface {
	Theme(ctx context.Context, deviceID string) (models.Theme, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Тема оформления
// @Tags Profile
// @Produce  json
// @Param X-Device-ID header string true "Идентификатор устройства"
// @Success 200 {object} response.Response
// @Router /profile/theme [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.themeget"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	deviceID := middlewarectx.DeviceID(r.Context())
	theme, err := h.service.Theme(r.Context(), deviceID)
	if err != nil {
		log.Error("failed to read theme", sl.Device(deviceID), sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read theme"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"theme": theme,
	}))
}
