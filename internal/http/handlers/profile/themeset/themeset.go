// Package themeset реализует HTTP-обработчик смены темы оформления.
package themeset

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/agentpulse/internal/http/middlewarectx"
	"github.com/magabrotheeeer/agentpulse/internal/http/response"
	"github.com/magabrotheeeer/agentpulse/internal/lib/sl"
	"github.com/magabrotheeeer/agentpulse/internal/models"
	"github.com/magabrotheeeer/agentpulse/internal/services/profile"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс смены темы.
type Service interface {
	SetTheme(ctx context.Context, deviceID string, theme models.Theme) error
}

// Request тело запроса.
type Request struct {
	Theme models.Theme `json:"theme" example:"light"`
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сменить тему оформления
// @Tags Profile
// @Accept  json
// @Produce  json
// @Param X-Device-ID header string true "Идентификатор устройства"
// @Param request body Request true "dark или light"
// @Success 200 {object} response.Response
// @Failure 422 {object} response.ErrorResponse "Неизвестная тема"
// @Router /profile/theme [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.themeset"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	deviceID := middlewarectx.DeviceID(r.Context())
	err := h.service.SetTheme(r.Context(), deviceID, req.Theme)
	if errors.Is(err, profile.ErrInvalidTheme) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("theme must be dark or light"))
		return
	}
	if err != nil {
		log.Error("failed to save theme", sl.Device(deviceID), sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not save theme"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"theme": req.Theme,
	}))
}
