// Package scripts реализует HTTP-обработчик генерации сообщений для лида.
package scripts

import (
	"context"
	"encoding/json"
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

// Service генерирует сообщения.
type Service interface {
	GenerateScripts(ctx context.Context, deviceID string, lead models.Lead) ([]string, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сообщения для лида
// @Description Предлагает варианты первого сообщения. При ошибке модели возвращается стандартное приветствие.
// @Tags Radar
// @Accept  json
// @Produce  json
// @Param X-Device-ID header string true "Идентификатор устройства"
// @Param request body models.Lead true "Лид"
// @Success 200 {object} response.Response{data=[]string}
// @Router /radar/scripts [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.radar.scripts"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var lead models.Lead
	if err := json.NewDecoder(r.Body).Decode(&lead); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	deviceID := middlewarectx.DeviceID(r.Context())
	scripts, err := h.service.GenerateScripts(r.Context(), deviceID, lead)
	if err != nil {
		log.Error("failed to generate scripts", sl.Device(deviceID), sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not generate scripts"))
		return
	}

	render.JSON(w, r, response.OKWithData(scripts))
}
