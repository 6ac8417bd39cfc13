// Package get реализует HTTP-обработчик чтения профиля устройства.
//
// При первом запуске возвращается профиль по умолчанию; параметр ref=7days
// сразу запускает пробный период.
package get

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

// Handler обрабатывает запросы на чтение профиля.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс чтения профиля.
type Service interface {
	Load(ctx context.Context, deviceID, ref string) (models.Profile, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Профиль устройства
// @Description Возвращает сохраненный профиль или профиль по умолчанию при первом запуске.
// @Tags Profile
// @Produce  json
// @Param X-Device-ID header string true "Идентификатор устройства"
// @Param ref query string false "Реферальный параметр, 7days запускает пробный период"
// @Success 200 {object} response.Response{data=models.Profile}
// @Failure 400 {object} response.ErrorResponse "Нет идентификатора устройства"
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /profile [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.get"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	deviceID := middlewarectx.DeviceID(r.Context())
	p, err := h.service.Load(r.Context(), deviceID, r.URL.Query().Get("ref"))
	if err != nil {
		log.Error("failed to load profile", sl.Device(deviceID), sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load profile"))
		return
	}

	render.JSON(w, r, response.OKWithData(p))
}
