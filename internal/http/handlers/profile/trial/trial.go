// Package trial реализует HTTP-обработчик входа: сохраняет телефон
// и запускает пробный период, если он еще не начат.
package trial

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/agentpulse/internal/http/middlewarectx"
	"github.com/magabrotheeeer/agentpulse/internal/http/response"
	"github.com/magabrotheeeer/agentpulse/internal/lib/sl"
	"github.com/magabrotheeeer/agentpulse/internal/models"
)

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс запуска пробного периода.
type Service interface {
	StartTrial(ctx context.Context, deviceID, phone string) (models.Profile, error)
}

// Request тело запроса; телефон необязателен.
type Request struct {
	Phone string `json:"phone" validate:"max=32" example:"+55 12 99123-4567"`
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Начать пробный период
// @Tags Profile
// @Accept  json
// @Produce  json
// @Param X-Device-ID header string true "Идентификатор устройства"
// @Param request body Request false "Телефон"
// @Success 200 {object} response.Response{data=models.Profile}
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /profile/trial [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.trial"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	deviceID := middlewarectx.DeviceID(r.Context())
	p, err := h.service.StartTrial(r.Context(), deviceID, req.Phone)
	if err != nil {
		log.Error("failed to start trial", sl.Device(deviceID), sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not start trial"))
		return
	}

	log.Info("trial started", sl.Device(deviceID))
	render.JSON(w, r, response.OKWithData(p))
}
