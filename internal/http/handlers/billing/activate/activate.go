// Package activate реализует HTTP-обработчик ручной активации лицензионного токена.
package activate

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
	"github.com/magabrotheeeer/agentpulse/internal/services/billing"
)

// Handler обрабатывает активацию токена.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service активирует токен на устройстве.
type Service interface {
	Activate(ctx context.Context, deviceID, token string) (models.Profile, error)
}

// Request тело запроса.
type Request struct {
	Token string `json:"token" example:"AGENT-PRO-A-4F9C2D1B"`
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Активировать лицензию
// @Description Сохраняет токен в профиле. План определяется маркером в токене.
// @Tags Billing
// @Accept  json
// @Produce  json
// @Param X-Device-ID header string true "Идентификатор устройства"
// @Param request body Request true "Токен"
// @Success 200 {object} response.Response{data=models.Profile}
// @Failure 400 {object} response.ErrorResponse "Пустой токен"
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /billing/activate [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.billing.activate"
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
	p, err := h.service.Activate(r.Context(), deviceID, req.Token)
	if errors.Is(err, billing.ErrEmptyToken) {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("token is required"))
		return
	}
	if err != nil {
		log.Error("failed to activate token", sl.Device(deviceID), sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not activate token"))
		return
	}

	render.JSON(w, r, response.OKWithData(p))
}
