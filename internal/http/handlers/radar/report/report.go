// Package report реализует HTTP-обработчик аналитической справки по объекту.
package report

import (
	"context"
	"encoding/json"
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

// Service готовит справку.
type Service interface {
	MarketReport(ctx context.Context, deviceID, address, details string, lang models.Language) (models.MarketReport, error)
}

// Request параметры справки. Пустой язык берется из профиля.
type Request struct {
	Address  string          `json:"address" validate:"required,max=300" example:"Rua das Flores 100, Urbanova"`
	Details  string          `json:"details" validate:"max=1000"`
	Language models.Language `json:"language" validate:"omitempty,oneof=pt en es zh hi fr"`
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Справка по рынку
// @Tags Radar
// @Accept  json
// @Produce  json
// @Param X-Device-ID header string true "Идентификатор устройства"
// @Param request body Request true "Адрес и детали"
// @Success 200 {object} response.Response{data=models.MarketReport}
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /radar/report [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.radar.report"
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
	if err := h.validate.Struct(req); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	deviceID := middlewarectx.DeviceID(r.Context())
	rep, err := h.service.MarketReport(r.Context(), deviceID, req.Address, req.Details, req.Language)
	if err != nil {
		log.Error("failed to build report", sl.Device(deviceID), sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build report"))
		return
	}

	render.JSON(w, r, response.OKWithData(rep))
}
