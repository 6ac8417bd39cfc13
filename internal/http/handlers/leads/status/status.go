// Package status реализует HTTP-обработчик перевода лида по воронке.
package status

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/agentpulse/internal/http/middlewarectx"
	"github.com/magabrotheeeer/agentpulse/internal/http/response"
	"github.com/magabrotheeeer/agentpulse/internal/lib/sl"
	"github.com/magabrotheeeer/agentpulse/internal/models"
	"github.com/magabrotheeeer/agentpulse/internal/services/leads"
)

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service меняет стадию лида.
type Service interface {
	UpdateStatus(ctx context.Context, deviceID, leadID string, status models.LeadStatus, closedValue float64) (models.Lead, error)
}

// Request тело запроса. ClosedValue учитывается только для Negócio Fechado.
type Request struct {
	Status      models.LeadStatus `json:"status" validate:"required" example:"Negócio Fechado"`
	ClosedValue float64           `json:"closedValue" validate:"gte=0" example:"850000"`
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Сменить стадию лида
// @Description При закрытии сделки сумма добавляется к итогу профиля.
// @Tags Leads
// @Accept  json
// @Produce  json
// @Param X-Device-ID header string true "Идентификатор устройства"
// @Param id path string true "Идентификатор лида"
// @Param request body Request true "Новая стадия"
// @Success 200 {object} response.Response{data=models.Lead}
// @Failure 400 {object} response.ErrorResponse "Неизвестная стадия"
// @Failure 404 {object} response.ErrorResponse "Лид не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /leads/{id}/status [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.leads.status"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	leadID := chi.URLParam(r, "id")
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
	lead, err := h.service.UpdateStatus(r.Context(), deviceID, leadID, req.Status, req.ClosedValue)
	switch {
	case errors.Is(err, leads.ErrLeadNotFound):
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("lead not found"))
		return
	case errors.Is(err, leads.ErrInvalidStatus):
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("unknown lead status"))
		return
	case err != nil:
		log.Error("failed to update lead", sl.Device(deviceID), slog.String("lead_id", leadID), sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update lead"))
		return
	}

	log.Info("lead status changed", sl.Device(deviceID), slog.String("lead_id", leadID), slog.String("status", string(lead.Status)))
	render.JSON(w, r, response.OKWithData(lead))
}
