// Package search реализует HTTP-обработчик поиска лидов радаром.
//
// Ошибки шлюза переводятся в HTTP-статусы: охлаждение дает 429 с retry_after,
// параллельный поиск 409, остальные ошибки модели получают статус по своему виду
// и сообщение для пользователя.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/agentpulse/internal/http/middlewarectx"
	"github.com/magabrotheeeer/agentpulse/internal/http/response"
	"github.com/magabrotheeeer/agentpulse/internal/lib/sl"
	"github.com/magabrotheeeer/agentpulse/internal/models"
	"github.com/magabrotheeeer/agentpulse/internal/services/gateway"
	"github.com/magabrotheeeer/agentpulse/internal/services/radar"
)

// Handler обрабатывает запросы поиска.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service выполняет поиск лидов.
type Service interface {
	SearchLeads(ctx context.Context, deviceID, niche, location string, searchType models.SearchType) (models.SearchResult, bool, error)
}

// Request параметры поиска.
type Request struct {
	Niche    string            `json:"niche" validate:"required,max=200" example:"apartamento 3 dormitórios"`
	Location string            `json:"location" validate:"required,max=200" example:"São José dos Campos, SP"`
	Type     models.SearchType `json:"type" validate:"required,oneof=buyer owner" example:"buyer"`
}

// Result ответ поиска.
type Result struct {
	models.SearchResult
	FromCache bool `json:"from_cache"`
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Поиск лидов
// @Description Ищет покупателей или собственников по нише и локации. При исчерпании квоты
// @Description возвращается последний результат из кеша, если он еще свежий.
// @Tags Radar
// @Accept  json
// @Produce  json
// @Param X-Device-ID header string true "Идентификатор устройства"
// @Param request body Request true "Параметры поиска"
// @Success 200 {object} response.Response{data=Result}
// @Failure 400 {object} response.ErrorResponse "Нет ключа API"
// @Failure 401 {object} response.ErrorResponse "Ключ API отклонен"
// @Failure 402 {object} response.ErrorResponse "Нужен биллинг"
// @Failure 403 {object} response.ErrorResponse "Подписка истекла"
// @Failure 404 {object} response.ErrorResponse "Лиды не найдены"
// @Failure 409 {object} response.ErrorResponse "Поиск уже выполняется"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 429 {object} response.ErrorResponse "Охлаждение после превышения квоты"
// @Failure 502 {object} response.ErrorResponse "Ошибка модели"
// @Router /radar/search [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.radar.search"
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
		log.Info("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	deviceID := middlewarectx.DeviceID(r.Context())
	res, fromCache, err := h.service.SearchLeads(r.Context(), deviceID, req.Niche, req.Location, req.Type)
	if err != nil {
		WriteError(w, r, log, err)
		return
	}

	render.JSON(w, r, response.OKWithData(Result{SearchResult: res, FromCache: fromCache}))
}

// WriteError пишет ответ для ошибки радара.
func WriteError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var cooldown *gateway.CooldownError
	var gwErr *gateway.Error
	switch {
	case errors.As(err, &cooldown):
		secs := gateway.RetryAfterSeconds(cooldown.Remaining)
		w.Header().Set("Retry-After", strconv.Itoa(secs))
		w.WriteHeader(http.StatusTooManyRequests)
		render.JSON(w, r, response.RetryLater(cooldown.Error(), secs))
	case errors.Is(err, gateway.ErrBusy):
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error(gateway.MsgBusy))
	case errors.Is(err, radar.ErrNoLeads):
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error(radar.MsgNoLeads))
	case errors.As(err, &gwErr):
		log.Warn("radar call failed", slog.String("kind", string(gwErr.Kind)), sl.Err(gwErr.Err))
		w.WriteHeader(gateway.HTTPStatus(gwErr.Kind))
		render.JSON(w, r, response.Error(gwErr.Error()))
	default:
		log.Error("radar search failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
	}
}
