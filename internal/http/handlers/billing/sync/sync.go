// Package sync реализует HTTP-обработчик синхронизации оплаты по идентификатору транзакции.
package sync

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

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service синхронизирует оплату.
type Service interface {
	Sync(ctx context.Context, deviceID, transactionID string) (billing.SyncResult, models.Profile, error)
}

// Request тело запроса.
type Request struct {
	TransactionID string `json:"transaction_id" example:"PIX-A-20250601"`
}

// Result ответ при успешной синхронизации.
type Result struct {
	billing.SyncResult
	Profile models.Profile `json:"profile"`
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Синхронизировать оплату
// @Description Проверяет идентификатор транзакции и активирует выпущенный токен.
// @Tags Billing
// @Accept  json
// @Produce  json
// @Param X-Device-ID header string true "Идентификатор устройства"
// @Param request body Request true "Идентификатор транзакции"
// @Success 200 {object} response.Response{data=Result}
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /billing/sync [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.billing.sync"
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
	res, p, err := h.service.Sync(r.Context(), deviceID, req.TransactionID)
	if errors.Is(err, billing.ErrInvalidTransaction) {
		log.Info("invalid transaction id", sl.Device(deviceID))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(billing.InvalidTransactionMessage))
		return
	}
	if err != nil {
		log.Error("failed to sync billing", sl.Device(deviceID), sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not sync billing"))
		return
	}

	render.JSON(w, r, response.OKWithData(Result{SyncResult: res, Profile: p}))
}
