// Package validatekey реализует HTTP-обработчик проверки ключа Gemini API.
// Результат проверки всегда возвращается с кодом 200, успех передается в поле success.
package validatekey

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/agentpulse/internal/http/response"
	"github.com/magabrotheeeer/agentpulse/internal/lib/sl"
	"github.com/magabrotheeeer/agentpulse/internal/services/radar"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service проверяет ключ.
type Service interface {
	ValidateAPIKey(ctx context.Context, key string) radar.KeyValidation
}

// Request тело запроса.
type Request struct {
	APIKey string `json:"api_key"`
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Проверить ключ API
// @Tags Radar
// @Accept  json
// @Produce  json
// @Param X-Device-ID header string true "Идентификатор устройства"
// @Param request body Request true "Ключ"
// @Success 200 {object} response.Response{data=radar.KeyValidation}
// @Router /radar/validate-key [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.radar.validatekey"
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

	res := h.service.ValidateAPIKey(r.Context(), req.APIKey)
	log.Info("api key checked", slog.Bool("success", res.Success))
	render.JSON(w, r, response.OKWithData(res))
}
