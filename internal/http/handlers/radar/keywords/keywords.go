// Package keywords реализует HTTP-обработчик подсказки поисковых терминов.
package keywords

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

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service подсказывает термины.
type Service interface {
	SuggestKeywords(ctx context.Context, deviceID, niche string, searchType models.SearchType) ([]string, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Подсказка поисковых терминов
// @Tags Radar
// @Produce  json
// @Param X-Device-ID header string true "Идентификатор устройства"
// @Param niche query string true "Ниша"
// @Param type query string false "buyer или owner"
// @Success 200 {object} response.Response{data=[]string}
// @Failure 400 {object} response.ErrorResponse "Нет ниши"
// @Router /radar/keywords [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.radar.keywords"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	niche := r.URL.Query().Get("niche")
	if niche == "" {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("field niche is required"))
		return
	}
	searchType := models.SearchType(r.URL.Query().Get("type"))
	if searchType != models.SearchOwner {
		searchType = models.SearchBuyer
	}

	deviceID := middlewarectx.DeviceID(r.Context())
	keywords, err := h.service.SuggestKeywords(r.Context(), deviceID, niche, searchType)
	if err != nil {
		log.Error("failed to suggest keywords", sl.Device(deviceID), sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not suggest keywords"))
		return
	}

	render.JSON(w, r, response.OKWithData(keywords))
}
