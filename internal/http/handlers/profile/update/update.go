// Package update реализует HTTP-обработчик сохранения настроек профиля.
//
// Клиент присылает профиль целиком вместе с версией, которую он прочитал.
// Если профиль успел измениться, возвращается 409 и клиент должен перечитать его.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/agentpulse/internal/http/middlewarectx"
	"github.com/magabrotheeeer/agentpulse/internal/http/response"
	"github.com/magabrotheeeer/agentpulse/internal/lib/sl"
	"github.com/magabrotheeeer/agentpulse/internal/models"
	"github.com/magabrotheeeer/agentpulse/internal/services/profile"
)

// MsgVersionConflict ответ на устаревшую версию профиля.
const MsgVersionConflict = "profile was changed in another tab, reload and try again"

// Handler управляет HTTP-запросами на сохранение профиля.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс сохранения профиля.
type Service interface {
	Save(ctx context.Context, deviceID string, p models.Profile, expectedVersion int64) (models.Profile, error)
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
// @Summary Сохранить профиль
// @Description Сохраняет профиль, если поле version совпадает с сохраненной версией.
// @Tags Profile
// @Accept  json
// @Produce  json
// @Param X-Device-ID header string true "Идентификатор устройства"
// @Param request body models.Profile true "Профиль"
// @Success 200 {object} response.Response{data=models.Profile}
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 409 {object} response.ErrorResponse "Профиль изменен параллельно"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /profile [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.Profile
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			log.Error("validation failed", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid request body"))
			return
		}
		log.Info("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(verrs))
		return
	}

	deviceID := middlewarectx.DeviceID(r.Context())
	saved, err := h.service.Save(r.Context(), deviceID, req, req.Version)
	if errors.Is(err, profile.ErrVersionConflict) {
		log.Info("stale profile version", sl.Device(deviceID), slog.Int64("version", req.Version))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error(MsgVersionConflict))
		return
	}
	if err != nil {
		log.Error("failed to save profile", sl.Device(deviceID), sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not save profile"))
		return
	}

	log.Info("profile saved", sl.Device(deviceID), slog.Int64("version", saved.Version))
	render.JSON(w, r, response.OKWithData(saved))
}
