// Package token реализует административный HTTP-обработчик выпуска лицензионных токенов.
package token

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/agentpulse/internal/http/response"
	"github.com/magabrotheeeer/agentpulse/internal/lib/license"
	"github.com/magabrotheeeer/agentpulse/internal/lib/sl"
)

type Handler struct {
	log *slog.Logger
}

// Request тело запроса: код плана M, T, S, A или L.
type Request struct {
	Plan string `json:"plan" example:"A"`
}

// Result выпущенный токен.
type Result struct {
	Token string `json:"token"`
	Plan  string `json:"plan"`
	Days  int    `json:"days"`
}

func New(log *slog.Logger) *Handler {
	return &Handler{
		log: log,
	}
}

// ServeHTTP godoc
// @Summary Выпустить токен
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param X-Admin-Key header string true "Ключ администратора"
// @Param request body Request true "Код плана"
// @Success 200 {object} response.Response{data=Result}
// @Failure 400 {object} response.ErrorResponse "Неизвестный план"
// @Failure 403 {object} response.ErrorResponse "Нет доступа"
// @Router /admin/tokens [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.token"
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

	kind, err := license.PlanFromCode(req.Plan)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("plan must be one of M T S A L"))
		return
	}
	tok, err := license.Generate(kind)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not generate token"))
		return
	}

	log.Info("license token issued", slog.String("plan", kind.String()))
	render.JSON(w, r, response.OKWithData(Result{
		Token: tok,
		Plan:  kind.String(),
		Days:  kind.DurationDays(),
	}))
}
