// Package invite реализует административный HTTP-обработчик ссылки на пробный период.
package invite

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/agentpulse/internal/http/response"
	"github.com/magabrotheeeer/agentpulse/internal/services/billing"
)

type Handler struct {
	log     *slog.Logger
	baseURL string
}

func New(log *slog.Logger, baseURL string) *Handler {
	return &Handler{
		log:     log,
		baseURL: baseURL,
	}
}

// ServeHTTP godoc
// @Summary Ссылка-приглашение
// @Tags Admin
// @Produce  json
// @Param X-Admin-Key header string true "Ключ администратора"
// @Success 200 {object} response.Response
// @Router /admin/invite [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.OKWithData(map[string]any{
		"link": billing.InviteLink(h.baseURL),
	}))
}
