package token

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/agentpulse/internal/lib/license"
)

func TestTokenHandler(t *testing.T) {
	h := New(slog.New(slog.NewTextHandler(io.Discard, nil)))

	tests := []struct {
		name   string
		body   string
		status int
		plan   license.PlanKind
	}{
		{name: "годовой", body: `{"plan":"A"}`, status: http.StatusOK, plan: license.Annual},
		{name: "пожизненный строчной", body: `{"plan":"l"}`, status: http.StatusOK, plan: license.Lifetime},
		{name: "неизвестный план", body: `{"plan":"X"}`, status: http.StatusBadRequest},
		{name: "некорректный JSON", body: `{`, status: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/admin/tokens", strings.NewReader(tt.body)))
			require.Equal(t, tt.status, rr.Code)
			if tt.status != http.StatusOK {
				return
			}

			var resp struct {
				Data Result `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.True(t, strings.HasPrefix(resp.Data.Token, license.Prefix+"-"))
			assert.Equal(t, tt.plan, license.ParsePlan(resp.Data.Token))
			assert.Equal(t, tt.plan.DurationDays(), resp.Data.Days)
		})
	}
}
