package agentpulse

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/agentpulse/internal/config"
	"github.com/magabrotheeeer/agentpulse/internal/gemini"
	"github.com/magabrotheeeer/agentpulse/internal/metrics"
	"github.com/magabrotheeeer/agentpulse/internal/models"
	"github.com/magabrotheeeer/agentpulse/internal/services/billing"
	"github.com/magabrotheeeer/agentpulse/internal/services/gateway"
	"github.com/magabrotheeeer/agentpulse/internal/services/leads"
	"github.com/magabrotheeeer/agentpulse/internal/services/profile"
	"github.com/magabrotheeeer/agentpulse/internal/services/radar"
	"github.com/magabrotheeeer/agentpulse/internal/storage/kv"
)

const deviceID = "device-routes-01"

type stubGenerator struct {
	text string
}

func (g stubGenerator) Generate(context.Context, string, gemini.Request) (gemini.Response, error) {
	return gemini.Response{Text: g.text}, nil
}

func newRouter(t *testing.T, adminKey string) (*chi.Mux, *profile.Service) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		HTTPServer: config.HTTPServer{PublicURL: "https://pulse.example.com"},
		RateLimit:  config.RateLimit{RPS: 100, Burst: 100},
		Admin:      config.Admin{AdminKey: adminKey},
	}
	store := kv.NewMemory(4)
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	profiles := profile.New(logger, store)
	leadService := leads.New(logger, store, profiles)
	gw := gateway.New(logger, store, config.AIGateway{CacheTTL: time.Hour, Cooldown: time.Minute}, m)
	gen := stubGenerator{text: `{"leads":[{"name":"Ana","need":"casa","contact":"(12) 90000-0000"}]}`}
	radarService := radar.New(logger, gen, gw, profiles, leadService, nil, radar.Config{ServerAPIKey: "server-key", HotScore: 95})

	r := chi.NewRouter()
	RegisterRoutes(r, Deps{
		Logger:   logger,
		Config:   cfg,
		Registry: reg,
		Metrics:  m,
		Profiles: profiles,
		Leads:    leadService,
		Billing:  billing.New(logger, profiles),
		Radar:    radarService,
	})
	return r, profiles
}

func do(r http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestRoutes_Public(t *testing.T) {
	r, _ := newRouter(t, "")

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/health", "", nil).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/metrics", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/api/v1/profile", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPost, "/api/v1/admin/tokens", `{"plan":"A"}`, nil).Code)
}

func TestRoutes_ProfileAndSearch(t *testing.T) {
	r, _ := newRouter(t, "")
	h := map[string]string{"X-Device-ID": deviceID}

	rr := do(r, http.MethodGet, "/api/v1/profile?ref=7days", "", h)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = do(r, http.MethodGet, "/api/v1/leads", "", h)
	require.Equal(t, http.StatusOK, rr.Code)
	var list struct {
		Data []models.Lead `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Len(t, list.Data, 2)

	rr = do(r, http.MethodPost, "/api/v1/radar/search", `{"niche":"casa","location":"SJC","type":"owner"}`, h)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var found struct {
		Data struct {
			Leads     []models.Lead `json:"leads"`
			FromCache bool          `json:"from_cache"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &found))
	require.Len(t, found.Data.Leads, 1)
	assert.Equal(t, "Ana", found.Data.Leads[0].Name)
	assert.False(t, found.Data.FromCache)
}

func TestRoutes_ExpiredSubscriptionBlocksRadar(t *testing.T) {
	r, profiles := newRouter(t, "")
	h := map[string]string{"X-Device-ID": deviceID}

	_, err := profiles.Update(context.Background(), deviceID, func(p *models.Profile) error {
		p.TrialStartDate = time.Now().AddDate(0, 0, -30).UTC().Format(time.RFC3339)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/api/v1/leads", "", h).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/v1/subscription", "", h).Code)

	rr := do(r, http.MethodPost, "/api/v1/billing/activate", `{"token":"AGENT-PRO-L-ABCDEF12"}`, h)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/v1/leads", "", h).Code)
}

func TestRoutes_Admin(t *testing.T) {
	r, _ := newRouter(t, "secret")

	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/api/v1/admin/invite", "", nil).Code)

	rr := do(r, http.MethodGet, "/api/v1/admin/invite", "", map[string]string{"X-Admin-Key": "secret"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "https://pulse.example.com/?ref=7days")
}
