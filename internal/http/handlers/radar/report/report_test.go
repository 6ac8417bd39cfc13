package report

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/agentpulse/internal/http/middlewarectx"
	"github.com/magabrotheeeer/agentpulse/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) MarketReport(ctx context.Context, deviceID, address, details string, lang models.Language) (models.MarketReport, error) {
	args := m.Called(ctx, deviceID, address, details, lang)
	return args.Get(0).(models.MarketReport), args.Error(1)
}

func TestReportHandler(t *testing.T) {
	svc := new(MockService)
	svc.On("MarketReport", mock.Anything, "device-0001", "Rua A 1", "3 quartos", models.LanguageEN).
		Return(models.MarketReport{Text: "stable market", Sources: []models.Source{}}, nil)
	h := New(slog.New(slog.NewTextHandler(io.Discard, nil)), svc)

	req := httptest.NewRequest(http.MethodPost, "/radar/report",
		strings.NewReader(`{"address":"Rua A 1","details":"3 quartos","language":"en"}`))
	req = req.WithContext(middlewarectx.WithDeviceID(req.Context(), "device-0001"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Data models.MarketReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "stable market", resp.Data.Text)
	svc.AssertExpectations(t)
}

func TestReportHandler_Validation(t *testing.T) {
	h := New(slog.New(slog.NewTextHandler(io.Discard, nil)), new(MockService))

	for _, body := range []string{`{"details":"x"}`, `{"address":"Rua A","language":"de"}`} {
		req := httptest.NewRequest(http.MethodPost, "/radar/report", strings.NewReader(body))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code, body)
	}
}
