package status

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/agentpulse/internal/http/middlewarectx"
	"github.com/magabrotheeeer/agentpulse/internal/http/response"
	"github.com/magabrotheeeer/agentpulse/internal/models"
	"github.com/magabrotheeeer/agentpulse/internal/services/leads"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) UpdateStatus(ctx context.Context, deviceID, leadID string, status models.LeadStatus, closedValue float64) (models.Lead, error) {
	args := m.Called(ctx, deviceID, leadID, status, closedValue)
	return args.Get(0).(models.Lead), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestStatusHandler(t *testing.T) {
	tests := []struct {
		name           string
		leadID         string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedError  string
	}{
		{
			name:   "закрытие сделки",
			leadID: "1",
			body:   `{"status":"Negócio Fechado","closedValue":900000}`,
			setupMock: func(m *MockService) {
				m.On("UpdateStatus", mock.Anything, "device-0001", "1", models.LeadClosed, 900000.0).
					Return(models.Lead{ID: "1", Status: models.LeadClosed, ClosedValue: 900000}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "лид не найден",
			leadID: "404",
			body:   `{"status":"Em Contato"}`,
			setupMock: func(m *MockService) {
				m.On("UpdateStatus", mock.Anything, mock.Anything, "404", models.LeadContacted, 0.0).
					Return(models.Lead{}, leads.ErrLeadNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  "lead not found",
		},
		{
			name:   "неизвестная стадия",
			leadID: "1",
			body:   `{"status":"Perdido"}`,
			setupMock: func(m *MockService) {
				m.On("UpdateStatus", mock.Anything, mock.Anything, "1", models.LeadStatus("Perdido"), 0.0).
					Return(models.Lead{}, leads.ErrInvalidStatus)
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "unknown lead status",
		},
		{
			name:           "пустая стадия",
			leadID:         "1",
			body:           `{}`,
			setupMock:      func(m *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  "field Status is a required field",
		},
		{
			name:   "ошибка хранилища",
			leadID: "1",
			body:   `{"status":"Agendado"}`,
			setupMock: func(m *MockService) {
				m.On("UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(models.Lead{}, errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "could not update lead",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)
			h := New(newNoopLogger(), svc)

			req := httptest.NewRequest(http.MethodPut, "/leads/"+tt.leadID+"/status", strings.NewReader(tt.body))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.leadID)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			req = req.WithContext(middlewarectx.WithDeviceID(ctx, "device-0001"))
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			var resp response.Response
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedError, resp.Error)
			svc.AssertExpectations(t)
		})
	}
}
