package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/agentpulse/internal/models"
	"github.com/magabrotheeeer/agentpulse/internal/services/gateway"
	"github.com/magabrotheeeer/agentpulse/internal/services/radar"
)

type MockProfiles struct {
	mock.Mock
}

func (m *MockProfiles) Devices(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockProfiles) Load(ctx context.Context, deviceID, ref string) (models.Profile, error) {
	args := m.Called(ctx, deviceID, ref)
	return args.Get(0).(models.Profile), args.Error(1)
}

type MockSearcher struct {
	mock.Mock
}

func (m *MockSearcher) SearchLeads(ctx context.Context, deviceID, niche, location string, searchType models.SearchType) (models.SearchResult, bool, error) {
	args := m.Called(ctx, deviceID, niche, location, searchType)
	return args.Get(0).(models.SearchResult), args.Bool(1), args.Error(2)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

// среда, 11 июня 2025, 10:30
var wednesday = time.Date(2025, 6, 11, 10, 30, 0, 0, time.UTC)

func schedule() models.SearchSchedule {
	return models.SearchSchedule{
		ID:        "s1",
		Niche:     "Casas",
		Location:  "SJC",
		Type:      models.SearchBuyer,
		Days:      []string{"Seg", "Qua", "Sex"},
		StartDate: "2025-06-01",
		EndDate:   "2025-06-30",
		StartTime: "08:00",
		EndTime:   "18:00",
		Active:    true,
	}
}

func TestDue(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*models.SearchSchedule)
		now    time.Time
		want   bool
	}{
		{name: "inside all windows", now: wednesday, want: true},
		{name: "inactive", modify: func(s *models.SearchSchedule) { s.Active = false }, now: wednesday},
		{name: "wrong weekday", now: wednesday.AddDate(0, 0, 1)},
		{name: "saturday with accent", modify: func(s *models.SearchSchedule) { s.Days = []string{"Sáb"} }, now: time.Date(2025, 6, 14, 10, 0, 0, 0, time.UTC), want: true},
		{name: "sunday", modify: func(s *models.SearchSchedule) { s.Days = []string{"Dom"} }, now: time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC), want: true},
		{name: "before start date", now: time.Date(2025, 5, 28, 10, 0, 0, 0, time.UTC)},
		{name: "after end date", now: time.Date(2025, 7, 2, 10, 0, 0, 0, time.UTC)},
		{name: "last day inclusive", modify: func(s *models.SearchSchedule) { s.Days = nil }, now: time.Date(2025, 6, 30, 17, 0, 0, 0, time.UTC), want: true},
		{name: "before start time", now: time.Date(2025, 6, 11, 7, 59, 0, 0, time.UTC)},
		{name: "after end time", now: time.Date(2025, 6, 11, 18, 1, 0, 0, time.UTC)},
		{name: "open windows", modify: func(s *models.SearchSchedule) {
			s.Days, s.StartDate, s.EndDate, s.StartTime, s.EndTime = nil, "", "", "", ""
		}, now: wednesday, want: true},
		{name: "overnight window late", modify: func(s *models.SearchSchedule) {
			s.StartTime, s.EndTime = "22:00", "02:00"
		}, now: time.Date(2025, 6, 11, 23, 15, 0, 0, time.UTC), want: true},
		{name: "overnight window midday", modify: func(s *models.SearchSchedule) {
			s.StartTime, s.EndTime = "22:00", "02:00"
		}, now: wednesday},
		{name: "missing niche", modify: func(s *models.SearchSchedule) { s.Niche = "" }, now: wednesday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sch := schedule()
			if tt.modify != nil {
				tt.modify(&sch)
			}
			assert.Equal(t, tt.want, Due(sch, tt.now))
		})
	}
}

func activeProfile() models.Profile {
	p := models.DefaultProfile()
	p.ProToken = "AGENT-PRO-L-ABCDEFGH"
	p.ActivationDate = "2025-01-01T00:00:00Z"
	return p
}

func TestRunSweeps(t *testing.T) {
	due := schedule()
	notDue := schedule()
	notDue.ID = "s2"
	notDue.Days = []string{"Dom"}

	withSchedules := activeProfile()
	withSchedules.Schedules = []models.SearchSchedule{due, notDue}

	expired := models.DefaultProfile()
	expired.TrialStartDate = "2025-01-01T00:00:00Z"
	expired.Schedules = []models.SearchSchedule{due}

	tests := []struct {
		name       string
		setupMocks func(*MockProfiles, *MockSearcher)
		want       SweepStats
	}{
		{
			name: "runs due schedules",
			setupMocks: func(p *MockProfiles, s *MockSearcher) {
				p.On("Devices", mock.Anything).Return([]string{"device-0001"}, nil).Once()
				p.On("Load", mock.Anything, "device-0001", "").Return(withSchedules, nil).Once()
				s.On("SearchLeads", mock.Anything, "device-0001", "Casas", "SJC", models.SearchBuyer).
					Return(models.SearchResult{Leads: []models.Lead{{ID: "a"}, {ID: "b"}}}, false, nil).Once()
			},
			want: SweepStats{Devices: 1, Searches: 1, Leads: 2},
		},
		{
			name: "expired subscription is skipped",
			setupMocks: func(p *MockProfiles, _ *MockSearcher) {
				p.On("Devices", mock.Anything).Return([]string{"device-0002"}, nil).Once()
				p.On("Load", mock.Anything, "device-0002", "").Return(expired, nil).Once()
			},
			want: SweepStats{Devices: 1},
		},
		{
			name: "cooldown and busy are skipped",
			setupMocks: func(p *MockProfiles, s *MockSearcher) {
				p.On("Devices", mock.Anything).Return([]string{"device-0001", "device-0003"}, nil).Once()
				p.On("Load", mock.Anything, mock.Anything, "").Return(withSchedules, nil).Twice()
				s.On("SearchLeads", mock.Anything, "device-0001", mock.Anything, mock.Anything, mock.Anything).
					Return(models.SearchResult{}, false, &gateway.CooldownError{Remaining: time.Second}).Once()
				s.On("SearchLeads", mock.Anything, "device-0003", mock.Anything, mock.Anything, mock.Anything).
					Return(models.SearchResult{}, false, gateway.ErrBusy).Once()
			},
			want: SweepStats{Devices: 2, Skipped: 2},
		},
		{
			name: "failures and empty results are counted",
			setupMocks: func(p *MockProfiles, s *MockSearcher) {
				p.On("Devices", mock.Anything).Return([]string{"device-0001", "device-0004", "device-0005"}, nil).Once()
				p.On("Load", mock.Anything, "device-0001", "").Return(withSchedules, nil).Once()
				p.On("Load", mock.Anything, "device-0004", "").Return(withSchedules, nil).Once()
				p.On("Load", mock.Anything, "device-0005", "").Return(models.Profile{}, errors.New("redis down")).Once()
				s.On("SearchLeads", mock.Anything, "device-0001", mock.Anything, mock.Anything, mock.Anything).
					Return(models.SearchResult{}, false, &gateway.Error{Kind: gateway.KindInvalidKey}).Once()
				s.On("SearchLeads", mock.Anything, "device-0004", mock.Anything, mock.Anything, mock.Anything).
					Return(models.SearchResult{}, false, radar.ErrNoLeads).Once()
			},
			want: SweepStats{Devices: 3, Searches: 1, Failed: 1},
		},
		{
			name: "device listing error",
			setupMocks: func(p *MockProfiles, _ *MockSearcher) {
				p.On("Devices", mock.Anything).Return(nil, errors.New("redis down")).Once()
			},
			want: SweepStats{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profiles := &MockProfiles{}
			searcher := &MockSearcher{}
			tt.setupMocks(profiles, searcher)

			s := NewSchedulerService(newNoopLogger(), profiles, searcher, time.UTC)
			s.now = func() time.Time { return wednesday }

			assert.Equal(t, tt.want, s.RunSweeps(context.Background()))
			profiles.AssertExpectations(t)
			searcher.AssertExpectations(t)
		})
	}
}
