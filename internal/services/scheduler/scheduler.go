// Package scheduler запускает автоматические поиски лидов по расписаниям из профилей устройств.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/magabrotheeeer/agentpulse/internal/lib/sl"
	"github.com/magabrotheeeer/agentpulse/internal/models"
	"github.com/magabrotheeeer/agentpulse/internal/services/gateway"
	"github.com/magabrotheeeer/agentpulse/internal/services/radar"
	"github.com/magabrotheeeer/agentpulse/internal/services/subscription"
)

// Сокращения дней недели в расписании, индекс совпадает с time.Weekday.
var weekdays = [...]string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// ProfileSource устройства и их профили.
type ProfileSource interface {
	Devices(ctx context.Context) ([]string, error)
	Load(ctx context.Context, deviceID, ref string) (models.Profile, error)
}

// Searcher поиск лидов.
type Searcher interface {
	SearchLeads(ctx context.Context, deviceID, niche, location string, searchType models.SearchType) (models.SearchResult, bool, error)
}

// SweepStats итог одного прохода.
type SweepStats struct {
	Devices  int
	Searches int
	Skipped  int
	Failed   int
	Leads    int
}

// SchedulerService проходит по устройствам и выполняет наступившие расписания.
type SchedulerService struct {
	profiles ProfileSource
	radar    Searcher
	log      *slog.Logger
	loc      *time.Location
	now      func() time.Time
}

// NewSchedulerService создает новый экземпляр SchedulerService. Расписания
// сравниваются с местным временем loc.
func NewSchedulerService(log *slog.Logger, profiles ProfileSource, searcher Searcher, loc *time.Location) *SchedulerService {
	if loc == nil {
		loc = time.UTC
	}
	return &SchedulerService{
		profiles: profiles,
		radar:    searcher,
		log:      log,
		loc:      loc,
		now:      time.Now,
	}
}

// RunSweeps выполняет один проход по всем известным устройствам.
func (s *SchedulerService) RunSweeps(ctx context.Context) SweepStats {
	const op = "scheduler.RunSweeps"
	log := s.log.With(slog.String("op", op))
	now := s.now().In(s.loc)

	var stats SweepStats
	devices, err := s.profiles.Devices(ctx)
	if err != nil {
		log.Error("failed to list devices", sl.Err(err))
		return stats
	}
	log.Info("starting scheduled sweeps", slog.Int("devices", len(devices)))

	for _, deviceID := range devices {
		if ctx.Err() != nil {
			log.Info("sweep interrupted")
			break
		}
		stats.Devices++
		s.sweepDevice(ctx, log.With(sl.Device(deviceID)), deviceID, now, &stats)
	}

	log.Info("scheduled sweeps finished",
		slog.Int("searches", stats.Searches),
		slog.Int("skipped", stats.Skipped),
		slog.Int("failed", stats.Failed),
		slog.Int("leads", stats.Leads))
	return stats
}

func (s *SchedulerService) sweepDevice(ctx context.Context, log *slog.Logger, deviceID string, now time.Time, stats *SweepStats) {
	profile, err := s.profiles.Load(ctx, deviceID, "")
	if err != nil {
		log.Error("failed to load profile", sl.Err(err))
		return
	}
	if subscription.Evaluate(profile, now).Expired {
		log.Debug("subscription expired, skipping device")
		return
	}

	for _, sch := range profile.Schedules {
		if !Due(sch, now) {
			continue
		}
		res, fromCache, err := s.radar.SearchLeads(ctx, deviceID, sch.Niche, sch.Location, sch.Type)
		switch {
		case errors.Is(err, gateway.ErrCooldown), errors.Is(err, gateway.ErrBusy):
			stats.Skipped++
			log.Info("schedule skipped", slog.String("schedule_id", sch.ID), sl.Err(err))
		case errors.Is(err, radar.ErrNoLeads):
			stats.Searches++
			log.Info("schedule found no leads", slog.String("schedule_id", sch.ID))
		case err != nil:
			stats.Failed++
			log.Warn("scheduled search failed", slog.String("schedule_id", sch.ID),
				slog.String("kind", string(gateway.Classify(err))), sl.Err(err))
		default:
			stats.Searches++
			stats.Leads += len(res.Leads)
			log.Info("scheduled search done", slog.String("schedule_id", sch.ID),
				slog.Int("leads", len(res.Leads)), slog.Bool("from_cache", fromCache))
		}
	}
}

// Due true, если расписание активно и now попадает в окно дат, дней недели и времени.
// Пустые границы окна не ограничивают. Окно времени, у которого конец раньше начала,
// переходит через полночь.
func Due(sch models.SearchSchedule, now time.Time) bool {
	if !sch.Active || sch.Niche == "" || sch.Location == "" {
		return false
	}

	today := now.Format(dateLayout)
	if sch.StartDate != "" && today < normalizeDate(sch.StartDate) {
		return false
	}
	if sch.EndDate != "" && today > normalizeDate(sch.EndDate) {
		return false
	}

	if len(sch.Days) > 0 && !slices.Contains(sch.Days, weekdays[now.Weekday()]) {
		return false
	}

	return inTimeWindow(sch.StartTime, sch.EndTime, now)
}

// normalizeDate приводит дату к 2006-01-02, чтобы строки сравнивались лексикографически.
func normalizeDate(s string) string {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, s); err != nil {
			return s
		}
	}
	return t.Format(dateLayout)
}

func inTimeWindow(start, end string, now time.Time) bool {
	minute := now.Hour()*60 + now.Minute()
	from, okFrom := minuteOfDay(start)
	to, okTo := minuteOfDay(end)

	switch {
	case !okFrom && !okTo:
		return true
	case !okTo:
		return minute >= from
	case !okFrom:
		return minute <= to
	case from <= to:
		return minute >= from && minute <= to
	default:
		return minute >= from || minute <= to
	}
}

func minuteOfDay(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}
