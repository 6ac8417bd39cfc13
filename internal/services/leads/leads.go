// Package leads управляет списком лидов устройства.
package leads

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/agentpulse/internal/lib/sl"
	"github.com/magabrotheeeer/agentpulse/internal/models"
	"github.com/magabrotheeeer/agentpulse/internal/storage/kv"
)

const maxUpdateAttempts = 5

var (
	// ErrLeadNotFound лид с таким идентификатором отсутствует.
	ErrLeadNotFound = errors.New("lead not found")
	// ErrInvalidStatus неизвестная стадия воронки.
	ErrInvalidStatus = errors.New("invalid lead status")
)

// ProfileUpdater изменяет профиль условной записью.
type ProfileUpdater interface {
	Update(ctx context.Context, deviceID string, fn func(*models.Profile) error) (models.Profile, error)
}

// Service операции над лидами.
type Service struct {
	store    kv.Store
	profiles ProfileUpdater
	log      *slog.Logger
	now      func() time.Time
}

// New создает сервис лидов.
func New(log *slog.Logger, store kv.Store, profiles ProfileUpdater) *Service {
	return &Service{
		store:    store,
		profiles: profiles,
		log:      log,
		now:      time.Now,
	}
}

// List возвращает лиды устройства. Если список не сохранялся или поврежден,
// возвращается демонстрационный список.
func (s *Service) List(ctx context.Context, deviceID string) ([]models.Lead, error) {
	const op = "leads.List"

	leads, _, err := s.read(ctx, deviceID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return leads, nil
}

// Add добавляет новые лиды в начало списка. Лиды с уже известным идентификатором пропускаются.
func (s *Service) Add(ctx context.Context, deviceID string, found []models.Lead) ([]models.Lead, error) {
	const op = "leads.Add"

	if len(found) == 0 {
		return s.List(ctx, deviceID)
	}
	updated, err := s.modify(ctx, deviceID, func(cur []models.Lead) ([]models.Lead, error) {
		known := make(map[string]struct{}, len(cur))
		for _, l := range cur {
			known[l.ID] = struct{}{}
		}
		next := make([]models.Lead, 0, len(found)+len(cur))
		for _, l := range found {
			if _, ok := known[l.ID]; ok {
				continue
			}
			known[l.ID] = struct{}{}
			next = append(next, l)
		}
		return append(next, cur...), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("leads added", sl.Device(deviceID), slog.Int("count", len(found)))
	return updated, nil
}

// UpdateStatus переводит лид в новую стадию. При первом переходе в
// "Negócio Fechado" сумма сделки добавляется к totalClosedVGV профиля.
func (s *Service) UpdateStatus(ctx context.Context, deviceID, leadID string, status models.LeadStatus, closedValue float64) (models.Lead, error) {
	const op = "leads.UpdateStatus"

	if !validStatus(status) {
		return models.Lead{}, ErrInvalidStatus
	}

	var (
		result models.Lead
		prev   models.Lead
		closed float64
	)
	_, err := s.modify(ctx, deviceID, func(cur []models.Lead) ([]models.Lead, error) {
		closed = 0
		for i := range cur {
			if cur[i].ID != leadID {
				continue
			}
			if status == models.LeadClosed && cur[i].Status != models.LeadClosed {
				closed = dealValue(closedValue, cur[i].Value)
			}
			prev = cur[i]
			cur[i].Status = status
			cur[i].LastInteraction = s.now().UTC().Format(time.RFC3339Nano)
			cur[i].ClosedValue = closedValue
			result = cur[i]
			return cur, nil
		}
		return nil, ErrLeadNotFound
	})
	if err != nil {
		if errors.Is(err, ErrLeadNotFound) {
			return models.Lead{}, err
		}
		return models.Lead{}, fmt.Errorf("%s: %w", op, err)
	}

	if closed != 0 {
		if _, err := s.profiles.Update(ctx, deviceID, func(p *models.Profile) error {
			p.TotalClosedVGV += closed
			return nil
		}); err != nil {
			// без суммы в профиле лид не должен остаться закрытым, иначе повтор ее не добавит
			s.revert(ctx, deviceID, prev)
			return models.Lead{}, fmt.Errorf("%s: %w", op, err)
		}
		s.log.Info("deal closed", sl.Device(deviceID), slog.String("lead_id", leadID), slog.Float64("value", closed))
	}
	return result, nil
}

// revert возвращает лиду состояние до закрытия, если он все еще закрыт.
func (s *Service) revert(ctx context.Context, deviceID string, prev models.Lead) {
	_, err := s.modify(context.WithoutCancel(ctx), deviceID, func(cur []models.Lead) ([]models.Lead, error) {
		for i := range cur {
			if cur[i].ID == prev.ID && cur[i].Status == models.LeadClosed {
				cur[i] = prev
				return cur, nil
			}
		}
		return cur, nil
	})
	if err != nil {
		s.log.Error("failed to revert closed lead", sl.Device(deviceID), slog.String("lead_id", prev.ID), sl.Err(err))
	}
}

func (s *Service) modify(ctx context.Context, deviceID string, fn func([]models.Lead) ([]models.Lead, error)) ([]models.Lead, error) {
	ns := kv.Device(s.store, deviceID)
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		cur, raw, err := s.read(ctx, deviceID)
		if err != nil {
			return nil, err
		}
		next, err := fn(cur)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(next)
		if err != nil {
			return nil, err
		}
		err = ns.CompareAndSwap(ctx, kv.KeyLeads, raw, data, 0)
		if err == nil {
			return next, nil
		}
		if !errors.Is(err, kv.ErrConflict) {
			return nil, err
		}
	}
	return nil, kv.ErrConflict
}

// read возвращает лиды и сырое значение для условной записи.
func (s *Service) read(ctx context.Context, deviceID string) ([]models.Lead, []byte, error) {
	raw, err := kv.Device(s.store, deviceID).Get(ctx, kv.KeyLeads)
	if errors.Is(err, kv.ErrNotFound) {
		return models.SeedLeads(), nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	var leads []models.Lead
	if err := json.Unmarshal(raw, &leads); err != nil {
		s.log.Warn("stored leads are malformed, using seed list", sl.Device(deviceID), sl.Err(err))
		return models.SeedLeads(), raw, nil
	}
	return leads, raw, nil
}

func dealValue(closedValue, value float64) float64 {
	if closedValue != 0 {
		return closedValue
	}
	return value
}

func validStatus(status models.LeadStatus) bool {
	switch status {
	case models.LeadNew, models.LeadContacted, models.LeadScheduled, models.LeadClosed:
		return true
	default:
		return false
	}
}
