// Package profile хранит профиль агента и тему оформления в пространстве ключей устройства.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/agentpulse/internal/lib/sl"
	"github.com/magabrotheeeer/agentpulse/internal/models"
	"github.com/magabrotheeeer/agentpulse/internal/services/subscription"
	"github.com/magabrotheeeer/agentpulse/internal/storage/kv"
)

// TrialRef значение параметра ref пригласительной ссылки на пробный период.
const TrialRef = "7days"

// сколько раз повторять условную запись при конкурентных изменениях
const maxUpdateAttempts = 5

var (
	// ErrVersionConflict профиль изменился после того, как клиент его прочитал.
	ErrVersionConflict = errors.New("profile was modified concurrently")
	// ErrInvalidTheme неизвестная тема оформления.
	ErrInvalidTheme = errors.New("invalid theme")
)

// Service операции над профилем устройства.
type Service struct {
	store kv.Store
	log   *slog.Logger
	now   func() time.Time
}

// New создает сервис профилей.
func New(log *slog.Logger, store kv.Store) *Service {
	return &Service{
		store: store,
		log:   log,
		now:   time.Now,
	}
}

// Load возвращает сохраненный профиль или профиль по умолчанию.
// При первом входе по ссылке с ref=7days запускается пробный период и профиль сохраняется.
func (s *Service) Load(ctx context.Context, deviceID, ref string) (models.Profile, error) {
	const op = "profile.Load"

	p, _, err := s.read(ctx, deviceID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, kv.ErrNotFound) {
		return models.Profile{}, fmt.Errorf("%s: %w", op, err)
	}

	p = models.DefaultProfile()
	if ref != TrialRef {
		return p, nil
	}

	p, err = s.Update(ctx, deviceID, func(cur *models.Profile) error {
		if cur.TrialStartDate == "" {
			cur.TrialStartDate = s.timestamp()
		}
		return nil
	})
	if err != nil {
		return models.Profile{}, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("trial started from invite link", sl.Device(deviceID))
	return p, nil
}

// Save сохраняет профиль целиком, если его версия совпадает с expectedVersion.
func (s *Service) Save(ctx context.Context, deviceID string, p models.Profile, expectedVersion int64) (models.Profile, error) {
	const op = "profile.Save"

	_, raw, err := s.read(ctx, deviceID)
	if err != nil && !errors.Is(err, kv.ErrNotFound) {
		return models.Profile{}, fmt.Errorf("%s: %w", op, err)
	}

	var current int64
	if raw != nil {
		var cur models.Profile
		if json.Unmarshal(raw, &cur) == nil {
			current = cur.Version
		}
	}
	if current != expectedVersion {
		return models.Profile{}, ErrVersionConflict
	}

	p.Version = expectedVersion + 1
	if err := s.swap(ctx, deviceID, raw, p); err != nil {
		if errors.Is(err, kv.ErrConflict) {
			return models.Profile{}, ErrVersionConflict
		}
		return models.Profile{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// Update читает профиль, применяет fn и сохраняет результат условной записью,
// повторяя попытку, если профиль изменился параллельно.
func (s *Service) Update(ctx context.Context, deviceID string, fn func(*models.Profile) error) (models.Profile, error) {
	const op = "profile.Update"

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		p, raw, err := s.read(ctx, deviceID)
		if errors.Is(err, kv.ErrNotFound) {
			p = models.DefaultProfile()
		} else if err != nil {
			return models.Profile{}, fmt.Errorf("%s: %w", op, err)
		}

		if err := fn(&p); err != nil {
			return models.Profile{}, err
		}
		p.Version++

		err = s.swap(ctx, deviceID, raw, p)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, kv.ErrConflict) {
			return models.Profile{}, fmt.Errorf("%s: %w", op, err)
		}
		s.log.Debug("profile changed concurrently, retrying", sl.Device(deviceID), slog.Int("attempt", attempt+1))
	}
	return models.Profile{}, fmt.Errorf("%s: %w", op, ErrVersionConflict)
}

// StartTrial фиксирует вход пользователя: сохраняет телефон и запускает пробный период,
// если он еще не начат.
func (s *Service) StartTrial(ctx context.Context, deviceID, phone string) (models.Profile, error) {
	return s.Update(ctx, deviceID, func(p *models.Profile) error {
		if phone != "" {
			p.Phone = phone
		}
		if p.TrialStartDate == "" {
			p.TrialStartDate = s.timestamp()
		}
		return nil
	})
}

// Reset полностью очищает данные устройства.
func (s *Service) Reset(ctx context.Context, deviceID string) error {
	const op = "profile.Reset"

	if err := kv.Device(s.store, deviceID).Clear(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := kv.ForgetDevice(ctx, s.store, deviceID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("device data cleared", sl.Device(deviceID))
	return nil
}

// Theme возвращает тему оформления устройства, по умолчанию темную.
func (s *Service) Theme(ctx context.Context, deviceID string) (models.Theme, error) {
	const op = "profile.Theme"

	raw, err := kv.Device(s.store, deviceID).Get(ctx, kv.KeyTheme)
	if errors.Is(err, kv.ErrNotFound) {
		return models.ThemeDark, nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	theme := models.Theme(raw)
	if theme != models.ThemeDark && theme != models.ThemeLight {
		return models.ThemeDark, nil
	}
	return theme, nil
}

// SetTheme сохраняет тему оформления.
func (s *Service) SetTheme(ctx context.Context, deviceID string, theme models.Theme) error {
	const op = "profile.SetTheme"

	if theme != models.ThemeDark && theme != models.ThemeLight {
		return ErrInvalidTheme
	}
	if err := kv.Device(s.store, deviceID).Set(ctx, kv.KeyTheme, []byte(theme), 0); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Status вычисляет статус подписки по сохраненному профилю.
func (s *Service) Status(ctx context.Context, deviceID string) (models.SubscriptionStatus, error) {
	const op = "profile.Status"

	p, err := s.Load(ctx, deviceID, "")
	if err != nil {
		return models.SubscriptionStatus{}, fmt.Errorf("%s: %w", op, err)
	}
	return subscription.Evaluate(p, s.now()), nil
}

// Devices возвращает все устройства, для которых сохранялся профиль.
func (s *Service) Devices(ctx context.Context) ([]string, error) {
	return kv.Devices(ctx, s.store)
}

// read возвращает профиль и его сырое представление. Поврежденный JSON
// считается отсутствующим профилем, а сырое значение возвращается для условной записи.
func (s *Service) read(ctx context.Context, deviceID string) (models.Profile, []byte, error) {
	raw, err := kv.Device(s.store, deviceID).Get(ctx, kv.KeyProfile)
	if err != nil {
		return models.Profile{}, nil, err
	}

	var p models.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		s.log.Warn("stored profile is malformed, using defaults", sl.Device(deviceID), sl.Err(err))
		return models.Profile{}, raw, kv.ErrNotFound
	}
	return p, raw, nil
}

func (s *Service) swap(ctx context.Context, deviceID string, prev []byte, p models.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := kv.Device(s.store, deviceID).CompareAndSwap(ctx, kv.KeyProfile, prev, data, 0); err != nil {
		return err
	}
	if prev == nil {
		if err := kv.RegisterDevice(ctx, s.store, deviceID); err != nil {
			s.log.Warn("failed to register device", sl.Device(deviceID), sl.Err(err))
		}
	}
	return nil
}

func (s *Service) timestamp() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}
