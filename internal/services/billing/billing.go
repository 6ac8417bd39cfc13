// Package billing синхронизирует оплату по идентификатору транзакции и активирует лицензию.
// Реальной проверки платежа нет: план определяется по тексту идентификатора.
package billing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/magabrotheeeer/agentpulse/internal/lib/license"
	"github.com/magabrotheeeer/agentpulse/internal/lib/sl"
	"github.com/magabrotheeeer/agentpulse/internal/models"
	"github.com/magabrotheeeer/agentpulse/internal/services/profile"
)

// минимальная длина идентификатора транзакции
const minTxIDLength = 5

// InvalidTransactionMessage сообщение пользователю о некорректном идентификаторе.
const InvalidTransactionMessage = "TXID INVÁLIDO: Protocolo Rodney exige um identificador válido."

// ErrInvalidTransaction идентификатор транзакции слишком короткий.
var ErrInvalidTransaction = errors.New("invalid transaction id")

// ErrEmptyToken пустой лицензионный токен.
var ErrEmptyToken = errors.New("token is empty")

// ProfileUpdater изменяет профиль условной записью.
type ProfileUpdater interface {
	Update(ctx context.Context, deviceID string, fn func(*models.Profile) error) (models.Profile, error)
}

// SyncResult результат синхронизации оплаты.
type SyncResult struct {
	Success bool   `json:"success"`
	Plan    string `json:"plan,omitempty"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message"`
}

// Service активирует лицензии для устройства.
type Service struct {
	profiles ProfileUpdater
	log      *slog.Logger
	now      func() time.Time
}

// New создает сервис оплаты.
func New(log *slog.Logger, profiles ProfileUpdater) *Service {
	return &Service{
		profiles: profiles,
		log:      log,
		now:      time.Now,
	}
}

// планы по ключевым словам в идентификаторе транзакции, в порядке проверки
var txPlans = []struct {
	kind     license.PlanKind
	label    string
	keywords []string
}{
	{license.Quarterly, "TRIMESTRAL ALPHA", []string{"TRIMESTRAL", "PRO-T"}},
	{license.Semiannual, "SEMESTRAL ALPHA", []string{"SEMESTRAL", "PRO-S"}},
	{license.Annual, "ANUAL ELITE", []string{"ANUAL", "PRO-A"}},
	{license.Lifetime, "VITALÍCIO COMANDANTE", []string{"VITALICIO", "PRO-L", "MASTER"}},
}

// DetectPlan определяет план по идентификатору транзакции. По умолчанию месячный.
func DetectPlan(txid string) (license.PlanKind, string) {
	for _, p := range txPlans {
		for _, kw := range p.keywords {
			if strings.Contains(txid, kw) {
				return p.kind, p.label
			}
		}
	}
	return license.Monthly, "MENSAL"
}

// VerifyTransaction проверяет идентификатор транзакции и выпускает токен для найденного плана.
func VerifyTransaction(transactionID string) (SyncResult, error) {
	const op = "billing.VerifyTransaction"

	txid := strings.ToUpper(strings.TrimSpace(transactionID))
	if len([]rune(txid)) < minTxIDLength {
		return SyncResult{Success: false, Message: InvalidTransactionMessage}, ErrInvalidTransaction
	}

	kind, label := DetectPlan(txid)
	token, err := license.Generate(kind)
	if err != nil {
		return SyncResult{}, fmt.Errorf("%s: %w", op, err)
	}
	return SyncResult{
		Success: true,
		Plan:    kind.Code(),
		Token:   token,
		Message: fmt.Sprintf("CONEXÃO ESTABELECIDA: Plano %s ativado com sucesso.", label),
	}, nil
}

// Sync проверяет транзакцию и сразу активирует полученный токен на устройстве.
func (s *Service) Sync(ctx context.Context, deviceID, transactionID string) (SyncResult, models.Profile, error) {
	const op = "billing.Sync"

	res, err := VerifyTransaction(transactionID)
	if err != nil {
		return res, models.Profile{}, err
	}
	p, err := s.Activate(ctx, deviceID, res.Token)
	if err != nil {
		return SyncResult{}, models.Profile{}, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("billing synchronized", sl.Device(deviceID), slog.String("plan", res.Plan))
	return res, p, nil
}

// Activate сохраняет токен в профиле и отмечает дату активации.
// Токен не проверяется: любая строка принимается как есть.
func (s *Service) Activate(ctx context.Context, deviceID, token string) (models.Profile, error) {
	const op = "billing.Activate"

	token = strings.TrimSpace(token)
	if token == "" {
		return models.Profile{}, ErrEmptyToken
	}
	p, err := s.profiles.Update(ctx, deviceID, func(p *models.Profile) error {
		p.ProToken = token
		p.ActivationDate = s.now().UTC().Format(time.RFC3339Nano)
		return nil
	})
	if err != nil {
		return models.Profile{}, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("license activated", sl.Device(deviceID), slog.String("plan", license.ParsePlan(token).String()))
	return p, nil
}

// InviteLink ссылка на пробный период для публичного адреса сервиса.
func InviteLink(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" {
		return strings.TrimRight(baseURL, "/") + "/?ref=" + profile.TrialRef
	}
	if u.Path == "" {
		u.Path = "/"
	}
	q := u.Query()
	q.Set("ref", profile.TrialRef)
	u.RawQuery = q.Encode()
	return u.String()
}
