// Package radar реализует операции с генеративной моделью: поиск лидов, скрипты
// сообщений, ключевые слова, рыночную справку и проверку ключа API.
package radar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/agentpulse/internal/gemini"
	"github.com/magabrotheeeer/agentpulse/internal/lib/fingerprint"
	"github.com/magabrotheeeer/agentpulse/internal/lib/sl"
	"github.com/magabrotheeeer/agentpulse/internal/models"
	"github.com/magabrotheeeer/agentpulse/internal/services/gateway"
)

// Значения, которыми помечаются найденные лиды.
const (
	FoundAt        = "Rodney OSINT"
	ValidatedLabel = "Validado Rodney"
	idPrefix       = "RADAR-"
	minScore       = 88
	maxScore       = 99
)

// Сообщения пользователю.
const (
	MsgNoLeads        = "RODNEY: Nenhum lead validado com contato real nesta varredura."
	MsgReportFailed   = "Erro na análise técnica."
	MsgKeyTooShort    = "Chave muito curta ou inválida."
	MsgKeyOK          = "APLICAÇÃO BEM SUCEDIDA: Motor Alpha Operacional."
	MsgKeyInvalid     = "CHAVE INVÁLIDA: Verifique no Google AI Studio."
	MsgKeyBilling     = "ERRO DE FATURAMENTO: Ative o Billing no Cloud Console."
	MsgKeyQuota       = "LIMITE ATINGIDO: Esta chave não tem cota disponível."
	MsgKeyUnreachable = "FALHA NA IGNIÇÃO: Tente outra vez ou verifique sua conexão."
)

// минимальная длина ключа, с которой выполняется пробный вызов
const minAPIKeyLength = 20

// ErrNoLeads модель не нашла ни одного лида.
var ErrNoLeads = errors.New("radar: no leads found")

// Gateway вызов модели через кеш и ограничения устройства.
type Gateway interface {
	FetchOrCompute(ctx context.Context, deviceID, fingerprint string, compute gateway.ComputeFunc) (gateway.Result, error)
}

// ProfileLoader читает профиль устройства.
type ProfileLoader interface {
	Load(ctx context.Context, deviceID, ref string) (models.Profile, error)
}

// LeadStore сохраняет найденные лиды.
type LeadStore interface {
	Add(ctx context.Context, deviceID string, found []models.Lead) ([]models.Lead, error)
}

// AlertPublisher публикует уведомление о горячем лиде.
type AlertPublisher interface {
	PublishHotLead(ctx context.Context, alert models.LeadAlert) error
}

// Config параметры сервиса.
type Config struct {
	// ServerAPIKey ключ, который используется, если в профиле свой ключ не задан.
	ServerAPIKey string
	// HotScore оценка, начиная с которой лид считается горячим.
	HotScore int
}

// KeyValidation результат проверки ключа API.
type KeyValidation struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Service операции радара.
type Service struct {
	gen      gemini.Generator
	gateway  Gateway
	profiles ProfileLoader
	leads    LeadStore
	alerts   AlertPublisher
	log      *slog.Logger
	cfg      Config
	score    func() int
}

// New создает сервис. alerts может быть nil, если уведомления отключены.
func New(log *slog.Logger, gen gemini.Generator, gw Gateway, profiles ProfileLoader, leads LeadStore, alerts AlertPublisher, cfg Config) *Service {
	return &Service{
		gen:      gen,
		gateway:  gw,
		profiles: profiles,
		leads:    leads,
		alerts:   alerts,
		log:      log,
		cfg:      cfg,
		score:    func() int { return minScore + rand.IntN(maxScore-minScore+1) },
	}
}

type rawLead struct {
	Name       string `json:"name"`
	Contact    string `json:"contact"`
	Need       string `json:"need"`
	Profession string `json:"profession"`
}

// SearchLeads ищет лидов по нише и локации. Результат проходит через шлюз кеша,
// новые лиды добавляются в список устройства, по горячим отправляются уведомления.
func (s *Service) SearchLeads(ctx context.Context, deviceID, niche, location string, searchType models.SearchType) (models.SearchResult, bool, error) {
	const op = "radar.SearchLeads"
	log := s.log.With(slog.String("op", op), sl.Device(deviceID))

	profile, err := s.profiles.Load(ctx, deviceID, "")
	if err != nil {
		return models.SearchResult{}, false, fmt.Errorf("%s: %w", op, err)
	}
	apiKey := s.apiKey(profile)
	fp := fingerprint.Of(niche, location, string(searchType))

	res, err := s.gateway.FetchOrCompute(ctx, deviceID, fp, func(ctx context.Context) ([]byte, error) {
		resp, err := s.gen.Generate(ctx, apiKey, gemini.Request{
			Prompt: searchPrompt(niche, location, searchType),
			Schema: gemini.LeadsSchema(),
		})
		if err != nil {
			return nil, err
		}
		result, err := s.buildResult(resp, location, searchType)
		if err != nil {
			return nil, err
		}
		return json.Marshal(result)
	})
	if err != nil {
		return models.SearchResult{}, false, err
	}

	var result models.SearchResult
	if err := json.Unmarshal(res.Data, &result); err != nil {
		return models.SearchResult{}, false, fmt.Errorf("%s: %w", op, err)
	}
	if len(result.Leads) == 0 {
		return result, res.FromCache, ErrNoLeads
	}

	if _, err := s.leads.Add(ctx, deviceID, result.Leads); err != nil {
		log.Error("failed to store found leads", sl.Err(err))
		return models.SearchResult{}, false, fmt.Errorf("%s: %w", op, err)
	}
	if !res.FromCache {
		s.notifyHot(ctx, log, deviceID, profile, result.Leads)
	}
	log.Info("radar sweep finished", slog.Int("leads", len(result.Leads)), slog.Bool("from_cache", res.FromCache))
	return result, res.FromCache, nil
}

func (s *Service) buildResult(resp gemini.Response, location string, searchType models.SearchType) (models.SearchResult, error) {
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		text = `{"leads":[]}`
	}
	var payload struct {
		Leads []rawLead `json:"leads"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return models.SearchResult{}, fmt.Errorf("radar: malformed model response: %w", err)
	}

	leads := make([]models.Lead, 0, len(payload.Leads))
	for _, l := range payload.Leads {
		triggers := make([]string, 0, 2)
		if l.Profession != "" {
			triggers = append(triggers, l.Profession)
		}
		triggers = append(triggers, ValidatedLabel)

		leads = append(leads, models.Lead{
			ID:         newLeadID(),
			Name:       l.Name,
			Need:       l.Need,
			Location:   location,
			Score:      s.score(),
			Triggers:   triggers,
			Contact:    l.Contact,
			FoundAt:    FoundAt,
			Status:     models.LeadNew,
			Type:       searchType,
			Profession: l.Profession,
		})
	}

	sources := resp.Sources
	if sources == nil {
		sources = []models.Source{}
	}
	return models.SearchResult{Leads: leads, Sources: sources}, nil
}

func (s *Service) notifyHot(ctx context.Context, log *slog.Logger, deviceID string, profile models.Profile, leads []models.Lead) {
	if s.alerts == nil || !profile.TelegramReady() {
		return
	}
	for _, lead := range leads {
		if lead.Score < s.cfg.HotScore {
			continue
		}
		alert := models.LeadAlert{
			DeviceID: deviceID,
			BotToken: profile.TelegramBotToken,
			ChatID:   profile.TelegramChatID,
			Lead:     lead,
		}
		if err := s.alerts.PublishHotLead(ctx, alert); err != nil {
			log.Warn("failed to publish hot lead alert", slog.String("lead_id", lead.ID), sl.Err(err))
		}
	}
}

// GenerateScripts предлагает варианты первого сообщения лиду.
// При любой ошибке возвращается одно стандартное приветствие.
func (s *Service) GenerateScripts(ctx context.Context, deviceID string, lead models.Lead) ([]string, error) {
	const op = "radar.GenerateScripts"

	profile, err := s.profiles.Load(ctx, deviceID, "")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	fallback := []string{fmt.Sprintf("Olá %s, sou %s. Notei seu interesse imobiliário no radar.", lead.Name, profile.BrokerName)}

	scripts, err := s.stringList(ctx, s.apiKey(profile), fmt.Sprintf("Script WhatsApp p/ %s (%s).", lead.Name, lead.Need))
	if err != nil || len(scripts) == 0 {
		s.log.Debug("script generation failed, using greeting", slog.String("op", op), sl.Err(err))
		return fallback, nil
	}
	return scripts, nil
}

// SuggestKeywords предлагает поисковые термины. При ошибке возвращается сама ниша.
func (s *Service) SuggestKeywords(ctx context.Context, deviceID, niche string, searchType models.SearchType) ([]string, error) {
	const op = "radar.SuggestKeywords"

	profile, err := s.profiles.Load(ctx, deviceID, "")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	target := "compradores"
	if searchType == models.SearchOwner {
		target = "donos"
	}

	keywords, err := s.stringList(ctx, s.apiKey(profile), fmt.Sprintf("4 termos de busca para achar %s de %s.", target, niche))
	if err != nil {
		s.log.Debug("keyword suggestion failed", slog.String("op", op), sl.Err(err))
		return []string{niche}, nil
	}
	return keywords, nil
}

// MarketReport аналитическая справка по адресу. При ошибке возвращается текст-заглушка.
func (s *Service) MarketReport(ctx context.Context, deviceID, address, details string, lang models.Language) (models.MarketReport, error) {
	const op = "radar.MarketReport"

	profile, err := s.profiles.Load(ctx, deviceID, "")
	if err != nil {
		return models.MarketReport{}, fmt.Errorf("%s: %w", op, err)
	}
	if lang == "" {
		lang = profile.Language
	}

	resp, err := s.gen.Generate(ctx, s.apiKey(profile), gemini.Request{
		Prompt: fmt.Sprintf("RODNEY MARKET INTELLIGENCE: Analise o mercado para: %s. Detalhes: %s. Idioma: %s.", address, details, lang),
	})
	if err != nil {
		s.log.Warn("market report failed", slog.String("op", op), sl.Device(deviceID),
			slog.String("kind", string(gateway.Classify(err))), sl.Err(err))
		return models.MarketReport{Text: MsgReportFailed, Sources: []models.Source{}}, nil
	}
	sources := resp.Sources
	if sources == nil {
		sources = []models.Source{}
	}
	return models.MarketReport{Text: resp.Text, Sources: sources}, nil
}

// ValidateAPIKey проверяет ключ минимальным вызовом модели.
func (s *Service) ValidateAPIKey(ctx context.Context, key string) KeyValidation {
	key = strings.TrimSpace(key)
	if len(key) < minAPIKeyLength {
		return KeyValidation{Success: false, Message: MsgKeyTooShort}
	}

	_, err := s.gen.Generate(ctx, key, gemini.Request{Prompt: "ping", MaxOutputTokens: 1})
	if err == nil {
		return KeyValidation{Success: true, Message: MsgKeyOK}
	}

	kind := gateway.Classify(err)
	s.log.Info("api key validation failed", slog.String("kind", string(kind)), sl.Err(err))
	switch kind {
	case gateway.KindInvalidKey:
		return KeyValidation{Message: MsgKeyInvalid}
	case gateway.KindBilling:
		return KeyValidation{Message: MsgKeyBilling}
	case gateway.KindRateLimit:
		return KeyValidation{Message: MsgKeyQuota}
	default:
		return KeyValidation{Message: MsgKeyUnreachable}
	}
}

func (s *Service) stringList(ctx context.Context, apiKey, prompt string) ([]string, error) {
	resp, err := s.gen.Generate(ctx, apiKey, gemini.Request{Prompt: prompt, Schema: gemini.StringListSchema()})
	if err != nil {
		return nil, err
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// apiKey ключ профиля или ключ сервера.
func (s *Service) apiKey(p models.Profile) string {
	if k := strings.TrimSpace(p.UserGeminiAPIKey); k != "" {
		return k
	}
	return strings.TrimSpace(s.cfg.ServerAPIKey)
}

func searchPrompt(niche, location string, searchType models.SearchType) string {
	focus := "Pessoas buscando comprar agora"
	if searchType == models.SearchOwner {
		focus = "Proprietários vendendo direto"
	}
	return fmt.Sprintf(`RODNEY OSINT: Localize leads reais (NOME E WHATSAPP) para %s em %s.
FOCO: %s.
RETORNE APENAS JSON { "leads": [{ "name": "...", "contact": "...", "need": "...", "profession": "..." }] }.`,
		niche, location, focus)
}

func newLeadID() string {
	return idPrefix + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:5]
}
