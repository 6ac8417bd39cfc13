// Package models содержит доменные структуры дашборда: профиль агента, лиды,
// статус подписки и результаты поиска. JSON-теги совпадают с форматом,
// который клиент исторически хранил в local storage.
package models

// Language язык интерфейса.
type Language string

// Поддерживаемые языки интерфейса.
const (
	LanguagePT Language = "pt"
	LanguageEN Language = "en"
	LanguageES Language = "es"
	LanguageZH Language = "zh"
	LanguageHI Language = "hi"
	LanguageFR Language = "fr"
)

// Theme тема оформления.
type Theme string

// Темы оформления.
const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Profile представляет профиль агента, сохраняемый для устройства.
// Даты хранятся строками ISO-8601: клиент может прислать что угодно,
// поэтому разбор выполняется при вычислении статуса и не ломает загрузку.
type Profile struct {
	BrokerName            string           `json:"brokerName" validate:"required,max=120"`
	AgencyName            string           `json:"agencyName" validate:"max=120"`
	WelcomeMessage        string           `json:"welcomeMessage" validate:"max=500"`
	Phone                 string           `json:"phone" validate:"max=32"`
	TrialStartDate        string           `json:"trialStartDate,omitempty"`
	ProToken              string           `json:"proToken,omitempty"`
	ActivationDate        string           `json:"activationDate,omitempty"`
	Language              Language         `json:"language,omitempty" validate:"omitempty,oneof=pt en es zh hi fr"`
	MonthlyGoal           float64          `json:"monthlyGoal,omitempty" validate:"gte=0"`
	TotalClosedVGV        float64          `json:"totalClosedVGV"`
	UserGeminiAPIKey      string           `json:"userGeminiApiKey,omitempty"`
	HasAcceptedLegalTerms bool             `json:"hasAcceptedLegalTerms,omitempty"`
	AcceptedTermsDate     string           `json:"acceptedTermsDate,omitempty"`
	Schedules             []SearchSchedule `json:"schedules,omitempty" validate:"dive"`
	TelegramBotToken      string           `json:"telegramBotToken,omitempty"`
	TelegramChatID        string           `json:"telegramChatId,omitempty"`
	EnableTelegramAlerts  bool             `json:"enableTelegramAlerts"`
	Version               int64            `json:"version"`
}

// DefaultProfile профиль, который получает устройство при первом запуске.
func DefaultProfile() Profile {
	return Profile{
		BrokerName:           "Corretor Alpha",
		AgencyName:           "AgentPulse Command",
		WelcomeMessage:       "Protocolo de Operação Ativo.",
		Language:             LanguagePT,
		MonthlyGoal:          5000000,
		EnableTelegramAlerts: false,
	}
}

// TelegramReady true, если для профиля можно отправлять уведомления в Telegram.
func (p Profile) TelegramReady() bool {
	return p.EnableTelegramAlerts && p.TelegramBotToken != "" && p.TelegramChatID != ""
}

// SearchSchedule расписание автоматического поиска лидов.
// Days содержит сокращения дней недели: Dom, Seg, Ter, Qua, Qui, Sex, Sáb.
// Даты в формате 2006-01-02, время: 15:04.
type SearchSchedule struct {
	ID        string     `json:"id"`
	Niche     string     `json:"niche" validate:"required"`
	Location  string     `json:"location" validate:"required"`
	Type      SearchType `json:"type" validate:"oneof=buyer owner"`
	Days      []string   `json:"days"`
	StartDate string     `json:"startDate"`
	EndDate   string     `json:"endDate"`
	StartTime string     `json:"startTime"`
	EndTime   string     `json:"endTime"`
	Active    bool       `json:"active"`
}
