package models

// Source ссылка на источник, которым модель подтвердила ответ.
type Source struct {
	URI     string `json:"uri"`
	License string `json:"license,omitempty"`
}

// SearchResult результат поиска лидов, он же полезная нагрузка записи кеша.
type SearchResult struct {
	Leads   []Lead   `json:"leads"`
	Sources []Source `json:"sources"`
}

// MarketReport аналитическая справка по объекту.
type MarketReport struct {
	Text    string   `json:"text"`
	Sources []Source `json:"sources"`
}

// LeadAlert сообщение о горячем лиде для отправки в Telegram.
type LeadAlert struct {
	DeviceID string `json:"device_id"`
	BotToken string `json:"bot_token"`
	ChatID   string `json:"chat_id"`
	Lead     Lead   `json:"lead"`
}
