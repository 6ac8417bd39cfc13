package models

// SearchType тип поиска: покупатели или собственники.
type SearchType string

// Типы поиска.
const (
	SearchBuyer SearchType = "buyer"
	SearchOwner SearchType = "owner"
)

// LeadStatus стадия работы с лидом.
type LeadStatus string

// Стадии воронки.
const (
	LeadNew       LeadStatus = "Novo"
	LeadContacted LeadStatus = "Em Contato"
	LeadScheduled LeadStatus = "Agendado"
	LeadClosed    LeadStatus = "Negócio Fechado"
)

// Lead потенциальный клиент агента.
type Lead struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Need            string     `json:"need"`
	Location        string     `json:"location"`
	Score           int        `json:"score"`
	Triggers        []string   `json:"triggers"`
	Contact         string     `json:"contact,omitempty"`
	Email           string     `json:"email,omitempty"`
	FoundAt         string     `json:"foundAt"`
	Status          LeadStatus `json:"status"`
	Type            SearchType `json:"type"`
	Value           float64    `json:"value,omitempty"`
	LastInteraction string     `json:"lastInteraction,omitempty"`
	Profession      string     `json:"profession,omitempty"`
	ClosedValue     float64    `json:"closedValue,omitempty"`
}

// SeedLeads демонстрационный список лидов для нового устройства.
func SeedLeads() []Lead {
	return []Lead{
		{
			ID:       "1",
			Name:     "Carlos Silva",
			Need:     "Apartamento 3 dormitórios no Urbanova",
			Location: "SJC, SP",
			Score:    94,
			Triggers: []string{"Urgência", "Financiamento aprovado"},
			Contact:  "(12) 99123-4567",
			FoundAt:  "Radar Social",
			Status:   LeadNew,
			Type:     SearchBuyer,
			Value:    850000,
		},
		{
			ID:       "2",
			Name:     "Mariana Costa",
			Need:     "Vender casa térrea no Jardim Aquarius",
			Location: "SJC, SP",
			Score:    89,
			Triggers: []string{"Mudança de cidade"},
			Contact:  "(12) 98765-4321",
			FoundAt:  "Radar Social",
			Status:   LeadContacted,
			Type:     SearchOwner,
			Value:    1200000,
		},
	}
}
