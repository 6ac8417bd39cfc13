package models

// SubscriptionType тип доступа пользователя.
type SubscriptionType string

// Типы доступа.
const (
	SubscriptionTrial SubscriptionType = "TRIAL"
	SubscriptionPro   SubscriptionType = "PRO"
)

// SubscriptionStatus вычисляемый статус подписки. Не хранится: каждый раз
// выводится из профиля и текущего времени.
type SubscriptionStatus struct {
	Type     SubscriptionType `json:"type"`
	PlanName string           `json:"planName"`
	Expired  bool             `json:"expired"`
	DaysLeft int              `json:"daysLeft"`
}
