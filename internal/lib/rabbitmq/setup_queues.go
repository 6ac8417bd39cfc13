package rabbitmq

// Обменник и очереди уведомлений.
const (
	ExchangeNotifications = "notifications"
	RoutingKeyHotLead     = "lead.hot"
	QueueHotLeads         = "notifications.leads"
)

// сколько неподтвержденных сообщений брокер отдает потребителю
const prefetch = 10

// QueueConfig очередь и ключ маршрутизации, с которым она привязана к обменнику.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNotificationQueues очереди, которые объявляют публикующая и читающая стороны.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: QueueHotLeads, RoutingKey: RoutingKeyHotLead},
	}
}
