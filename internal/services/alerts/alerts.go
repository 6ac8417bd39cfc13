// Package alerts публикует уведомления о горячих лидах в брокер сообщений.
package alerts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/agentpulse/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/agentpulse/internal/lib/sl"
	"github.com/magabrotheeeer/agentpulse/internal/metrics"
	"github.com/magabrotheeeer/agentpulse/internal/models"
)

// ErrNoRecipient у уведомления нет токена бота или чата.
var ErrNoRecipient = errors.New("alerts: telegram bot token or chat id is empty")

// Publisher публикует уведомления в обменник notifications.
type Publisher struct {
	ch      rabbitmq.Channel
	log     *slog.Logger
	metrics metrics.Recorder
}

// NewPublisher создает издателя поверх открытого канала.
func NewPublisher(log *slog.Logger, ch rabbitmq.Channel, m metrics.Recorder) *Publisher {
	return &Publisher{ch: ch, log: log, metrics: m}
}

// PublishHotLead ставит уведомление о лиде в очередь отправки.
func (p *Publisher) PublishHotLead(ctx context.Context, alert models.LeadAlert) error {
	const op = "alerts.PublishHotLead"

	if alert.BotToken == "" || alert.ChatID == "" {
		return ErrNoRecipient
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := rabbitmq.PublishMessage(p.ch, rabbitmq.ExchangeNotifications, rabbitmq.RoutingKeyHotLead, alert); err != nil {
		p.log.Error("failed to publish alert", slog.String("op", op), sl.Device(alert.DeviceID), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	p.metrics.IncAlertsPublished()
	p.log.Debug("hot lead alert published", sl.Device(alert.DeviceID), slog.String("lead_id", alert.Lead.ID))
	return nil
}
