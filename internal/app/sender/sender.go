// Package sender содержит приложение, доставляющее уведомления о горячих лидах в Telegram.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/agentpulse/internal/config"
	"github.com/magabrotheeeer/agentpulse/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/agentpulse/internal/lib/sl"
	"github.com/magabrotheeeer/agentpulse/internal/lib/telegram"
	"github.com/magabrotheeeer/agentpulse/internal/metrics"
	senderservice "github.com/magabrotheeeer/agentpulse/internal/services/sender"
)

type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	logger        *slog.Logger
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	queues := rabbitmq.GetNotificationQueues()
	ch, err := rabbitmq.SetupChannel(conn, queues)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	transport := telegram.NewClient(cfg.Telegram.APIURL, cfg.Telegram.Timeout)
	m := metrics.Noop{}
	senderService := senderservice.NewSenderService(logger, transport, m)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.logger, a.ch, rabbitmq.QueueHotLeads, a.senderService.SendHotLead)
	if err != nil {
		a.logger.Error("failed to start hot leads consumer", sl.Err(err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}

	return nil
}
