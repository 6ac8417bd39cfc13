// Package scheduler содержит приложение планировщика автоматических поисков.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/agentpulse/internal/config"
	"github.com/magabrotheeeer/agentpulse/internal/gemini"
	"github.com/magabrotheeeer/agentpulse/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/agentpulse/internal/lib/sl"
	"github.com/magabrotheeeer/agentpulse/internal/metrics"
	"github.com/magabrotheeeer/agentpulse/internal/services/alerts"
	"github.com/magabrotheeeer/agentpulse/internal/services/gateway"
	"github.com/magabrotheeeer/agentpulse/internal/services/leads"
	"github.com/magabrotheeeer/agentpulse/internal/services/profile"
	"github.com/magabrotheeeer/agentpulse/internal/services/radar"
	schedulerservice "github.com/magabrotheeeer/agentpulse/internal/services/scheduler"
	"github.com/magabrotheeeer/agentpulse/internal/storage/kv"
)

// App представляет приложение планировщика.
type App struct {
	schedulerService *schedulerservice.SchedulerService
	cron             *cron.Cron
	spec             string
	closeStore       func() error
	conn             *amqp.Connection
	ch               *amqp.Channel
	logger           *slog.Logger
}

// New создает новый экземпляр приложения планировщика.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduler timezone %q: %w", cfg.Timezone, err)
	}
	if cfg.Driver == config.StorageDriverMemory {
		return nil, fmt.Errorf("scheduler needs shared storage, driver %q is process-local", cfg.Driver)
	}

	m := metrics.Noop{}
	store, closeStore, err := kv.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		spec:       cfg.Spec,
		closeStore: closeStore,
		logger:     logger,
	}

	var publisher radar.AlertPublisher
	if cfg.AlertsEnabled {
		conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
		if err != nil {
			app.closeResources()
			return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
		}
		app.conn = conn
		ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
		if err != nil {
			app.closeResources()
			return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
		}
		app.ch = ch
		publisher = alerts.NewPublisher(logger, ch, m)
	}

	profiles := profile.New(logger, store)
	radarService := radar.New(logger,
		gemini.New(cfg.AIGateway),
		gateway.New(logger, store, cfg.AIGateway, m),
		profiles,
		leads.New(logger, store, profiles),
		publisher,
		radar.Config{ServerAPIKey: cfg.AIGateway.APIKey, HotScore: cfg.HotScore},
	)
	app.schedulerService = schedulerservice.NewSchedulerService(logger, profiles, radarService, loc)

	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	app.cron = cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
	return app, nil
}

func (a *App) closeResources() {
	if a.ch != nil {
		if err := a.ch.Close(); err != nil {
			a.logger.Error("failed to close channel", sl.Err(err))
		}
	}
	if a.conn != nil {
		if err := a.conn.Close(); err != nil {
			a.logger.Error("failed to close connection", sl.Err(err))
		}
	}
	if a.closeStore != nil {
		if err := a.closeStore(); err != nil {
			a.logger.Error("failed to close storage", sl.Err(err))
		}
	}
}

// Run запускает проходы по расписанию cron до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	_, err := a.cron.AddFunc(a.spec, func() {
		a.schedulerService.RunSweeps(ctx)
	})
	if err != nil {
		a.closeResources()
		return fmt.Errorf("invalid scheduler spec %q: %w", a.spec, err)
	}
	a.cron.Start()
	a.logger.Info("scheduler started", slog.String("spec", a.spec))

	<-ctx.Done()

	a.logger.Info("shutting down scheduler service")
	// дожидаемся текущего прохода
	<-a.cron.Stop().Done()
	a.closeResources()
	return nil
}
