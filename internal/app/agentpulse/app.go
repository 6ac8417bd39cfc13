// Package agentpulse собирает HTTP-приложение дашборда: хранилище, шлюз модели,
// сервисы и маршруты.
package agentpulse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/agentpulse/internal/config"
	"github.com/magabrotheeeer/agentpulse/internal/gemini"
	"github.com/magabrotheeeer/agentpulse/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/agentpulse/internal/lib/sl"
	"github.com/magabrotheeeer/agentpulse/internal/metrics"
	"github.com/magabrotheeeer/agentpulse/internal/services/alerts"
	"github.com/magabrotheeeer/agentpulse/internal/services/billing"
	"github.com/magabrotheeeer/agentpulse/internal/services/gateway"
	"github.com/magabrotheeeer/agentpulse/internal/services/leads"
	"github.com/magabrotheeeer/agentpulse/internal/services/profile"
	"github.com/magabrotheeeer/agentpulse/internal/services/radar"
	"github.com/magabrotheeeer/agentpulse/internal/storage/kv"
)

// App HTTP-приложение.
type App struct {
	server     *http.Server
	logger     *slog.Logger
	closeStore func() error
	conn       *amqp.Connection
	ch         *amqp.Channel
}

// New подключает хранилище и брокер (если уведомления включены) и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	rawStore, closeStore, err := kv.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Driver == config.StorageDriverMemory {
		logger.Warn("using in-process storage, data is lost on restart")
	}
	store := kv.NewInstrumented(rawStore, m)

	app := &App{
		logger:     logger,
		closeStore: closeStore,
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
		logger.Info("hot lead alerts enabled")
	}

	profileService := profile.New(logger, store)
	leadService := leads.New(logger, store, profileService)
	billingService := billing.New(logger, profileService)
	gw := gateway.New(logger, store, cfg.AIGateway, m)
	radarService := radar.New(logger, gemini.New(cfg.AIGateway), gw, profileService, leadService, publisher, radar.Config{
		ServerAPIKey: cfg.AIGateway.APIKey,
		HotScore:     cfg.HotScore,
	})

	router := chi.NewRouter()
	RegisterRoutes(router, Deps{
		Logger:   logger,
		Config:   cfg,
		Registry: reg,
		Metrics:  m,
		Profiles: profileService,
		Leads:    leadService,
		Billing:  billingService,
		Radar:    radarService,
	})

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

// Run запускает сервер и останавливает его при отмене ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.closeResources()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.closeResources()
		return err
	}
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
