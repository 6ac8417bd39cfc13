package agentpulse

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/magabrotheeeer/agentpulse/docs"
	"github.com/magabrotheeeer/agentpulse/internal/config"
	"github.com/magabrotheeeer/agentpulse/internal/http/handlers/admin/invite"
	"github.com/magabrotheeeer/agentpulse/internal/http/handlers/admin/token"
	"github.com/magabrotheeeer/agentpulse/internal/http/handlers/billing/activate"
	billingsync "github.com/magabrotheeeer/agentpulse/internal/http/handlers/billing/sync"
	"github.com/magabrotheeeer/agentpulse/internal/http/handlers/health"
	leadslist "github.com/magabrotheeeer/agentpulse/internal/http/handlers/leads/list"
	leadstatus "github.com/magabrotheeeer/agentpulse/internal/http/handlers/leads/status"
	profileget "github.com/magabrotheeeer/agentpulse/internal/http/handlers/profile/get"
	"github.com/magabrotheeeer/agentpulse/internal/http/handlers/profile/reset"
	"github.com/magabrotheeeer/agentpulse/internal/http/handlers/profile/themeget"
	"github.com/magabrotheeeer/agentpulse/internal/http/handlers/profile/themeset"
	"github.com/magabrotheeeer/agentpulse/internal/http/handlers/profile/trial"
	profileupdate "github.com/magabrotheeeer/agentpulse/internal/http/handlers/profile/update"
	"github.com/magabrotheeeer/agentpulse/internal/http/handlers/radar/keywords"
	"github.com/magabrotheeeer/agentpulse/internal/http/handlers/radar/report"
	"github.com/magabrotheeeer/agentpulse/internal/http/handlers/radar/scripts"
	"github.com/magabrotheeeer/agentpulse/internal/http/handlers/radar/search"
	"github.com/magabrotheeeer/agentpulse/internal/http/handlers/radar/validatekey"
	substatus "github.com/magabrotheeeer/agentpulse/internal/http/handlers/subscription/status"
	"github.com/magabrotheeeer/agentpulse/internal/http/middlewarectx"
	"github.com/magabrotheeeer/agentpulse/internal/metrics"
	"github.com/magabrotheeeer/agentpulse/internal/services/billing"
	"github.com/magabrotheeeer/agentpulse/internal/services/leads"
	"github.com/magabrotheeeer/agentpulse/internal/services/profile"
	"github.com/magabrotheeeer/agentpulse/internal/services/radar"
)

// Deps зависимости маршрутов.
type Deps struct {
	Logger   *slog.Logger
	Config   *config.Config
	Registry *prometheus.Registry
	Metrics  metrics.Recorder
	Profiles *profile.Service
	Leads    *leads.Service
	Billing  *billing.Service
	Radar    *radar.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, d Deps) {
	logger := d.Logger

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.MetricsMiddleware(d.Metrics),
	)

	limiter := middlewarectx.NewDeviceLimiter(d.Config.RPS, d.Config.Burst)

	r.Get("/health", health.New(logger).ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.DeviceMiddleware(logger))

			// Профиль и оплата доступны и после истечения подписки
			r.Get("/profile", profileget.New(logger, d.Profiles).ServeHTTP)
			r.Put("/profile", profileupdate.New(logger, d.Profiles).ServeHTTP)
			r.Delete("/profile", reset.New(logger, d.Profiles).ServeHTTP)
			r.Get("/profile/theme", themeget.New(logger, d.Profiles).ServeHTTP)
			r.Put("/profile/theme", themeset.New(logger, d.Profiles).ServeHTTP)
			r.Post("/profile/trial", trial.New(logger, d.Profiles).ServeHTTP)
			r.Get("/subscription", substatus.New(logger, d.Profiles).ServeHTTP)
			r.Post("/billing/activate", activate.New(logger, d.Billing).ServeHTTP)
			r.Post("/billing/sync", billingsync.New(logger, d.Billing).ServeHTTP)

			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RateLimitMiddleware(logger, limiter))
				r.Post("/radar/validate-key", validatekey.New(logger, d.Radar).ServeHTTP)

				// Радар и лиды только при действующей подписке
				r.Group(func(r chi.Router) {
					r.Use(middlewarectx.SubscriptionStatusMiddleware(logger, d.Profiles))
					r.Get("/leads", leadslist.New(logger, d.Leads).ServeHTTP)
					r.Put("/leads/{id}/status", leadstatus.New(logger, d.Leads).ServeHTTP)
					r.Post("/radar/search", search.New(logger, d.Radar).ServeHTTP)
					r.Post("/radar/scripts", scripts.New(logger, d.Radar).ServeHTTP)
					r.Get("/radar/keywords", keywords.New(logger, d.Radar).ServeHTTP)
					r.Post("/radar/report", report.New(logger, d.Radar).ServeHTTP)
				})
			})
		})

		if d.Config.AdminKey == "" {
			logger.Info("admin routes disabled, no admin key configured")
			return
		}
		r.Route("/admin", func(r chi.Router) {
			r.Use(middlewarectx.AdminMiddleware(logger, d.Config.AdminKey))
			r.Post("/tokens", token.New(logger).ServeHTTP)
			r.Get("/invite", invite.New(logger, d.Config.PublicURL).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
