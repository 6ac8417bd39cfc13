// Package metrics собирает метрики Prometheus сервиса.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Исходы вызова шлюза генеративной модели.
const (
	OutcomeLive     = "live"
	OutcomeCacheHit = "cache_hit"
	OutcomeFallback = "fallback"
	OutcomeCooldown = "cooldown"
	OutcomeBusy     = "busy"
	OutcomeError    = "error"
)

// Recorder интерфейс, через который сервисы пишут метрики.
type Recorder interface {
	IncRequestsTotal(route string, status int)
	ObserveRequestDuration(route string, duration time.Duration)
	IncGatewayCalls(outcome string)
	IncUpstreamErrors(kind string)
	IncStoreLookups(hit bool)
	IncAlertsPublished()
	IncAlertsSent(ok bool)
}

// Metrics реализация Recorder поверх prometheus.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	gatewayCalls    *prometheus.CounterVec
	upstreamErrors  *prometheus.CounterVec
	storeLookups    *prometheus.CounterVec
	alertsPublished prometheus.Counter
	alertsSent      *prometheus.CounterVec
}

// New регистрирует метрики в reg. Для глобального реестра передайте prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		requestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "agentpulse_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"route", "status"}),

		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "agentpulse_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),

		gatewayCalls: f.NewCounterVec(prometheus.CounterOpts{
			Name: "agentpulse_gateway_calls_total",
			Help: "AI gateway calls by outcome",
		}, []string{"outcome"}),

		upstreamErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "agentpulse_upstream_errors_total",
			Help: "Generative model failures by classified kind",
		}, []string{"kind"}),

		storeLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "agentpulse_store_lookups_total",
			Help: "Key-value store reads by result",
		}, []string{"result"}),

		alertsPublished: f.NewCounter(prometheus.CounterOpts{
			Name: "agentpulse_alerts_published_total",
			Help: "Hot lead alerts published to the broker",
		}),

		alertsSent: f.NewCounterVec(prometheus.CounterOpts{
			Name: "agentpulse_alerts_sent_total",
			Help: "Telegram deliveries by result",
		}, []string{"result"}),
	}
}

func (m *Metrics) IncRequestsTotal(route string, status int) {
	m.requestsTotal.WithLabelValues(route, httpStatusBucket(status)).Inc()
}

func (m *Metrics) ObserveRequestDuration(route string, duration time.Duration) {
	m.requestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

func (m *Metrics) IncGatewayCalls(outcome string) {
	m.gatewayCalls.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncUpstreamErrors(kind string) {
	m.upstreamErrors.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncStoreLookups(hit bool) {
	m.storeLookups.WithLabelValues(result(hit, "hit", "miss")).Inc()
}

func (m *Metrics) IncAlertsPublished() {
	m.alertsPublished.Inc()
}

func (m *Metrics) IncAlertsSent(ok bool) {
	m.alertsSent.WithLabelValues(result(ok, "ok", "failed")).Inc()
}

func result(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

// Noop ничего не записывает; используется в тестах и воркерах без /metrics.
type Noop struct{}

func (Noop) IncRequestsTotal(string, int)                 {}
func (Noop) ObserveRequestDuration(string, time.Duration) {}
func (Noop) IncGatewayCalls(string)                       {}
func (Noop) IncUpstreamErrors(string)                     {}
func (Noop) IncStoreLookups(bool)                         {}
func (Noop) IncAlertsPublished()                          {}
func (Noop) IncAlertsSent(bool)                           {}

var (
	_ Recorder = (*Metrics)(nil)
	_ Recorder = Noop{}
)
