package observability

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/nexus-backend/internal/platform/llm"
	"github.com/yungbote/nexus-backend/internal/platform/logger"
)

// Metrics holds the Prometheus collectors for the API process. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge

	llmRequests *prometheus.CounterVec
	llmLatency  *prometheus.HistogramVec
	llmTokens   *prometheus.CounterVec

	extractionFailures *prometheus.CounterVec
	sessionEvents      *prometheus.CounterVec

	dbStats   *prometheus.GaugeVec
	redisUp   prometheus.Gauge
	redisPing prometheus.Gauge
}

var (
	initOnce sync.Once
	instance *Metrics
)

// Init registers the process-wide collectors on the default registry once.
func Init() *Metrics {
	initOnce.Do(func() {
		instance = NewMetrics(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
	})
	return instance
}

func Current() *Metrics {
	return instance
}

// NewMetrics registers a fresh set of collectors on reg.
func NewMetrics(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		gatherer: gatherer,
		apiRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "nexus_api_requests_total",
			Help: "Total API requests by method/route/status.",
		}, []string{"method", "route", "status"}),
		apiLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nexus_api_request_duration_seconds",
			Help:    "API request latency in seconds by method/route/status.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		}, []string{"method", "route", "status"}),
		apiInflight: f.NewGauge(prometheus.GaugeOpts{
			Name: "nexus_api_inflight_requests",
			Help: "In-flight API requests.",
		}),
		llmRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "nexus_llm_requests_total",
			Help: "Generation backend calls by model/purpose/outcome.",
		}, []string{"model", "purpose", "outcome"}),
		llmLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nexus_llm_request_duration_seconds",
			Help:    "Generation backend latency in seconds by model/purpose.",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		}, []string{"model", "purpose"}),
		llmTokens: f.NewCounterVec(prometheus.CounterOpts{
			Name: "nexus_llm_tokens_total",
			Help: "Generation backend tokens by model/direction.",
		}, []string{"model", "direction"}),
		extractionFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "nexus_extraction_failures_total",
			Help: "Backend outputs rejected by extraction or validation, by content kind and reason.",
		}, []string{"kind", "reason"}),
		sessionEvents: f.NewCounterVec(prometheus.CounterOpts{
			Name: "nexus_session_events_total",
			Help: "Session lifecycle operations by kind/operation/outcome.",
		}, []string{"kind", "op", "outcome"}),
		dbStats: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "nexus_db_pool",
			Help: "Database connection pool stats.",
		}, []string{"stat"}),
		redisUp: f.NewGauge(prometheus.GaugeOpts{
			Name: "nexus_redis_up",
			Help: "1 when the last redis ping succeeded.",
		}),
		redisPing: f.NewGauge(prometheus.GaugeOpts{
			Name: "nexus_redis_ping_seconds",
			Help: "Latency of the last redis ping.",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.WithLabelValues(method, route, status).Inc()
	m.apiLatency.WithLabelValues(method, route, status).Observe(dur.Seconds())
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

// ObserveLLM implements llm.Recorder.
func (m *Metrics) ObserveLLM(model, purpose, outcome string, dur time.Duration, usage llm.Usage) {
	if m == nil {
		return
	}
	model = orUnknown(model)
	purpose = orUnknown(purpose)
	m.llmRequests.WithLabelValues(model, purpose, orUnknown(outcome)).Inc()
	if dur > 0 {
		m.llmLatency.WithLabelValues(model, purpose).Observe(dur.Seconds())
	}
	if usage.InputTokens > 0 {
		m.llmTokens.WithLabelValues(model, "input").Add(float64(usage.InputTokens))
	}
	if usage.OutputTokens > 0 {
		m.llmTokens.WithLabelValues(model, "output").Add(float64(usage.OutputTokens))
	}
}

func (m *Metrics) IncExtractionFailure(kind, reason string) {
	if m == nil {
		return
	}
	m.extractionFailures.WithLabelValues(orUnknown(kind), orUnknown(reason)).Inc()
}

func (m *Metrics) IncSessionEvent(kind, op, outcome string) {
	if m == nil {
		return
	}
	m.sessionEvents.WithLabelValues(orUnknown(kind), orUnknown(op), orUnknown(outcome)).Inc()
}

func (m *Metrics) StartDBCollector(ctx context.Context, log *logger.Logger, db *gorm.DB, interval time.Duration) {
	if m == nil || db == nil {
		return
	}
	if interval <= 0 {
		interval = 15 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					if log != nil {
						log.Warn("metrics: db stats unavailable", "error", err)
					}
					continue
				}
				stats := sqlDB.Stats()
				m.dbStats.WithLabelValues("open_connections").Set(float64(stats.OpenConnections))
				m.dbStats.WithLabelValues("in_use").Set(float64(stats.InUse))
				m.dbStats.WithLabelValues("idle").Set(float64(stats.Idle))
				m.dbStats.WithLabelValues("wait_count").Set(float64(stats.WaitCount))
				m.dbStats.WithLabelValues("wait_duration_seconds").Set(stats.WaitDuration.Seconds())
			}
		}
	}()
}

func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, rdb *goredis.Client, interval time.Duration) {
	if m == nil || rdb == nil {
		return
	}
	if interval <= 0 {
		interval = 15 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				start := time.Now()
				if err := rdb.Ping(ctx).Err(); err != nil {
					m.redisUp.Set(0)
					if log != nil {
						log.Warn("metrics: redis ping failed", "error", err)
					}
					continue
				}
				m.redisUp.Set(1)
				m.redisPing.Set(time.Since(start).Seconds())
			}
		}
	}()
}

func orUnknown(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "unknown"
	}
	return s
}
