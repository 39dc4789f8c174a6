package observability

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	// Session metrics
	SessionsActive       prometheus.Gauge
	ImpersonationsActive prometheus.Gauge
	ImpersonationsTotal  *prometheus.CounterVec
	TokenRefreshesTotal  *prometheus.CounterVec

	// Role authoring metrics
	RoleTemplatesSavedTotal  *prometheus.CounterVec
	WizardCancellationsTotal prometheus.Counter
	PermissionCellsPerSave   prometheus.Histogram

	// Catalog metrics
	CatalogReloadsTotal *prometheus.CounterVec

	// Audit metrics
	AuditEventsTotal *prometheus.CounterVec

	// Database metrics
	DBConnectionsActive prometheus.Gauge
	DBConnectionsIdle   prometheus.Gauge
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		// HTTP metrics
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "console_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "console_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPResponseSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "console_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 8),
			},
			[]string{"method", "path"},
		),

		// Session metrics
		SessionsActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "console_sessions_active",
				Help: "Number of signed-in operator sessions",
			},
		),
		ImpersonationsActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "console_impersonations_active",
				Help: "Number of sessions currently impersonating a user",
			},
		),
		ImpersonationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "console_impersonations_total",
				Help: "Total number of impersonation attempts",
			},
			[]string{"status"},
		),
		TokenRefreshesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "console_token_refreshes_total",
				Help: "Total number of silent token refresh attempts",
			},
			[]string{"status"},
		),

		// Role authoring metrics
		RoleTemplatesSavedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "console_role_templates_saved_total",
				Help: "Total number of role templates saved",
			},
			[]string{"role_type"},
		),
		WizardCancellationsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "console_wizard_cancellations_total",
				Help: "Total number of abandoned role wizards",
			},
		),
		PermissionCellsPerSave: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "console_permission_cells_per_save",
				Help:    "Number of granted permission cells per saved role template",
				Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
			},
		),

		// Catalog metrics
		CatalogReloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "console_catalog_reloads_total",
				Help: "Total number of permission catalog overlay reloads",
			},
			[]string{"status"},
		),

		// Audit metrics
		AuditEventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "console_audit_events_total",
				Help: "Total number of audit events recorded",
			},
			[]string{"action"},
		),

		// Database metrics
		DBConnectionsActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "console_db_connections_active",
				Help: "Number of active database connections",
			},
		),
		DBConnectionsIdle: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "console_db_connections_idle",
				Help: "Number of idle database connections",
			},
		),
	}

	// Register all metrics
	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPResponseSize,
		m.SessionsActive,
		m.ImpersonationsActive,
		m.ImpersonationsTotal,
		m.TokenRefreshesTotal,
		m.RoleTemplatesSavedTotal,
		m.WizardCancellationsTotal,
		m.PermissionCellsPerSave,
		m.CatalogReloadsTotal,
		m.AuditEventsTotal,
		m.DBConnectionsActive,
		m.DBConnectionsIdle,
	)

	return m
}

// StartDBStatsCollector samples connection pool gauges from db until ctx is
// cancelled.
func (m *Metrics) StartDBStatsCollector(ctx context.Context, db *sql.DB, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				stats := db.Stats()
				m.DBConnectionsActive.Set(float64(stats.InUse))
				m.DBConnectionsIdle.Set(float64(stats.Idle))
			}
		}
	}()
}

// responseWriter wraps http.ResponseWriter to capture status code and size
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += n
	return n, err
}

// HTTPMetricsMiddleware instruments HTTP requests with Prometheus metrics
func HTTPMetricsMiddleware(metrics *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rw, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(rw.statusCode)

			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
			metrics.HTTPResponseSize.WithLabelValues(r.Method, r.URL.Path).Observe(float64(rw.bytesWritten))
		})
	}
}

// RegisterMetricsEndpoint registers the /metrics endpoint
func RegisterMetricsEndpoint(mux *http.ServeMux, registry *prometheus.Registry) {
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
}
