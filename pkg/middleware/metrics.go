package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	rerrors "github.com/vango-dev/vrouter/internal/errors"
	"github.com/vango-dev/vrouter/pkg/location"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vrouter").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for request duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "vrouter",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics records router metrics. The zero of *Metrics (nil) is a valid
// recorder that does nothing.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	redirectsTotal  *prometheus.CounterVec
	renderErrors    *prometheus.CounterVec
	liveSessions    prometheus.Gauge
	liveFrames      *prometheus.CounterVec
	exportPages     *prometheus.CounterVec
}

// defaultMetrics is shared by every NewMetrics call that keeps the default
// registry, which rejects duplicate registration.
var (
	defaultMetrics   *Metrics
	defaultMetricsMu sync.Mutex
)

// NewMetrics creates and registers the router metrics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	if config.Registry != prometheus.DefaultRegisterer {
		return initMetrics(config)
	}
	defaultMetricsMu.Lock()
	defer defaultMetricsMu.Unlock()
	if defaultMetrics == nil {
		defaultMetrics = initMetrics(config)
	}
	return defaultMetrics
}

func initMetrics(config MetricsConfig) *Metrics {
	factory := promauto.With(config.Registry)

	return &Metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "requests_total",
			Help:        "Total number of HTTP requests served",
			ConstLabels: config.ConstLabels,
		}, []string{"method", "code"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"method"}),

		redirectsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "redirects_total",
			Help:        "Total number of redirects captured during renders",
			ConstLabels: config.ConstLabels,
		}, []string{"action"}),

		renderErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_errors_total",
			Help:        "Total number of failed renders",
			ConstLabels: config.ConstLabels,
		}, []string{"error_type"}),

		liveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_sessions",
			Help:        "Number of open live sessions",
			ConstLabels: config.ConstLabels,
		}),

		liveFrames: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_frames_total",
			Help:        "Total live frames by direction and type",
			ConstLabels: config.ConstLabels,
		}, []string{"direction", "type"}),

		exportPages: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "export_pages_total",
			Help:        "Total exported paths by result",
			ConstLabels: config.ConstLabels,
		}, []string{"result"}),
	}
}

// Handler records request count and latency for next.
func (m *Metrics) Handler(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
		m.requestsTotal.WithLabelValues(r.Method, strconv.Itoa(status)).Inc()
	})
}

// RecordRedirect counts a captured redirect.
func (m *Metrics) RecordRedirect(action string) {
	if m != nil {
		m.redirectsTotal.WithLabelValues(action).Inc()
	}
}

// RecordRenderError counts a failed render.
func (m *Metrics) RecordRenderError(err error) {
	if m != nil && err != nil {
		m.renderErrors.WithLabelValues(categorizeError(err)).Inc()
	}
}

// RecordSessionOpen records a live session opening.
func (m *Metrics) RecordSessionOpen() {
	if m != nil {
		m.liveSessions.Inc()
	}
}

// RecordSessionClose records a live session closing.
func (m *Metrics) RecordSessionClose() {
	if m != nil {
		m.liveSessions.Dec()
	}
}

// RecordFrame counts a live frame. Direction is "in" or "out".
func (m *Metrics) RecordFrame(direction, frameType string) {
	if m != nil {
		m.liveFrames.WithLabelValues(direction, frameType).Inc()
	}
}

// RecordExport counts an exported path or asset. Result is "page",
// "redirect", "asset" or "error".
func (m *Metrics) RecordExport(result string) {
	if m != nil {
		m.exportPages.WithLabelValues(result).Inc()
	}
}

// categorizeError returns a low-cardinality label for err.
func categorizeError(err error) string {
	var de *location.DecodeError
	if errors.As(err, &de) {
		return "decode"
	}
	var re *rerrors.RouterError
	if errors.As(err, &re) && re.Category != "" {
		return string(re.Category)
	}
	return "internal"
}
