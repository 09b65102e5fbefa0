package web

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the form's Prometheus collectors. Each server owns its own
// registry so tests can build several servers in one process.
//
// Metrics:
//   - thrivehub_reflections_saved_total
//   - thrivehub_progress_saved_total
//   - thrivehub_submissions_rejected_total{reason}
//   - thrivehub_http_requests_total{method,path,status}
//   - thrivehub_http_request_duration_seconds{method,path}
type Metrics struct {
	registry *prometheus.Registry

	ReflectionsSaved    prometheus.Counter
	ProgressSaved       prometheus.Counter
	SubmissionsRejected *prometheus.CounterVec
	RequestsTotal       *prometheus.CounterVec
	RequestDuration     *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ReflectionsSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "thrivehub_reflections_saved_total",
			Help: "Reflections appended through the web form",
		}),
		ProgressSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "thrivehub_progress_saved_total",
			Help: "Progress entries appended through the web form",
		}),
		SubmissionsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "thrivehub_submissions_rejected_total",
			Help: "Form submissions rejected before any write",
		}, []string{"reason"}),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "thrivehub_http_requests_total",
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "path", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "thrivehub_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
	m.registry.MustRegister(
		m.ReflectionsSaved,
		m.ProgressSaved,
		m.SubmissionsRejected,
		m.RequestsTotal,
		m.RequestDuration,
	)
	return m
}

// Middleware records request counts and latency keyed by route pattern.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			method := c.Request().Method
			m.RequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Response().Status)).Inc()
			m.RequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry}))
}
