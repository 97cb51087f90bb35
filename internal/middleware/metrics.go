package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/link2cory/echo-hello-world/internal/server"
)

// MetricsMiddleware records Prometheus request metrics labelled by route
// template, so /items/1 and /items/2 share a series.
type MetricsMiddleware struct {
	server   *server.Server
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

func NewMetricsMiddleware(s *server.Server) *MetricsMiddleware {
	namespace := "hello_world"

	m := &MetricsMiddleware{
		server: s,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Number of HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Requests currently being served.",
		}),
	}

	if s.Config.Observability.Metrics.Enabled {
		s.Metrics.MustRegister(m.requests, m.duration, m.inFlight)
	}
	return m
}

// Enabled reports whether observability.metrics.enabled is set.
func (m *MetricsMiddleware) Enabled() bool {
	return m.server.Config.Observability.Metrics.Enabled
}

// Path is the route the registry is served at.
func (m *MetricsMiddleware) Path() string {
	return m.server.Config.Observability.Metrics.Path
}

// Collect observes every request that reaches the router.
func (m *MetricsMiddleware) Collect() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !m.Enabled() || c.Path() == m.Path() {
				return next(c)
			}

			m.inFlight.Inc()
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = StatusFromError(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method

			m.inFlight.Dec()
			m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			m.duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *MetricsMiddleware) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.server.Metrics, promhttp.HandlerOpts{
		Registry: m.server.Metrics,
	}))
}
