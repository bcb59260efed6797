// Package metrics định nghĩa các Prometheus collector của service và middleware Fiber ghi nhận request.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics chứa toàn bộ collector của service
type Metrics struct {
	HTTPRequestsTotal        *prometheus.CounterVec
	HTTPRequestDuration      *prometheus.HistogramVec
	HTTPRequestsInFlight     prometheus.Gauge
	AnalyticsComputeDuration *prometheus.HistogramVec
	AnalyticsBuckets         *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New tạo và đăng ký các collector vào reg.
// reg thường là prometheus.NewRegistry() để test không đụng default registry.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, route, and status.",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "route"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed.",
			},
		),
		AnalyticsComputeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "analytics_compute_duration_seconds",
				Help:    "Analytics computation latency by strategy, metric and outcome.",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"strategy", "metric", "outcome"},
		),
		AnalyticsBuckets: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "analytics_buckets",
				Help:    "Number of month buckets returned per analytics request.",
				Buckets: []float64{0, 1, 3, 6, 12, 24, 60, 120},
			},
			[]string{"strategy"},
		),
		gatherer: reg,
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.AnalyticsComputeDuration,
		m.AnalyticsBuckets,
	)

	return m
}

// ObserveAnalytics ghi nhận một lần tính analytics. An toàn khi m == nil (metrics bị tắt).
func (m *Metrics) ObserveAnalytics(strategy, metric string, buckets int, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.AnalyticsComputeDuration.WithLabelValues(strategy, metric, outcome).Observe(elapsed.Seconds())
	if err == nil {
		m.AnalyticsBuckets.WithLabelValues(strategy).Observe(float64(buckets))
	}
}

// Middleware ghi nhận số request, độ trễ và số request đang xử lý.
// Label route dùng path pattern đã đăng ký (ví dụ /api/tickets/:id) để tránh bùng nổ cardinality.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		m.HTTPRequestsInFlight.Inc()
		defer m.HTTPRequestsInFlight.Dec()

		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else if status < fiber.StatusBadRequest {
				status = fiber.StatusInternalServerError
			}
		}

		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "" && r.Path != "/" {
			route = r.Path
		}
		method := c.Method()
		m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler trả về handler Fiber cho endpoint /metrics
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
}
