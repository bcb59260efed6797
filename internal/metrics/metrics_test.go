package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_CountsByRoutePattern(t *testing.T) {
	m := New(prometheus.NewRegistry())
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/api/tickets/:id", func(c fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	for _, id := range []string{"a", "b"} {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/tickets/"+id, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/tickets/:id", "204")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.HTTPRequestsInFlight))
}

func TestObserveAnalytics(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveAnalytics("delegated", "profit", 3, 10*time.Millisecond, nil)
	m.ObserveAnalytics("in_process", "visits", 0, time.Millisecond, errors.New("boom"))

	assert.Equal(t, 2, testutil.CollectAndCount(m.AnalyticsComputeDuration))
	assert.Equal(t, 1, testutil.CollectAndCount(m.AnalyticsBuckets))

	var disabled *Metrics
	assert.NotPanics(t, func() {
		disabled.ObserveAnalytics("delegated", "profit", 1, time.Millisecond, nil)
	})
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveAnalytics("delegated", "visits", 2, time.Millisecond, nil)

	app := fiber.New()
	app.Get("/metrics", m.Handler())

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "analytics_compute_duration_seconds"))
}
