// Package router đăng ký các route thuộc domain Analytics.
package router

import (
	"github.com/gofiber/fiber/v3"

	analyticshdl "github.com/maddygoround/hapi-go-mongo/internal/api/analytics/handler"
	apirouter "github.com/maddygoround/hapi-go-mongo/internal/api/router"
)

// Register đăng ký POST /analytics/:type lên api (group /api đã có auth)
func Register(api fiber.Router, h *analyticshdl.AnalyticsHandler) {
	apirouter.RegisterRouteWithMiddleware(api, "/analytics", fiber.MethodPost, "/:type", nil, h.HandleCompute)
}
