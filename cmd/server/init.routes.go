package main

import (
	"github.com/gofiber/fiber/v3"

	"github.com/maddygoround/hapi-go-mongo/config"
	analyticshdl "github.com/maddygoround/hapi-go-mongo/internal/api/analytics/handler"
	analyticsrouter "github.com/maddygoround/hapi-go-mongo/internal/api/analytics/router"
	basehdl "github.com/maddygoround/hapi-go-mongo/internal/api/base/handler"
	"github.com/maddygoround/hapi-go-mongo/internal/api/middleware"
	tickethdl "github.com/maddygoround/hapi-go-mongo/internal/api/ticket/handler"
	ticketrouter "github.com/maddygoround/hapi-go-mongo/internal/api/ticket/router"
)

// SetupRoutes đăng ký /health, /metrics (không cần token) và các route /api (bearer token)
func SetupRoutes(app *fiber.App, cfg *config.Configuration, deps *AppDeps) {
	app.Get("/health", basehdl.NewSystemHandler(deps.DB).HandleHealth)
	if deps.Metrics != nil {
		app.Get("/metrics", deps.Metrics.Handler())
	}

	api := app.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg.ApiToken))

	ticketrouter.Register(api, tickethdl.NewTicketHandler(deps.Tickets))
	analyticsrouter.Register(api, analyticshdl.NewAnalyticsHandler(deps.Analytics))
}
