// Package router đăng ký các route thuộc domain Ticket: CRUD /tickets.
package router

import (
	"github.com/gofiber/fiber/v3"

	apirouter "github.com/maddygoround/hapi-go-mongo/internal/api/router"
	tickethdl "github.com/maddygoround/hapi-go-mongo/internal/api/ticket/handler"
)

// Register đăng ký CRUD tickets lên api (group /api đã có auth)
func Register(api fiber.Router, h *tickethdl.TicketHandler) {
	apirouter.RegisterRouteWithMiddleware(api, "/tickets", fiber.MethodPost, "", nil, h.HandleCreate)
	apirouter.RegisterRouteWithMiddleware(api, "/tickets", fiber.MethodGet, "", nil, h.HandleList)
	apirouter.RegisterRouteWithMiddleware(api, "/tickets", fiber.MethodGet, "/:id", nil, h.HandleGet)
	apirouter.RegisterRouteWithMiddleware(api, "/tickets", fiber.MethodPut, "/:id", nil, h.HandleUpdate)
	apirouter.RegisterRouteWithMiddleware(api, "/tickets", fiber.MethodDelete, "/:id", nil, h.HandleDelete)
}
