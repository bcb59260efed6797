// Package router chứa tiện ích đăng ký route dùng chung cho các domain router.
package router

import (
	"github.com/gofiber/fiber/v3"
)

// Middleware gắn trực tiếp theo dạng router.Get(path, mw, handler) không được gọi ổn định trên Fiber v3.
// Luôn đăng ký middleware qua Group(prefix).Use(mw), dùng RegisterRouteWithMiddleware.

// RegisterRouteWithMiddleware tạo group theo prefix, gắn middlewares bằng Use rồi đăng ký handler cho method/path.
// Middlewares của group áp dụng cho mọi route dưới prefix, nên chỉ truyền middleware riêng của prefix đó
// (auth chung đã gắn ở group /api).
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	routeGroup := router.Group(prefix)
	for _, mw := range middlewares {
		routeGroup.Use(mw)
	}

	switch method {
	case fiber.MethodGet:
		routeGroup.Get(path, handler)
	case fiber.MethodPost:
		routeGroup.Post(path, handler)
	case fiber.MethodPut:
		routeGroup.Put(path, handler)
	case fiber.MethodDelete:
		routeGroup.Delete(path, handler)
	}
}
