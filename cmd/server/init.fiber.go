package main

import (
	"errors"
	"strings"
	"time"

	"github.com/maddygoround/hapi-go-mongo/config"
	"github.com/maddygoround/hapi-go-mongo/internal/common"
	"github.com/maddygoround/hapi-go-mongo/internal/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// InitFiberApp khởi tạo ứng dụng Fiber với các middleware cần thiết và đăng ký routes
func InitFiberApp(cfg *config.Configuration, deps *AppDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		// =========================================
		// 1. CẤU HÌNH CƠ BẢN
		// =========================================
		AppName:       "Ticket Inventory API",
		ServerHeader:  "Ticket Inventory API",
		CaseSensitive: true, // /Foo và /foo là khác nhau
		UnescapePath:  true, // Tự động decode URL-encoded paths

		// =========================================
		// 2. CẤU HÌNH PERFORMANCE & TIMEOUT
		// =========================================
		BodyLimit:    1 * 1024 * 1024, // Body chỉ là JSON nhỏ (1MB)
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second, // Aggregation theo khoảng lớn có thể lâu
		IdleTimeout:  120 * time.Second,

		// =========================================
		// 3. CẤU HÌNH ERROR HANDLING
		// =========================================
		ErrorHandler: errorHandler,
	})

	// =========================================
	// MIDDLEWARE STACK
	// =========================================

	// 1. Request ID - UUID cho mỗi request để trace log
	app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return uuid.NewString()
		},
	}))

	// 2. Metrics - đặt sớm để đo cả request bị auth/rate limit từ chối
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
	}

	// 3. CORS
	app.Use(cors.New(cors.Config{
		AllowOrigins:     splitOrigins(cfg.CORS_Origins),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: cfg.CORS_AllowCredentials,
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		MaxAge:           24 * 60 * 60,
	}))

	// 4. Security Headers
	app.Use(func(c fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	})

	// 5. Rate Limiting theo IP
	log := logger.GetAppLogger()
	if cfg.RateLimit_Enabled && cfg.RateLimit_Max > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit_Max,
			Expiration: time.Duration(cfg.RateLimit_Window) * time.Second,
			KeyGenerator: func(c fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c fiber.Ctx) error {
				return c.Status(common.StatusTooManyRequests).JSON(fiber.Map{
					"code":    common.ErrCodeBusinessOperation.Code,
					"message": "Quá nhiều yêu cầu, vui lòng thử lại sau",
					"status":  "error",
				})
			},
			Next: func(c fiber.Ctx) bool {
				// Bỏ qua health check, metrics và preflight
				return c.Path() == "/health" || c.Path() == "/metrics" || c.Method() == fiber.MethodOptions
			},
		}))
		log.Infof("Rate limiting enabled: %d requests per %d seconds", cfg.RateLimit_Max, cfg.RateLimit_Window)
	} else {
		log.Info("Rate limiting disabled")
	}

	// 6. Recover - panic ngoài SafeHandlerWrapper đi tiếp vào ErrorHandler
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			logger.WithRequest(c).WithField("panic", e).Error("Panic recovered")
		},
	}))

	SetupRoutes(app, cfg, deps)

	return app
}

// errorHandler trả lỗi thoát khỏi handler (404 route, 405, panic...) theo format chung
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := common.MsgInternalError
	errorCode := common.ErrCodeInternalServer.Code

	var fe *fiber.Error
	var ce *common.Error
	switch {
	case errors.As(err, &ce):
		code = ce.StatusCode
		message = ce.Message
		errorCode = ce.Code.Code
	case errors.As(err, &fe):
		code = fe.Code
		if code < fiber.StatusInternalServerError {
			message = fe.Message
		}
		switch code {
		case fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge:
			errorCode = common.ErrCodeValidationInput.Code
		case fiber.StatusUnauthorized:
			errorCode = common.ErrCodeAuthToken.Code
		case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
			errorCode = common.ErrCodeDatabaseQuery.Code
		}
	}

	entry := logger.WithRequest(c).WithFields(logrus.Fields{
		"code":      code,
		"errorCode": errorCode,
	})
	if code >= fiber.StatusInternalServerError {
		entry.WithError(err).Error("Request error")
	} else {
		entry.Debug(message)
	}

	return c.Status(code).JSON(fiber.Map{
		"code":    errorCode,
		"message": message,
		"status":  "error",
	})
}

// splitOrigins tách CORS_ORIGINS ("*" hoặc danh sách phân cách bởi dấu phẩy)
func splitOrigins(raw string) []string {
	if strings.TrimSpace(raw) == "" || raw == "*" {
		return []string{"*"}
	}
	origins := strings.Split(raw, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}
	return origins
}
