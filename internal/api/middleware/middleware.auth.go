package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/maddygoround/hapi-go-mongo/internal/common"
	"github.com/maddygoround/hapi-go-mongo/internal/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// AccessTokenQueryParam là tên query parameter chứa token khi client không gửi header Authorization
const AccessTokenQueryParam = "access_token"

// AuthMiddleware kiểm tra bearer token tĩnh cho các route /api.
// Token lấy từ header "Authorization: Bearer <token>", nếu không có thì từ query ?access_token=.
func AuthMiddleware(expectedToken string) fiber.Handler {
	expected := []byte(expectedToken)

	return func(c fiber.Ctx) error {
		token, err := extractToken(c)
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("[AUTH] Missing or malformed token")
			return HandleErrorResponse(c, err)
		}

		if len(expected) == 0 || subtle.ConstantTimeCompare([]byte(token), expected) != 1 {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
				"ip":     c.IP(),
			}).Warn("[AUTH] Invalid token")
			return HandleErrorResponse(c, common.ErrTokenInvalid)
		}

		return c.Next()
	}
}

// extractToken lấy token từ header Authorization hoặc query access_token
func extractToken(c fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		if q := c.Query(AccessTokenQueryParam); q != "" {
			return q, nil
		}
		return "", common.ErrTokenMissing
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", common.ErrTokenInvalid
	}
	return parts[1], nil
}
