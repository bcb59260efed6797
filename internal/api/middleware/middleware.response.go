package middleware

import (
	"errors"

	"github.com/maddygoround/hapi-go-mongo/internal/common"
	"github.com/maddygoround/hapi-go-mongo/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// HandleErrorResponse trả lỗi về client theo format {code, message, status:"error"}.
// Lỗi 4xx kèm details (lỗi gốc dạng chuỗi); lỗi 5xx chỉ trả message chung, lỗi gốc được ghi log.
// Tách riêng ở middleware để tránh import cycle với handler package.
func HandleErrorResponse(c fiber.Ctx, err error) error {
	var customErr *common.Error
	if !errors.As(err, &customErr) {
		customErr = common.Wrap(common.ErrRepositoryFailure, err).(*common.Error)
	}

	body := fiber.Map{
		"code":    customErr.Code.Code,
		"message": customErr.Message,
		"status":  "error",
	}

	if customErr.StatusCode >= common.StatusInternalServerError {
		logger.WithRequest(c).WithError(err).Error("Request failed")
	} else if details := detailsString(customErr.Details); details != "" {
		body["details"] = details
	}

	return JSONResponse(c, customErr.StatusCode, body)
}

func detailsString(details any) string {
	switch d := details.(type) {
	case nil:
		return ""
	case error:
		return d.Error()
	case string:
		return d
	default:
		return ""
	}
}
