// Package basehdl cung cấp các tiện ích dùng chung cho domain handler: response JSON, xử lý lỗi, parse body.
package basehdl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"runtime/debug"

	"github.com/maddygoround/hapi-go-mongo/internal/api/middleware"
	"github.com/maddygoround/hapi-go-mongo/internal/common"
	"github.com/maddygoround/hapi-go-mongo/internal/global"
	"github.com/maddygoround/hapi-go-mongo/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	return middleware.JSONResponse(c, statusCode, data)
}

// HandleError trả lỗi về client theo format chung của service
func HandleError(c fiber.Ctx, err error) error {
	return middleware.HandleErrorResponse(c, err)
}

// SafeHandlerWrapper bọc handler với recover để panic vẫn trả về response 500 thay vì làm rơi kết nối.
func SafeHandlerWrapper(c fiber.Ctx, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithRequest(c).WithField("stack", string(debug.Stack())).
				Errorf("Panic trong handler: %v", r)
			err = HandleError(c, common.Wrap(common.ErrRepositoryFailure, fmt.Errorf("panic: %v", r)))
		}
	}()
	return fn()
}

// ParseRequestBody parse JSON body vào input rồi validate bằng global.Validate.
// Dùng json.Decoder với UseNumber() để giữ chính xác các số.
func ParseRequestBody(c fiber.Ctx, input interface{}) error {
	decoder := json.NewDecoder(bytes.NewReader(c.Body()))
	decoder.UseNumber()
	if err := decoder.Decode(input); err != nil {
		return common.Wrap(common.ErrInvalidFormat, err)
	}

	if err := global.Validate.Struct(input); err != nil {
		return common.Wrap(common.ErrInvalidInput, err)
	}
	return nil
}
