package global

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate dùng chung cho tất cả DTO (validator an toàn khi dùng đồng thời)
var Validate *validator.Validate

func init() {
	InitValidator()
}

// InitValidator khởi tạo validator và đăng ký các custom validator
func InitValidator() {
	Validate = validator.New()
	_ = Validate.RegisterValidation("no_xss", validateNoXSS)
}

// validateNoXSS từ chối chuỗi chứa các mẫu script nguy hiểm
func validateNoXSS(fl validator.FieldLevel) bool {
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"eval(",
		"document.cookie",
		"<iframe",
	}

	value := strings.ToLower(fl.Field().String())
	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}
