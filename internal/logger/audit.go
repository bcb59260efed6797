package logger

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/sirupsen/logrus"
)

// LogCRUD ghi audit log cho một thao tác ghi dữ liệu (create, update, delete)
func LogCRUD(operation, resourceType, resourceID string, c fiber.Ctx, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	if rid := requestid.FromContext(c); rid != "" {
		details["request_id"] = rid
	}

	GetAuditLogger().WithFields(logrus.Fields{
		"action":        "crud_" + operation,
		"resource_type": resourceType,
		"resource_id":   resourceID,
		"ip":            c.IP(),
		"user_agent":    c.Get("User-Agent"),
		"details":       details,
		"timestamp":     time.Now(),
	}).Info("Audit log")
}
