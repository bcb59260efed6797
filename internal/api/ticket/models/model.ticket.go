// Package models - Ticket thuộc domain Ticket.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TicketCollection là tên collection lưu vé
const TicketCollection = "tickets"

// Tên field (bson) dùng trong truy vấn
const (
	FieldPerformanceTime = "performance_time"
	FieldTicketPrice     = "ticket_price"
)

// Ticket là một vé đã bán cho một buổi diễn (tickets)
type Ticket struct {
	ID               primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`          // MongoDB _id
	CreationDate     time.Time          `json:"creation_date" bson:"creation_date"`         // Thời điểm tạo, mặc định lúc insert
	CustomerName     string             `json:"customer_name" bson:"customer_name"`         // Tên khách hàng
	PerformanceTitle string             `json:"performance_title" bson:"performance_title"` // Tên buổi diễn
	PerformanceTime  time.Time          `json:"performance_time" bson:"performance_time"`   // Thời điểm diễn, dùng để nhóm theo tháng
	TicketPrice      float64            `json:"ticket_price" bson:"ticket_price"`           // Giá vé (>= 0)
}

// MonthKey là _id của một dòng $group theo tháng/năm
type MonthKey struct {
	Month int `bson:"month"` // 1..12
	Year  int `bson:"year"`
}

// MonthlyTotal là một dòng kết quả aggregation: tổng theo (tháng, năm)
type MonthlyTotal struct {
	ID    MonthKey `bson:"_id"`
	Total float64  `bson:"total"`
}
