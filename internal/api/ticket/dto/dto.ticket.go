// Package ticketdto - DTO cho Ticket (CRUD).
package ticketdto

import (
	"time"

	"github.com/maddygoround/hapi-go-mongo/internal/api/ticket/models"

	"go.mongodb.org/mongo-driver/bson"
)

// TicketCreateInput dùng cho tạo vé (tầng transport).
// Con trỏ để phân biệt "không gửi" với giá trị 0 (ví dụ vé miễn phí ticket_price = 0).
type TicketCreateInput struct {
	CreationDate     *time.Time `json:"creation_date,omitempty"`
	CustomerName     *string    `json:"customer_name" validate:"required,no_xss"`
	PerformanceTitle *string    `json:"performance_title" validate:"required,no_xss"`
	PerformanceTime  *time.Time `json:"performance_time" validate:"required"`
	TicketPrice      *float64   `json:"ticket_price" validate:"required,gte=0"`
}

// ToModel chuyển input sang model; creation_date mặc định là now
func (in *TicketCreateInput) ToModel(now time.Time) models.Ticket {
	t := models.Ticket{
		CreationDate:     now,
		CustomerName:     *in.CustomerName,
		PerformanceTitle: *in.PerformanceTitle,
		PerformanceTime:  *in.PerformanceTime,
		TicketPrice:      *in.TicketPrice,
	}
	if in.CreationDate != nil && !in.CreationDate.IsZero() {
		t.CreationDate = *in.CreationDate
	}
	return t
}

// TicketUpdateInput dùng cho cập nhật vé; chỉ field được gửi mới bị ghi đè.
type TicketUpdateInput struct {
	CreationDate     *time.Time `json:"creation_date,omitempty"`
	CustomerName     *string    `json:"customer_name,omitempty" validate:"omitempty,min=1,no_xss"`
	PerformanceTitle *string    `json:"performance_title,omitempty" validate:"omitempty,min=1,no_xss"`
	PerformanceTime  *time.Time `json:"performance_time,omitempty"`
	TicketPrice      *float64   `json:"ticket_price,omitempty" validate:"omitempty,gte=0"`
}

// ToSet trả về document $set gồm các field được gửi lên
func (in *TicketUpdateInput) ToSet() bson.M {
	set := bson.M{}
	if in.CreationDate != nil {
		set["creation_date"] = *in.CreationDate
	}
	if in.CustomerName != nil {
		set["customer_name"] = *in.CustomerName
	}
	if in.PerformanceTitle != nil {
		set["performance_title"] = *in.PerformanceTitle
	}
	if in.PerformanceTime != nil {
		set[models.FieldPerformanceTime] = *in.PerformanceTime
	}
	if in.TicketPrice != nil {
		set[models.FieldTicketPrice] = *in.TicketPrice
	}
	return set
}
