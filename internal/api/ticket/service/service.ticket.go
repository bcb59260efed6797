// Package ticketsvc - Service cho collection tickets: CRUD và các truy vấn theo khoảng performance_time dùng cho analytics.
package ticketsvc

import (
	"context"
	"fmt"
	"time"

	basesvc "github.com/maddygoround/hapi-go-mongo/internal/api/base/service"
	"github.com/maddygoround/hapi-go-mongo/internal/api/ticket/models"
	"github.com/maddygoround/hapi-go-mongo/internal/common"
	"github.com/maddygoround/hapi-go-mongo/internal/registry"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// TicketService thao tác với collection tickets
type TicketService struct {
	*basesvc.BaseServiceMongoImpl[models.Ticket]
}

// NewTicketService tạo TicketService từ registry collection đã khởi tạo lúc startup
func NewTicketService(collections *registry.Registry[*mongo.Collection]) (*TicketService, error) {
	coll, err := collections.MustGet(models.TicketCollection)
	if err != nil {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", models.TicketCollection, err)
	}
	return &TicketService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Ticket](coll),
	}, nil
}

// Create thêm vé mới; creation_date mặc định là thời điểm hiện tại
func (s *TicketService) Create(ctx context.Context, ticket models.Ticket) (models.Ticket, error) {
	if ticket.CreationDate.IsZero() {
		ticket.CreationDate = time.Now()
	}
	return s.InsertOne(ctx, ticket)
}

// FindAll trả về tất cả vé theo thứ tự tự nhiên của collection
func (s *TicketService) FindAll(ctx context.Context) ([]models.Ticket, error) {
	return s.Find(ctx, nil, nil)
}

// FindByPerformanceWindow trả về các vé có from < performance_time < to.
// Không sort. Khi planner dùng index ticket_performance_time, kết quả thường tăng dần theo
// performance_time chứ không theo thứ tự insert.
func (s *TicketService) FindByPerformanceWindow(ctx context.Context, from, to time.Time) ([]models.Ticket, error) {
	return s.Find(ctx, PerformanceWindowFilter(from, to), nil)
}

// SumByPerformanceMonth nhóm các vé trong khoảng (from, to) theo tháng/năm của performance_time
// tính theo timezone, cộng dồn sumField (rỗng = đếm số vé). Thứ tự dòng là thứ tự MongoDB trả về.
func (s *TicketService) SumByPerformanceMonth(ctx context.Context, from, to time.Time, sumField, timezone string) ([]models.MonthlyTotal, error) {
	rows, err := basesvc.AggregateAll[models.MonthlyTotal](ctx, s.Collection(), MonthlySumPipeline(from, to, sumField, timezone))
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return rows, nil
}

// PerformanceWindowFilter lọc performance_time nằm ngoặc mở hai đầu (from, to)
func PerformanceWindowFilter(from, to time.Time) bson.M {
	return bson.M{
		models.FieldPerformanceTime: bson.M{
			"$gt": from,
			"$lt": to,
		},
	}
}

// MonthlySumPipeline dựng pipeline $match + $group theo {month, year} của performance_time.
// Không có $sort: thứ tự nhóm do MongoDB quyết định.
func MonthlySumPipeline(from, to time.Time, sumField, timezone string) mongo.Pipeline {
	if timezone == "" {
		timezone = "UTC"
	}
	dateExpr := func(op string) bson.M {
		return bson.M{op: bson.M{"date": "$" + models.FieldPerformanceTime, "timezone": timezone}}
	}

	var sumExpr interface{} = 1
	if sumField != "" {
		sumExpr = "$" + sumField
	}

	return mongo.Pipeline{
		{{Key: "$match", Value: PerformanceWindowFilter(from, to)}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "month", Value: dateExpr("$month")},
				{Key: "year", Value: dateExpr("$year")},
			}},
			{Key: "total", Value: bson.M{"$sum": sumExpr}},
		}}},
	}
}
