// Package database - Kết nối MongoDB và các index cần cho truy vấn theo khoảng thời gian diễn.
package database

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TicketPerformanceTimeIndex là tên index trên performance_time
const TicketPerformanceTimeIndex = "ticket_performance_time"

// CreateTicketIndexes tạo index phục vụ bộ lọc performance_time của cả hai chiến lược analytics.
func CreateTicketIndexes(ctx context.Context, coll *mongo.Collection) error {
	// tickets: performance_time, dùng cho $match của aggregation và find theo khoảng
	if _, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "performance_time", Value: 1}},
		Options: options.Index().SetName(TicketPerformanceTimeIndex),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}
	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
