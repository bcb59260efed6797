// Package analyticsdto - DTO request/response cho POST /api/analytics/{type}.
package analyticsdto

import (
	"encoding/json"

	"github.com/maddygoround/hapi-go-mongo/internal/api/analytics/models"
)

// AnalyticsRequest là body của request analytics (ISO-8601)
type AnalyticsRequest struct {
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

// AnalyticsItem là một bucket trong response; tên field giá trị phụ thuộc metric
// (summaryVisits hoặc summaryProfit).
type AnalyticsItem struct {
	Month        string
	Year         int
	SummaryField string
	Value        float64
}

// MarshalJSON encode {month, year, <SummaryField>: value}
func (i AnalyticsItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"month":        i.Month,
		"year":         i.Year,
		i.SummaryField: i.Value,
	})
}

// AnalyticsResponse là body trả về: {analytics: [...]}
type AnalyticsResponse struct {
	Analytics []AnalyticsItem `json:"analytics"`
}

// NewAnalyticsResponse chuyển buckets sang response, giữ nguyên thứ tự; không có bucket thì trả về mảng rỗng
func NewAnalyticsResponse(metric models.Metric, buckets []models.Bucket) AnalyticsResponse {
	items := make([]AnalyticsItem, 0, len(buckets))
	for _, b := range buckets {
		items = append(items, AnalyticsItem{
			Month:        b.Label,
			Year:         b.Year,
			SummaryField: metric.SummaryField(),
			Value:        b.Value,
		})
	}
	return AnalyticsResponse{Analytics: items}
}
