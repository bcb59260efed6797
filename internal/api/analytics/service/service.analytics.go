// Package analyticssvc - Tính thống kê vé theo tháng/năm với hai chiến lược: aggregation trên MongoDB và fold trong process.
package analyticssvc

import (
	"context"
	"fmt"
	"time"

	"github.com/maddygoround/hapi-go-mongo/internal/api/analytics/models"
	ticketmodels "github.com/maddygoround/hapi-go-mongo/internal/api/ticket/models"
	"github.com/maddygoround/hapi-go-mongo/internal/common"
	"github.com/maddygoround/hapi-go-mongo/internal/logger"
	"github.com/maddygoround/hapi-go-mongo/internal/metrics"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// TicketRepository là phần lưu trữ vé mà Engine cần (ticketsvc.TicketService thỏa mãn)
type TicketRepository interface {
	// FindByPerformanceWindow trả về các vé có from < performance_time < to
	FindByPerformanceWindow(ctx context.Context, from, to time.Time) ([]ticketmodels.Ticket, error)
	// SumByPerformanceMonth nhóm cùng khoảng đó theo (tháng, năm) trong timezone, cộng dồn sumField (rỗng = đếm)
	SumByPerformanceMonth(ctx context.Context, from, to time.Time, sumField, timezone string) ([]ticketmodels.MonthlyTotal, error)
}

// Engine tính các bucket analytics. Không giữ state giữa các request.
type Engine struct {
	repo    TicketRepository
	loc     *time.Location
	metrics *metrics.Metrics
}

// NewEngine tạo Engine; loc là múi giờ dùng để cắt tháng cho cả hai chiến lược (nil = UTC)
func NewEngine(repo TicketRepository, loc *time.Location) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{repo: repo, loc: loc}
}

// WithMetrics gắn collector Prometheus (nil = không ghi nhận)
func (e *Engine) WithMetrics(m *metrics.Metrics) *Engine {
	e.metrics = m
	return e
}

// Location trả về múi giờ Engine đang dùng
func (e *Engine) Location() *time.Location {
	return e.loc
}

// LoadTimezone đọc tên múi giờ IANA cho Engine (rỗng = UTC).
// "Local" bị từ chối vì MongoDB không hiểu tên này trong $month/$year.
func LoadTimezone(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	if name == "Local" {
		return nil, fmt.Errorf("timezone %q không dùng được cho aggregation, hãy dùng tên IANA (vd Asia/Ho_Chi_Minh)", name)
	}
	return time.LoadLocation(name)
}

// Compute chạy truy vấn theo chiến lược đã chọn.
// Delegated giữ thứ tự repository trả về; InProcess giữ thứ tự xuất hiện đầu tiên của từng (tháng, năm).
// Lỗi repository được bọc thành ErrRepositoryFailure, không retry.
func (e *Engine) Compute(ctx context.Context, q models.Query) ([]models.Bucket, error) {
	if !q.Metric.Valid() {
		return nil, common.ErrInvalidMetric
	}
	if !q.Strategy.Valid() {
		return nil, common.ErrInvalidStrategy
	}
	if q.Range.Start.IsZero() || q.Range.End.IsZero() {
		return nil, common.ErrInvalidRange
	}

	start := time.Now()
	var (
		buckets []models.Bucket
		err     error
	)
	switch q.Strategy {
	case models.StrategyDelegated:
		buckets, err = e.computeDelegated(ctx, q)
	case models.StrategyInProcess:
		buckets, err = e.computeInProcess(ctx, q)
	}
	elapsed := time.Since(start)
	e.metrics.ObserveAnalytics(q.Strategy.String(), string(q.Metric), len(buckets), elapsed, err)

	log := logger.WithModule("analytics").WithFields(logrus.Fields{
		"strategy":    q.Strategy.String(),
		"metric":      string(q.Metric),
		"start":       q.Range.Start,
		"end":         q.Range.End,
		"duration_ms": elapsed.Milliseconds(),
	})
	if err != nil {
		log.WithError(err).Error("Analytics computation failed")
		return nil, err
	}
	log.WithField("buckets", len(buckets)).Debug("Analytics computed")
	return buckets, nil
}

// computeDelegated để MongoDB lọc, nhóm và cộng dồn; mỗi dòng kết quả thành một bucket
func (e *Engine) computeDelegated(ctx context.Context, q models.Query) ([]models.Bucket, error) {
	rows, err := e.repo.SumByPerformanceMonth(ctx, q.Range.Start, q.Range.End, q.Metric.SumField(), e.loc.String())
	if err != nil {
		return nil, common.Wrap(common.ErrRepositoryFailure, err)
	}

	buckets := make([]models.Bucket, 0, len(rows))
	for _, row := range rows {
		key := models.GroupKey{Month: time.Month(row.ID.Month), Year: row.ID.Year}
		buckets = append(buckets, models.NewBucket(key, row.Total))
	}
	return buckets, nil
}

// computeInProcess lấy các vé khớp khoảng rồi fold trong bộ nhớ
func (e *Engine) computeInProcess(ctx context.Context, q models.Query) ([]models.Bucket, error) {
	tickets, err := e.repo.FindByPerformanceWindow(ctx, q.Range.Start, q.Range.End)
	if err != nil {
		return nil, common.Wrap(common.ErrRepositoryFailure, err)
	}
	return Fold(tickets, q.Metric, e.loc), nil
}

// Fold gom tickets theo GroupKey của performance_time trong loc.
// Bucket được thêm vào kết quả theo thứ tự key xuất hiện lần đầu. Tổng được cộng bằng decimal
// và chuyển về float64 ở cuối.
func Fold(tickets []ticketmodels.Ticket, metric models.Metric, loc *time.Location) []models.Bucket {
	buckets := make([]models.Bucket, 0)
	sums := make([]decimal.Decimal, 0)
	index := make(map[models.GroupKey]int)

	for _, t := range tickets {
		key := models.KeyOf(t.PerformanceTime, loc)
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, models.NewBucket(key, 0))
			sums = append(sums, decimal.Zero)
		}
		sums[i] = sums[i].Add(contribution(t, metric))
	}

	for i := range buckets {
		buckets[i].Value = sums[i].InexactFloat64()
	}
	return buckets
}

// contribution là phần một vé đóng góp vào bucket của nó
func contribution(t ticketmodels.Ticket, metric models.Metric) decimal.Decimal {
	if metric == models.MetricProfit {
		return decimal.NewFromFloat(t.TicketPrice)
	}
	return decimal.NewFromInt(1)
}
