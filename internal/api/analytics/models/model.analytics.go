// Package models - Kiểu dữ liệu của domain Analytics: loại thống kê, chiến lược tính, khoảng thời gian và bucket theo tháng.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/maddygoround/hapi-go-mongo/internal/common"
)

// Metric là loại thống kê
type Metric string

const (
	MetricVisits Metric = "visits" // Mỗi vé đóng góp 1
	MetricProfit Metric = "profit" // Mỗi vé đóng góp ticket_price
)

// ParseMetric đọc giá trị path segment {type}; giá trị lạ trả về ErrInvalidMetric
func ParseMetric(s string) (Metric, error) {
	switch m := Metric(strings.ToLower(strings.TrimSpace(s))); m {
	case MetricVisits, MetricProfit:
		return m, nil
	default:
		return "", common.WithMessage(common.ErrInvalidMetric, fmt.Sprintf("type '%s' không được hỗ trợ, chỉ nhận visits hoặc profit", s))
	}
}

// Valid cho biết metric có thuộc tập hỗ trợ
func (m Metric) Valid() bool {
	return m == MetricVisits || m == MetricProfit
}

// SummaryField là tên field chứa giá trị trong response
func (m Metric) SummaryField() string {
	if m == MetricProfit {
		return "summaryProfit"
	}
	return "summaryVisits"
}

// SumField là field ticket được cộng dồn; rỗng nghĩa là đếm số vé
func (m Metric) SumField() string {
	if m == MetricProfit {
		return "ticket_price"
	}
	return ""
}

// Strategy là cách tính analytics
type Strategy int

const (
	StrategyDelegated Strategy = iota + 1 // Aggregation pipeline chạy trên MongoDB
	StrategyInProcess                     // Lấy vé về rồi fold trong process
)

// String trả về tên dùng trong log và label metrics
func (s Strategy) String() string {
	switch s {
	case StrategyDelegated:
		return "delegated"
	case StrategyInProcess:
		return "in_process"
	default:
		return "unknown"
	}
}

// Valid cho biết strategy có thuộc tập hỗ trợ
func (s Strategy) Valid() bool {
	return s == StrategyDelegated || s == StrategyInProcess
}

// ParseStrategy đọc query ?method=.
// Rỗng hoặc "aggregation" → Delegated; "js" hoặc "reduce" → InProcess; giá trị khác → ErrInvalidStrategy.
func ParseStrategy(method string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case "", "aggregation":
		return StrategyDelegated, nil
	case "js", "reduce":
		return StrategyInProcess, nil
	default:
		return 0, common.WithMessage(common.ErrInvalidStrategy, fmt.Sprintf("method '%s' không được hỗ trợ, chỉ nhận aggregation, js hoặc reduce", method))
	}
}

// dateLayouts là các định dạng ISO-8601 chấp nhận cho start_date/end_date.
// Layout không có offset được hiểu là UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// DateRange là khoảng (Start, End) mở hai đầu trên performance_time
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains cho biết Start < t < End
func (r DateRange) Contains(t time.Time) bool {
	return t.After(r.Start) && t.Before(r.End)
}

// ParseDateRange parse start/end; thiếu hoặc không parse được trả về ErrInvalidRange.
// Không bắt buộc start < end: khoảng ngược chỉ đơn giản không khớp vé nào.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := parseDate("start_date", start)
	if err != nil {
		return DateRange{}, err
	}
	e, err := parseDate("end_date", end)
	if err != nil {
		return DateRange{}, err
	}
	return DateRange{Start: s, End: e}, nil
}

func parseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, common.WithMessage(common.ErrInvalidRange, fmt.Sprintf("%s là bắt buộc", field))
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, common.WithMessage(common.ErrInvalidRange, fmt.Sprintf("%s '%s' không phải thời điểm ISO-8601 hợp lệ", field, value))
}

// GroupKey là khóa (tháng, năm) để gom vé; so sánh theo giá trị, dùng trực tiếp làm key của map
type GroupKey struct {
	Month time.Month
	Year  int
}

// KeyOf tính GroupKey của t theo múi giờ loc (nil = UTC)
func KeyOf(t time.Time, loc *time.Location) GroupKey {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return GroupKey{Month: local.Month(), Year: local.Year()}
}

// Bucket là tổng của một GroupKey trong một lần tính
type Bucket struct {
	Key   GroupKey
	Label string // Tên tháng tiếng Anh, ví dụ "May"
	Year  int
	Value float64
}

// NewBucket tạo bucket rỗng cho key
func NewBucket(key GroupKey, value float64) Bucket {
	return Bucket{Key: key, Label: key.Month.String(), Year: key.Year, Value: value}
}

// Query là một yêu cầu tính analytics
type Query struct {
	Metric   Metric
	Strategy Strategy
	Range    DateRange
}
