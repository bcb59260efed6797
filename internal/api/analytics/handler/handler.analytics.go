// Package analyticshdl - Handler cho POST /api/analytics/:type?method=.
package analyticshdl

import (
	"context"
	"errors"

	analyticsdto "github.com/maddygoround/hapi-go-mongo/internal/api/analytics/dto"
	"github.com/maddygoround/hapi-go-mongo/internal/api/analytics/models"
	basehdl "github.com/maddygoround/hapi-go-mongo/internal/api/base/handler"
	"github.com/maddygoround/hapi-go-mongo/internal/common"

	"github.com/gofiber/fiber/v3"
)

// Computer là phần của analyticssvc.Engine mà handler cần
type Computer interface {
	Compute(ctx context.Context, q models.Query) ([]models.Bucket, error)
}

// AnalyticsHandler giải mã request thành Query và encode bucket vào response
type AnalyticsHandler struct {
	engine Computer
}

// NewAnalyticsHandler tạo AnalyticsHandler
func NewAnalyticsHandler(engine Computer) *AnalyticsHandler {
	return &AnalyticsHandler{engine: engine}
}

// HandleCompute xử lý POST /api/analytics/:type?method=aggregation|js|reduce.
// Body: {start_date, end_date}. Response: {analytics:[{month, year, summaryVisits|summaryProfit}]}.
func (h *AnalyticsHandler) HandleCompute(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		metric, err := models.ParseMetric(c.Params("type"))
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		strategy, err := models.ParseStrategy(c.Query("method"))
		if err != nil {
			return basehdl.HandleError(c, err)
		}

		var req analyticsdto.AnalyticsRequest
		if err := basehdl.ParseRequestBody(c, &req); err != nil {
			// Body rỗng, sai kiểu hay thiếu start_date/end_date đều là lỗi khoảng thời gian
			if errors.Is(err, common.ErrInvalidInput) || errors.Is(err, common.ErrInvalidFormat) {
				return basehdl.HandleError(c, common.Wrap(common.ErrInvalidRange, err))
			}
			return basehdl.HandleError(c, err)
		}

		rng, err := models.ParseDateRange(req.StartDate, req.EndDate)
		if err != nil {
			return basehdl.HandleError(c, err)
		}

		buckets, err := h.engine.Compute(c.Context(), models.Query{
			Metric:   metric,
			Strategy: strategy,
			Range:    rng,
		})
		if err != nil {
			return basehdl.HandleError(c, err)
		}

		return basehdl.JSONResponse(c, common.StatusOK, analyticsdto.NewAnalyticsResponse(metric, buckets))
	})
}
