package main

import (
	"context"
	"fmt"

	"github.com/maddygoround/hapi-go-mongo/config"
	analyticshdl "github.com/maddygoround/hapi-go-mongo/internal/api/analytics/handler"
	analyticssvc "github.com/maddygoround/hapi-go-mongo/internal/api/analytics/service"
	basehdl "github.com/maddygoround/hapi-go-mongo/internal/api/base/handler"
	tickethdl "github.com/maddygoround/hapi-go-mongo/internal/api/ticket/handler"
	ticketmodels "github.com/maddygoround/hapi-go-mongo/internal/api/ticket/models"
	ticketsvc "github.com/maddygoround/hapi-go-mongo/internal/api/ticket/service"
	"github.com/maddygoround/hapi-go-mongo/internal/database"
	"github.com/maddygoround/hapi-go-mongo/internal/logger"
	"github.com/maddygoround/hapi-go-mongo/internal/metrics"
	"github.com/maddygoround/hapi-go-mongo/internal/registry"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.mongodb.org/mongo-driver/mongo"
)

// AppDeps gom các handle được tạo lúc khởi động và truyền vào router (không dùng biến toàn cục)
type AppDeps struct {
	DB        basehdl.Pinger
	Tickets   tickethdl.TicketStore
	Analytics analyticshdl.Computer
	Metrics   *metrics.Metrics // nil khi METRICS_ENABLED=false
}

// initLogger khởi tạo logger cho toàn bộ ứng dụng (đọc LOG_* từ environment)
func initLogger() error {
	if err := logger.Init(nil); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.GetAppLogger().Info("Logger system initialized successfully")
	return nil
}

// initMetrics tạo registry Prometheus riêng kèm collector runtime của Go
func initMetrics(cfg *config.Configuration) *metrics.Metrics {
	if !cfg.Metrics_Enabled {
		return nil
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return metrics.New(reg)
}

// InitDeps kết nối các service vào collection đã đăng ký và tạo index cần thiết
func InitDeps(ctx context.Context, cfg *config.Configuration, client *mongo.Client, collections *registry.Registry[*mongo.Collection]) (*AppDeps, error) {
	loc, err := analyticssvc.LoadTimezone(cfg.Analytics_Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid ANALYTICS_TIMEZONE %q: %w", cfg.Analytics_Timezone, err)
	}

	ticketService, err := ticketsvc.NewTicketService(collections)
	if err != nil {
		return nil, err
	}

	coll, err := collections.MustGet(ticketmodels.TicketCollection)
	if err != nil {
		return nil, err
	}
	if err := database.CreateTicketIndexes(ctx, coll); err != nil {
		return nil, fmt.Errorf("create ticket indexes: %w", err)
	}

	m := initMetrics(cfg)
	engine := analyticssvc.NewEngine(ticketService, loc).WithMetrics(m)
	logger.GetAppLogger().WithField("timezone", engine.Location().String()).Info("Analytics engine initialized")

	return &AppDeps{
		DB:        client,
		Tickets:   ticketService,
		Analytics: engine,
		Metrics:   m,
	}, nil
}
