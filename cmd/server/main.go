package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/maddygoround/hapi-go-mongo/config"
	"github.com/maddygoround/hapi-go-mongo/internal/database"
	"github.com/maddygoround/hapi-go-mongo/internal/logger"

	"github.com/gofiber/fiber/v3"
	"golang.org/x/sync/errgroup"
)

// Hàm main
func main() {
	if err := run(); err != nil {
		logger.GetAppLogger().WithError(err).Error("Server stopped with error")
		logger.Close()
		os.Exit(1)
	}
	logger.Close()
}

// run khởi tạo logger, cấu hình, MongoDB, Fiber rồi chạy tới khi nhận SIGINT/SIGTERM.
// Thứ tự đóng: Fiber (đợi request đang xử lý) → MongoDB → logger.
func run() error {
	if err := initLogger(); err != nil {
		return err
	}
	log := logger.GetAppLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client, err := database.GetInstance(cfg)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = database.CloseInstance(ctx, client)
	}()

	collections, err := InitCollections(client, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize collections: %w", err)
	}

	initCtx, cancelInit := context.WithTimeout(context.Background(), 30*time.Second)
	deps, err := InitDeps(initCtx, cfg, client, collections)
	cancelInit()
	if err != nil {
		return err
	}

	app := InitFiberApp(cfg, deps)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	// Listener HTTP
	g.Go(func() error {
		address := ":" + cfg.Address
		log.WithField("address", address).Info("Starting server with HTTP")
		if err := app.Listen(address, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
			return fmt.Errorf("fiber listen: %w", err)
		}
		return nil
	})

	// Đợi tín hiệu dừng (hoặc listener lỗi) rồi đóng server
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")
		timeout := time.Duration(cfg.ShutdownTimeout) * time.Second
		if err := app.ShutdownWithTimeout(timeout); err != nil {
			return fmt.Errorf("fiber shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("Server stopped")
	return nil
}
