package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	httpapi "github.com/DhruvDarbha/Env/internal/api/http"
	"github.com/DhruvDarbha/Env/internal/chart"
	"github.com/DhruvDarbha/Env/internal/config"
	"github.com/DhruvDarbha/Env/internal/inspection"
	"github.com/DhruvDarbha/Env/internal/inspection/sources"
	applog "github.com/DhruvDarbha/Env/internal/logger"
	"github.com/DhruvDarbha/Env/internal/scheduler"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := applog.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	// One backend client for the whole process.
	src, closeSource, err := sources.Open(cfg.Source)
	if err != nil {
		logr.Fatalf("failed to open %s data source: %v", cfg.Source.Driver, err)
	}
	defer func() {
		if err := closeSource(); err != nil {
			logr.Errorf("error closing data source: %v", err)
		}
	}()

	gateway := inspection.NewGateway(src, logr)
	service := inspection.NewService(gateway, chart.NewRenderer())

	// Periodic probe of the default collection.
	sched := scheduler.New(gateway, inspection.DefaultCollection, cfg.ProbeInterval, logr)
	if err := sched.Start(); err != nil {
		logr.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "chart-generator",
		DisableStartupMessage: true,
		UnescapePath:          true,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New())

	httpapi.RegisterRoutes(app, service)

	go func() {
		logr.Infof("listening on :%s (source: %s)", cfg.Port, src.Name())
		if err := app.Listen(":" + cfg.Port); err != nil {
			logr.Errorf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logr.Errorf("error during shutdown: %v", err)
	}
}
