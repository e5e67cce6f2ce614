package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tradevision/pnl-analyzer/internal/api"
	"github.com/tradevision/pnl-analyzer/internal/config"
	"github.com/tradevision/pnl-analyzer/internal/ingestion"
	"github.com/tradevision/pnl-analyzer/internal/service"
	"github.com/tradevision/pnl-analyzer/internal/storage/cache"
	"github.com/tradevision/pnl-analyzer/internal/validate"
	pkglogger "github.com/tradevision/pnl-analyzer/pkg/logger"
)

// @title Trading PnL Analyzer API
// @version 1.0
// @description API for importing trading records and computing PnL statistics

// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
func main() {
	cfg := config.Load()

	if err := pkglogger.Init(cfg.LogLevel, cfg.Environment == "development"); err != nil {
		log.Fatal("failed to initialize logger:", err)
	}
	defer pkglogger.Close()

	reportCache := connectRedis(cfg)
	if reportCache != nil {
		defer reportCache.Close()
	}

	loader := ingestion.NewLoader(cfg.Separator())
	validator := validate.NewValidator()
	analysisService := service.NewAnalysisService(loader, validator, reportCache)

	handler := api.NewHandler(analysisService, reportCache)

	app := fiber.New(fiber.Config{
		ServerHeader:          "PnL-Analyzer",
		AppName:               "Trading PnL Analyzer v1.0.0",
		ReadTimeout:           cfg.APIReadTimeout,
		WriteTimeout:          cfg.APIWriteTimeout,
		IdleTimeout:           120 * time.Second,
		BodyLimit:             cfg.MaxUploadBytes,
		DisableStartupMessage: false,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	api.SetupRoutes(app, handler)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	addr := fmt.Sprintf("%s:%s", cfg.APIHost, cfg.APIPort)
	log.Printf("Starting server on %s", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatal("Server error:", err)
	}
}

func connectRedis(cfg *config.Config) *cache.ReportCache {
	reportCache, err := cache.NewReportCache(cfg)
	if err != nil {
		log.Printf("Redis unavailable: %v (continuing without cache)", err)
		return nil
	}

	log.Println("Connected to Redis")
	return reportCache
}
