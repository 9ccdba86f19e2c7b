package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/i474232898/potato-farm-advisor/internal/advisor"
	httpapi "github.com/i474232898/potato-farm-advisor/internal/api/http"
	"github.com/i474232898/potato-farm-advisor/internal/config"
	"github.com/i474232898/potato-farm-advisor/internal/scheduler"
	"github.com/i474232898/potato-farm-advisor/internal/store"
	"github.com/i474232898/potato-farm-advisor/internal/weather/providers"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// HTTP client for the climate API; its timeout bounds the single round trip.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// In-memory store of analyses with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory)

	provider := providers.NewPowerProvider(httpClient, cfg.PowerBaseURL)

	// Core service running the fetch → build pipeline.
	service := advisor.NewService(memStore, provider)

	// Optional periodic refresh of the configured field.
	sched := scheduler.New(cfg.Field, cfg.RefreshInterval, cfg.HTTPTimeout+5*time.Second, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "potato-farm-advisor",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		// Analyses wait on the climate API.
		WriteTimeout: cfg.HTTPTimeout + 10*time.Second,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "potato-farm-advisor",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, cfg.Field)

	go func() {
		log.Printf("INFO: listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
