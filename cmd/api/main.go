package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"ucstore-inventory/internal/handler"
	"ucstore-inventory/internal/middleware"
	"ucstore-inventory/internal/model"
	"ucstore-inventory/internal/repository"
	"ucstore-inventory/internal/service"
	"ucstore-inventory/internal/ws"
	"ucstore-inventory/pkg/config"
	"ucstore-inventory/pkg/database"
	"ucstore-inventory/pkg/jwt"
	applog "ucstore-inventory/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// 1. Load Env
	cfg := config.Load()
	if _, err := applog.Init(cfg.Log); err != nil {
		log.Fatalf("init logger: %v", err)
	}

	// 2. Setup Database
	db, err := database.Connect(cfg.DB)
	if err != nil {
		slog.Error("connect database", "driver", cfg.DB.Driver, "error", err)
		os.Exit(1)
	}
	if err := model.Migrate(db); err != nil {
		slog.Error("migrate", "error", err)
		os.Exit(1)
	}

	productRepo := repository.NewProductRepo(db)

	// 3. Seed the demo catalog into an empty store
	if cfg.SeedDemo {
		if n, err := productRepo.SeedDefaults(); err != nil {
			slog.Warn("seed demo products", "error", err)
		} else if n > 0 {
			slog.Info("demo products seeded", "count", n)
		}
	}
	if err := os.MkdirAll(cfg.UploadsDir, 0o755); err != nil {
		slog.Error("create uploads dir", "dir", cfg.UploadsDir, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run(ctx)

	// 5. Dependency Injection (Wiring Layers)
	saleRepo := repository.NewSaleRepo(db)
	purchaseRepo := repository.NewPurchaseRepo(db)
	userRepo := repository.NewUserRepo(db)
	statsRepo := repository.NewStatsRepo(db)
	tokens := jwt.NewManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)

	invService := service.NewInventoryService(productRepo, saleRepo, purchaseRepo, db, wsHub)
	statsService := service.NewStatsService(statsRepo, productRepo, saleRepo, purchaseRepo)
	reportService := service.NewReportService(productRepo, saleRepo, purchaseRepo)
	userService := service.NewUserService(userRepo)
	authService := service.NewAuthService(userRepo, tokens)

	loginLimit, err := middleware.RateLimit(cfg.RateLimit)
	if err != nil {
		slog.Error("rate limit", "rate", cfg.RateLimit, "error", err)
		os.Exit(1)
	}

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:   "UC-STORE Inventory API",
		BodyLimit: 8 * 1024 * 1024,
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigin}))

	// 7. Routes
	handler.Register(app, handler.Handlers{
		Inventory:  handler.NewInventoryHandler(invService),
		Stats:      handler.NewStatsHandler(statsService),
		Reports:    handler.NewReportHandler(reportService),
		Users:      handler.NewUserHandler(userService, cfg.UploadsDir),
		Auth:       handler.NewAuthHandler(authService, tokens),
		AuthGate:   middleware.NewAuth(tokens, cfg.Auth.Enabled),
		LoginLimit: loginLimit,
		Hub:        wsHub,
		UploadsDir: cfg.UploadsDir,
	})

	// 8. Graceful Shutdown
	go func() {
		slog.Info("server listening", "port", cfg.Port, "db", cfg.DB.Driver, "auth", cfg.Auth.Enabled)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("listen", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	slog.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	slog.Info("server exited")
}
