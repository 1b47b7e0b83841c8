package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hardstock/inventory-service/config"
	"github.com/hardstock/inventory-service/pkg/broker"
	"github.com/hardstock/inventory-service/pkg/cache"
	"github.com/hardstock/inventory-service/pkg/database/postgres"
	"github.com/hardstock/inventory-service/pkg/logger"
	"github.com/hardstock/inventory-service/pkg/search"
	"github.com/hardstock/inventory-service/prometheus"

	alertH "github.com/hardstock/inventory-service/internal/alert/handler"
	alertRepoPkg "github.com/hardstock/inventory-service/internal/alert/repository"
	alertUCPkg "github.com/hardstock/inventory-service/internal/alert/usecase"

	ledgerH "github.com/hardstock/inventory-service/internal/ledger/handler"
	ledgerRepoPkg "github.com/hardstock/inventory-service/internal/ledger/repository"
	ledgerUCPkg "github.com/hardstock/inventory-service/internal/ledger/usecase"

	movementH "github.com/hardstock/inventory-service/internal/movement/handler"
	movementRepoPkg "github.com/hardstock/inventory-service/internal/movement/repository"
	movementUCPkg "github.com/hardstock/inventory-service/internal/movement/usecase"

	fulfillH "github.com/hardstock/inventory-service/internal/fulfillment/handler"
	fulfillListenerPkg "github.com/hardstock/inventory-service/internal/fulfillment/listener"
	fulfillRepoPkg "github.com/hardstock/inventory-service/internal/fulfillment/repository"
	fulfillUCPkg "github.com/hardstock/inventory-service/internal/fulfillment/usecase"

	"github.com/hardstock/inventory-service/internal/middleware"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
	}
	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Initialize metrics
	prometheus.InitMetrics(cfg)

	// 4. Connect to the database
	pgConfig := &postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	}
	db, err := postgres.NewPostgres(pgConfig)
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	pgListener, err := postgres.NewListener(pgConfig, "inventory_changed")
	if err != nil {
		appLogger.Fatal("Could not open inventory change listener", zap.Error(err))
	}
	defer pgListener.Close()

	// 5. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Redis (alert de-dup degrades to per-process)", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	// 6. Initialize Kafka consumer
	kafkaConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer kafkaConsumer.Close()
	appLogger.Info("Connected to Kafka consumer",
		zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

	// 7. Initialize Elasticsearch
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch (audit search limited)", zap.Error(err))
		esClient = nil
	} else {
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	// 8. Initialize repositories
	ledgerRepo := ledgerRepoPkg.NewPGRepository(db)
	fulfillRepo := fulfillRepoPkg.NewPGRepository(db)
	movementRepo := movementRepoPkg.NewPGRepository(db)
	alertRepo := alertRepoPkg.NewPGRepository(db)

	// 9. Initialize usecases
	alertUC := alertUCPkg.NewAlertUseCase(alertRepo, redisClient, appLogger,
		time.Duration(cfg.Inventory.AlertDedupTTL)*time.Second,
		time.Duration(cfg.Inventory.AlertRetentionDays)*24*time.Hour)
	stockLedger := ledgerUCPkg.NewStockLedger(ledgerRepo, alertUC, pgListener.Notify, appLogger,
		cfg.Inventory.LowStockThreshold,
		time.Duration(cfg.Inventory.RefreshInterval)*time.Second)
	movementUC := movementUCPkg.NewMovementUseCase(movementRepo, esClient, appLogger)
	fulfillUC := fulfillUCPkg.NewFulfillmentUseCase(fulfillRepo, stockLedger, movementUC, alertUC, appLogger)

	// 10. Start background workers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := stockLedger.Start(ctx); err != nil {
		appLogger.Fatal("Could not load stock ledger", zap.Error(err))
	}
	go alertUC.RunRetentionSweep(ctx, time.Duration(cfg.Inventory.SweepInterval)*time.Second)

	orderListener := fulfillListenerPkg.NewOrderListener(kafkaConsumer, fulfillUC, appLogger)
	go orderListener.Start(ctx)

	// 11. Initialize handlers
	inventoryHandler := ledgerH.NewInventoryHandler(stockLedger, appLogger)
	movementHandler := movementH.NewMovementHandler(movementUC, appLogger)
	fulfillHandler := fulfillH.NewFulfillmentHandler(fulfillUC, appLogger)
	alertHandler := alertH.NewAlertHandler(alertUC, appLogger)

	// 12. HTTP server
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(middleware.MetricsMiddleware)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api", middleware.AuthMiddleware(cfg.JWT.SecretKey))
	api.GET("/inventory", inventoryHandler.List)
	api.GET("/inventory/low-stock", inventoryHandler.LowStock)
	api.GET("/inventory/:id/movements", movementHandler.History)
	api.GET("/inventory/:id/reserved", movementHandler.Reserved)
	api.GET("/movements/search", movementHandler.Search)
	api.POST("/orders/:id/fulfill", fulfillHandler.FulfillOrder)
	api.POST("/fulfillments", fulfillHandler.FulfillAdHoc)
	api.GET("/alerts", alertHandler.List)
	api.POST("/alerts/:id/read", alertHandler.MarkRead)
	api.POST("/alerts/:id/acknowledge", alertHandler.Acknowledge)
	api.POST("/alerts/evaluate", alertHandler.Evaluate)

	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	appLogger.Info("Starting HTTP server", zap.String("port", port))
	go func() {
		if err := e.Start(port); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
	appLogger.Info("Server stopped")
}
