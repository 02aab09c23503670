package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sangkips/boutique-api/internal/application/service"
	"github.com/sangkips/boutique-api/internal/config"
	"github.com/sangkips/boutique-api/internal/domain/event"
	domainRepo "github.com/sangkips/boutique-api/internal/domain/repository"
	"github.com/sangkips/boutique-api/internal/infrastructure/database"
	"github.com/sangkips/boutique-api/internal/infrastructure/messaging"
	"github.com/sangkips/boutique-api/internal/infrastructure/repository"
	"github.com/sangkips/boutique-api/internal/infrastructure/sequence"
	"github.com/sangkips/boutique-api/internal/presentation/http/handler"
	"github.com/sangkips/boutique-api/internal/presentation/http/middleware"
	"github.com/sangkips/boutique-api/internal/presentation/http/routes"
	"github.com/sangkips/boutique-api/pkg/logger"
	"github.com/sangkips/boutique-api/pkg/oauth"
	"github.com/sangkips/boutique-api/pkg/printer"
	"github.com/sangkips/boutique-api/pkg/utils"
	"go.uber.org/zap"
)

const (
	shutdownTimeout      = 10 * time.Second
	idempotencySweepTick = time.Hour
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	isProduction := cfg.App.Env == "production"

	log, err := logger.New(&logger.Config{
		IsDevelopment: !isProduction,
		Encoding:      cfg.Log.Encoding,
		Level:         cfg.Log.Level,
	})
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if isProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	loc := cfg.App.Location()

	db, err := database.NewDB(&cfg.Database, !isProduction, log)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	defer sqlDB.Close()

	if err := database.AutoMigrate(db, cfg.Collections, log); err != nil {
		return err
	}
	if err := database.SeedDefaultData(db, cfg.Owner, log); err != nil {
		log.Warn("failed to seed default data", zap.Error(err))
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours, cfg.JWT.RefreshExpiryHours)

	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db, cfg.Collections.Customers)
	itemRepo := repository.NewItemRepository(db, cfg.Collections.Items)
	orderRepo := repository.NewOrderRepository(db, cfg.Collections.Orders)
	stitchingRepo := repository.NewStitchingOrderRepository(db, cfg.Collections.StitchingOrders)
	fabricRepo := repository.NewFabricRepository(db, cfg.Collections.Fabrics)
	accessoryRepo := repository.NewAccessoryRepository(db, cfg.Collections.Accessories)
	settingsRepo := repository.NewSettingsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	orderSeq, stitchingSeq, closeRedis := billSequences(cfg.Redis, orderRepo, stitchingRepo, log)
	defer closeRedis()

	publisher := newPublisher(cfg.Kafka, log)
	defer closeLogged(log, "event publisher", publisher)

	thermalPrinter, err := printer.NewPrinterFromConfig(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		log.Warn("failed to initialize printer, printing disabled", zap.Error(err))
		thermalPrinter = printer.NewNullPrinter()
	}
	defer closeLogged(log, "printer", thermalPrinter)

	googleOAuth := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	customerService := service.NewCustomerService(customerRepo, log)
	orderService := service.NewOrderService(orderRepo, itemRepo, customerService, orderSeq, publisher, log)
	stitchingService := service.NewStitchingOrderService(stitchingRepo, fabricRepo, accessoryRepo, customerService, stitchingSeq, publisher, log)
	dashboardService := service.NewDashboardService(orderRepo, stitchingRepo, itemRepo, fabricRepo, accessoryRepo, loc, log)
	printerService := service.NewPrinterService(thermalPrinter, orderRepo, stitchingRepo, settingsRepo, cfg.Printer.Type, loc, log)

	handlers := &routes.Handlers{
		Auth:           handler.NewAuthHandler(service.NewAuthService(userRepo, jwtManager, log), googleOAuth, isProduction, log),
		User:           handler.NewUserHandler(service.NewUserService(userRepo, log)),
		Customer:       handler.NewCustomerHandler(customerService),
		Item:           handler.NewItemHandler(service.NewItemService(itemRepo, log)),
		Order:          handler.NewOrderHandler(orderService, loc),
		StitchingOrder: handler.NewStitchingOrderHandler(stitchingService, loc),
		Inventory:      handler.NewInventoryHandler(service.NewInventoryService(fabricRepo, accessoryRepo, log)),
		Dashboard:      handler.NewDashboardHandler(dashboardService),
		Report:         handler.NewReportHandler(service.NewReportService(orderRepo, stitchingRepo, loc, log), loc),
		Settings:       handler.NewSettingsHandler(service.NewSettingsService(settingsRepo, log)),
		Printer:        handler.NewPrinterHandler(printerService),
	}

	limiter := middleware.NewClientRateLimiter(middleware.NewRateLimiterConfig(
		cfg.RateLimit.Requests,
		time.Duration(cfg.RateLimit.Duration)*time.Second,
	))
	defer limiter.Stop()

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     limiter,
		Log:             log,
		Ping:            sqlDB.PingContext,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sweepIdempotencyKeys(ctx, idempotencyRepo, log)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting",
			zap.String("app", cfg.App.Name),
			zap.String("env", cfg.App.Env),
			zap.String("port", port),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("server stopped")
	return nil
}

// billSequences uses Redis counters when REDIS_ADDR is set and the server
// answers, and the store maximum otherwise.
func billSequences(cfg config.RedisConfig, orders, stitching domainRepo.BillNumberSource, log *zap.Logger) (domainRepo.BillSequence, domainRepo.BillSequence, func()) {
	if !cfg.Enabled() {
		return sequence.NewStoreSequence(orders, log), sequence.NewStoreSequence(stitching, log), func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unavailable, using store bill numbers", zap.String("addr", cfg.Addr), zap.Error(err))
		_ = client.Close()
		return sequence.NewStoreSequence(orders, log), sequence.NewStoreSequence(stitching, log), func() {}
	}

	log.Info("redis bill counters enabled", zap.String("addr", cfg.Addr))
	return sequence.NewRedisSequence(client, "boutique:bill:orders", orders, log),
		sequence.NewRedisSequence(client, "boutique:bill:stitching_orders", stitching, log),
		func() { _ = client.Close() }
}

func newPublisher(cfg config.KafkaConfig, log *zap.Logger) event.Publisher {
	if !cfg.Enabled() {
		return messaging.NopPublisher{}
	}
	pub, err := messaging.NewKafkaPublisher(cfg, log)
	if err != nil {
		log.Warn("kafka unavailable, events disabled", zap.Error(err))
		return messaging.NopPublisher{}
	}
	return pub
}

// closeLogged closes c on shutdown, logging instead of returning a failure.
func closeLogged(log *zap.Logger, what string, c io.Closer) {
	if err := c.Close(); err != nil {
		log.Warn("failed to close "+what, zap.Error(err))
	}
}

func sweepIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository, log *zap.Logger) {
	ticker := time.NewTicker(idempotencySweepTick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := repo.DeleteExpired(ctx); err != nil {
				log.Warn("failed to delete expired idempotency keys", zap.Error(err))
			}
		}
	}
}
