package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"ecoruta/internal/app"
	"ecoruta/internal/config"
	"ecoruta/internal/handler"
	internalRedis "ecoruta/internal/redis"
	"ecoruta/internal/repository/postgres"
	"ecoruta/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			logger.Warn("failed to initialize New Relic", zap.Error(err))
			nrApp = nil
		} else {
			logger.Info("New Relic enabled", zap.String("app", cfg.NewRelic.AppName))
		}
	}

	// Initialize database with New Relic instrumentation.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	logger.Info("connected to PostgreSQL")

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()
	logger.Info("connected to Redis")

	// Wire dependencies.
	server := wireServer(ctx, db, redisClient, nrApp, cfg, logger)

	// Start server in goroutine.
	go func() {
		logger.Info("starting server", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(ctx context.Context, db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config, logger *zap.Logger) *http.Server {
	// Initialize Redis stores.
	sessionStore := internalRedis.NewSessionStore(redisClient)
	lockStore := internalRedis.NewLockStore(redisClient)
	placeIndex := internalRedis.NewPlaceIndex(redisClient)
	screenStore := internalRedis.NewScreenStore(redisClient)

	// Initialize repositories.
	profileRepo := postgres.NewProfileRepository(db)
	routeRepo := postgres.NewRouteRepository(db)
	paymentRepo := postgres.NewPaymentRecordRepository(db)
	placeRepo := postgres.NewPlaceRepository(db)

	// Initialize services.
	voiceService := service.NewVoiceService(nil, logger)
	historyService := service.NewHistoryService(routeRepo, paymentRepo, logger)
	tripService := service.NewTripService(cfg.Trip, lockStore, historyService, voiceService, logger)
	authService := service.NewAuthService(cfg.Auth, profileRepo, sessionStore, tripService, voiceService, logger)
	fareService := service.NewFareService()
	locationService := service.NewLocationService(placeRepo, placeIndex, logger)
	navService := service.NewNavigationService(screenStore, logger)

	if err := locationService.SeedIndex(ctx); err != nil {
		logger.Warn("place index seed failed", zap.Error(err))
	}

	// Initialize handlers.
	authHandler := handler.NewAuthHandler(authService)
	tripHandler := handler.NewTripHandler(tripService, fareService)
	paymentHandler := handler.NewPaymentHandler(historyService)
	historyHandler := handler.NewHistoryHandler(historyService)
	navHandler := handler.NewNavHandler(navService)
	placeHandler := handler.NewPlaceHandler(locationService)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		AuthService:    authService,
		AuthHandler:    authHandler,
		TripHandler:    tripHandler,
		PaymentHandler: paymentHandler,
		HistoryHandler: historyHandler,
		NavHandler:     navHandler,
		PlaceHandler:   placeHandler,
		RedisClient:    redisClient,
		NewRelicApp:    nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
