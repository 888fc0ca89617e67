package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	httptransport "github.com/pinktech/kounty-api/internal/api/http"
	"github.com/pinktech/kounty-api/internal/api/http/handlers"
	"github.com/pinktech/kounty-api/internal/auth"
	"github.com/pinktech/kounty-api/internal/cache"
	"github.com/pinktech/kounty-api/internal/cognito"
	"github.com/pinktech/kounty-api/internal/config"
	"github.com/pinktech/kounty-api/internal/events"
	"github.com/pinktech/kounty-api/internal/observability"
	"github.com/pinktech/kounty-api/internal/persistence"
	"github.com/pinktech/kounty-api/internal/repository"
	"github.com/pinktech/kounty-api/internal/service"
	"github.com/pinktech/kounty-api/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	verifier, err := cognito.NewClient(ctx, cfg.Cognito)
	if err != nil {
		logger.Fatal("failed to init identity provider client", zap.Error(err))
	}

	decoder, err := cognito.NewTokenDecoder(ctx, cfg.Cognito)
	if err != nil {
		logger.Fatal("failed to init token decoder", zap.Error(err))
	}

	cipher, err := service.NewTokenCipher(cfg.Security.CredentialEncryptionKey)
	if err != nil {
		logger.Fatal("failed to init credential cipher", zap.Error(err))
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	datasourceRepo := repository.NewDatasourceRepository(pool)
	credentialRepo := repository.NewCredentialRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	notifications := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notifications)

	sessionStore := cache.NewRedisStore(redis.Client, cfg.Redis.SessionTTL())
	authenticator := auth.NewAuthenticator(decoder, userRepo, sessionStore, logger, metrics)
	authMiddleware := auth.NewMiddleware(authenticator)

	authService := service.NewAuthService(verifier, userRepo, dispatcher, logger, metrics)
	credentialService := service.NewCredentialService(credentialRepo, datasourceRepo, cipher, dispatcher)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Datasources:    handlers.NewDatasourcesHandler(datasourceRepo),
		Credentials:    handlers.NewCredentialsHandler(credentialService),
		APIKey:         cfg.Security.APIKey,
		AuthMiddleware: authMiddleware,
		Registry:       registry,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
