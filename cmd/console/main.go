package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/Behnamfe76/directory-console/internal/api/http"
	"github.com/Behnamfe76/directory-console/internal/api/http/handlers"
	"github.com/Behnamfe76/directory-console/internal/auth"
	"github.com/Behnamfe76/directory-console/internal/config"
	"github.com/Behnamfe76/directory-console/internal/console"
	"github.com/Behnamfe76/directory-console/internal/imagestore"
	"github.com/Behnamfe76/directory-console/internal/observability"
	"github.com/Behnamfe76/directory-console/internal/persistence"
	"github.com/Behnamfe76/directory-console/internal/repository"
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

	metrics := observability.NewMetrics()

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close() //nolint:errcheck

	var revocations auth.RevocationList = auth.NewMemoryRevocations()
	if redis != nil {
		revocations = auth.NewRedisRevocations(redis.Client)
	}
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, 0)
	gate := auth.NewGate(tokens, revocations, logger)

	client := repository.NewClient(repository.ClientConfig{
		BaseURL:         cfg.API.BaseURL,
		Timeout:         cfg.API.Timeout(),
		MaxConnsPerHost: cfg.API.MaxConnsPerHost,
	}, logger, metrics)
	registry := console.NewRegistry(console.Dependencies{
		Client:      client,
		Logger:      logger,
		Metrics:     metrics,
		PageSize:    cfg.Console.PageSize,
		IdleTimeout: cfg.Console.IdleTimeout(),
	})
	defer registry.Close()
	go registry.Run(ctx, cfg.Console.SweepInterval())

	images, err := imagestore.Open(ctx, cfg.Images)
	if err != nil {
		logger.Fatal("failed to open image store", zap.Error(err))
	}
	uploader := imagestore.NewUploader(images, cfg.Images.MaxBytes, cfg.Images.PublicPrefix, logger)

	app := httptransport.NewApp(cfg.App.Name, int(cfg.Images.MaxBytes)+1<<20)
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	var health handlers.Pinger
	if redis != nil {
		health = redis
	}
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:      handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, health),
		Session:     handlers.NewSessionHandler(registry, gate, logger),
		Alert:       handlers.NewAlertHandler(registry),
		Departments: handlers.NewDepartmentsHandler(registry),
		Employees:   handlers.NewEmployeesHandler(registry),
		Images:      handlers.NewImageHandler(uploader),
		Metrics:     metrics,
		Gate:        gate.Handle,
	})

	go func() {
		logger.Info("console listening",
			zap.String("addr", cfg.App.Addr()),
			zap.String("records_api", cfg.API.BaseURL),
			zap.String("image_driver", string(images.Driver())),
		)
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)
	cancel()

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
