package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/finderapp/finder-service/internal/api/http"
	"github.com/finderapp/finder-service/internal/api/http/handlers"
	"github.com/finderapp/finder-service/internal/auth"
	"github.com/finderapp/finder-service/internal/config"
	"github.com/finderapp/finder-service/internal/events"
	"github.com/finderapp/finder-service/internal/observability"
	"github.com/finderapp/finder-service/internal/persistence"
	"github.com/finderapp/finder-service/internal/repository"
	"github.com/finderapp/finder-service/internal/service"
	"github.com/finderapp/finder-service/internal/worker"
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

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	personRepo := repository.NewPersonRepository(pool)
	subscriptionRepo := repository.NewSubscriptionRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, userRepo, logger)
	personService := service.NewPersonService(personRepo, dispatcher)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, personRepo)
	notificationService := service.NewNotificationService(
		dispatcher, redis, subscriptionRepo, notificationRepo, logger, cfg.Notification.QueueKey)
	notificationService.RegisterHandlers()

	notificationWorker := worker.NewNotificationWorker(redis, notificationService, logger)
	go notificationWorker.Run(ctx)

	sessionGate := auth.NewSessionGate(authService.TokenManager(), logger)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:        handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:          handlers.NewAuthHandler(authService, cfg.App.Production()),
		Persons:       handlers.NewPersonsHandler(personService, authService),
		Subscriptions: handlers.NewSubscriptionsHandler(subscriptionService),
		Notifications: handlers.NewNotificationsHandler(notificationService),
		SessionGate:   sessionGate,
		WebDir:        cfg.App.WebDir,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)
	cancel()

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
