package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	httptransport "github.com/trattoria-labs/restaurant-service/internal/api/http"
	"github.com/trattoria-labs/restaurant-service/internal/api/http/handlers"
	"github.com/trattoria-labs/restaurant-service/internal/auth"
	"github.com/trattoria-labs/restaurant-service/internal/config"
	"github.com/trattoria-labs/restaurant-service/internal/events"
	"github.com/trattoria-labs/restaurant-service/internal/observability"
	"github.com/trattoria-labs/restaurant-service/internal/persistence"
	"github.com/trattoria-labs/restaurant-service/internal/repository"
	"github.com/trattoria-labs/restaurant-service/internal/service"
	"github.com/trattoria-labs/restaurant-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.App, cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, cfg.App.Name, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), os.DirFS(cfg.Postgres.MigrationsDir), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis, err := persistence.NewRedis(ctx, cfg.Redis, logger)
	if err != nil {
		logger.Fatal("invalid redis config", zap.Error(err))
	}
	defer redis.Close()

	dispatcher := events.NewInMemoryDispatcher(logger)
	worker.StartAuditWorker(dispatcher, logger)
	if cfg.Broker.URL != "" {
		broker, err := events.DialBroker(cfg.Broker.URL, cfg.Broker.Exchange)
		if err != nil {
			logger.Warn("event broker unavailable, events stay in process", zap.Error(err))
		} else {
			defer broker.Close() //nolint:errcheck
			worker.StartBrokerForwarder(dispatcher, broker)
			logger.Info("forwarding events to broker", zap.String("exchange", cfg.Broker.Exchange))
		}
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	productRepo := repository.NewProductRepository(pool)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
	})
	userService := service.NewUserService(userRepo, authService.Hasher(), dispatcher)
	productService := service.NewProductService(productRepo, dispatcher)

	metrics := observability.NewMetrics()
	app := httptransport.NewServer(httptransport.ServerConfig{
		Name:         cfg.App.Name,
		Timeout:      cfg.App.RequestTimeout(),
		AllowOrigins: cfg.App.CORSAllowOrigins,
		Logger:       logger,
		Metrics:      metrics,
		Routes: httptransport.RouteConfig{
			Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
				"postgres": pg,
				"redis":    redis,
			}, metrics),
			Users:          handlers.NewUsersHandler(authService, userService),
			Products:       handlers.NewProductsHandler(productService),
			AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager()),
			RateLimiter:    httptransport.NewRateLimiter(cfg.RateLimit, redis.ClientHandle(), logger),
		},
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
