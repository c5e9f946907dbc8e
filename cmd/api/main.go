package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/sponsorship-portal/internal/api/http"
	"github.com/spec-kit/sponsorship-portal/internal/api/http/handlers"
	"github.com/spec-kit/sponsorship-portal/internal/auth"
	"github.com/spec-kit/sponsorship-portal/internal/config"
	"github.com/spec-kit/sponsorship-portal/internal/domain"
	"github.com/spec-kit/sponsorship-portal/internal/events"
	"github.com/spec-kit/sponsorship-portal/internal/observability"
	"github.com/spec-kit/sponsorship-portal/internal/persistence"
	"github.com/spec-kit/sponsorship-portal/internal/repository"
	"github.com/spec-kit/sponsorship-portal/internal/service"
	"github.com/spec-kit/sponsorship-portal/internal/worker"
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
	accountRepo := repository.NewAccountRepository(pool)
	tierRepo := repository.NewTierRepository(pool)
	quoteRepo := repository.NewQuoteRepository(pool)

	dispatcher := events.NewInMemoryDispatcher(logger)
	notificationService := service.NewNotificationService(logger, cfg.Notification)
	worker.StartNotificationWorker(dispatcher, notificationService)

	listingCache := persistence.NewListingCache(redis, cfg.Redis.ListingTTL())
	accountService := service.NewAccountService(cfg.Auth, accountRepo)
	tierService := service.NewTierService(tierRepo, accountRepo, listingCache)
	quoteService := service.NewQuoteService(quoteRepo, tierRepo, accountRepo, dispatcher)

	authMiddleware := auth.NewMiddleware(accountService.TokenManager())
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		VendorAccounts: handlers.NewAccountsHandler(accountService, domain.RoleVendor),
		InstAccounts:   handlers.NewAccountsHandler(accountService, domain.RoleInstitution),
		Tiers:          handlers.NewTiersHandler(tierService),
		Quotes:         handlers.NewQuotesHandler(quoteService),
		Catalog:        handlers.NewCatalogHandler(tierService),
		AuthMiddleware: authMiddleware,
		PublicDir:      cfg.App.PublicDir,
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
