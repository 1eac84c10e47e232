package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/angelmondragon/droptracker-backend/api/routes"
	"github.com/angelmondragon/droptracker-backend/internal/auth"
	"github.com/angelmondragon/droptracker-backend/internal/catalog"
	"github.com/angelmondragon/droptracker-backend/internal/ledger"
	"github.com/angelmondragon/droptracker-backend/internal/reports"
	"github.com/angelmondragon/droptracker-backend/internal/users"
	"github.com/angelmondragon/droptracker-backend/pkg/config"
	"github.com/angelmondragon/droptracker-backend/pkg/db"
	"github.com/angelmondragon/droptracker-backend/pkg/logger"
	"github.com/angelmondragon/droptracker-backend/pkg/metrics"
	"github.com/angelmondragon/droptracker-backend/pkg/migrate"
	"github.com/angelmondragon/droptracker-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Format:      cfg.App.LogOutputFormat(),
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, dbClient.Close()) }()

	if err := migrate.MaybeRun(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	userRepo := users.NewRepository(dbClient.DB())
	itemRepo := catalog.NewRepository(dbClient.DB())

	if err := seed(ctx, cfg, logg, dbClient, userRepo, itemRepo); err != nil {
		return err
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
		defer func() { err = multierr.Append(err, redisClient.Close()) }()
	} else {
		logg.Info(ctx, "redis not configured, login rate limiting disabled")
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
		Logger:         logg,
	})
	if err != nil {
		return err
	}

	catalogService, err := catalog.NewService(itemRepo)
	if err != nil {
		return err
	}

	ledgerRepo := ledger.NewRepository(dbClient.DB())
	ledgerService, err := ledger.NewService(ledger.ServiceParams{
		Repo:    ledgerRepo,
		Catalog: itemRepo,
	})
	if err != nil {
		return err
	}

	loc, err := cfg.Reports.Location()
	if err != nil {
		return err
	}
	reportsService, err := reports.NewService(reports.ServiceParams{
		Totals:        reports.NewRepository(dbClient.DB()),
		Entries:       ledgerRepo,
		Location:      loc,
		StrictPeriod:  cfg.Reports.StrictPeriod,
		RecentEntries: cfg.Reports.RecentEntries,
	})
	if err != nil {
		return err
	}

	var httpMetrics *metrics.HTTPMetrics
	if cfg.Metrics.Enabled {
		httpMetrics = metrics.NewHTTPMetrics()
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			httpMetrics,
			authService,
			catalogService,
			ledgerService,
			reportsService,
		),
	}

	logCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(logCtx, "starting api server")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logg.Info(logCtx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// seed provisions the admin login and the default catalog in one transaction.
func seed(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client, userRepo *users.Repository, itemRepo *catalog.Repository) error {
	return client.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := auth.EnsureAdmin(ctx, userRepo.WithTx(tx), cfg.Admin, cfg.Password, logg); err != nil {
			return err
		}
		if !cfg.Catalog.Seed {
			return nil
		}
		inserted, err := catalog.Seed(ctx, itemRepo.WithTx(tx), catalog.PrimalBagItems)
		if err != nil {
			return err
		}
		if inserted > 0 {
			logg.Info(logg.WithField(ctx, "items", inserted), "catalog.seeded")
		}
		return nil
	})
}
