package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/droptracker-backend/api/controllers"
	"github.com/angelmondragon/droptracker-backend/api/middleware"
	"github.com/angelmondragon/droptracker-backend/internal/auth"
	"github.com/angelmondragon/droptracker-backend/internal/catalog"
	"github.com/angelmondragon/droptracker-backend/internal/ledger"
	"github.com/angelmondragon/droptracker-backend/internal/reports"
	"github.com/angelmondragon/droptracker-backend/pkg/config"
	"github.com/angelmondragon/droptracker-backend/pkg/db"
	"github.com/angelmondragon/droptracker-backend/pkg/logger"
	"github.com/angelmondragon/droptracker-backend/pkg/metrics"
	"github.com/angelmondragon/droptracker-backend/pkg/redis"
)

// NewRouter wires every HTTP route. redisClient and httpMetrics are optional.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	authService auth.Service,
	catalogService catalog.Service,
	ledgerService ledger.Service,
	reportsService reports.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)
	if httpMetrics != nil {
		r.Use(middleware.Metrics(httpMetrics))
	}
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	deps := map[string]controllers.Pinger{"db": dbP}
	loginLimit := func(next http.Handler) http.Handler { return next }
	if redisClient != nil {
		deps["redis"] = redisClient
		loginPolicy := middleware.NewAuthRateLimitPolicy(
			"login",
			cfg.AuthRateLimit.LoginWindow,
			cfg.AuthRateLimit.LoginIPLimit,
			cfg.AuthRateLimit.LoginUsernameLimit,
		)
		loginLimit = middleware.AuthRateLimit(loginPolicy, redisClient, logg)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps))
	})

	if httpMetrics != nil && cfg.Metrics.Enabled {
		path := cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		r.Method(http.MethodGet, path, httpMetrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.With(loginLimit).Post("/auth/login", controllers.AuthLogin(authService, logg))
		r.Get("/items", controllers.CatalogList(catalogService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(authService, logg))

			r.Get("/auth/verify", controllers.AuthVerify(logg))

			r.Route("/inventory", func(r chi.Router) {
				r.Get("/", controllers.InventoryList(ledgerService, logg))
				r.Post("/", controllers.InventoryAdd(ledgerService, logg))
				r.Get("/{id}", controllers.InventoryGet(ledgerService, logg))
				r.Put("/{id}/sell", controllers.InventorySell(ledgerService, logg))
				r.Delete("/{id}", controllers.InventoryDelete(ledgerService, logg))
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/dashboard", controllers.ReportsDashboard(reportsService, logg))
				r.Get("/period", controllers.ReportsPeriod(reportsService, logg))
			})
		})
	})

	return r
}
