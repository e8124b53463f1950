package portal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/magabrotheeeer/tenant-portal/internal/cache"
	"github.com/magabrotheeeer/tenant-portal/internal/config"
	"github.com/magabrotheeeer/tenant-portal/internal/lib/jwt"
	"github.com/magabrotheeeer/tenant-portal/internal/lib/sl"
	"github.com/magabrotheeeer/tenant-portal/internal/metrics"
	"github.com/magabrotheeeer/tenant-portal/internal/migrations"
	"github.com/magabrotheeeer/tenant-portal/internal/paymentprovider"
	"github.com/magabrotheeeer/tenant-portal/internal/services/auth"
	"github.com/magabrotheeeer/tenant-portal/internal/services/leasing"
	maintenanceservice "github.com/magabrotheeeer/tenant-portal/internal/services/maintenance"
	"github.com/magabrotheeeer/tenant-portal/internal/services/payments"
	"github.com/magabrotheeeer/tenant-portal/internal/storage"
)

// App is the portal API process.
type App struct {
	server          *http.Server
	logger          *slog.Logger
	db              *storage.Storage
	cache           *cache.Cache
	shutdownTimeout time.Duration
}

// New connects storage and cache, applies migrations and builds the router.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "portal.New"

	db, err := storage.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	profileCache, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	provider := paymentprovider.NewClient(cfg.PaymentProvider)

	router := chi.NewRouter()
	RegisterRoutes(router, Deps{
		Logger:      logger,
		DB:          db,
		JWT:         jwtMaker,
		Metrics:     metrics.NewHTTPMetrics(prometheus.DefaultRegisterer),
		Auth:        auth.NewService(db, jwtMaker),
		Payments:    payments.NewService(db, profileCache, provider, cfg.ProfileTTL, logger),
		Maintenance: maintenanceservice.NewService(db, logger),
		Leasing:     leasing.NewService(db, profileCache, logger),
		RateLimit:   cfg.RateLimit,
		RateBurst:   cfg.RateBurst,
		Now:         time.Now,

		WebhookSecret: cfg.WebhookSecret,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:          srv,
		logger:          logger,
		db:              db,
		cache:           profileCache,
		shutdownTimeout: cfg.ShutdownTimeout,
	}, nil
}

// Run serves until ctx is done, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if err := a.cache.Close(); err != nil {
		a.logger.Error("failed to close cache", sl.Err(err))
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close storage", sl.Err(err))
	}
}
