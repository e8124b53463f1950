// Package portal wires the tenant portal HTTP API.
package portal

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/tenant-portal/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/tenant-portal/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/tenant-portal/internal/http/handlers/health"
	"github.com/magabrotheeeer/tenant-portal/internal/http/handlers/lease"
	"github.com/magabrotheeeer/tenant-portal/internal/http/handlers/maintenance/board"
	maintenancecreate "github.com/magabrotheeeer/tenant-portal/internal/http/handlers/maintenance/create"
	maintenancelist "github.com/magabrotheeeer/tenant-portal/internal/http/handlers/maintenance/list"
	maintenancestatus "github.com/magabrotheeeer/tenant-portal/internal/http/handlers/maintenance/status"
	"github.com/magabrotheeeer/tenant-portal/internal/http/handlers/maintenance/summary"
	"github.com/magabrotheeeer/tenant-portal/internal/http/handlers/payment/paymentcreate"
	"github.com/magabrotheeeer/tenant-portal/internal/http/handlers/payment/paymenthistory"
	"github.com/magabrotheeeer/tenant-portal/internal/http/handlers/payment/paymentoverview"
	"github.com/magabrotheeeer/tenant-portal/internal/http/handlers/payment/paymentschedule"
	"github.com/magabrotheeeer/tenant-portal/internal/http/handlers/payment/paymentwebhook"
	propertycreate "github.com/magabrotheeeer/tenant-portal/internal/http/handlers/property/create"
	propertylist "github.com/magabrotheeeer/tenant-portal/internal/http/handlers/property/list"
	"github.com/magabrotheeeer/tenant-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/tenant-portal/internal/lib/jwt"
	"github.com/magabrotheeeer/tenant-portal/internal/metrics"
	"github.com/magabrotheeeer/tenant-portal/internal/models"
	"github.com/magabrotheeeer/tenant-portal/internal/services/auth"
	"github.com/magabrotheeeer/tenant-portal/internal/services/leasing"
	maintenanceservice "github.com/magabrotheeeer/tenant-portal/internal/services/maintenance"
	"github.com/magabrotheeeer/tenant-portal/internal/services/payments"
)

// Deps are the collaborators of the HTTP routes.
type Deps struct {
	Logger      *slog.Logger
	DB          health.Pinger
	JWT         jwt.Maker
	Metrics     *metrics.HTTPMetrics
	Auth        *auth.Service
	Payments    *payments.Service
	Maintenance *maintenanceservice.Service
	Leasing     *leasing.Service
	RateLimit   float64
	RateBurst   int
	Now         func() time.Time
	// WebhookSecret signs payment provider notifications.
	WebhookSecret string
}

// RegisterRoutes mounts the API under /api/v1 plus /metrics and /docs.
func RegisterRoutes(r chi.Router, d Deps) {
	log := d.Logger
	now := d.Now
	if now == nil {
		now = time.Now
	}

	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
	)
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(log, d.RateLimit, d.RateBurst))

		r.Post("/register", register.New(log, d.Auth).ServeHTTP)
		r.Post("/login", login.New(log, d.Auth).ServeHTTP)
		r.Get("/health", health.New(log, d.DB).ServeHTTP)
		r.Post("/webhooks/payments", paymentwebhook.New(log, d.Payments, d.WebhookSecret).ServeHTTP)

		createRequest := maintenancecreate.New(log, d.Maintenance)

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(d.JWT, log))
			r.Use(middlewarectx.RequireUserType(log, models.UserTenant))

			r.Get("/tenant/payments", paymenthistory.New(log, d.Payments).ServeHTTP)
			r.Post("/tenant/payments", paymentcreate.New(log, d.Payments, now).ServeHTTP)
			r.Get("/tenant/payments/schedule", paymentschedule.New(log, d.Payments, now).ServeHTTP)
			r.Get("/tenant/payments/overview", paymentoverview.New(log, d.Payments, now).ServeHTTP)
			r.Get("/tenant/maintenance", maintenancelist.New(log, d.Maintenance).ServeHTTP)
			r.Post("/tenant/maintenance", createRequest.ServeHTTP)
		})

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(d.JWT, log))
			r.Use(middlewarectx.RequireUserType(log, models.UserManager))

			r.Get("/maintenance", board.New(log, d.Maintenance).ServeHTTP)
			r.Post("/maintenance", createRequest.ServeHTTP)
			r.Get("/maintenance/summary", summary.New(log, d.Maintenance).ServeHTTP)
			r.Patch("/maintenance/{id}/status", maintenancestatus.New(log, d.Maintenance).ServeHTTP)
			r.Get("/properties", propertylist.New(log, d.Leasing).ServeHTTP)
			r.Post("/properties", propertycreate.New(log, d.Leasing).ServeHTTP)
			r.Put("/tenants/{id}/lease", lease.New(log, d.Leasing).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})
}
