// Package paymentoverview serves the summary above the payment history.
package paymentoverview

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/tenant-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/tenant-portal/internal/http/response"
	"github.com/magabrotheeeer/tenant-portal/internal/lib/sl"
	"github.com/magabrotheeeer/tenant-portal/internal/services/payments"
	"github.com/magabrotheeeer/tenant-portal/internal/storage"
)

// Service builds the overview.
type Service interface {
	Overview(ctx context.Context, tenantID string, today time.Time) (*payments.Overview, error)
}

// Handler handles GET /tenant/payments/overview.
type Handler struct {
	log     *slog.Logger
	service Service
	now     func() time.Time
}

// New returns an overview Handler reading the date from now.
func New(log *slog.Logger, service Service, now func() time.Time) *Handler {
	return &Handler{
		log:     log,
		service: service,
		now:     now,
	}
}

// ServeHTTP godoc
// @Summary Payment overview
// @Description Rent, balance, suggested amount, late fee, upcoming dues and the default history window.
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /tenant/payments/overview [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.overview"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	tenantID, ok := middlewarectx.UserIDFrom(r.Context())
	if !ok {
		log.Error("user id not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	overview, err := h.service.Overview(r.Context(), tenantID, h.now())
	if errors.Is(err, storage.ErrNotFound) {
		log.Warn("profile not found", slog.String("tenant_id", tenantID))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("profile not found"))
		return
	}
	if errors.Is(err, payments.ErrNotTenant) {
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, response.Error("access denied"))
		return
	}
	if err != nil {
		log.Error("failed to build overview", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	render.JSON(w, r, response.OKWithData(overview))
}
