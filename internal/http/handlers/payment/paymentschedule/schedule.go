// Package paymentschedule serves the tenant's upcoming rent due dates.
package paymentschedule

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/tenant-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/tenant-portal/internal/http/response"
	"github.com/magabrotheeeer/tenant-portal/internal/lib/sl"
	"github.com/magabrotheeeer/tenant-portal/internal/models"
	"github.com/magabrotheeeer/tenant-portal/internal/schedule"
)

// MaxHorizon caps the horizon query parameter.
const MaxHorizon = 24

// Service projects due dates.
type Service interface {
	Schedule(ctx context.Context, tenantID string, today time.Time, horizon int) ([]models.ProjectedPayment, error)
}

// Handler handles GET /tenant/payments/schedule.
type Handler struct {
	log     *slog.Logger
	service Service
	now     func() time.Time
}

// New returns a schedule Handler reading the date from now.
func New(log *slog.Logger, service Service, now func() time.Time) *Handler {
	return &Handler{
		log:     log,
		service: service,
		now:     now,
	}
}

// ServeHTTP godoc
// @Summary Upcoming rent
// @Description Projects the next due dates of the tenant's lease, each paid or upcoming.
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param horizon query int false "Number of due dates, 1-24, default 3"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /tenant/payments/schedule [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.schedule"
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

	horizon := schedule.DefaultHorizon
	if raw := r.URL.Query().Get("horizon"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxHorizon {
			log.Warn("invalid horizon", slog.String("horizon", raw))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("horizon must be an integer between 1 and 24"))
			return
		}
		horizon = n
	}

	upcoming, err := h.service.Schedule(r.Context(), tenantID, h.now(), horizon)
	if err != nil {
		log.Error("failed to project schedule", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"horizon":  horizon,
		"upcoming": upcoming,
	}))
}
