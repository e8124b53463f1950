// Package lease puts a tenant on a lease in one of the manager's properties.
package lease

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/magabrotheeeer/tenant-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/tenant-portal/internal/http/response"
	"github.com/magabrotheeeer/tenant-portal/internal/lib/sl"
	"github.com/magabrotheeeer/tenant-portal/internal/models"
	"github.com/magabrotheeeer/tenant-portal/internal/services/leasing"
	"github.com/magabrotheeeer/tenant-portal/internal/storage"
)

// Service assigns leases.
type Service interface {
	AssignLease(ctx context.Context, managerID, tenantID string, req models.DummyLease) error
}

// Handler handles PUT /tenants/{id}/lease.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New returns a lease Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Assign a lease
// @Description Sets unit, rent, deposit and lease dates on a tenant account.
// @Tags Properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tenant id"
// @Param request body models.DummyLease true "Lease terms"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /tenants/{id}/lease [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.lease.assign"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	managerID, ok := middlewarectx.UserIDFrom(r.Context())
	if !ok {
		log.Error("user id not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}
	tenantID := chi.URLParam(r, "id")

	var req models.DummyLease
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	err := h.service.AssignLease(r.Context(), managerID, tenantID, req)
	switch {
	case errors.Is(err, leasing.ErrInvalidTerms):
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error(err.Error()))
		return
	case errors.Is(err, storage.ErrNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("tenant or property not found"))
		return
	case err != nil:
		log.Error("failed to assign lease", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("lease assigned", slog.String("tenant_id", tenantID))
	render.JSON(w, r, response.OK())
}
