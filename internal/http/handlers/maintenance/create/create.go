// Package create files a maintenance request. Tenants file for their own unit;
// managers file for any of their properties.
package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/magabrotheeeer/tenant-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/tenant-portal/internal/http/response"
	"github.com/magabrotheeeer/tenant-portal/internal/lib/sl"
	"github.com/magabrotheeeer/tenant-portal/internal/models"
	maintenanceservice "github.com/magabrotheeeer/tenant-portal/internal/services/maintenance"
)

// Service creates requests.
type Service interface {
	CreateByTenant(ctx context.Context, tenantID string, req models.DummyMaintenanceRequest) (string, error)
	CreateByManager(ctx context.Context, managerID string, req models.DummyMaintenanceRequest) (string, error)
}

// Handler handles POST /tenant/maintenance and POST /maintenance.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New returns a create Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary File a maintenance request
// @Tags Maintenance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.DummyMaintenanceRequest true "Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /maintenance [post]
// @Router /tenant/maintenance [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.maintenance.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFrom(r.Context())
	userType, typed := middlewarectx.UserTypeFrom(r.Context())
	if !ok || !typed {
		log.Error("user identification missing")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	var req models.DummyMaintenanceRequest
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

	var (
		id  string
		err error
	)
	if userType == models.UserManager {
		id, err = h.service.CreateByManager(r.Context(), userID, req)
	} else {
		req.TenantID = ""
		id, err = h.service.CreateByTenant(r.Context(), userID, req)
	}
	switch {
	case errors.Is(err, maintenanceservice.ErrForbidden):
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, response.Error("property is not accessible"))
		return
	case errors.Is(err, maintenanceservice.ErrNoUnit):
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, response.Error("no active lease"))
		return
	case err != nil:
		log.Error("failed to create request", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("maintenance request created", slog.String("id", id))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id": id,
	}))
}
