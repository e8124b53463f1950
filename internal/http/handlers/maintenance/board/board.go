// Package board serves the manager's maintenance dashboard.
package board

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/magabrotheeeer/tenant-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/tenant-portal/internal/http/response"
	"github.com/magabrotheeeer/tenant-portal/internal/lib/sl"
	views "github.com/magabrotheeeer/tenant-portal/internal/maintenance"
	maintenanceservice "github.com/magabrotheeeer/tenant-portal/internal/services/maintenance"
)

// Service builds the dashboard.
type Service interface {
	ManagerBoard(ctx context.Context, managerID string, q views.Query) (*maintenanceservice.Board, error)
}

// Handler handles GET /maintenance.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New returns a board Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Maintenance dashboard
// @Description Open and closed requests of the manager's properties with summary counts.
// @Tags Maintenance
// @Produce json
// @Security BearerAuth
// @Param search query string false "Matches title, description, tenant, property and unit"
// @Param priority query string false "all, low, medium, high or emergency"
// @Param sort query string false "created_at, title, priority, status, property or tenant"
// @Param direction query string false "asc or desc"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /maintenance [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.maintenance.board"
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

	values := r.URL.Query()
	q := views.Query{
		Search:    values.Get("search"),
		Priority:  values.Get("priority"),
		Sort:      views.SortField(values.Get("sort")),
		Direction: views.Direction(values.Get("direction")),
	}
	if err := h.validate.Struct(q); err != nil {
		log.Warn("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	b, err := h.service.ManagerBoard(r.Context(), managerID, q)
	if err != nil {
		log.Error("failed to build board", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	render.JSON(w, r, response.OKWithData(b))
}
