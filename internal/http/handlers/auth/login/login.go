// Package login serves sign-in and returns a bearer token.
package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/magabrotheeeer/tenant-portal/internal/http/response"
	"github.com/magabrotheeeer/tenant-portal/internal/lib/sl"
	"github.com/magabrotheeeer/tenant-portal/internal/models"
	"github.com/magabrotheeeer/tenant-portal/internal/services/auth"
)

// Service checks credentials.
type Service interface {
	Login(ctx context.Context, req models.DummyLogin) (string, *models.Profile, error)
}

// Handler handles POST /login.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New returns a login Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Sign in
// @Description Checks email and password and returns a JWT with the profile.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.DummyLogin true "Credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyLogin
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

	token, profile, err := h.service.Login(r.Context(), req)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		log.Warn("invalid credentials")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("invalid credentials"))
		return
	}
	if err != nil {
		log.Error("login failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("login success", slog.String("id", profile.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"token":     token,
		"user_type": profile.UserType,
		"profile":   profile,
	}))
}
