// Package paymentcreate serves the pay button: it charges the tenant and
// records the payment.
package paymentcreate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/magabrotheeeer/tenant-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/tenant-portal/internal/http/response"
	"github.com/magabrotheeeer/tenant-portal/internal/lib/sl"
	"github.com/magabrotheeeer/tenant-portal/internal/models"
	"github.com/magabrotheeeer/tenant-portal/internal/paymentprovider"
	"github.com/magabrotheeeer/tenant-portal/internal/services/payments"
)

// Service records payments.
type Service interface {
	Record(ctx context.Context, tenantID string, req models.DummyPaymentRequest, today time.Time) (*models.PaymentRecord, error)
}

// Handler handles POST /tenant/payments.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
	now      func() time.Time
}

// New returns a payment Handler reading the date from now.
func New(log *slog.Logger, service Service, now func() time.Time) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
		now:      now,
	}
}

// ServeHTTP godoc
// @Summary Make a payment
// @Description Charges the amount with the payment provider and records it dated today.
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.DummyPaymentRequest true "Payment"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /tenant/payments [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.create"
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

	var req models.DummyPaymentRequest
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

	record, err := h.service.Record(r.Context(), tenantID, req, h.now())
	switch {
	case errors.Is(err, payments.ErrInvalidAmount):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(payments.ErrInvalidAmount.Error()))
		return
	case errors.Is(err, payments.ErrNotTenant):
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, response.Error("access denied"))
		return
	case errors.Is(err, paymentprovider.ErrUnexpectedStatus):
		log.Error("payment provider rejected charge", sl.Err(err))
		render.Status(r, http.StatusBadGateway)
		render.JSON(w, r, response.Error("payment provider error"))
		return
	case err != nil:
		log.Error("failed to record payment", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("payment created", slog.String("payment_id", record.ID), slog.String("status", string(record.Status)))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKWithData(record))
}
