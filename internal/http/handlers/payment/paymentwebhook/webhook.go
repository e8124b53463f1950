// Package paymentwebhook receives the provider's payment notifications and
// settles pending payments.
package paymentwebhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/tenant-portal/internal/http/response"
	"github.com/magabrotheeeer/tenant-portal/internal/lib/sl"
	"github.com/magabrotheeeer/tenant-portal/internal/models"
	"github.com/magabrotheeeer/tenant-portal/internal/paymentprovider"
	"github.com/magabrotheeeer/tenant-portal/internal/storage"
)

// maxBodyBytes bounds a notification body.
const maxBodyBytes = 64 << 10

// Service settles payments.
type Service interface {
	Settle(ctx context.Context, providerPaymentID string, status models.PaymentStatus) error
}

// Handler handles POST /webhooks/payments.
type Handler struct {
	log           *slog.Logger
	service       Service
	webhookSecret string
}

// New returns a webhook Handler verifying bodies with secret.
func New(log *slog.Logger, service Service, secret string) *Handler {
	return &Handler{
		log:           log,
		service:       service,
		webhookSecret: secret,
	}
}

// ServeHTTP godoc
// @Summary Payment provider notification
// @Description Settles a pending payment when the provider reports it succeeded or was canceled. The body must be signed in the X-Api-Signature header.
// @Tags Payments
// @Accept json
// @Produce json
// @Param X-Api-Signature header string true "base64 HMAC-SHA256 of the body"
// @Param request body paymentprovider.Notification true "Notification"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /webhooks/payments [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.webhook"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		log.Error("failed to read webhook body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to read body"))
		return
	}

	if !paymentprovider.VerifySignature(h.webhookSecret, body, r.Header.Get(paymentprovider.SignatureHeader)) {
		log.Warn("invalid or missing webhook signature")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("invalid signature"))
		return
	}

	var n paymentprovider.Notification
	if err := json.Unmarshal(body, &n); err != nil {
		log.Error("failed to decode webhook payload", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid payload"))
		return
	}
	if n.Object.ID == "" {
		log.Warn("webhook payload without payment id")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid payload"))
		return
	}
	log = log.With(slog.String("event", n.Event), slog.String("provider_payment_id", n.Object.ID))

	status, final := paymentprovider.FinalStatus(n)
	if !final {
		log.Info("ignored webhook event")
		render.JSON(w, r, response.OK())
		return
	}

	err = h.service.Settle(r.Context(), n.Object.ID, status)
	switch {
	case errors.Is(err, storage.ErrNotPending):
		log.Info("payment already settled")
	case errors.Is(err, storage.ErrNotFound):
		log.Warn("webhook for unknown payment")
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("payment not found"))
		return
	case err != nil:
		log.Error("failed to settle payment", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to settle payment"))
		return
	default:
		log.Info("payment settled", slog.String("status", string(status)))
	}

	render.JSON(w, r, response.OK())
}
