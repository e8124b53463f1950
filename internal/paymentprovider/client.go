// Package paymentprovider is the HTTP client of the card processor that
// charges tenant rent payments.
package paymentprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/tenant-portal/internal/config"
	"github.com/magabrotheeeer/tenant-portal/internal/models"
)

// Currency of every charge.
const Currency = "USD"

// ErrUnexpectedStatus is returned for non-2xx provider responses.
var ErrUnexpectedStatus = errors.New("unexpected provider status")

// Client talks to the provider with HTTP basic auth.
type Client struct {
	shopID     string
	secretKey  string
	apiURL     string
	httpClient *http.Client
}

// NewClient returns a client for cfg.
func NewClient(cfg config.PaymentProvider) *Client {
	return &Client{
		shopID:     cfg.ProviderShopID,
		secretKey:  cfg.ProviderSecret,
		apiURL:     cfg.ProviderURL,
		httpClient: &http.Client{Timeout: cfg.ProviderTimeout},
	}
}

// ChargeRequest describes one rent payment.
type ChargeRequest struct {
	TenantID    string
	Amount      decimal.Decimal
	Method      string
	Description string
}

// ChargeResult is the outcome of a charge with the status already mapped
// onto the ledger's statuses.
type ChargeResult struct {
	ProviderID string
	Status     models.PaymentStatus
}

// Charge creates and captures a payment.
func (c *Client) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	const op = "paymentprovider.Charge"
	resp, err := c.CreatePayment(ctx, CreatePaymentRequest{
		Amount:            Amount{Value: req.Amount.StringFixed(2), Currency: Currency},
		Capture:           true,
		PaymentMethodData: PaymentMethodData{Type: req.Method},
		Description:       req.Description,
		Metadata:          map[string]string{"tenant_id": req.TenantID},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &ChargeResult{ProviderID: resp.ID, Status: MapStatus(resp.Status)}, nil
}

// CreatePayment posts a payment with a fresh idempotence key.
func (c *Client) CreatePayment(ctx context.Context, body CreatePaymentRequest) (*CreatePaymentResponse, error) {
	const op = "paymentprovider.CreatePayment"
	req, err := c.newRequest(ctx, http.MethodPost, "/payments", body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Idempotence-Key", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%s: %w: %s %s", op, ErrUnexpectedStatus, resp.Status, bytes.TrimSpace(msg))
	}

	var paymentResp CreatePaymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&paymentResp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &paymentResp, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.shopID, c.secretKey)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// MapStatus converts a provider status to a ledger status. Unknown states
// stay pending.
func MapStatus(status string) models.PaymentStatus {
	switch status {
	case StatusSucceeded:
		return models.PaymentCompleted
	case StatusCanceled:
		return models.PaymentFailed
	default:
		return models.PaymentPending
	}
}
