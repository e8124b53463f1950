package paymentprovider

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"

	"github.com/magabrotheeeer/tenant-portal/internal/models"
)

// SignatureHeader carries the base64 HMAC-SHA256 of a notification body.
const SignatureHeader = "X-Api-Signature"

// Notification events sent by the provider.
const (
	EventPaymentSucceeded         = "payment.succeeded"
	EventPaymentCanceled          = "payment.canceled"
	EventPaymentWaitingForCapture = "payment.waiting_for_capture"
)

// Notification is the body of a provider webhook call.
type Notification struct {
	Event  string `json:"event"`
	Object struct {
		ID       string            `json:"id"`
		Status   string            `json:"status"`
		Metadata map[string]string `json:"metadata"`
	} `json:"object"`
}

// Sign returns the signature the provider sends for body.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether signature matches body under secret.
func VerifySignature(secret string, body []byte, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}
	return hmac.Equal([]byte(Sign(secret, body)), []byte(signature))
}

// FinalStatus maps a notification onto the ledger status it settles to.
// It reports false for events that leave the payment pending.
func FinalStatus(n Notification) (models.PaymentStatus, bool) {
	switch strings.ToLower(n.Event) {
	case EventPaymentSucceeded:
		return models.PaymentCompleted, true
	case EventPaymentCanceled:
		return models.PaymentFailed, true
	default:
		return "", false
	}
}
