// Package models contains the domain structures of the tenant portal: payment
// records, lease terms, projected rent dues, user profiles and maintenance
// requests, plus the request shapes accepted from JSON before validation.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the lifecycle state assigned by the payment provider.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// PaymentRecord is a single recorded payment. Date and Amount are never
// changed after the record is stored; corrections are new records.
type PaymentRecord struct {
	ID       string          `json:"id"`
	TenantID string          `json:"tenant_id"`
	Date     string          `json:"date"` // as supplied, normally 2006-01-02
	Amount   decimal.Decimal `json:"amount"`
	Method   string          `json:"method"`
	Status   PaymentStatus   `json:"status"`
	Notes    string          `json:"notes,omitempty"`
}

// DummyPaymentRequest is the JSON body of a tenant payment before validation.
type DummyPaymentRequest struct {
	Amount string `json:"amount" validate:"required,numeric"`
	Method string `json:"method" validate:"required,oneof=card e-transfer check bank-draft"`
	Notes  string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

var recordDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
}

// ParseDate parses a record date. The second result is false when the value
// matches none of the accepted layouts.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range recordDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Day truncates t to midnight UTC of its own calendar day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
