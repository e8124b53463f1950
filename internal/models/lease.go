package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lease holds the terms needed to project rent dues. Any field may be nil
// for a tenant without an active lease.
type Lease struct {
	Start *time.Time
	End   *time.Time
	Rent  *decimal.Decimal
}

// ProjectionStatus marks a projected due date as covered or still open.
type ProjectionStatus string

const (
	ProjectionPaid     ProjectionStatus = "paid"
	ProjectionUpcoming ProjectionStatus = "upcoming"
)

// ProjectedPayment is a derived rent due date. It is recomputed on every
// request and never stored.
type ProjectedPayment struct {
	Date   time.Time        `json:"date"`
	Amount decimal.Decimal  `json:"amount"`
	Status ProjectionStatus `json:"status"`
}

// RentReminder is published to the broker when a tenant's next due date is close.
type RentReminder struct {
	TenantID string          `json:"tenant_id"`
	Email    string          `json:"email"`
	FullName string          `json:"full_name"`
	DueDate  time.Time       `json:"due_date"`
	Amount   decimal.Decimal `json:"amount"`
}
