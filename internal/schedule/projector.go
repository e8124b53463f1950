// Package schedule projects upcoming rent due dates from lease terms and
// marks each one paid or upcoming against the tenant's payment history.
//
// Rent falls due on the first of each month. Through the fifth day of a month
// the current month's due date is still shown as the next obligation; from
// the sixth day on the projection starts with the following month.
//
// All functions are pure: "today" is always an argument, nothing is cached and
// no state is shared, so callers may use them from any goroutine.
package schedule

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/tenant-portal/internal/lib/month"
	"github.com/magabrotheeeer/tenant-portal/internal/models"
)

const (
	// DefaultHorizon is the number of due dates shown on the schedule.
	DefaultHorizon = 3
	// GraceDays is the last day of a month on which that month's rent is
	// still considered on time.
	GraceDays = 5
)

// LateFeeRate is the share of monthly rent charged after the grace window.
var LateFeeRate = decimal.NewFromFloat(0.05)

// Anchor returns the first projected due date for today.
func Anchor(today time.Time) time.Time {
	if today.Day() <= GraceDays {
		return month.FirstOf(today)
	}
	return month.Next(today)
}

// Project returns up to horizon due dates starting at Anchor(today), dropping
// those after the lease end. It returns an empty slice when the lease has no
// start, end or rent, when the start is after the end, when the rent is
// negative or when horizon is not positive.
func Project(today time.Time, lease models.Lease, payments []models.PaymentRecord, horizon int) []models.ProjectedPayment {
	upcoming := []models.ProjectedPayment{}
	if lease.Start == nil || lease.End == nil || lease.Rent == nil {
		return upcoming
	}
	if horizon <= 0 || lease.Rent.IsNegative() {
		return upcoming
	}
	end := models.Day(*lease.End)
	if models.Day(*lease.Start).After(end) {
		return upcoming
	}

	paidMonths := completedMonths(payments)

	due := Anchor(today)
	for i := 0; i < horizon; i++ {
		if due.After(end) {
			break
		}
		status := models.ProjectionUpcoming
		if paidMonths[monthKey(due)] {
			status = models.ProjectionPaid
		}
		upcoming = append(upcoming, models.ProjectedPayment{
			Date:   due,
			Amount: *lease.Rent,
			Status: status,
		})
		due = due.AddDate(0, 1, 0)
	}

	return upcoming
}

// LateFee returns the fee owed for a due date settled on paidOn: LateFeeRate
// of rent when paidOn falls after the grace window of due's month, zero
// otherwise.
func LateFee(rent decimal.Decimal, due, paidOn time.Time) decimal.Decimal {
	deadline := month.FirstOf(due).AddDate(0, 0, GraceDays-1)
	if !models.Day(paidOn).After(deadline) {
		return decimal.Zero
	}
	return rent.Mul(LateFeeRate).Round(2)
}

func completedMonths(payments []models.PaymentRecord) map[int]bool {
	months := make(map[int]bool)
	for _, p := range payments {
		if p.Status != models.PaymentCompleted {
			continue
		}
		d, ok := models.ParseDate(p.Date)
		if !ok {
			continue
		}
		months[monthKey(d)] = true
	}
	return months
}

func monthKey(t time.Time) int {
	return t.Year()*12 + int(t.Month())
}
