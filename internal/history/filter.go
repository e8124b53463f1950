// Package history narrows a tenant's payment history to a date range.
package history

import (
	"time"

	"github.com/magabrotheeeer/tenant-portal/internal/lib/month"
	"github.com/magabrotheeeer/tenant-portal/internal/models"
)

// LookbackMonths is how many months before the current one the default
// history window reaches.
const LookbackMonths = 3

// Filter returns the payments whose date lies within interval, compared by
// calendar day with both ends inclusive. A nil interval or a nil From returns
// payments unchanged; a nil To keeps everything on or after From. Records with
// unparseable dates are dropped whenever a range applies. The input slice is
// never modified.
func Filter(payments []models.PaymentRecord, interval *models.DateRange) []models.PaymentRecord {
	if interval == nil || interval.From == nil {
		return payments
	}

	from := models.Day(*interval.From)
	var to time.Time
	bounded := interval.To != nil
	if bounded {
		to = models.Day(*interval.To)
	}

	filtered := []models.PaymentRecord{}
	if bounded && from.After(to) {
		return filtered
	}

	for _, p := range payments {
		d, ok := models.ParseDate(p.Date)
		if !ok {
			continue
		}
		d = models.Day(d)
		if d.Before(from) {
			continue
		}
		if bounded && d.After(to) {
			continue
		}
		filtered = append(filtered, p)
	}

	return filtered
}

// DefaultRange is the window shown before the tenant picks one: from the
// first day of the month LookbackMonths back through the last day of today's
// month.
func DefaultRange(today time.Time) models.DateRange {
	from := month.FirstOf(today).AddDate(0, -LookbackMonths, 0)
	to := month.Next(today).AddDate(0, 0, -1)
	return models.DateRange{From: &from, To: &to}
}

// ParseRange converts query values in 2006-01-02 form into a DateRange.
// Empty values leave the matching bound unset; an empty from yields nil.
func ParseRange(r models.DummyDateRange) (*models.DateRange, error) {
	if r.From == "" {
		return nil, nil
	}
	from, err := time.Parse(time.DateOnly, r.From)
	if err != nil {
		return nil, err
	}
	rng := &models.DateRange{From: &from}
	if r.To != "" {
		to, err := time.Parse(time.DateOnly, r.To)
		if err != nil {
			return nil, err
		}
		rng.To = &to
	}
	return rng, nil
}
