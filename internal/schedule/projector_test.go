package schedule

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/tenant-portal/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

func lease(start, end time.Time, rent int64) models.Lease {
	return models.Lease{
		Start: ptr(start),
		End:   ptr(end),
		Rent:  ptr(decimal.NewFromInt(rent)),
	}
}

func payment(d string, status models.PaymentStatus) models.PaymentRecord {
	return models.PaymentRecord{
		ID:     "p-" + d,
		Date:   d,
		Amount: decimal.NewFromInt(1500),
		Method: "card",
		Status: status,
	}
}

func TestProject_ExampleScenario(t *testing.T) {
	got := Project(
		date(2024, 3, 3),
		lease(date(2024, 1, 1), date(2024, 5, 31), 1500),
		[]models.PaymentRecord{payment("2024-03-15", models.PaymentCompleted)},
		DefaultHorizon,
	)

	require.Len(t, got, 3)
	want := []struct {
		date   time.Time
		status models.ProjectionStatus
	}{
		{date(2024, 3, 1), models.ProjectionPaid},
		{date(2024, 4, 1), models.ProjectionUpcoming},
		{date(2024, 5, 1), models.ProjectionUpcoming},
	}
	for i, w := range want {
		assert.True(t, got[i].Date.Equal(w.date), "due %d: got %v, want %v", i, got[i].Date, w.date)
		assert.Equal(t, w.status, got[i].Status)
		assert.True(t, got[i].Amount.Equal(decimal.NewFromInt(1500)))
	}
}

func TestProject_MissingLeaseContext(t *testing.T) {
	payments := []models.PaymentRecord{payment("2024-03-15", models.PaymentCompleted)}
	full := lease(date(2024, 1, 1), date(2025, 1, 1), 1500)

	tests := []struct {
		name  string
		lease models.Lease
	}{
		{name: "nothing set", lease: models.Lease{}},
		{name: "no start", lease: models.Lease{End: full.End, Rent: full.Rent}},
		{name: "no end", lease: models.Lease{Start: full.Start, Rent: full.Rent}},
		{name: "no rent", lease: models.Lease{Start: full.Start, End: full.End}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Project(date(2024, 3, 3), tt.lease, payments, DefaultHorizon)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestProject_HorizonCap(t *testing.T) {
	l := lease(date(2024, 1, 1), date(2026, 1, 1), 1200)

	for _, horizon := range []int{1, 3, 6, 12} {
		got := Project(date(2024, 2, 10), l, nil, horizon)
		assert.Len(t, got, horizon, "horizon %d", horizon)
	}
}

func TestProject_NonPositiveHorizon(t *testing.T) {
	l := lease(date(2024, 1, 1), date(2026, 1, 1), 1200)

	assert.Empty(t, Project(date(2024, 2, 10), l, nil, 0))
	assert.Empty(t, Project(date(2024, 2, 10), l, nil, -2))
}

func TestProject_LeaseEndTruncation(t *testing.T) {
	tests := []struct {
		name     string
		today    time.Time
		leaseEnd time.Time
		wantLen  int
	}{
		{name: "end between first and second due", today: date(2024, 3, 3), leaseEnd: date(2024, 3, 31), wantLen: 1},
		{name: "end on second due date is inclusive", today: date(2024, 3, 3), leaseEnd: date(2024, 4, 1), wantLen: 2},
		{name: "end on anchor", today: date(2024, 3, 3), leaseEnd: date(2024, 3, 1), wantLen: 1},
		{name: "end before anchor", today: date(2024, 3, 10), leaseEnd: date(2024, 3, 31), wantLen: 0},
		{name: "lease already over", today: date(2024, 8, 1), leaseEnd: date(2024, 5, 31), wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Project(tt.today, lease(date(2024, 1, 1), tt.leaseEnd, 900), nil, DefaultHorizon)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestProject_LeaseEndWithTimeOfDay(t *testing.T) {
	end := time.Date(2024, 4, 1, 0, 0, 0, 0, time.FixedZone("PST", -8*3600))
	l := models.Lease{Start: ptr(date(2024, 1, 1)), End: &end, Rent: ptr(decimal.NewFromInt(900))}

	got := Project(date(2024, 3, 3), l, nil, DefaultHorizon)
	assert.Len(t, got, 2)
}

func TestProject_StartAfterEnd(t *testing.T) {
	got := Project(date(2024, 3, 3), lease(date(2024, 6, 1), date(2024, 5, 31), 1500), nil, DefaultHorizon)
	assert.Empty(t, got)
}

func TestProject_NegativeRent(t *testing.T) {
	got := Project(date(2024, 3, 3), lease(date(2024, 1, 1), date(2024, 12, 31), -1), nil, DefaultHorizon)
	assert.Empty(t, got)
}

func TestProject_ZeroRent(t *testing.T) {
	got := Project(date(2024, 3, 3), lease(date(2024, 1, 1), date(2024, 12, 31), 0), nil, 1)
	require.Len(t, got, 1)
	assert.True(t, got[0].Amount.IsZero())
}

func TestAnchor_GracePeriod(t *testing.T) {
	tests := []struct {
		today time.Time
		want  time.Time
	}{
		{today: date(2024, 3, 1), want: date(2024, 3, 1)},
		{today: date(2024, 3, 3), want: date(2024, 3, 1)},
		{today: date(2024, 3, 5), want: date(2024, 3, 1)},
		{today: date(2024, 3, 6), want: date(2024, 4, 1)},
		{today: date(2024, 3, 7), want: date(2024, 4, 1)},
		{today: date(2024, 12, 20), want: date(2025, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.today.Format("2006-01-02"), func(t *testing.T) {
			assert.True(t, Anchor(tt.today).Equal(tt.want), "got %v, want %v", Anchor(tt.today), tt.want)
		})
	}
}

func TestProject_PaidDetection(t *testing.T) {
	l := lease(date(2024, 1, 1), date(2024, 12, 31), 1500)

	tests := []struct {
		name     string
		payments []models.PaymentRecord
		want     models.ProjectionStatus
	}{
		{name: "completed in month", payments: []models.PaymentRecord{payment("2024-03-28", models.PaymentCompleted)}, want: models.ProjectionPaid},
		{name: "completed timestamp in month", payments: []models.PaymentRecord{payment("2024-03-02T10:15:00Z", models.PaymentCompleted)}, want: models.ProjectionPaid},
		{name: "pending in month", payments: []models.PaymentRecord{payment("2024-03-10", models.PaymentPending)}, want: models.ProjectionUpcoming},
		{name: "failed in month", payments: []models.PaymentRecord{payment("2024-03-10", models.PaymentFailed)}, want: models.ProjectionUpcoming},
		{name: "completed previous month", payments: []models.PaymentRecord{payment("2024-02-29", models.PaymentCompleted)}, want: models.ProjectionUpcoming},
		{name: "completed same month other year", payments: []models.PaymentRecord{payment("2023-03-10", models.PaymentCompleted)}, want: models.ProjectionUpcoming},
		{name: "malformed date", payments: []models.PaymentRecord{payment("March 10th", models.PaymentCompleted)}, want: models.ProjectionUpcoming},
		{
			name: "several completed payments in month",
			payments: []models.PaymentRecord{
				payment("2024-03-02", models.PaymentCompleted),
				payment("2024-03-20", models.PaymentCompleted),
			},
			want: models.ProjectionPaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Project(date(2024, 3, 3), l, tt.payments, 1)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Status)
		})
	}
}

// The month match ignores the amount; a token payment marks the month paid.
func TestProject_PartialPaymentStillCountsAsPaid(t *testing.T) {
	p := payment("2024-03-10", models.PaymentCompleted)
	p.Amount = decimal.NewFromInt(1)

	got := Project(date(2024, 3, 3), lease(date(2024, 1, 1), date(2024, 12, 31), 1500), []models.PaymentRecord{p}, 1)
	require.Len(t, got, 1)
	assert.Equal(t, models.ProjectionPaid, got[0].Status)
}

func TestProject_DoesNotMutateInput(t *testing.T) {
	payments := []models.PaymentRecord{
		payment("2024-03-10", models.PaymentCompleted),
		payment("bad", models.PaymentCompleted),
	}
	before := append([]models.PaymentRecord(nil), payments...)

	Project(date(2024, 3, 3), lease(date(2024, 1, 1), date(2024, 12, 31), 1500), payments, DefaultHorizon)
	assert.Equal(t, before, payments)
}

func TestProject_ConcurrentCalls(t *testing.T) {
	l := lease(date(2024, 1, 1), date(2024, 12, 31), 1500)
	payments := []models.PaymentRecord{payment("2024-04-10", models.PaymentCompleted)}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := Project(date(2024, 3, 3), l, payments, DefaultHorizon)
			assert.Len(t, got, 3)
			assert.Equal(t, models.ProjectionPaid, got[1].Status)
		}()
	}
	wg.Wait()
}

func TestLateFee(t *testing.T) {
	rent := decimal.NewFromInt(1500)
	due := date(2024, 3, 1)

	tests := []struct {
		name   string
		paidOn time.Time
		want   decimal.Decimal
	}{
		{name: "on due date", paidOn: date(2024, 3, 1), want: decimal.Zero},
		{name: "last grace day", paidOn: date(2024, 3, 5), want: decimal.Zero},
		{name: "after grace", paidOn: date(2024, 3, 6), want: decimal.NewFromInt(75)},
		{name: "next month", paidOn: date(2024, 4, 2), want: decimal.NewFromInt(75)},
		{name: "paid early", paidOn: date(2024, 2, 20), want: decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LateFee(rent, due, tt.paidOn)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}
