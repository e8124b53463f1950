package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		ok   bool
		want time.Time
	}{
		{in: "2024-03-15", ok: true, want: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{in: "2024-03-15T10:30:00Z", ok: true, want: time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{in: "2024-03-15T10:30:00.123456+02:00", ok: true},
		{in: "", ok: false},
		{in: "15/03/2024", ok: false},
		{in: "2024-02-30", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDate(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok && !tt.want.IsZero() {
				assert.True(t, got.Equal(tt.want), "got %v", got)
			}
		})
	}
}

func TestDay_KeepsWallClockDate(t *testing.T) {
	late := time.Date(2024, 3, 31, 23, 30, 0, 0, time.FixedZone("EST", -5*3600))
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), Day(late))
}

func TestProfileLease(t *testing.T) {
	var p Profile
	l := p.Lease()
	assert.Nil(t, l.Start)
	assert.Nil(t, l.End)
	assert.Nil(t, l.Rent)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, -1)
	rent := decimal.NewFromInt(1500)
	p = Profile{LeaseStart: &start, LeaseEnd: &end, RentAmount: &rent}
	l = p.Lease()
	assert.Equal(t, &start, l.Start)
	assert.Equal(t, &end, l.End)
	assert.Equal(t, &rent, l.Rent)
}

func TestPriorityRank(t *testing.T) {
	assert.Less(t, PriorityLow.Rank(), PriorityMedium.Rank())
	assert.Less(t, PriorityMedium.Rank(), PriorityHigh.Rank())
	assert.Less(t, PriorityHigh.Rank(), PriorityEmergency.Rank())
	assert.Zero(t, Priority("urgent").Rank())
}

func TestMaintenanceStatusIsOpen(t *testing.T) {
	assert.True(t, MaintenanceOpen.IsOpen())
	assert.True(t, MaintenanceInProgress.IsOpen())
	assert.False(t, MaintenanceCompleted.IsOpen())
	assert.False(t, MaintenanceCancelled.IsOpen())
}

func TestDummyLeaseDates(t *testing.T) {
	start, end, err := DummyLease{LeaseStart: "2024-01-01", LeaseEnd: "2024-12-31"}.LeaseDates()
	require.NoError(t, err)
	assert.Equal(t, 2024, start.Year())
	assert.Equal(t, time.December, end.Month())

	_, _, err = DummyLease{LeaseStart: "2024-01-01", LeaseEnd: "soon"}.LeaseDates()
	assert.Error(t, err)
}
