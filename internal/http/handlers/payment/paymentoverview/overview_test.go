package paymentoverview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/tenant-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/tenant-portal/internal/models"
	"github.com/magabrotheeeer/tenant-portal/internal/services/payments"
	"github.com/magabrotheeeer/tenant-portal/internal/storage"
)

type ServiceMock struct{ mock.Mock }

func (m *ServiceMock) Overview(ctx context.Context, tenantID string, today time.Time) (*payments.Overview, error) {
	args := m.Called(ctx, tenantID, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.Overview), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestOverviewHandler(t *testing.T) {
	today := time.Date(2024, 4, 9, 0, 0, 0, 0, time.UTC)
	rent := decimal.NewFromInt(1500)
	overview := &payments.Overview{
		MonthlyRent:     &rent,
		Balance:         decimal.NewFromInt(1500),
		SuggestedAmount: decimal.NewFromInt(1500),
		LateFee:         decimal.NewFromInt(75),
		RemainingDues:   1,
		Upcoming:        []models.ProjectedPayment{},
	}

	tests := []struct {
		name     string
		result   *payments.Overview
		err      error
		wantCode int
	}{
		{name: "success", result: overview, wantCode: http.StatusOK},
		{name: "unknown profile", err: fmt.Errorf("wrapped: %w", storage.ErrNotFound), wantCode: http.StatusNotFound},
		{name: "not a tenant", err: payments.ErrNotTenant, wantCode: http.StatusForbidden},
		{name: "failure", err: errors.New("db down"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.result != nil {
				svc.On("Overview", mock.Anything, "t-1", today).Return(tt.result, nil)
			} else {
				svc.On("Overview", mock.Anything, "t-1", today).Return(nil, tt.err)
			}

			req := httptest.NewRequest(http.MethodGet, "/tenant/payments/overview", nil)
			req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserID, "t-1"))
			rec := httptest.NewRecorder()
			New(newNoopLogger(), svc, func() time.Time { return today }).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode != http.StatusOK {
				return
			}
			var got struct {
				Data map[string]any `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, "75", got.Data["late_fee"])
			assert.Equal(t, "1500", got.Data["suggested_amount"])
			assert.Equal(t, float64(1), got.Data["remaining_dues"])
		})
	}
}
