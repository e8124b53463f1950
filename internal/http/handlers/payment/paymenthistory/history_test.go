package paymenthistory

import (
	"context"
	"encoding/json"
	"errors"
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
)

type ServiceMock struct{ mock.Mock }

func (m *ServiceMock) History(ctx context.Context, tenantID string, rng *models.DateRange) ([]models.PaymentRecord, error) {
	args := m.Called(ctx, tenantID, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PaymentRecord), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func asTenant(r *http.Request) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middlewarectx.UserID, "t-1"))
}

func TestHistoryHandler(t *testing.T) {
	records := []models.PaymentRecord{{ID: "p1", Date: "2024-02-01", Amount: decimal.NewFromInt(1500), Status: models.PaymentCompleted}}

	t.Run("with range", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("History", mock.Anything, "t-1", mock.MatchedBy(func(rng *models.DateRange) bool {
			return rng != nil && rng.From.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) &&
				rng.To != nil && rng.To.Equal(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC))
		})).Return(records, nil)

		rec := httptest.NewRecorder()
		New(newNoopLogger(), svc).ServeHTTP(rec, asTenant(httptest.NewRequest(http.MethodGet, "/tenant/payments?from=2024-01-01&to=2024-03-31", nil)))

		assert.Equal(t, http.StatusOK, rec.Code)
		var got struct {
			Status string `json:"status"`
			Data   struct {
				Count    int                    `json:"count"`
				Payments []models.PaymentRecord `json:"payments"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "OK", got.Status)
		assert.Equal(t, 1, got.Data.Count)
		assert.Equal(t, "p1", got.Data.Payments[0].ID)
		svc.AssertExpectations(t)
	})

	t.Run("no range returns everything", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("History", mock.Anything, "t-1", (*models.DateRange)(nil)).Return(records, nil)

		rec := httptest.NewRecorder()
		New(newNoopLogger(), svc).ServeHTTP(rec, asTenant(httptest.NewRequest(http.MethodGet, "/tenant/payments", nil)))
		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("malformed date", func(t *testing.T) {
		svc := new(ServiceMock)
		rec := httptest.NewRecorder()
		New(newNoopLogger(), svc).ServeHTTP(rec, asTenant(httptest.NewRequest(http.MethodGet, "/tenant/payments?from=01/02/2024", nil)))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		svc.AssertNotCalled(t, "History", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		New(newNoopLogger(), new(ServiceMock)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tenant/payments", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("service failure", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("History", mock.Anything, "t-1", mock.Anything).Return(nil, errors.New("db down"))
		rec := httptest.NewRecorder()
		New(newNoopLogger(), svc).ServeHTTP(rec, asTenant(httptest.NewRequest(http.MethodGet, "/tenant/payments", nil)))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
