package summary

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/tenant-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/tenant-portal/internal/models"
)

type ServiceMock struct{ mock.Mock }

func (m *ServiceMock) Summary(ctx context.Context, managerID string) (models.MaintenanceSummary, error) {
	args := m.Called(ctx, managerID)
	return args.Get(0).(models.MaintenanceSummary), args.Error(1)
}

func TestSummaryHandler(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := new(ServiceMock)
	svc.On("Summary", mock.Anything, "m-1").Return(models.MaintenanceSummary{Total: 5, Open: 2, InProgress: 1, Completed: 1, EmergencyOpen: 1}, nil)
	svc.On("Summary", mock.Anything, "m-2").Return(models.MaintenanceSummary{}, errors.New("db down"))
	h := New(log, svc)

	req := httptest.NewRequest(http.MethodGet, "/maintenance/summary", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(context.WithValue(req.Context(), middlewarectx.UserID, "m-1")))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"OK","data":{"total":5,"open":2,"in_progress":1,"completed":1,"emergency_open":1}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(context.WithValue(req.Context(), middlewarectx.UserID, "m-2")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
