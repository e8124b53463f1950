package list

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

func (m *ServiceMock) ListProperties(ctx context.Context, managerID string) ([]models.Property, error) {
	args := m.Called(ctx, managerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Property), args.Error(1)
}

func TestListPropertiesHandler(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := new(ServiceMock)
	svc.On("ListProperties", mock.Anything, "m-1").Return([]models.Property{{ID: "p-1", Name: "Elm Court", ManagerID: "m-1"}}, nil)
	svc.On("ListProperties", mock.Anything, "m-2").Return(nil, errors.New("db down"))
	h := New(log, svc)

	req := httptest.NewRequest(http.MethodGet, "/properties", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(context.WithValue(req.Context(), middlewarectx.UserID, "m-1")))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"OK","data":{"count":1,"properties":[{"id":"p-1","name":"Elm Court","manager_id":"m-1"}]}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(context.WithValue(req.Context(), middlewarectx.UserID, "m-2")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
