package board

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/tenant-portal/internal/http/middlewarectx"
	views "github.com/magabrotheeeer/tenant-portal/internal/maintenance"
	"github.com/magabrotheeeer/tenant-portal/internal/models"
	maintenanceservice "github.com/magabrotheeeer/tenant-portal/internal/services/maintenance"
)

type ServiceMock struct{ mock.Mock }

func (m *ServiceMock) ManagerBoard(ctx context.Context, managerID string, q views.Query) (*maintenanceservice.Board, error) {
	args := m.Called(ctx, managerID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*maintenanceservice.Board), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestBoardHandler(t *testing.T) {
	board := &maintenanceservice.Board{
		Open:    []models.MaintenanceRequest{{ID: "r-1", Priority: models.PriorityEmergency, Status: models.MaintenanceOpen}},
		Closed:  []models.MaintenanceRequest{},
		Summary: models.MaintenanceSummary{Total: 1, Open: 1, EmergencyOpen: 1},
	}

	tests := []struct {
		name      string
		query     string
		wantQuery *views.Query
		wantCode  int
	}{
		{name: "defaults", query: "", wantQuery: &views.Query{}, wantCode: http.StatusOK},
		{
			name:      "full query",
			query:     "?search=heat&priority=emergency&sort=priority&direction=asc",
			wantQuery: &views.Query{Search: "heat", Priority: "emergency", Sort: views.SortPriority, Direction: views.Asc},
			wantCode:  http.StatusOK,
		},
		{name: "unknown sort", query: "?sort=rent", wantCode: http.StatusUnprocessableEntity},
		{name: "unknown priority", query: "?priority=urgent", wantCode: http.StatusUnprocessableEntity},
		{name: "unknown direction", query: "?direction=up", wantCode: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.wantQuery != nil {
				svc.On("ManagerBoard", mock.Anything, "m-1", *tt.wantQuery).Return(board, nil).Once()
			}

			req := httptest.NewRequest(http.MethodGet, "/maintenance"+tt.query, nil)
			req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserID, "m-1"))
			rec := httptest.NewRecorder()
			New(newNoopLogger(), svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			svc.AssertExpectations(t)
			if tt.wantCode != http.StatusOK {
				return
			}
			var got struct {
				Data maintenanceservice.Board `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Len(t, got.Data.Open, 1)
			assert.Equal(t, 1, got.Data.Summary.EmergencyOpen)
		})
	}
}
