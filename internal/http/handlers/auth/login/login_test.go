package login

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/tenant-portal/internal/models"
	"github.com/magabrotheeeer/tenant-portal/internal/services/auth"
)

type ServiceMock struct{ mock.Mock }

func (m *ServiceMock) Login(ctx context.Context, req models.DummyLogin) (string, *models.Profile, error) {
	args := m.Called(ctx, req)
	p, _ := args.Get(1).(*models.Profile)
	return args.String(0), p, args.Error(2)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	creds := models.DummyLogin{Email: "jane@example.com", Password: "password123"}
	profile := &models.Profile{ID: "u-1", Email: "jane@example.com", UserType: models.UserManager, PasswordHash: "hash"}

	tests := []struct {
		name        string
		body        any
		mock        bool
		mockToken   string
		mockProfile *models.Profile
		mockErr     error
		wantCode    int
		wantError   string
	}{
		{name: "valid login", body: creds, mock: true, mockToken: "tok", mockProfile: profile, wantCode: http.StatusOK},
		{name: "invalid json body", body: "not a json", wantCode: http.StatusBadRequest, wantError: "invalid request body"},
		{
			name:      "missing password",
			body:      models.DummyLogin{Email: "jane@example.com"},
			wantCode:  http.StatusUnprocessableEntity,
			wantError: "field Password is a required field",
		},
		{name: "wrong password", body: creds, mock: true, mockErr: auth.ErrInvalidCredentials, wantCode: http.StatusUnauthorized, wantError: "invalid credentials"},
		{name: "storage failure", body: creds, mock: true, mockErr: errors.New("db down"), wantCode: http.StatusInternalServerError, wantError: "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.mock {
				svc.On("Login", mock.Anything, tt.body).Return(tt.mockToken, tt.mockProfile, tt.mockErr).Once()
			}

			var raw []byte
			if s, ok := tt.body.(string); ok {
				raw = []byte(s)
			} else {
				var err error
				raw, err = json.Marshal(tt.body)
				require.NoError(t, err)
			}
			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(raw))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			New(newNoopLogger(), svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			var got map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			if tt.wantError != "" {
				assert.Equal(t, "Error", got["status"])
				assert.Equal(t, tt.wantError, got["error"])
				return
			}
			assert.Equal(t, "OK", got["status"])
			data := got["data"].(map[string]any)
			assert.Equal(t, "tok", data["token"])
			assert.Equal(t, "manager", data["user_type"])
			assert.NotContains(t, rec.Body.String(), "hash")
			svc.AssertExpectations(t)
		})
	}
}
