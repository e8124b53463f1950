package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/tenant-portal/internal/models"
)

func TestJWTMaker_GenerateAndParseToken(t *testing.T) {
	tokenTTL := 15 * time.Minute
	maker := NewJWTMaker("test_secret_key_1234567890", tokenTTL)

	tests := []struct {
		name     string
		userID   string
		userType models.UserType
	}{
		{name: "tenant", userID: "6f1c0a4e-7d7b-4a55-9a53-0d7b1f0c2a11", userType: models.UserTenant},
		{name: "manager", userID: "0b7f5e1a-3c2d-4e8f-9a1b-2c3d4e5f6a7b", userType: models.UserManager},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := maker.GenerateToken(tt.userID, tt.userType)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)

			assert.Equal(t, tt.userID, claims.UserID)
			assert.Equal(t, tt.userID, claims.Subject)
			assert.Equal(t, tt.userType, claims.UserType)
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second)
			assert.WithinDuration(t, time.Now().Add(tokenTTL), claims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestJWTMaker_ParseToken_InvalidTokens(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	maker := NewJWTMaker(secretKey, 15*time.Minute)

	validToken, err := maker.GenerateToken("tenant-1", models.UserTenant)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "malformed token", token: "invalid.token.here"},
		{name: "expired token", token: signWith(t, NewJWTMaker(secretKey, -time.Hour))},
		{name: "wrong secret key", token: signWith(t, NewJWTMaker("wrong_secret_key", time.Minute))},
		{name: "tampered token", token: validToken + "tampered"},
		{name: "missing user id", token: signClaims(t, secretKey, jwt.SigningMethodHS256, CustomClaims{UserType: models.UserTenant})},
		{name: "other signing method", token: signClaims(t, secretKey, jwt.SigningMethodHS512, CustomClaims{UserID: "tenant-1"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTMaker_TokenExpiration(t *testing.T) {
	maker := NewJWTMaker("test_secret_key", time.Second)

	token, err := maker.GenerateToken("tenant-1", models.UserTenant)
	require.NoError(t, err)

	_, err = maker.ParseToken(token)
	require.NoError(t, err)

	time.Sleep(2 * time.Second)

	_, err = maker.ParseToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func signWith(t *testing.T, m *MakerImpl) string {
	t.Helper()
	token, err := m.GenerateToken("tenant-1", models.UserTenant)
	require.NoError(t, err)
	return token
}

func signClaims(t *testing.T, secret string, method jwt.SigningMethod, claims CustomClaims) string {
	t.Helper()
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Minute))
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}
