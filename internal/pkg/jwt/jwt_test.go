package jwt

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func TestJWTService_GenerateAccessToken(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", false)
	employeeID := int64(42)

	token, expiresAt, err := svc.GenerateAccessToken(AccessClaims{
		UserID:     7,
		Username:   "jdoe",
		Role:       user.RoleManager,
		EmployeeID: &employeeID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), expiresAt, 5)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "access", claims["type"])
	assert.Equal(t, "manager", claims["role"])
	assert.Equal(t, "jdoe", claims["username"])
	assert.EqualValues(t, 7, claims["user_id"])
	assert.EqualValues(t, 42, claims["employee_id"])
}

func TestJWTService_GenerateAccessToken_InvalidDuration(t *testing.T) {
	svc := NewJWTService(testSecret, "forever", false)

	_, _, err := svc.GenerateAccessToken(AccessClaims{UserID: 1, Role: user.RoleHR})
	assert.Error(t, err)
}

func TestJWTService_SessionCookie(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", true)
	expiresAt := time.Now().Add(time.Hour).Unix()

	cookie := svc.SessionCookie("token-value", expiresAt)
	assert.Equal(t, CookieName, cookie.Name)
	assert.Equal(t, "token-value", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	cleared := svc.ClearSessionCookie()
	assert.Equal(t, CookieName, cleared.Name)
	assert.Empty(t, cleared.Value)
	assert.Equal(t, -1, cleared.MaxAge)
}

func TestJWTService_DecodeRejectsForeignSignature(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", false)
	other := NewJWTService("another-secret", "1h", false)

	token, _, err := other.GenerateAccessToken(AccessClaims{UserID: 1, Role: user.RoleEmployee})
	require.NoError(t, err)

	_, err = svc.JWTAuth().Decode(token)
	assert.Error(t, err)
}
