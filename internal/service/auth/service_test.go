package auth

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hrms-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setup(t *testing.T) (*servicetest.Store, auth.AuthService, jwt.Service, employee.Employee) {
	t.Helper()
	store := servicetest.NewStore()
	emp := store.AddEmployee(employee.Employee{FirstName: "Jane", LastName: "Doe"}, user.RoleManager)

	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	u := store.Users[emp.UserID]
	u.Username = "JaneDoe"
	u.PasswordHash = hash
	store.Users[emp.UserID] = u

	jwtService := jwt.NewJWTService("test-secret", "1h", false)
	svc := NewAuthService(store.UserRepository(), store.RevokedTokenRepository(), jwtService)
	return store, svc, jwtService, emp
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	_, svc, jwtService, emp := setup(t)

	t.Run("case insensitive username", func(t *testing.T) {
		resp, err := svc.Login(ctx, auth.LoginRequest{Username: "janedoe", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, "manager", resp.Role)
		assert.Equal(t, "/manager", resp.RedirectURL)
		assert.NotZero(t, resp.ExpiresAt)

		token, err := jwtService.JWTAuth().Decode(resp.AccessToken)
		require.NoError(t, err)
		claims, err := token.AsMap(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, emp.ID, claims["employee_id"])
		assert.EqualValues(t, emp.UserID, claims["user_id"])
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{Username: "JaneDoe", Password: "nope"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{Username: "ghost", Password: "secret123"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Len(t, verrs, 2)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	store, svc, _, _ := setup(t)

	resp, err := svc.Login(ctx, auth.LoginRequest{Username: "JaneDoe", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.AccessToken, resp.ExpiresAt))
	revoked, err := store.RevokedTokenRepository().IsRevoked(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.True(t, revoked)

	assert.ErrorIs(t, svc.Logout(ctx, "", 0), auth.ErrInvalidToken)
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	store, svc, _, emp := setup(t)
	actor := store.Principal(emp.ID)

	err := svc.ChangePassword(ctx, actor, auth.ChangePasswordRequest{
		OldPassword:     "wrong-pass",
		NewPassword:     "newsecret123",
		ConfirmPassword: "newsecret123",
	})
	assert.ErrorIs(t, err, auth.ErrIncorrectPassword)

	err = svc.ChangePassword(ctx, actor, auth.ChangePasswordRequest{
		OldPassword:     "secret123",
		NewPassword:     "newsecret123",
		ConfirmPassword: "newsecret123",
	})
	require.NoError(t, err)

	hash := store.Users[emp.UserID].PasswordHash
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("newsecret123")))

	_, err = svc.Login(ctx, auth.LoginRequest{Username: "JaneDoe", Password: "secret123"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}
