package auth

import (
	"context"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	// Logout revokes token until it expires at expiresAt.
	Logout(ctx context.Context, token string, expiresAt int64) error
	ChangePassword(ctx context.Context, actor user.Principal, req ChangePasswordRequest) error
}
