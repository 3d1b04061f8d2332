package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

// Principal builds the caller from the verified token claims.
func Principal(r *http.Request) (user.Principal, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return user.Principal{}, auth.ErrInvalidToken
	}

	userID, ok := int64Claim(claims["user_id"])
	if !ok {
		return user.Principal{}, auth.ErrInvalidToken
	}
	role, _ := claims["role"].(string)
	username, _ := claims["username"].(string)

	p := user.Principal{
		UserID:   userID,
		Username: username,
		Role:     user.Role(role),
	}
	if employeeID, ok := int64Claim(claims["employee_id"]); ok {
		p.EmployeeID = &employeeID
	}
	return p, nil
}

// JSON numbers decode as float64.
func int64Claim(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	}
	return 0, false
}
