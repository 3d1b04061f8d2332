package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUsernameExists          = errors.New("username already taken")
	ErrNoEmployeeProfile       = errors.New("no employee profile is linked to this account")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
