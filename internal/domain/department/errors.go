package department

import "errors"

var (
	ErrDepartmentNotFound = errors.New("department not found")
	ErrHeadNotManager     = errors.New("head of department must be an employee with the manager role")
)
