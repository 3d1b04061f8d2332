package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrReportingHRInvalid = errors.New("reporting HR must be an employee with the hr role")
	ErrNoDepartment       = errors.New("you are not assigned to a department")
	ErrAlreadyAssigned    = errors.New("employee already belongs to a department")
	ErrUnauthorized       = errors.New("unauthorized to manage this employee")
	ErrTransactionFailed  = errors.New("failed to create employee, all changes were rolled back")
)
