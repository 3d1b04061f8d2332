package project

import "errors"

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrTaskNotFound    = errors.New("task not found")

	ErrNotProjectOwner = errors.New("you do not manage this project")
	ErrTaskNotAssigned = errors.New("task is not assigned to you")
	// ErrOutsideDepartment is returned when assigning someone outside the
	// manager's own department.
	ErrOutsideDepartment = errors.New("employee is not a member of your department")

	ErrAlreadyMember    = errors.New("employee is already assigned to this project")
	ErrNotMember        = errors.New("employee is not assigned to this project")
	ErrProjectCompleted = errors.New("project is already completed")
	ErrTaskCompleted    = errors.New("task is already completed")
)
