package project

import (
	"context"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
)

type ProjectRepository interface {
	Create(ctx context.Context, p Project) (Project, error)
	GetByID(ctx context.Context, id int64) (Project, error)
	ListByManager(ctx context.Context, managerID int64) ([]Project, error)
	// ListByMember returns the projects employeeID is assigned to or holds a
	// task in.
	ListByMember(ctx context.Context, employeeID int64) ([]Project, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
	Delete(ctx context.Context, id int64) error

	ListMembers(ctx context.Context, projectID int64) ([]employee.Employee, error)
	// AddMember returns ErrAlreadyMember when the pair exists.
	AddMember(ctx context.Context, projectID, employeeID int64) error
	// RemoveMember returns ErrNotMember when nothing was removed.
	RemoveMember(ctx context.Context, projectID, employeeID int64) error
	ClearMembers(ctx context.Context, projectID int64) error
}

type TaskRepository interface {
	Create(ctx context.Context, t Task) (Task, error)
	GetByID(ctx context.Context, id int64) (Task, error)
	ListByProject(ctx context.Context, projectID int64) ([]Task, error)
	ListByAssignee(ctx context.Context, employeeID int64) ([]Task, error)
	MarkCompleted(ctx context.Context, id int64) error
}

type ReviewRepository interface {
	Create(ctx context.Context, r PerformanceReview) (PerformanceReview, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]PerformanceReview, error)
}
