package employee

import (
	"context"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// CreateEmployee creates the login account, the employee record and its
	// certificate documents atomically (hr only)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// UpdateEmployee replaces personal, professional and assignment fields (hr only)
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	GetEmployee(ctx context.Context, id int64) (EmployeeResponse, error)
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)

	// ListByRole feeds the reporting HR and head of department pickers
	ListByRole(ctx context.Context, role user.Role) ([]EmployeeSummary, error)

	UnassignFromDepartment(ctx context.Context, id int64) error

	GetMe(ctx context.Context, actor user.Principal) (EmployeeResponse, error)

	// Team management within the actor's own department
	GetTeam(ctx context.Context, actor user.Principal) (TeamResponse, error)
	AssignToTeam(ctx context.Context, actor user.Principal, employeeID int64) error
	UnassignFromTeam(ctx context.Context, actor user.Principal, employeeID int64) error
}
