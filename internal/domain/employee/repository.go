package employee

import (
	"context"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
)

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id int64) (Employee, error)
	GetByUserID(ctx context.Context, userID int64) (Employee, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, e Employee) error
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	ListByDepartment(ctx context.Context, departmentID int64) ([]Employee, error)
	ListUnassigned(ctx context.Context) ([]Employee, error)
	ListByRole(ctx context.Context, role user.Role) ([]Employee, error)
	SetDepartment(ctx context.Context, id int64, departmentID *int64) error

	CreateDocument(ctx context.Context, doc Document) (Document, error)
	ListDocuments(ctx context.Context, employeeID int64) ([]Document, error)
}
