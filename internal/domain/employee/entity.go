package employee

import (
	"io"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
)

type Employee struct {
	ID                   int64
	UserID               int64
	FirstName            string
	LastName             string
	Email                string
	PhoneNumber          *string
	DepartmentID         *int64
	Position             string
	DateOfJoining        time.Time
	ReportingHRID        *int64
	AddressLine1         *string
	City                 *string
	PostalCode           *string
	Country              *string
	HighestQualification *string
	PhotoPath            *string
	CreatedAt            time.Time
	UpdatedAt            time.Time

	// Join
	Username         string
	Role             user.Role
	DepartmentName   *string
	DepartmentHeadID *int64
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// InDepartment reports whether e belongs to departmentID. An employee without
// a department belongs to none.
func (e Employee) InDepartment(departmentID *int64) bool {
	return e.DepartmentID != nil && departmentID != nil && *e.DepartmentID == *departmentID
}

type Document struct {
	ID           int64
	EmployeeID   int64
	DocumentName string
	FilePath     string
	UploadedAt   time.Time
}

// Upload is a file received alongside a request.
type Upload struct {
	Filename string
	Content  io.Reader
}
