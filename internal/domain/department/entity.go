package department

import "time"

type Department struct {
	ID                 int64
	Name               string
	Description        *string
	HeadOfDepartmentID *int64
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Join
	HeadOfDepartmentName *string
	EmployeeCount        int
}

// HasHead reports whether someone approves leave for this department.
func (d Department) HasHead() bool {
	return d.HeadOfDepartmentID != nil
}
