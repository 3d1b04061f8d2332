package department

import (
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

// DepartmentResponse represents the response structure for a department.
type DepartmentResponse struct {
	ID                   int64   `json:"id"`
	Name                 string  `json:"name"`
	Description          *string `json:"description,omitempty"`
	HeadOfDepartmentID   *int64  `json:"head_of_department_id,omitempty"`
	HeadOfDepartmentName *string `json:"head_of_department_name,omitempty"`
	EmployeeCount        int     `json:"employee_count"`
}

func NewDepartmentResponse(d Department) DepartmentResponse {
	return DepartmentResponse{
		ID:                   d.ID,
		Name:                 d.Name,
		Description:          d.Description,
		HeadOfDepartmentID:   d.HeadOfDepartmentID,
		HeadOfDepartmentName: d.HeadOfDepartmentName,
		EmployeeCount:        d.EmployeeCount,
	}
}

// UpsertDepartmentRequest is used for both create and update.
type UpsertDepartmentRequest struct {
	ID                 int64   `json:"-"` // From URL on update
	Name               string  `json:"name"`
	Description        *string `json:"description,omitempty"`
	HeadOfDepartmentID *int64  `json:"head_of_department_id,omitempty"`
}

func (r *UpsertDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}
	if r.HeadOfDepartmentID != nil && *r.HeadOfDepartmentID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "head_of_department_id",
			Message: "head_of_department_id must be a positive id",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
