package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	// Personal
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	PhoneNumber  *string `json:"phone_number,omitempty"`
	AddressLine1 *string `json:"address_line1,omitempty"`
	City         *string `json:"city,omitempty"`
	PostalCode   *string `json:"postal_code,omitempty"`
	Country      *string `json:"country,omitempty"`

	// Professional
	Email                string  `json:"email"`
	Position             string  `json:"position"`
	DateOfJoining        string  `json:"date_of_joining"`
	HighestQualification *string `json:"highest_qualification,omitempty"`
	DepartmentID         *int64  `json:"department_id,omitempty"`
	ReportingHRID        *int64  `json:"reporting_hr_id,omitempty"`

	// Login
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`

	Photo        *Upload  `json:"-"`
	Certificates []Upload `json:"-"`

	joinDate time.Time
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validatePersonal(r.FirstName, r.LastName, r.PhoneNumber)...)
	errs = append(errs, validateProfessional(r.Email, r.Position)...)

	if validator.IsEmpty(r.DateOfJoining) {
		errs = append(errs, validator.ValidationError{
			Field:   "date_of_joining",
			Message: "date_of_joining is required",
		})
	} else if d, ok := validator.IsValidDate(r.DateOfJoining); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date_of_joining",
			Message: "date_of_joining must be in YYYY-MM-DD format",
		})
	} else {
		r.joinDate = d
	}

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	} else if !validator.IsValidUsername(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username must be 3-50 characters of letters, numbers, dots, underscores or hyphens",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	} else if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	if validator.IsEmpty(r.Role) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role is required",
		})
	} else if !user.Role(r.Role).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of employee, manager, hr",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// JoinDate is the parsed DateOfJoining, available after Validate succeeds.
func (r *CreateEmployeeRequest) JoinDate() time.Time {
	return r.joinDate
}

type UpdateEmployeeRequest struct {
	ID int64 `json:"-"` // From URL

	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	PhoneNumber  *string `json:"phone_number,omitempty"`
	AddressLine1 *string `json:"address_line1,omitempty"`
	City         *string `json:"city,omitempty"`
	PostalCode   *string `json:"postal_code,omitempty"`
	Country      *string `json:"country,omitempty"`

	Email                string  `json:"email"`
	Position             string  `json:"position"`
	HighestQualification *string `json:"highest_qualification,omitempty"`

	DepartmentID  *int64 `json:"department_id,omitempty"`
	ReportingHRID *int64 `json:"reporting_hr_id,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	errs = append(errs, validatePersonal(r.FirstName, r.LastName, r.PhoneNumber)...)
	errs = append(errs, validateProfessional(r.Email, r.Position)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validatePersonal(firstName, lastName string, phone *string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if validator.IsEmpty(firstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name is required",
		})
	} else if len(firstName) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name must not exceed 100 characters",
		})
	}

	if validator.IsEmpty(lastName) {
		errs = append(errs, validator.ValidationError{
			Field:   "last_name",
			Message: "last_name is required",
		})
	} else if len(lastName) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "last_name",
			Message: "last_name must not exceed 100 characters",
		})
	}

	if phone != nil && !validator.IsEmpty(*phone) && !validator.IsValidPhoneNumber(*phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone_number",
			Message: "invalid phone number",
		})
	}
	return errs
}

func validateProfessional(email, position string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if validator.IsEmpty(email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if validator.IsEmpty(position) {
		errs = append(errs, validator.ValidationError{
			Field:   "position",
			Message: "position is required",
		})
	}
	return errs
}

type EmployeeFilter struct {
	DepartmentID *int64
	Role         *user.Role
	Search       *string
	Page         int
	Limit        int
}

// Normalize applies paging defaults.
func (f *EmployeeFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Search != nil {
		s := strings.TrimSpace(*f.Search)
		if s == "" {
			f.Search = nil
		} else {
			f.Search = &s
		}
	}
}

func (f EmployeeFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type DocumentResponse struct {
	ID           int64  `json:"id"`
	DocumentName string `json:"document_name"`
	FilePath     string `json:"file_path"`
	UploadedAt   string `json:"uploaded_at"`
}

type EmployeeResponse struct {
	ID                   int64              `json:"id"`
	UserID               int64              `json:"user_id"`
	Username             string             `json:"username,omitempty"`
	Role                 string             `json:"role,omitempty"`
	FirstName            string             `json:"first_name"`
	LastName             string             `json:"last_name"`
	FullName             string             `json:"full_name"`
	Email                string             `json:"email"`
	PhoneNumber          *string            `json:"phone_number,omitempty"`
	Position             string             `json:"position"`
	DateOfJoining        string             `json:"date_of_joining"`
	DepartmentID         *int64             `json:"department_id,omitempty"`
	DepartmentName       *string            `json:"department_name,omitempty"`
	ReportingHRID        *int64             `json:"reporting_hr_id,omitempty"`
	AddressLine1         *string            `json:"address_line1,omitempty"`
	City                 *string            `json:"city,omitempty"`
	PostalCode           *string            `json:"postal_code,omitempty"`
	Country              *string            `json:"country,omitempty"`
	HighestQualification *string            `json:"highest_qualification,omitempty"`
	PhotoPath            *string            `json:"photo_path,omitempty"`
	Documents            []DocumentResponse `json:"documents,omitempty"`
}

func NewEmployeeResponse(e Employee, docs []Document) EmployeeResponse {
	resp := EmployeeResponse{
		ID:                   e.ID,
		UserID:               e.UserID,
		Username:             e.Username,
		Role:                 string(e.Role),
		FirstName:            e.FirstName,
		LastName:             e.LastName,
		FullName:             e.FullName(),
		Email:                e.Email,
		PhoneNumber:          e.PhoneNumber,
		Position:             e.Position,
		DateOfJoining:        e.DateOfJoining.Format("2006-01-02"),
		DepartmentID:         e.DepartmentID,
		DepartmentName:       e.DepartmentName,
		ReportingHRID:        e.ReportingHRID,
		AddressLine1:         e.AddressLine1,
		City:                 e.City,
		PostalCode:           e.PostalCode,
		Country:              e.Country,
		HighestQualification: e.HighestQualification,
		PhotoPath:            e.PhotoPath,
	}
	for _, d := range docs {
		resp.Documents = append(resp.Documents, DocumentResponse{
			ID:           d.ID,
			DocumentName: d.DocumentName,
			FilePath:     d.FilePath,
			UploadedAt:   d.UploadedAt.Format(time.RFC3339),
		})
	}
	return resp
}

type ListEmployeeResponse struct {
	Employees  []EmployeeResponse `json:"employees"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}

// EmployeeSummary is the compact form used in pickers and team lists.
type EmployeeSummary struct {
	ID             int64   `json:"id"`
	FullName       string  `json:"full_name"`
	Email          string  `json:"email"`
	Position       string  `json:"position"`
	Role           string  `json:"role,omitempty"`
	DepartmentID   *int64  `json:"department_id,omitempty"`
	DepartmentName *string `json:"department_name,omitempty"`
}

func NewEmployeeSummary(e Employee) EmployeeSummary {
	return EmployeeSummary{
		ID:             e.ID,
		FullName:       e.FullName(),
		Email:          e.Email,
		Position:       e.Position,
		Role:           string(e.Role),
		DepartmentID:   e.DepartmentID,
		DepartmentName: e.DepartmentName,
	}
}

func NewEmployeeSummaries(list []Employee) []EmployeeSummary {
	out := make([]EmployeeSummary, 0, len(list))
	for _, e := range list {
		out = append(out, NewEmployeeSummary(e))
	}
	return out
}

type TeamResponse struct {
	Manager             EmployeeSummary   `json:"manager"`
	DepartmentID        int64             `json:"department_id"`
	DepartmentName      *string           `json:"department_name,omitempty"`
	TeamMembers         []EmployeeSummary `json:"team_members"`
	UnassignedEmployees []EmployeeSummary `json:"unassigned_employees"`
}
