package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	authservice "github.com/cmlabs-hris/hrms-backend-go/internal/service/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/service/file"
)

type EmployeeServiceImpl struct {
	tx             database.Transactor
	userRepo       user.UserRepository
	employeeRepo   employee.EmployeeRepository
	departmentRepo department.DepartmentRepository
	fileService    file.FileService
}

func NewEmployeeService(
	tx database.Transactor,
	userRepo user.UserRepository,
	employeeRepo employee.EmployeeRepository,
	departmentRepo department.DepartmentRepository,
	fileService file.FileService,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:             tx,
		userRepo:       userRepo,
		employeeRepo:   employeeRepo,
		departmentRepo: departmentRepo,
		fileService:    fileService,
	}
}

// checkAssignment validates the department and reporting HR references of a
// create or update request.
func (s *EmployeeServiceImpl) checkAssignment(ctx context.Context, departmentID, reportingHRID *int64) error {
	var errs validator.ValidationErrors

	if departmentID != nil {
		if _, err := s.departmentRepo.GetByID(ctx, *departmentID); err != nil {
			if !errors.Is(err, department.ErrDepartmentNotFound) {
				return fmt.Errorf("failed to get department: %w", err)
			}
			errs = append(errs, validator.ValidationError{
				Field:   "department_id",
				Message: department.ErrDepartmentNotFound.Error(),
			})
		}
	}

	if reportingHRID != nil {
		hr, err := s.employeeRepo.GetByID(ctx, *reportingHRID)
		switch {
		case errors.Is(err, employee.ErrEmployeeNotFound):
			errs = append(errs, validator.ValidationError{
				Field:   "reporting_hr_id",
				Message: employee.ErrEmployeeNotFound.Error(),
			})
		case err != nil:
			return fmt.Errorf("failed to get reporting hr: %w", err)
		case hr.Role != user.RoleHR:
			errs = append(errs, validator.ValidationError{
				Field:   "reporting_hr_id",
				Message: employee.ErrReportingHRInvalid.Error(),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return employee.EmployeeResponse{}, user.ErrUsernameExists
	}

	exists, err = s.employeeRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return employee.EmployeeResponse{}, employee.ErrEmailExists
	}

	if err := s.checkAssignment(ctx, req.DepartmentID, req.ReportingHRID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	passwordHash, err := authservice.HashPassword(req.Password)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	// Files go to storage first; they are removed again if the transaction fails.
	var uploaded []string
	cleanup := func() {
		for _, p := range uploaded {
			if err := s.fileService.DeleteFile(ctx, p); err != nil {
				slog.Warn("failed to remove uploaded file", "path", p, "error", err)
			}
		}
	}

	var photoPath *string
	if req.Photo != nil {
		p, err := s.fileService.UploadPhoto(ctx, username, req.Photo.Content, req.Photo.Filename)
		if err != nil {
			return employee.EmployeeResponse{}, err
		}
		uploaded = append(uploaded, p)
		photoPath = &p
	}

	documents := make([]employee.Document, 0, len(req.Certificates))
	for _, cert := range req.Certificates {
		p, err := s.fileService.UploadCertificate(ctx, username, cert.Content, cert.Filename)
		if err != nil {
			cleanup()
			return employee.EmployeeResponse{}, err
		}
		uploaded = append(uploaded, p)
		documents = append(documents, employee.Document{DocumentName: cert.Filename, FilePath: p})
	}

	var created employee.Employee
	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		newUser, err := s.userRepo.Create(txCtx, user.User{
			Username:     username,
			PasswordHash: passwordHash,
			Role:         user.Role(req.Role),
		})
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		created, err = s.employeeRepo.Create(txCtx, employee.Employee{
			UserID:               newUser.ID,
			FirstName:            strings.TrimSpace(req.FirstName),
			LastName:             strings.TrimSpace(req.LastName),
			Email:                email,
			PhoneNumber:          req.PhoneNumber,
			DepartmentID:         req.DepartmentID,
			Position:             strings.TrimSpace(req.Position),
			DateOfJoining:        req.JoinDate(),
			ReportingHRID:        req.ReportingHRID,
			AddressLine1:         req.AddressLine1,
			City:                 req.City,
			PostalCode:           req.PostalCode,
			Country:              req.Country,
			HighestQualification: req.HighestQualification,
			PhotoPath:            photoPath,
		})
		if err != nil {
			return fmt.Errorf("failed to create employee: %w", err)
		}

		for _, doc := range documents {
			doc.EmployeeID = created.ID
			if _, err := s.employeeRepo.CreateDocument(txCtx, doc); err != nil {
				return fmt.Errorf("failed to create document: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		slog.Error("employee creation rolled back", "username", username, "error", err)
		cleanup()
		return employee.EmployeeResponse{}, fmt.Errorf("%w: %v", employee.ErrTransactionFailed, err)
	}

	slog.Info("employee created", "employee_id", created.ID, "role", req.Role)
	return s.GetEmployee(ctx, created.ID)
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	existing, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !strings.EqualFold(email, existing.Email) {
		exists, err := s.employeeRepo.ExistsByEmail(ctx, email)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return employee.EmployeeResponse{}, employee.ErrEmailExists
		}
	}

	if err := s.checkAssignment(ctx, req.DepartmentID, req.ReportingHRID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	existing.FirstName = strings.TrimSpace(req.FirstName)
	existing.LastName = strings.TrimSpace(req.LastName)
	existing.PhoneNumber = req.PhoneNumber
	existing.AddressLine1 = req.AddressLine1
	existing.City = req.City
	existing.PostalCode = req.PostalCode
	existing.Country = req.Country
	existing.Email = email
	existing.Position = strings.TrimSpace(req.Position)
	existing.HighestQualification = req.HighestQualification
	existing.DepartmentID = req.DepartmentID
	existing.ReportingHRID = req.ReportingHRID

	if err := s.employeeRepo.Update(ctx, existing); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}
	return s.GetEmployee(ctx, existing.ID)
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id int64) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	docs, err := s.employeeRepo.ListDocuments(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to list documents: %w", err)
	}
	return employee.NewEmployeeResponse(emp, docs), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	filter.Normalize()

	list, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(list))
	for _, e := range list {
		responses = append(responses, employee.NewEmployeeResponse(e, nil))
	}

	return employee.ListEmployeeResponse{
		Employees:  responses,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

// ListByRole implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListByRole(ctx context.Context, role user.Role) ([]employee.EmployeeSummary, error) {
	if !role.IsValid() {
		return nil, validator.ValidationErrors{{Field: "role", Message: "role must be one of employee, manager, hr"}}
	}
	list, err := s.employeeRepo.ListByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees by role: %w", err)
	}
	return employee.NewEmployeeSummaries(list), nil
}

// UnassignFromDepartment implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UnassignFromDepartment(ctx context.Context, id int64) error {
	if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.employeeRepo.SetDepartment(ctx, id, nil); err != nil {
		return fmt.Errorf("failed to unassign employee: %w", err)
	}
	return nil
}

// GetMe implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetMe(ctx context.Context, actor user.Principal) (employee.EmployeeResponse, error) {
	id, err := actor.Employee()
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return s.GetEmployee(ctx, id)
}

// manager loads the actor's employee record and requires a department.
func (s *EmployeeServiceImpl) manager(ctx context.Context, actor user.Principal) (employee.Employee, error) {
	id, err := actor.Employee()
	if err != nil {
		return employee.Employee{}, err
	}
	me, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to get manager: %w", err)
	}
	if me.DepartmentID == nil {
		return employee.Employee{}, employee.ErrNoDepartment
	}
	return me, nil
}

// GetTeam implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetTeam(ctx context.Context, actor user.Principal) (employee.TeamResponse, error) {
	me, err := s.manager(ctx, actor)
	if err != nil {
		return employee.TeamResponse{}, err
	}

	members, err := s.employeeRepo.ListByDepartment(ctx, *me.DepartmentID)
	if err != nil {
		return employee.TeamResponse{}, fmt.Errorf("failed to list team members: %w", err)
	}
	team := make([]employee.Employee, 0, len(members))
	for _, m := range members {
		if m.ID != me.ID {
			team = append(team, m)
		}
	}

	unassigned, err := s.employeeRepo.ListUnassigned(ctx)
	if err != nil {
		return employee.TeamResponse{}, fmt.Errorf("failed to list unassigned employees: %w", err)
	}

	return employee.TeamResponse{
		Manager:             employee.NewEmployeeSummary(me),
		DepartmentID:        *me.DepartmentID,
		DepartmentName:      me.DepartmentName,
		TeamMembers:         employee.NewEmployeeSummaries(team),
		UnassignedEmployees: employee.NewEmployeeSummaries(unassigned),
	}, nil
}

// AssignToTeam implements employee.EmployeeService.
func (s *EmployeeServiceImpl) AssignToTeam(ctx context.Context, actor user.Principal, employeeID int64) error {
	me, err := s.manager(ctx, actor)
	if err != nil {
		return err
	}

	target, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}
	if target.DepartmentID != nil {
		return employee.ErrAlreadyAssigned
	}

	if err := s.employeeRepo.SetDepartment(ctx, target.ID, me.DepartmentID); err != nil {
		return fmt.Errorf("failed to assign employee: %w", err)
	}
	slog.Info("employee assigned to team", "employee_id", target.ID, "department_id", *me.DepartmentID)
	return nil
}

// UnassignFromTeam implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UnassignFromTeam(ctx context.Context, actor user.Principal, employeeID int64) error {
	me, err := s.manager(ctx, actor)
	if err != nil {
		return err
	}

	target, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}
	if target.ID == me.ID || !target.InDepartment(me.DepartmentID) {
		return employee.ErrUnauthorized
	}

	if err := s.employeeRepo.SetDepartment(ctx, target.ID, nil); err != nil {
		return fmt.Errorf("failed to unassign employee: %w", err)
	}
	return nil
}
