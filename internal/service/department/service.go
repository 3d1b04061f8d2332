package department

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

type DepartmentServiceImpl struct {
	department.DepartmentRepository
	employee.EmployeeRepository
}

func NewDepartmentService(departmentRepository department.DepartmentRepository, employeeRepository employee.EmployeeRepository) department.DepartmentService {
	return &DepartmentServiceImpl{
		DepartmentRepository: departmentRepository,
		EmployeeRepository:   employeeRepository,
	}
}

// checkHead ensures the proposed head is an existing manager.
func (s *DepartmentServiceImpl) checkHead(ctx context.Context, headID *int64) error {
	if headID == nil {
		return nil
	}
	head, err := s.EmployeeRepository.GetByID(ctx, *headID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return validator.ValidationErrors{{
				Field:   "head_of_department_id",
				Message: employee.ErrEmployeeNotFound.Error(),
			}}
		}
		return fmt.Errorf("failed to get head of department: %w", err)
	}
	if head.Role != user.RoleManager {
		return validator.ValidationErrors{{
			Field:   "head_of_department_id",
			Message: department.ErrHeadNotManager.Error(),
		}}
	}
	return nil
}

// Create implements department.DepartmentService.
func (s *DepartmentServiceImpl) Create(ctx context.Context, req department.UpsertDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}
	if err := s.checkHead(ctx, req.HeadOfDepartmentID); err != nil {
		return department.DepartmentResponse{}, err
	}

	created, err := s.DepartmentRepository.Create(ctx, department.Department{
		Name:               strings.TrimSpace(req.Name),
		Description:        req.Description,
		HeadOfDepartmentID: req.HeadOfDepartmentID,
	})
	if err != nil {
		return department.DepartmentResponse{}, fmt.Errorf("failed to create department: %w", err)
	}
	return s.Get(ctx, created.ID)
}

// Update implements department.DepartmentService.
func (s *DepartmentServiceImpl) Update(ctx context.Context, req department.UpsertDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	existing, err := s.DepartmentRepository.GetByID(ctx, req.ID)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	if err := s.checkHead(ctx, req.HeadOfDepartmentID); err != nil {
		return department.DepartmentResponse{}, err
	}

	existing.Name = strings.TrimSpace(req.Name)
	existing.Description = req.Description
	existing.HeadOfDepartmentID = req.HeadOfDepartmentID
	if err := s.DepartmentRepository.Update(ctx, existing); err != nil {
		return department.DepartmentResponse{}, fmt.Errorf("failed to update department: %w", err)
	}
	return s.Get(ctx, existing.ID)
}

// Get implements department.DepartmentService.
func (s *DepartmentServiceImpl) Get(ctx context.Context, id int64) (department.DepartmentResponse, error) {
	d, err := s.DepartmentRepository.GetByID(ctx, id)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return department.NewDepartmentResponse(d), nil
}

// List implements department.DepartmentService.
func (s *DepartmentServiceImpl) List(ctx context.Context) ([]department.DepartmentResponse, error) {
	list, err := s.DepartmentRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	out := make([]department.DepartmentResponse, 0, len(list))
	for _, d := range list {
		out = append(out, department.NewDepartmentResponse(d))
	}
	return out, nil
}
