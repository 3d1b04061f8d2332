package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
)

type LeaveServiceImpl struct {
	leaveRepo    leave.LeaveRequestRepository
	employeeRepo employee.EmployeeRepository
	now          func() time.Time
}

func NewLeaveService(leaveRepo leave.LeaveRequestRepository, employeeRepo employee.EmployeeRepository) leave.LeaveService {
	return &LeaveServiceImpl{
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
		now:          time.Now,
	}
}

// self loads the employee record behind actor.
func (s *LeaveServiceImpl) self(ctx context.Context, actor user.Principal) (employee.Employee, error) {
	id, err := actor.Employee()
	if err != nil {
		return employee.Employee{}, err
	}
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

// Apply implements leave.LeaveService.
func (s *LeaveServiceImpl) Apply(ctx context.Context, actor user.Principal, req leave.ApplyLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	emp, err := s.self(ctx, actor)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request := req.ToLeaveRequest(emp.ID, s.now())
	leave.Route(leave.Applicant{
		EmployeeID:       emp.ID,
		Role:             emp.Role,
		ReportingHRID:    emp.ReportingHRID,
		DepartmentHeadID: emp.DepartmentHeadID,
	}, &request)

	created, err := s.leaveRepo.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	created.EmployeeName = emp.FullName()

	slog.Info("leave request submitted", "leave_request_id", created.ID, "employee_id", emp.ID, "status", created.Status)
	return leave.NewLeaveRequestResponse(created), nil
}

// GetMyRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) GetMyRequests(ctx context.Context, actor user.Principal, limit int) ([]leave.LeaveRequestResponse, error) {
	id, err := actor.Employee()
	if err != nil {
		return nil, err
	}
	if limit < 0 {
		limit = 0
	}

	list, err := s.leaveRepo.List(ctx, leave.LeaveFilter{EmployeeID: &id, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return leave.NewLeaveRequestResponses(list), nil
}

// GetRequest implements leave.LeaveService. Applicants see their own
// requests, managers those of their department and HR every request.
func (s *LeaveServiceImpl) GetRequest(ctx context.Context, actor user.Principal, id int64) (leave.LeaveRequestResponse, error) {
	request, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if actor.EmployeeID != nil && *actor.EmployeeID == request.EmployeeID {
		return leave.NewLeaveRequestResponse(request), nil
	}
	switch actor.Role {
	case user.RoleHR:
		return leave.NewLeaveRequestResponse(request), nil
	case user.RoleManager:
		emp, err := s.self(ctx, actor)
		if err != nil {
			return leave.LeaveRequestResponse{}, err
		}
		if emp.InDepartment(request.EmployeeDepartmentID) {
			return leave.NewLeaveRequestResponse(request), nil
		}
	}
	return leave.LeaveRequestResponse{}, leave.ErrUnauthorizedApprover
}

// ManagerQueue implements leave.LeaveService.
func (s *LeaveServiceImpl) ManagerQueue(ctx context.Context, actor user.Principal) ([]leave.LeaveRequestResponse, error) {
	if actor.Role != user.RoleManager {
		return nil, user.ErrInsufficientPermissions
	}
	emp, err := s.self(ctx, actor)
	if err != nil {
		return nil, err
	}
	if emp.DepartmentID == nil {
		return nil, employee.ErrNoDepartment
	}

	list, err := s.leaveRepo.List(ctx, leave.LeaveFilter{
		DepartmentID:      emp.DepartmentID,
		ExcludeEmployeeID: &emp.ID,
		Statuses:          []leave.Status{leave.StatusPendingManager},
		OldestFirst:       true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list manager queue: %w", err)
	}
	return leave.NewLeaveRequestResponses(list), nil
}

// HRQueue implements leave.LeaveService.
func (s *LeaveServiceImpl) HRQueue(ctx context.Context, actor user.Principal) ([]leave.LeaveRequestResponse, error) {
	if actor.Role != user.RoleHR {
		return nil, user.ErrInsufficientPermissions
	}
	id, err := actor.Employee()
	if err != nil {
		return nil, err
	}

	list, err := s.leaveRepo.List(ctx, leave.LeaveFilter{
		ExcludeEmployeeID: &id,
		Statuses:          []leave.Status{leave.StatusPendingManager, leave.StatusPendingHR},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list hr queue: %w", err)
	}
	return leave.NewLeaveRequestResponses(list), nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, actor user.Principal, id int64) (leave.LeaveRequestResponse, error) {
	return s.decide(ctx, actor, id, leave.DecisionApprove)
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, actor user.Principal, id int64) (leave.LeaveRequestResponse, error) {
	return s.decide(ctx, actor, id, leave.DecisionReject)
}

func (s *LeaveServiceImpl) decide(ctx context.Context, actor user.Principal, id int64, decision leave.Decision) (leave.LeaveRequestResponse, error) {
	approver, err := s.self(ctx, actor)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	current, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	next, err := leave.Decide(current, leave.Approver{
		EmployeeID:   approver.ID,
		Role:         approver.Role,
		DepartmentID: approver.DepartmentID,
	}, decision)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if err := s.leaveRepo.UpdateDecision(ctx, next, current.Status); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	slog.Info("leave request decided",
		"leave_request_id", id,
		"decision", decision,
		"from", current.Status,
		"to", next.Status,
		"approver_id", approver.ID,
	)
	return leave.NewLeaveRequestResponse(next), nil
}

// OnLeaveToday implements leave.LeaveService.
func (s *LeaveServiceImpl) OnLeaveToday(ctx context.Context, actor user.Principal) ([]leave.LeaveRequestResponse, error) {
	today := s.now()
	filter := leave.LeaveFilter{
		Statuses: []leave.Status{leave.StatusHRApproved},
		ActiveOn: &today,
	}

	switch actor.Role {
	case user.RoleHR:
	case user.RoleManager:
		emp, err := s.self(ctx, actor)
		if err != nil {
			return nil, err
		}
		if emp.DepartmentID == nil {
			return nil, employee.ErrNoDepartment
		}
		filter.DepartmentID = emp.DepartmentID
	default:
		return nil, user.ErrInsufficientPermissions
	}

	list, err := s.leaveRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees on leave: %w", err)
	}
	return leave.NewLeaveRequestResponses(list), nil
}
