package project

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

type ProjectServiceImpl struct {
	tx           database.Transactor
	projectRepo  project.ProjectRepository
	taskRepo     project.TaskRepository
	reviewRepo   project.ReviewRepository
	employeeRepo employee.EmployeeRepository
	now          func() time.Time
}

func NewProjectService(
	tx database.Transactor,
	projectRepo project.ProjectRepository,
	taskRepo project.TaskRepository,
	reviewRepo project.ReviewRepository,
	employeeRepo employee.EmployeeRepository,
) project.ProjectService {
	return &ProjectServiceImpl{
		tx:           tx,
		projectRepo:  projectRepo,
		taskRepo:     taskRepo,
		reviewRepo:   reviewRepo,
		employeeRepo: employeeRepo,
		now:          time.Now,
	}
}

// owned loads projectID and checks the actor manages it.
func (s *ProjectServiceImpl) owned(ctx context.Context, actor user.Principal, projectID int64) (project.Project, int64, error) {
	managerID, err := actor.Employee()
	if err != nil {
		return project.Project{}, 0, err
	}
	p, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return project.Project{}, 0, err
	}
	if !p.OwnedBy(managerID) {
		return project.Project{}, 0, project.ErrNotProjectOwner
	}
	return p, managerID, nil
}

func indexMembers(members []employee.Employee) map[int64]employee.Employee {
	byID := make(map[int64]employee.Employee, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}
	return byID
}

// Create implements project.ProjectService.
func (s *ProjectServiceImpl) Create(ctx context.Context, actor user.Principal, req project.CreateProjectRequest) (project.ProjectResponse, error) {
	if err := req.Validate(); err != nil {
		return project.ProjectResponse{}, err
	}
	managerID, err := actor.Employee()
	if err != nil {
		return project.ProjectResponse{}, err
	}

	created, err := s.projectRepo.Create(ctx, req.ToProject(managerID))
	if err != nil {
		return project.ProjectResponse{}, fmt.Errorf("failed to create project: %w", err)
	}
	slog.Info("project created", "project_id", created.ID, "manager_id", managerID)
	return project.NewProjectResponse(created), nil
}

// ListManaged implements project.ProjectService.
func (s *ProjectServiceImpl) ListManaged(ctx context.Context, actor user.Principal) ([]project.ProjectResponse, error) {
	managerID, err := actor.Employee()
	if err != nil {
		return nil, err
	}
	list, err := s.projectRepo.ListByManager(ctx, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	out := make([]project.ProjectResponse, 0, len(list))
	for _, p := range list {
		out = append(out, project.NewProjectResponse(p))
	}
	return out, nil
}

// Details implements project.ProjectService. Available members are the
// manager's department colleagues not yet on the project.
func (s *ProjectServiceImpl) Details(ctx context.Context, actor user.Principal, projectID int64) (project.ProjectDetailResponse, error) {
	p, managerID, err := s.owned(ctx, actor, projectID)
	if err != nil {
		return project.ProjectDetailResponse{}, err
	}

	members, err := s.projectRepo.ListMembers(ctx, p.ID)
	if err != nil {
		return project.ProjectDetailResponse{}, fmt.Errorf("failed to list project members: %w", err)
	}
	assigned := indexMembers(members)

	manager, err := s.employeeRepo.GetByID(ctx, managerID)
	if err != nil {
		return project.ProjectDetailResponse{}, fmt.Errorf("failed to get manager: %w", err)
	}
	var available []employee.Employee
	if manager.DepartmentID != nil {
		colleagues, err := s.employeeRepo.ListByDepartment(ctx, *manager.DepartmentID)
		if err != nil {
			return project.ProjectDetailResponse{}, fmt.Errorf("failed to list department members: %w", err)
		}
		for _, c := range colleagues {
			if _, ok := assigned[c.ID]; !ok && c.ID != managerID {
				available = append(available, c)
			}
		}
	}

	tasks, err := s.taskRepo.ListByProject(ctx, p.ID)
	if err != nil {
		return project.ProjectDetailResponse{}, fmt.Errorf("failed to list tasks: %w", err)
	}

	p.MemberCount = len(members)
	return project.ProjectDetailResponse{
		Project:          project.NewProjectResponse(p),
		Members:          employee.NewEmployeeSummaries(members),
		AvailableMembers: employee.NewEmployeeSummaries(available),
		Tasks:            project.NewTaskResponses(tasks),
	}, nil
}

// AddTask implements project.ProjectService.
func (s *ProjectServiceImpl) AddTask(ctx context.Context, actor user.Principal, req project.AddTaskRequest) (project.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return project.TaskResponse{}, err
	}
	p, _, err := s.owned(ctx, actor, req.ProjectID)
	if err != nil {
		return project.TaskResponse{}, err
	}
	if p.Status == project.StatusCompleted {
		return project.TaskResponse{}, project.ErrProjectCompleted
	}

	members, err := s.projectRepo.ListMembers(ctx, p.ID)
	if err != nil {
		return project.TaskResponse{}, fmt.Errorf("failed to list project members: %w", err)
	}
	assignee, ok := indexMembers(members)[req.AssignedEmployeeID]
	if !ok {
		return project.TaskResponse{}, project.ErrNotMember
	}

	var created project.Task
	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.taskRepo.Create(txCtx, project.Task{
			ProjectID:          p.ID,
			Description:        req.Description,
			AssignedEmployeeID: &assignee.ID,
		})
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		if p.Status == project.StatusAssigned {
			if err := s.projectRepo.UpdateStatus(txCtx, p.ID, project.StatusInProgress); err != nil {
				return fmt.Errorf("failed to start project: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return project.TaskResponse{}, err
	}

	name := assignee.FullName()
	created.ProjectName = p.Name
	created.AssignedEmployeeName = &name
	return project.NewTaskResponse(created), nil
}

// AssignMember implements project.ProjectService.
func (s *ProjectServiceImpl) AssignMember(ctx context.Context, actor user.Principal, projectID, employeeID int64) error {
	p, managerID, err := s.owned(ctx, actor, projectID)
	if err != nil {
		return err
	}
	if p.Status == project.StatusCompleted {
		return project.ErrProjectCompleted
	}

	manager, err := s.employeeRepo.GetByID(ctx, managerID)
	if err != nil {
		return fmt.Errorf("failed to get manager: %w", err)
	}
	target, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}
	if !target.InDepartment(manager.DepartmentID) {
		return project.ErrOutsideDepartment
	}

	return s.projectRepo.AddMember(ctx, p.ID, target.ID)
}

// UnassignMember implements project.ProjectService.
func (s *ProjectServiceImpl) UnassignMember(ctx context.Context, actor user.Principal, projectID, employeeID int64) error {
	p, _, err := s.owned(ctx, actor, projectID)
	if err != nil {
		return err
	}
	return s.projectRepo.RemoveMember(ctx, p.ID, employeeID)
}

// Delete implements project.ProjectService.
func (s *ProjectServiceImpl) Delete(ctx context.Context, actor user.Principal, projectID int64) error {
	p, _, err := s.owned(ctx, actor, projectID)
	if err != nil {
		return err
	}
	if err := s.projectRepo.Delete(ctx, p.ID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	slog.Info("project deleted", "project_id", p.ID)
	return nil
}

// ReviewForm implements project.ProjectService.
func (s *ProjectServiceImpl) ReviewForm(ctx context.Context, actor user.Principal, projectID int64) (project.ReviewFormResponse, error) {
	p, _, err := s.owned(ctx, actor, projectID)
	if err != nil {
		return project.ReviewFormResponse{}, err
	}
	members, err := s.projectRepo.ListMembers(ctx, p.ID)
	if err != nil {
		return project.ReviewFormResponse{}, fmt.Errorf("failed to list project members: %w", err)
	}

	items := make([]project.ReviewFormItem, 0, len(members))
	for _, m := range members {
		items = append(items, project.ReviewFormItem{
			EmployeeID:   m.ID,
			EmployeeName: m.FullName(),
			Rating:       project.MaxRating,
		})
	}
	p.MemberCount = len(members)
	return project.ReviewFormResponse{Project: project.NewProjectResponse(p), Reviews: items}, nil
}

// SubmitFinalReviews implements project.ProjectService.
func (s *ProjectServiceImpl) SubmitFinalReviews(ctx context.Context, actor user.Principal, req project.SubmitFinalReviewsRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	p, managerID, err := s.owned(ctx, actor, req.ProjectID)
	if err != nil {
		return err
	}
	if p.Status == project.StatusCompleted {
		return project.ErrProjectCompleted
	}

	members, err := s.projectRepo.ListMembers(ctx, p.ID)
	if err != nil {
		return fmt.Errorf("failed to list project members: %w", err)
	}
	assigned := indexMembers(members)
	var errs validator.ValidationErrors
	for _, item := range req.Reviews {
		if _, ok := assigned[item.EmployeeID]; !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "reviews.employee_id",
				Message: fmt.Sprintf("employee %d is not assigned to this project", item.EmployeeID),
			})
		}
	}
	if len(errs) > 0 {
		return errs
	}

	reviewDate := s.now()
	return s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		for _, item := range req.Reviews {
			if _, err := s.reviewRepo.Create(txCtx, project.PerformanceReview{
				ProjectID:  p.ID,
				EmployeeID: item.EmployeeID,
				ManagerID:  managerID,
				Rating:     item.Rating,
				Feedback:   item.Feedback,
				ReviewDate: reviewDate,
			}); err != nil {
				return fmt.Errorf("failed to create review: %w", err)
			}
		}
		if err := s.projectRepo.UpdateStatus(txCtx, p.ID, project.StatusCompleted); err != nil {
			return fmt.Errorf("failed to complete project: %w", err)
		}
		if err := s.projectRepo.ClearMembers(txCtx, p.ID); err != nil {
			return fmt.Errorf("failed to clear project members: %w", err)
		}
		return nil
	})
}

// MyProjects implements project.ProjectService.
func (s *ProjectServiceImpl) MyProjects(ctx context.Context, actor user.Principal) ([]project.MyProjectResponse, error) {
	employeeID, err := actor.Employee()
	if err != nil {
		return nil, err
	}

	projects, err := s.projectRepo.ListByMember(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	tasks, err := s.taskRepo.ListByAssignee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	byProject := make(map[int64][]project.Task, len(projects))
	for _, t := range tasks {
		byProject[t.ProjectID] = append(byProject[t.ProjectID], t)
	}

	out := make([]project.MyProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, project.MyProjectResponse{
			Project: project.NewProjectResponse(p),
			Tasks:   project.NewTaskResponses(byProject[p.ID]),
		})
	}
	return out, nil
}

// CompleteTask implements project.ProjectService.
func (s *ProjectServiceImpl) CompleteTask(ctx context.Context, actor user.Principal, taskID int64) (project.TaskResponse, error) {
	employeeID, err := actor.Employee()
	if err != nil {
		return project.TaskResponse{}, err
	}
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return project.TaskResponse{}, err
	}
	if !task.AssignedTo(employeeID) {
		return project.TaskResponse{}, project.ErrTaskNotAssigned
	}
	if task.IsCompleted {
		return project.TaskResponse{}, project.ErrTaskCompleted
	}

	if err := s.taskRepo.MarkCompleted(ctx, task.ID); err != nil {
		return project.TaskResponse{}, err
	}
	task.IsCompleted = true
	return project.NewTaskResponse(task), nil
}

// MyReviews implements project.ProjectService.
func (s *ProjectServiceImpl) MyReviews(ctx context.Context, actor user.Principal) ([]project.ReviewResponse, error) {
	employeeID, err := actor.Employee()
	if err != nil {
		return nil, err
	}
	list, err := s.reviewRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return project.NewReviewResponses(list), nil
}
