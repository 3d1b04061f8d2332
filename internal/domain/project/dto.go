package project

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

type CreateProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Deadline    *string `json:"deadline,omitempty"`

	deadline *time.Time
}

func (r *CreateProjectRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 200 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 200 characters",
		})
	}

	r.deadline = nil
	if r.Deadline != nil && !validator.IsEmpty(*r.Deadline) {
		d, ok := validator.IsValidDate(*r.Deadline)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "deadline",
				Message: "deadline must be in YYYY-MM-DD format",
			})
		} else {
			r.deadline = &d
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *CreateProjectRequest) ToProject(managerID int64) Project {
	var desc *string
	if r.Description != nil && !validator.IsEmpty(*r.Description) {
		d := strings.TrimSpace(*r.Description)
		desc = &d
	}
	return Project{
		Name:        strings.TrimSpace(r.Name),
		Description: desc,
		Deadline:    r.deadline,
		Status:      StatusAssigned,
		ManagerID:   managerID,
	}
}

type AddTaskRequest struct {
	ProjectID          int64  `json:"-"` // From URL
	Description        string `json:"description"`
	AssignedEmployeeID int64  `json:"assigned_employee_id"`
}

func (r *AddTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	}
	if r.AssignedEmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "assigned_employee_id",
			Message: "assigned_employee_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReviewItem struct {
	EmployeeID int64   `json:"employee_id"`
	Rating     int     `json:"rating"`
	Feedback   *string `json:"feedback,omitempty"`
}

type SubmitFinalReviewsRequest struct {
	ProjectID int64        `json:"-"` // From URL
	Reviews   []ReviewItem `json:"reviews"`
}

func (r *SubmitFinalReviewsRequest) Validate() error {
	var errs validator.ValidationErrors

	seen := make(map[int64]bool, len(r.Reviews))
	for _, item := range r.Reviews {
		if item.EmployeeID <= 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "reviews.employee_id",
				Message: "employee_id is required for every review",
			})
			continue
		}
		if seen[item.EmployeeID] {
			errs = append(errs, validator.ValidationError{
				Field:   "reviews.employee_id",
				Message: "each employee can only be reviewed once",
			})
		}
		seen[item.EmployeeID] = true
		if item.Rating < MinRating || item.Rating > MaxRating {
			errs = append(errs, validator.ValidationError{
				Field:   "reviews.rating",
				Message: "rating must be between 1 and 5",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ProjectResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Deadline    *string `json:"deadline,omitempty"`
	Status      string  `json:"status"`
	ManagerID   int64   `json:"manager_id"`
	MemberCount int     `json:"member_count"`
	CreatedAt   string  `json:"created_at"`
}

func NewProjectResponse(p Project) ProjectResponse {
	var deadline *string
	if p.Deadline != nil {
		d := p.Deadline.Format("2006-01-02")
		deadline = &d
	}
	return ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Deadline:    deadline,
		Status:      string(p.Status),
		ManagerID:   p.ManagerID,
		MemberCount: p.MemberCount,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}

type TaskResponse struct {
	ID                   int64   `json:"id"`
	ProjectID            int64   `json:"project_id"`
	ProjectName          string  `json:"project_name,omitempty"`
	Description          string  `json:"description"`
	IsCompleted          bool    `json:"is_completed"`
	AssignedEmployeeID   *int64  `json:"assigned_employee_id,omitempty"`
	AssignedEmployeeName *string `json:"assigned_employee_name,omitempty"`
}

func NewTaskResponse(t Task) TaskResponse {
	return TaskResponse{
		ID:                   t.ID,
		ProjectID:            t.ProjectID,
		ProjectName:          t.ProjectName,
		Description:          t.Description,
		IsCompleted:          t.IsCompleted,
		AssignedEmployeeID:   t.AssignedEmployeeID,
		AssignedEmployeeName: t.AssignedEmployeeName,
	}
}

func NewTaskResponses(list []Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(list))
	for _, t := range list {
		out = append(out, NewTaskResponse(t))
	}
	return out
}

type ProjectDetailResponse struct {
	Project          ProjectResponse            `json:"project"`
	Members          []employee.EmployeeSummary `json:"members"`
	AvailableMembers []employee.EmployeeSummary `json:"available_members"`
	Tasks            []TaskResponse             `json:"tasks"`
}

// MyProjectResponse is a project seen from one of its members.
type MyProjectResponse struct {
	Project ProjectResponse `json:"project"`
	Tasks   []TaskResponse  `json:"tasks"`
}

type ReviewFormItem struct {
	EmployeeID   int64  `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Rating       int    `json:"rating"`
}

// ReviewFormResponse pre-fills one review per current member.
type ReviewFormResponse struct {
	Project ProjectResponse  `json:"project"`
	Reviews []ReviewFormItem `json:"reviews"`
}

type ReviewResponse struct {
	ID         int64   `json:"id"`
	ProjectID  int64   `json:"project_id"`
	EmployeeID int64   `json:"employee_id"`
	ManagerID  int64   `json:"manager_id"`
	Rating     int     `json:"rating"`
	Feedback   *string `json:"feedback,omitempty"`
	ReviewDate string  `json:"review_date"`
}

func NewReviewResponses(list []PerformanceReview) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(list))
	for _, r := range list {
		out = append(out, ReviewResponse{
			ID:         r.ID,
			ProjectID:  r.ProjectID,
			EmployeeID: r.EmployeeID,
			ManagerID:  r.ManagerID,
			Rating:     r.Rating,
			Feedback:   r.Feedback,
			ReviewDate: r.ReviewDate.Format("2006-01-02"),
		})
	}
	return out
}
