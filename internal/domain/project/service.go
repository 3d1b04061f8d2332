package project

import (
	"context"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
)

type ProjectService interface {
	// Manager side, scoped to projects the actor manages
	Create(ctx context.Context, actor user.Principal, req CreateProjectRequest) (ProjectResponse, error)
	ListManaged(ctx context.Context, actor user.Principal) ([]ProjectResponse, error)
	Details(ctx context.Context, actor user.Principal, projectID int64) (ProjectDetailResponse, error)
	// AddTask moves an Assigned project to In Progress.
	AddTask(ctx context.Context, actor user.Principal, req AddTaskRequest) (TaskResponse, error)
	AssignMember(ctx context.Context, actor user.Principal, projectID, employeeID int64) error
	UnassignMember(ctx context.Context, actor user.Principal, projectID, employeeID int64) error
	Delete(ctx context.Context, actor user.Principal, projectID int64) error
	ReviewForm(ctx context.Context, actor user.Principal, projectID int64) (ReviewFormResponse, error)
	// SubmitFinalReviews stores the reviews, completes the project and
	// clears its members in one transaction.
	SubmitFinalReviews(ctx context.Context, actor user.Principal, req SubmitFinalReviewsRequest) error

	// Member side
	MyProjects(ctx context.Context, actor user.Principal) ([]MyProjectResponse, error)
	CompleteTask(ctx context.Context, actor user.Principal, taskID int64) (TaskResponse, error)
	MyReviews(ctx context.Context, actor user.Principal) ([]ReviewResponse, error)
}
