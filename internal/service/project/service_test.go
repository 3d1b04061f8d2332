package project

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hrms-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type team struct {
	store    *servicetest.Store
	tx       *servicetest.Tx
	svc      *ProjectServiceImpl
	manager  employee.Employee
	dev      employee.Employee
	qa       employee.Employee
	outsider employee.Employee
}

func newTeam(t *testing.T) team {
	t.Helper()
	store := servicetest.NewStore()
	dept := store.AddDepartment("Engineering", nil)
	other := store.AddDepartment("Sales", nil)

	tm := team{store: store, tx: &servicetest.Tx{}}
	tm.manager = store.AddEmployee(employee.Employee{FirstName: "Max", LastName: "M", DepartmentID: &dept.ID}, user.RoleManager)
	tm.dev = store.AddEmployee(employee.Employee{FirstName: "Dev", LastName: "D", DepartmentID: &dept.ID}, user.RoleEmployee)
	tm.qa = store.AddEmployee(employee.Employee{FirstName: "Quinn", LastName: "Q", DepartmentID: &dept.ID}, user.RoleEmployee)
	tm.outsider = store.AddEmployee(employee.Employee{FirstName: "Oli", LastName: "O", DepartmentID: &other.ID}, user.RoleEmployee)

	tm.svc = NewProjectService(tm.tx, store.ProjectRepository(), store.TaskRepository(), store.ReviewRepository(), store.EmployeeRepository()).(*ProjectServiceImpl)
	tm.svc.now = func() time.Time { return time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC) }
	return tm
}

func (tm team) as(e employee.Employee) user.Principal {
	return tm.store.Principal(e.ID)
}

func TestProjectService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	tm := newTeam(t)
	mgr := tm.as(tm.manager)

	deadline := "2024-12-31"
	created, err := tm.svc.Create(ctx, mgr, project.CreateProjectRequest{Name: "Portal", Deadline: &deadline})
	require.NoError(t, err)
	assert.Equal(t, string(project.StatusAssigned), created.Status)
	require.NotNil(t, created.Deadline)
	assert.Equal(t, deadline, *created.Deadline)

	require.NoError(t, tm.svc.AssignMember(ctx, mgr, created.ID, tm.dev.ID))
	assert.ErrorIs(t, tm.svc.AssignMember(ctx, mgr, created.ID, tm.dev.ID), project.ErrAlreadyMember)
	assert.ErrorIs(t, tm.svc.AssignMember(ctx, mgr, created.ID, tm.outsider.ID), project.ErrOutsideDepartment)

	details, err := tm.svc.Details(ctx, mgr, created.ID)
	require.NoError(t, err)
	require.Len(t, details.Members, 1)
	assert.Equal(t, tm.dev.ID, details.Members[0].ID)
	require.Len(t, details.AvailableMembers, 1)
	assert.Equal(t, tm.qa.ID, details.AvailableMembers[0].ID)

	_, err = tm.svc.AddTask(ctx, mgr, project.AddTaskRequest{ProjectID: created.ID, Description: "Login page", AssignedEmployeeID: tm.qa.ID})
	assert.ErrorIs(t, err, project.ErrNotMember)

	task, err := tm.svc.AddTask(ctx, mgr, project.AddTaskRequest{ProjectID: created.ID, Description: "Login page", AssignedEmployeeID: tm.dev.ID})
	require.NoError(t, err)
	assert.Equal(t, "Portal", task.ProjectName)
	require.NotNil(t, task.AssignedEmployeeName)
	assert.Equal(t, "Dev D", *task.AssignedEmployeeName)
	assert.Equal(t, project.StatusInProgress, tm.store.Projects[created.ID].Status)

	mine, err := tm.svc.MyProjects(ctx, tm.as(tm.dev))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Len(t, mine[0].Tasks, 1)

	_, err = tm.svc.CompleteTask(ctx, tm.as(tm.qa), task.ID)
	assert.ErrorIs(t, err, project.ErrTaskNotAssigned)
	done, err := tm.svc.CompleteTask(ctx, tm.as(tm.dev), task.ID)
	require.NoError(t, err)
	assert.True(t, done.IsCompleted)
	_, err = tm.svc.CompleteTask(ctx, tm.as(tm.dev), task.ID)
	assert.ErrorIs(t, err, project.ErrTaskCompleted)

	form, err := tm.svc.ReviewForm(ctx, mgr, created.ID)
	require.NoError(t, err)
	require.Len(t, form.Reviews, 1)
	assert.Equal(t, project.MaxRating, form.Reviews[0].Rating)

	feedback := "Solid work"
	err = tm.svc.SubmitFinalReviews(ctx, mgr, project.SubmitFinalReviewsRequest{
		ProjectID: created.ID,
		Reviews:   []project.ReviewItem{{EmployeeID: tm.dev.ID, Rating: 4, Feedback: &feedback}},
	})
	require.NoError(t, err)
	assert.Equal(t, project.StatusCompleted, tm.store.Projects[created.ID].Status)
	assert.Empty(t, tm.store.Members[created.ID])

	reviews, err := tm.svc.MyReviews(ctx, tm.as(tm.dev))
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 4, reviews[0].Rating)
	assert.Equal(t, tm.manager.ID, reviews[0].ManagerID)
	assert.Equal(t, "2024-07-01", reviews[0].ReviewDate)

	err = tm.svc.SubmitFinalReviews(ctx, mgr, project.SubmitFinalReviewsRequest{ProjectID: created.ID})
	assert.ErrorIs(t, err, project.ErrProjectCompleted)
	assert.ErrorIs(t, tm.svc.AssignMember(ctx, mgr, created.ID, tm.qa.ID), project.ErrProjectCompleted)
}

func TestProjectService_OwnerOnly(t *testing.T) {
	ctx := context.Background()
	tm := newTeam(t)
	otherManager := tm.store.AddEmployee(employee.Employee{FirstName: "Nora"}, user.RoleManager)
	p := tm.store.AddProject(project.Project{Name: "Secret", ManagerID: tm.manager.ID}, tm.dev.ID)
	intruder := tm.as(otherManager)

	_, err := tm.svc.Details(ctx, intruder, p.ID)
	assert.ErrorIs(t, err, project.ErrNotProjectOwner)
	assert.ErrorIs(t, tm.svc.Delete(ctx, intruder, p.ID), project.ErrNotProjectOwner)
	assert.ErrorIs(t, tm.svc.UnassignMember(ctx, intruder, p.ID, tm.dev.ID), project.ErrNotProjectOwner)

	_, err = tm.svc.Details(ctx, intruder, 9999)
	assert.ErrorIs(t, err, project.ErrProjectNotFound)

	mgr := tm.as(tm.manager)
	require.NoError(t, tm.svc.UnassignMember(ctx, mgr, p.ID, tm.dev.ID))
	assert.ErrorIs(t, tm.svc.UnassignMember(ctx, mgr, p.ID, tm.dev.ID), project.ErrNotMember)

	require.NoError(t, tm.svc.Delete(ctx, mgr, p.ID))
	list, err := tm.svc.ListManaged(ctx, mgr)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProjectService_SubmitFinalReviewsValidation(t *testing.T) {
	ctx := context.Background()
	tm := newTeam(t)
	mgr := tm.as(tm.manager)
	p := tm.store.AddProject(project.Project{Name: "Portal", ManagerID: tm.manager.ID, Status: project.StatusInProgress}, tm.dev.ID)

	var verrs validator.ValidationErrors
	err := tm.svc.SubmitFinalReviews(ctx, mgr, project.SubmitFinalReviewsRequest{
		ProjectID: p.ID,
		Reviews:   []project.ReviewItem{{EmployeeID: tm.dev.ID, Rating: 6}},
	})
	require.ErrorAs(t, err, &verrs)

	err = tm.svc.SubmitFinalReviews(ctx, mgr, project.SubmitFinalReviewsRequest{
		ProjectID: p.ID,
		Reviews:   []project.ReviewItem{{EmployeeID: tm.qa.ID, Rating: 3}},
	})
	require.ErrorAs(t, err, &verrs)
	assert.Zero(t, tm.tx.Calls)
	assert.Equal(t, project.StatusInProgress, tm.store.Projects[p.ID].Status)
}

func TestProjectService_AddTaskFailureKeepsStatus(t *testing.T) {
	ctx := context.Background()
	tm := newTeam(t)
	p := tm.store.AddProject(project.Project{Name: "Portal", ManagerID: tm.manager.ID}, tm.dev.ID)
	tm.store.Failures["project.UpdateStatus"] = errors.New("boom")

	_, err := tm.svc.AddTask(ctx, tm.as(tm.manager), project.AddTaskRequest{ProjectID: p.ID, Description: "x", AssignedEmployeeID: tm.dev.ID})
	assert.Error(t, err)
	assert.Equal(t, 1, tm.tx.Calls)
	assert.Equal(t, project.StatusAssigned, tm.store.Projects[p.ID].Status)
}
