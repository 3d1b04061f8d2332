package department

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hrms-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepartmentService_CreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	store := servicetest.NewStore()
	svc := NewDepartmentService(store.DepartmentRepository(), store.EmployeeRepository())

	manager := store.AddEmployee(employee.Employee{FirstName: "Mia", LastName: "Manager"}, user.RoleManager)
	staff := store.AddEmployee(employee.Employee{FirstName: "Sam", LastName: "Staff"}, user.RoleEmployee)

	created, err := svc.Create(ctx, department.UpsertDepartmentRequest{Name: "  Engineering ", HeadOfDepartmentID: &manager.ID})
	require.NoError(t, err)
	assert.Equal(t, "Engineering", created.Name)
	require.NotNil(t, created.HeadOfDepartmentName)
	assert.Equal(t, "Mia Manager", *created.HeadOfDepartmentName)

	_, err = svc.Update(ctx, department.UpsertDepartmentRequest{ID: created.ID, Name: "Engineering", HeadOfDepartmentID: &staff.ID})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, department.ErrHeadNotManager.Error(), verrs.ToMap()["head_of_department_id"])

	missing := int64(999)
	_, err = svc.Create(ctx, department.UpsertDepartmentRequest{Name: "Ops", HeadOfDepartmentID: &missing})
	require.ErrorAs(t, err, &verrs)

	updated, err := svc.Update(ctx, department.UpsertDepartmentRequest{ID: created.ID, Name: "Platform"})
	require.NoError(t, err)
	assert.Equal(t, "Platform", updated.Name)
	assert.Nil(t, updated.HeadOfDepartmentID)

	_, err = svc.Update(ctx, department.UpsertDepartmentRequest{ID: 12345, Name: "Nope"})
	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)
}

func TestDepartmentService_List(t *testing.T) {
	ctx := context.Background()
	store := servicetest.NewStore()
	svc := NewDepartmentService(store.DepartmentRepository(), store.EmployeeRepository())

	sales := store.AddDepartment("Sales", nil)
	store.AddDepartment("Admin", nil)
	store.AddEmployee(employee.Employee{FirstName: "Ann", DepartmentID: &sales.ID}, user.RoleEmployee)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Admin", list[0].Name)
	assert.Equal(t, "Sales", list[1].Name)
	assert.Equal(t, 1, list[1].EmployeeCount)

	_, err = svc.Create(ctx, department.UpsertDepartmentRequest{})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}
