package employee

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hrms-backend-go/internal/service/file"
	"github.com/cmlabs-hris/hrms-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	store   *servicetest.Store
	tx      *servicetest.Tx
	svc     employee.EmployeeService
	baseDir string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := servicetest.NewStore()
	tx := &servicetest.Tx{}
	baseDir := t.TempDir()
	local, err := storage.NewLocalStorage(baseDir, "http://localhost/uploads")
	require.NoError(t, err)

	svc := NewEmployeeService(tx, store.UserRepository(), store.EmployeeRepository(), store.DepartmentRepository(), file.NewFileService(local))
	return fixture{store: store, tx: tx, svc: svc, baseDir: baseDir}
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	n := 0
	require.NoError(t, filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			n++
		}
		return err
	}))
	return n
}

func createRequest() employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		FirstName:     "Nina",
		LastName:      "New",
		Email:         "Nina.New@Example.com",
		Position:      "Engineer",
		DateOfJoining: "2024-03-01",
		Username:      "nnew",
		Password:      "password123",
		Role:          "employee",
	}
}

func TestEmployeeService_CreateEmployee(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	hr := f.store.AddEmployee(employee.Employee{FirstName: "Hana", LastName: "HR"}, user.RoleHR)
	dept := f.store.AddDepartment("Engineering", nil)

	req := createRequest()
	req.DepartmentID = &dept.ID
	req.ReportingHRID = &hr.ID
	req.Photo = &employee.Upload{Filename: "me.png", Content: strings.NewReader("png")}
	req.Certificates = []employee.Upload{
		{Filename: "degree.pdf", Content: strings.NewReader("pdf")},
		{Filename: "award.docx", Content: strings.NewReader("doc")},
	}

	resp, err := f.svc.CreateEmployee(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 1, f.tx.Calls)
	assert.Equal(t, "nina.new@example.com", resp.Email)
	assert.Equal(t, "nnew", resp.Username)
	assert.Equal(t, "employee", resp.Role)
	assert.Equal(t, "2024-03-01", resp.DateOfJoining)
	require.NotNil(t, resp.DepartmentName)
	assert.Equal(t, "Engineering", *resp.DepartmentName)
	require.NotNil(t, resp.PhotoPath)
	assert.True(t, strings.HasPrefix(*resp.PhotoPath, "photos/nnew/"))
	require.Len(t, resp.Documents, 2)
	assert.Equal(t, "degree.pdf", resp.Documents[0].DocumentName)
	assert.Equal(t, 3, countFiles(t, f.baseDir))

	u, err := f.store.UserRepository().GetByUsername(ctx, "NNEW")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")))
}

func TestEmployeeService_CreateEmployee_Conflicts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.CreateEmployee(ctx, createRequest())
	require.NoError(t, err)

	dupUser := createRequest()
	dupUser.Username = "NNEW"
	dupUser.Email = "other@example.com"
	_, err = f.svc.CreateEmployee(ctx, dupUser)
	assert.ErrorIs(t, err, user.ErrUsernameExists)

	dupEmail := createRequest()
	dupEmail.Username = "other"
	_, err = f.svc.CreateEmployee(ctx, dupEmail)
	assert.ErrorIs(t, err, employee.ErrEmailExists)
}

func TestEmployeeService_CreateEmployee_InvalidReferences(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	notHR := f.store.AddEmployee(employee.Employee{FirstName: "Ed"}, user.RoleEmployee)
	missingDept := int64(777)

	req := createRequest()
	req.ReportingHRID = &notHR.ID
	req.DepartmentID = &missingDept

	_, err := f.svc.CreateEmployee(ctx, req)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Equal(t, employee.ErrReportingHRInvalid.Error(), fields["reporting_hr_id"])
	assert.Contains(t, fields, "department_id")
	assert.Zero(t, f.tx.Calls)
}

func TestEmployeeService_CreateEmployee_RollsBackFiles(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.store.Failures["employee.CreateDocument"] = errors.New("disk full")

	req := createRequest()
	req.Photo = &employee.Upload{Filename: "me.jpg", Content: strings.NewReader("jpg")}
	req.Certificates = []employee.Upload{{Filename: "degree.pdf", Content: strings.NewReader("pdf")}}

	_, err := f.svc.CreateEmployee(ctx, req)
	assert.ErrorIs(t, err, employee.ErrTransactionFailed)
	assert.Zero(t, countFiles(t, f.baseDir))
}

func TestEmployeeService_CreateEmployee_RejectsBadFile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	req := createRequest()
	req.Photo = &employee.Upload{Filename: "me.png", Content: strings.NewReader("png")}
	req.Certificates = []employee.Upload{{Filename: "run.exe", Content: strings.NewReader("exe")}}

	_, err := f.svc.CreateEmployee(ctx, req)
	assert.ErrorIs(t, err, file.ErrInvalidFileType)
	assert.Zero(t, countFiles(t, f.baseDir))
	assert.Zero(t, f.tx.Calls)
}

func TestEmployeeService_UpdateEmployee(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	hr := f.store.AddEmployee(employee.Employee{FirstName: "Hana"}, user.RoleHR)
	other := f.store.AddEmployee(employee.Employee{FirstName: "Olga", Email: "olga@example.com"}, user.RoleEmployee)
	target := f.store.AddEmployee(employee.Employee{FirstName: "Tom", LastName: "T", Email: "tom@example.com", Position: "Dev"}, user.RoleEmployee)

	req := employee.UpdateEmployeeRequest{
		ID:            target.ID,
		FirstName:     "Thomas",
		LastName:      "T",
		Email:         "TOM@example.com",
		Position:      "Lead",
		ReportingHRID: &hr.ID,
	}
	resp, err := f.svc.UpdateEmployee(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "Thomas T", resp.FullName)
	assert.Equal(t, "Lead", resp.Position)
	assert.Equal(t, &hr.ID, resp.ReportingHRID)

	req.Email = "olga@example.com"
	_, err = f.svc.UpdateEmployee(ctx, req)
	assert.ErrorIs(t, err, employee.ErrEmailExists)

	req.Email = "tom@example.com"
	req.ReportingHRID = &other.ID
	_, err = f.svc.UpdateEmployee(ctx, req)
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	req.ID = 9999
	_, err = f.svc.UpdateEmployee(ctx, req)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeService_ListEmployees(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for _, name := range []string{"Cara", "Abe", "Bob"} {
		f.store.AddEmployee(employee.Employee{FirstName: name}, user.RoleEmployee)
	}

	resp, err := f.svc.ListEmployees(ctx, employee.EmployeeFilter{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, resp.TotalCount)
	assert.Equal(t, 2, resp.TotalPages)
	require.Len(t, resp.Employees, 2)
	assert.Equal(t, "Abe", resp.Employees[0].FirstName)
	assert.Equal(t, "Bob", resp.Employees[1].FirstName)

	hrs, err := f.svc.ListByRole(ctx, user.RoleHR)
	require.NoError(t, err)
	assert.Empty(t, hrs)

	_, err = f.svc.ListByRole(ctx, user.Role("boss"))
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestEmployeeService_GetMe(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	me := f.store.AddEmployee(employee.Employee{FirstName: "Me"}, user.RoleEmployee)

	resp, err := f.svc.GetMe(ctx, f.store.Principal(me.ID))
	require.NoError(t, err)
	assert.Equal(t, me.ID, resp.ID)

	_, err = f.svc.GetMe(ctx, user.Principal{UserID: 1, Role: user.RoleHR})
	assert.ErrorIs(t, err, user.ErrNoEmployeeProfile)
}

func TestEmployeeService_Team(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	dept := f.store.AddDepartment("Sales", nil)
	otherDept := f.store.AddDepartment("Ops", nil)

	manager := f.store.AddEmployee(employee.Employee{FirstName: "Max", DepartmentID: &dept.ID}, user.RoleManager)
	member := f.store.AddEmployee(employee.Employee{FirstName: "Amy", DepartmentID: &dept.ID}, user.RoleEmployee)
	outsider := f.store.AddEmployee(employee.Employee{FirstName: "Oli", DepartmentID: &otherDept.ID}, user.RoleEmployee)
	free := f.store.AddEmployee(employee.Employee{FirstName: "Fay"}, user.RoleEmployee)
	lonely := f.store.AddEmployee(employee.Employee{FirstName: "Lon"}, user.RoleManager)
	actor := f.store.Principal(manager.ID)

	team, err := f.svc.GetTeam(ctx, actor)
	require.NoError(t, err)
	assert.Equal(t, dept.ID, team.DepartmentID)
	require.Len(t, team.TeamMembers, 1)
	assert.Equal(t, member.ID, team.TeamMembers[0].ID)
	assert.Len(t, team.UnassignedEmployees, 2)

	require.NoError(t, f.svc.AssignToTeam(ctx, actor, free.ID))
	assert.Equal(t, &dept.ID, f.store.Employees[free.ID].DepartmentID)

	assert.ErrorIs(t, f.svc.AssignToTeam(ctx, actor, outsider.ID), employee.ErrAlreadyAssigned)
	assert.ErrorIs(t, f.svc.UnassignFromTeam(ctx, actor, outsider.ID), employee.ErrUnauthorized)
	assert.ErrorIs(t, f.svc.UnassignFromTeam(ctx, actor, manager.ID), employee.ErrUnauthorized)

	require.NoError(t, f.svc.UnassignFromTeam(ctx, actor, member.ID))
	assert.Nil(t, f.store.Employees[member.ID].DepartmentID)

	_, err = f.svc.GetTeam(ctx, f.store.Principal(lonely.ID))
	assert.ErrorIs(t, err, employee.ErrNoDepartment)

	require.NoError(t, f.svc.UnassignFromDepartment(ctx, outsider.ID))
	assert.Nil(t, f.store.Employees[outsider.ID].DepartmentID)
}
