package leave

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 5, 9, 0, 0, 0, time.UTC)

type org struct {
	store    *servicetest.Store
	svc      *LeaveServiceImpl
	dept     int64
	other    int64
	manager  employee.Employee
	staff    employee.Employee
	outsider employee.Employee
	hr       employee.Employee
	hr2      employee.Employee
}

func newOrg(t *testing.T) org {
	t.Helper()
	store := servicetest.NewStore()
	dept := store.AddDepartment("Engineering", nil)
	other := store.AddDepartment("Sales", nil)

	o := org{store: store, dept: dept.ID, other: other.ID}
	o.manager = store.AddEmployee(employee.Employee{FirstName: "Max", LastName: "Manager", DepartmentID: &dept.ID}, user.RoleManager)
	store.SetHead(dept.ID, o.manager.ID)
	o.staff = store.AddEmployee(employee.Employee{FirstName: "Sue", LastName: "Staff", DepartmentID: &dept.ID}, user.RoleEmployee)
	o.outsider = store.AddEmployee(employee.Employee{FirstName: "Oli", LastName: "Out", DepartmentID: &other.ID}, user.RoleEmployee)
	o.hr = store.AddEmployee(employee.Employee{FirstName: "Hana", LastName: "HR"}, user.RoleHR)
	o.hr2 = store.AddEmployee(employee.Employee{FirstName: "Hugo", LastName: "HR"}, user.RoleHR)

	o.svc = NewLeaveService(store.LeaveRepository(), store.EmployeeRepository()).(*LeaveServiceImpl)
	o.svc.now = func() time.Time { return fixedNow }
	return o
}

func (o org) as(e employee.Employee) user.Principal {
	return o.store.Principal(e.ID)
}

func apply(start, end string) leave.ApplyLeaveRequest {
	return leave.ApplyLeaveRequest{LeaveType: "Annual", StartDate: start, EndDate: end, DurationType: string(leave.DurationFullDay)}
}

func TestLeaveService_ApplyRouting(t *testing.T) {
	ctx := context.Background()
	o := newOrg(t)

	t.Run("employee with department head goes to manager", func(t *testing.T) {
		resp, err := o.svc.Apply(ctx, o.as(o.staff), apply("2024-06-10", "2024-06-11"))
		require.NoError(t, err)
		assert.Equal(t, string(leave.StatusPendingManager), resp.Status)
		assert.Equal(t, "Sue Staff", resp.EmployeeName)
		assert.Equal(t, fixedNow.Format(time.RFC3339), resp.RequestDate)
	})

	t.Run("employee without department head goes to hr", func(t *testing.T) {
		resp, err := o.svc.Apply(ctx, o.as(o.outsider), apply("2024-06-10", "2024-06-10"))
		require.NoError(t, err)
		assert.Equal(t, string(leave.StatusPendingHR), resp.Status)
	})

	t.Run("manager always goes to hr", func(t *testing.T) {
		resp, err := o.svc.Apply(ctx, o.as(o.manager), apply("2024-06-10", "2024-06-12"))
		require.NoError(t, err)
		assert.Equal(t, string(leave.StatusPendingHR), resp.Status)
		assert.Nil(t, resp.ManagerApprovedByID)
	})

	t.Run("hr reporting to self is approved at once", func(t *testing.T) {
		hr := o.store.Employees[o.hr.ID]
		hr.ReportingHRID = &o.hr.ID
		o.store.Employees[o.hr.ID] = hr

		resp, err := o.svc.Apply(ctx, o.as(o.hr), apply("2024-06-10", "2024-06-10"))
		require.NoError(t, err)
		assert.Equal(t, string(leave.StatusHRApproved), resp.Status)
		require.NotNil(t, resp.HRApprovedByID)
		assert.Equal(t, o.hr.ID, *resp.HRApprovedByID)
	})

	t.Run("hr with another reporting hr waits", func(t *testing.T) {
		hr := o.store.Employees[o.hr2.ID]
		hr.ReportingHRID = &o.hr.ID
		o.store.Employees[o.hr2.ID] = hr

		resp, err := o.svc.Apply(ctx, o.as(o.hr2), apply("2024-06-10", "2024-06-10"))
		require.NoError(t, err)
		assert.Equal(t, string(leave.StatusPendingHR), resp.Status)
	})

	t.Run("half day pins end date", func(t *testing.T) {
		req := apply("2024-06-10", "2024-06-20")
		req.DurationType = string(leave.DurationHalfDayFirst)
		resp, err := o.svc.Apply(ctx, o.as(o.staff), req)
		require.NoError(t, err)
		assert.Equal(t, "2024-06-10", resp.EndDate)
	})

	t.Run("account without employee profile", func(t *testing.T) {
		_, err := o.svc.Apply(ctx, user.Principal{UserID: 99, Role: user.RoleEmployee}, apply("2024-06-10", "2024-06-10"))
		assert.ErrorIs(t, err, user.ErrNoEmployeeProfile)
	})
}

func TestLeaveService_ApprovalChain(t *testing.T) {
	ctx := context.Background()
	o := newOrg(t)

	created, err := o.svc.Apply(ctx, o.as(o.staff), apply("2024-06-10", "2024-06-11"))
	require.NoError(t, err)

	// HR cannot skip the manager stage.
	_, err = o.svc.Approve(ctx, o.as(o.hr), created.ID)
	assert.ErrorIs(t, err, leave.ErrUnauthorizedApprover)

	queue, err := o.svc.ManagerQueue(ctx, o.as(o.manager))
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, created.ID, queue[0].ID)

	resp, err := o.svc.Approve(ctx, o.as(o.manager), created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusPendingHR), resp.Status)
	assert.Equal(t, &o.manager.ID, resp.ManagerApprovedByID)

	// A second manager decision is no longer valid.
	_, err = o.svc.Reject(ctx, o.as(o.manager), created.ID)
	assert.ErrorIs(t, err, leave.ErrUnauthorizedApprover)

	hrQueue, err := o.svc.HRQueue(ctx, o.as(o.hr))
	require.NoError(t, err)
	require.Len(t, hrQueue, 1)

	resp, err = o.svc.Approve(ctx, o.as(o.hr), created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusHRApproved), resp.Status)
	assert.Equal(t, &o.hr.ID, resp.HRApprovedByID)

	stored := o.store.Leaves[created.ID]
	assert.Equal(t, leave.StatusHRApproved, stored.Status)

	_, err = o.svc.Reject(ctx, o.as(o.hr), created.ID)
	assert.ErrorIs(t, err, leave.ErrInvalidTransition)
	assert.Equal(t, leave.StatusHRApproved, o.store.Leaves[created.ID].Status)
}

func TestLeaveService_ManagerScope(t *testing.T) {
	ctx := context.Background()
	o := newOrg(t)

	// A manager of another department cannot act on the request.
	otherManager := o.store.AddEmployee(employee.Employee{FirstName: "Nora", DepartmentID: &o.other}, user.RoleManager)
	created, err := o.svc.Apply(ctx, o.as(o.staff), apply("2024-06-10", "2024-06-10"))
	require.NoError(t, err)

	_, err = o.svc.Reject(ctx, o.as(otherManager), created.ID)
	assert.ErrorIs(t, err, leave.ErrUnauthorizedApprover)
	assert.Equal(t, leave.StatusPendingManager, o.store.Leaves[created.ID].Status)

	_, err = o.svc.GetRequest(ctx, o.as(otherManager), created.ID)
	assert.ErrorIs(t, err, leave.ErrUnauthorizedApprover)
	_, err = o.svc.GetRequest(ctx, o.as(o.outsider), created.ID)
	assert.ErrorIs(t, err, leave.ErrUnauthorizedApprover)

	for _, viewer := range []employee.Employee{o.staff, o.manager, o.hr} {
		got, err := o.svc.GetRequest(ctx, o.as(viewer), created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
	}

	resp, err := o.svc.Reject(ctx, o.as(o.manager), created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusManagerRejected), resp.Status)

	_, err = o.svc.ManagerQueue(ctx, o.as(o.hr))
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
	_, err = o.svc.HRQueue(ctx, o.as(o.manager))
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
}

func TestLeaveService_GuardedDecision(t *testing.T) {
	ctx := context.Background()
	o := newOrg(t)
	created, err := o.svc.Apply(ctx, o.as(o.manager), apply("2024-06-10", "2024-06-10"))
	require.NoError(t, err)

	// Another HR decides between this HR's read and write.
	current, err := o.store.LeaveRepository().GetByID(ctx, created.ID)
	require.NoError(t, err)
	decided := current
	decided.Status = leave.StatusHRRejected
	require.NoError(t, o.store.LeaveRepository().UpdateDecision(ctx, decided, leave.StatusPendingHR))

	next, err := leave.Decide(current, leave.Approver{EmployeeID: o.hr.ID, Role: user.RoleHR}, leave.DecisionApprove)
	require.NoError(t, err)
	err = o.store.LeaveRepository().UpdateDecision(ctx, next, current.Status)
	assert.ErrorIs(t, err, leave.ErrInvalidTransition)
	assert.Equal(t, leave.StatusHRRejected, o.store.Leaves[created.ID].Status)
}

func TestLeaveService_HRQueueHidesOwnRequests(t *testing.T) {
	ctx := context.Background()
	o := newOrg(t)
	hr2 := o.store.Employees[o.hr2.ID]
	hr2.ReportingHRID = &o.hr.ID
	o.store.Employees[o.hr2.ID] = hr2

	own, err := o.svc.Apply(ctx, o.as(o.hr2), apply("2024-06-10", "2024-06-10"))
	require.NoError(t, err)

	queue, err := o.svc.HRQueue(ctx, o.as(o.hr2))
	require.NoError(t, err)
	assert.Empty(t, queue)

	queue, err = o.svc.HRQueue(ctx, o.as(o.hr))
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, own.ID, queue[0].ID)

	resp, err := o.svc.Approve(ctx, o.as(o.hr), own.ID)
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusHRApproved), resp.Status)
}

func TestLeaveService_MyRequestsAndOnLeaveToday(t *testing.T) {
	ctx := context.Background()
	o := newOrg(t)

	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return d
	}
	o.store.AddLeave(leave.LeaveRequest{EmployeeID: o.staff.ID, LeaveType: "Annual", StartDate: day("2024-06-04"), EndDate: day("2024-06-06"), RequestDate: day("2024-05-01"), Status: leave.StatusHRApproved})
	o.store.AddLeave(leave.LeaveRequest{EmployeeID: o.staff.ID, LeaveType: "Sick", StartDate: day("2024-06-05"), EndDate: day("2024-06-05"), RequestDate: day("2024-05-02"), Status: leave.StatusPendingHR})
	o.store.AddLeave(leave.LeaveRequest{EmployeeID: o.outsider.ID, LeaveType: "Annual", StartDate: day("2024-06-05"), EndDate: day("2024-06-05"), RequestDate: day("2024-05-03"), Status: leave.StatusHRApproved})

	mine, err := o.svc.GetMyRequests(ctx, o.as(o.staff), 0)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "Sick", mine[0].LeaveType)

	mine, err = o.svc.GetMyRequests(ctx, o.as(o.staff), 1)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := o.svc.OnLeaveToday(ctx, o.as(o.hr))
	require.NoError(t, err)
	assert.Len(t, all, 2)

	team, err := o.svc.OnLeaveToday(ctx, o.as(o.manager))
	require.NoError(t, err)
	require.Len(t, team, 1)
	assert.Equal(t, o.staff.ID, team[0].EmployeeID)
}

func TestLeaveService_OnLeaveTodayRefusesStaff(t *testing.T) {
	ctx := context.Background()
	o := newOrg(t)

	today := o.svc.now()
	o.store.AddLeave(leave.LeaveRequest{EmployeeID: o.manager.ID, LeaveType: "Sick", StartDate: today, EndDate: today, RequestDate: today, Status: leave.StatusHRApproved})

	list, err := o.svc.OnLeaveToday(ctx, o.as(o.staff))
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
	assert.Nil(t, list)
}
