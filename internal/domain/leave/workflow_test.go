package leave

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestNormalizeDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration DurationType
		wantEnd  time.Time
	}{
		{"full day keeps end date", DurationFullDay, date("2024-06-07")},
		{"first half pins end to start", DurationHalfDayFirst, date("2024-06-03")},
		{"second half pins end to start", DurationHalfDaySecond, date("2024-06-03")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := LeaveRequest{
				StartDate:    date("2024-06-03"),
				EndDate:      date("2024-06-07"),
				DurationType: tt.duration,
			}
			NormalizeDuration(&req)
			assert.Equal(t, tt.wantEnd, req.EndDate)
		})
	}

	t.Run("half day end before start is also pinned", func(t *testing.T) {
		req := LeaveRequest{
			StartDate:    date("2024-06-03"),
			EndDate:      date("2024-05-01"),
			DurationType: DurationHalfDayFirst,
		}
		NormalizeDuration(&req)
		assert.Equal(t, req.StartDate, req.EndDate)
	})
}

func TestRoute(t *testing.T) {
	const self = int64(10)

	tests := []struct {
		name          string
		applicant     Applicant
		wantStatus    Status
		wantHRApprove *int64
	}{
		{
			name:          "hr without reporting hr is auto approved",
			applicant:     Applicant{EmployeeID: self, Role: user.RoleHR},
			wantStatus:    StatusHRApproved,
			wantHRApprove: ptr(self),
		},
		{
			name:          "hr reporting to self is auto approved",
			applicant:     Applicant{EmployeeID: self, Role: user.RoleHR, ReportingHRID: ptr(self)},
			wantStatus:    StatusHRApproved,
			wantHRApprove: ptr(self),
		},
		{
			name:       "hr with another reporting hr waits for hr",
			applicant:  Applicant{EmployeeID: self, Role: user.RoleHR, ReportingHRID: ptr(int64(11))},
			wantStatus: StatusPendingHR,
		},
		{
			name:       "hr ignores department head",
			applicant:  Applicant{EmployeeID: self, Role: user.RoleHR, ReportingHRID: ptr(int64(11)), DepartmentHeadID: ptr(int64(12))},
			wantStatus: StatusPendingHR,
		},
		{
			name:       "manager with department head goes to hr",
			applicant:  Applicant{EmployeeID: self, Role: user.RoleManager, DepartmentHeadID: ptr(int64(12))},
			wantStatus: StatusPendingHR,
		},
		{
			name:       "manager heading own department goes to hr",
			applicant:  Applicant{EmployeeID: self, Role: user.RoleManager, DepartmentHeadID: ptr(self)},
			wantStatus: StatusPendingHR,
		},
		{
			name:       "manager without department goes to hr",
			applicant:  Applicant{EmployeeID: self, Role: user.RoleManager},
			wantStatus: StatusPendingHR,
		},
		{
			name:       "employee with department head waits for manager",
			applicant:  Applicant{EmployeeID: self, Role: user.RoleEmployee, DepartmentHeadID: ptr(int64(12))},
			wantStatus: StatusPendingManager,
		},
		{
			name:       "employee without department head escalates to hr",
			applicant:  Applicant{EmployeeID: self, Role: user.RoleEmployee},
			wantStatus: StatusPendingHR,
		},
		{
			name:       "employee reporting hr is irrelevant",
			applicant:  Applicant{EmployeeID: self, Role: user.RoleEmployee, ReportingHRID: ptr(int64(11))},
			wantStatus: StatusPendingHR,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := LeaveRequest{
				EmployeeID:          self,
				ManagerApprovedByID: ptr(int64(99)),
				HRApprovedByID:      ptr(int64(99)),
			}
			Route(tt.applicant, &req)

			assert.Equal(t, tt.wantStatus, req.Status)
			assert.Nil(t, req.ManagerApprovedByID)
			assert.Equal(t, tt.wantHRApprove, req.HRApprovedByID)
		})
	}
}

func TestRoute_IsDeterministic(t *testing.T) {
	applicant := Applicant{EmployeeID: 1, Role: user.RoleEmployee, DepartmentHeadID: ptr(int64(2))}
	var a, b LeaveRequest
	Route(applicant, &a)
	Route(applicant, &b)
	assert.Equal(t, a, b)
}

func TestDecide(t *testing.T) {
	dept := ptr(int64(5))
	otherDept := ptr(int64(6))

	manager := Approver{EmployeeID: 20, Role: user.RoleManager, DepartmentID: dept}
	foreignManager := Approver{EmployeeID: 21, Role: user.RoleManager, DepartmentID: otherDept}
	homelessManager := Approver{EmployeeID: 22, Role: user.RoleManager}
	hr := Approver{EmployeeID: 30, Role: user.RoleHR}
	employee := Approver{EmployeeID: 40, Role: user.RoleEmployee, DepartmentID: dept}

	tests := []struct {
		name        string
		status      Status
		approver    Approver
		decision    Decision
		wantStatus  Status
		wantManager *int64
		wantHR      *int64
		wantErr     error
	}{
		{"manager approves", StatusPendingManager, manager, DecisionApprove, StatusPendingHR, ptr(int64(20)), nil, nil},
		{"manager rejects", StatusPendingManager, manager, DecisionReject, StatusManagerRejected, ptr(int64(20)), nil, nil},
		{"manager of other department", StatusPendingManager, foreignManager, DecisionApprove, "", nil, nil, ErrUnauthorizedApprover},
		{"manager without department", StatusPendingManager, homelessManager, DecisionApprove, "", nil, nil, ErrUnauthorizedApprover},
		{"hr cannot decide manager stage", StatusPendingManager, hr, DecisionApprove, "", nil, nil, ErrUnauthorizedApprover},
		{"employee cannot decide", StatusPendingManager, employee, DecisionApprove, "", nil, nil, ErrUnauthorizedApprover},

		{"hr approves", StatusPendingHR, hr, DecisionApprove, StatusHRApproved, nil, ptr(int64(30)), nil},
		{"hr rejects", StatusPendingHR, hr, DecisionReject, StatusHRRejected, nil, ptr(int64(30)), nil},
		{"manager cannot decide hr stage", StatusPendingHR, manager, DecisionApprove, "", nil, nil, ErrUnauthorizedApprover},

		{"approved is terminal", StatusHRApproved, hr, DecisionReject, "", nil, nil, ErrInvalidTransition},
		{"hr rejected is terminal", StatusHRRejected, hr, DecisionApprove, "", nil, nil, ErrInvalidTransition},
		{"manager rejected is terminal", StatusManagerRejected, manager, DecisionApprove, "", nil, nil, ErrInvalidTransition},
		{"unknown decision", StatusPendingHR, hr, Decision("escalate"), "", nil, nil, ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := LeaveRequest{
				ID:                   1,
				EmployeeID:           50,
				EmployeeDepartmentID: dept,
				Status:               tt.status,
			}
			before := req

			got, err := Decide(req, tt.approver, tt.decision)
			assert.Equal(t, before, req, "input must not be mutated")

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, before, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantManager, got.ManagerApprovedByID)
			assert.Equal(t, tt.wantHR, got.HRApprovedByID)
		})
	}
}

func TestDecide_FullChain(t *testing.T) {
	dept := ptr(int64(5))
	req := LeaveRequest{EmployeeID: 50, EmployeeDepartmentID: dept}
	Route(Applicant{EmployeeID: 50, Role: user.RoleEmployee, DepartmentHeadID: ptr(int64(20))}, &req)
	require.Equal(t, StatusPendingManager, req.Status)

	req, err := Decide(req, Approver{EmployeeID: 20, Role: user.RoleManager, DepartmentID: dept}, DecisionApprove)
	require.NoError(t, err)
	require.Equal(t, StatusPendingHR, req.Status)

	req, err = Decide(req, Approver{EmployeeID: 30, Role: user.RoleHR}, DecisionApprove)
	require.NoError(t, err)
	assert.Equal(t, StatusHRApproved, req.Status)
	assert.Equal(t, ptr(int64(20)), req.ManagerApprovedByID)
	assert.Equal(t, ptr(int64(30)), req.HRApprovedByID)
	assert.True(t, req.Status.IsApproved())
	assert.True(t, req.Status.IsTerminal())
}

func TestStatusPredicates(t *testing.T) {
	assert.True(t, StatusHRApproved.IsApproved())
	for _, s := range []Status{StatusPendingManager, StatusPendingHR, StatusManagerRejected, StatusHRRejected, Status("Manager Approved")} {
		assert.False(t, s.IsApproved(), s)
	}

	assert.True(t, StatusPendingManager.IsPending())
	assert.True(t, StatusPendingHR.IsPending())
	assert.False(t, StatusHRApproved.IsPending())

	assert.True(t, StatusManagerRejected.IsTerminal())
	assert.False(t, StatusPendingHR.IsTerminal())
}

func TestLeaveRequest_Covers(t *testing.T) {
	req := LeaveRequest{StartDate: date("2024-06-05"), EndDate: date("2024-06-06")}

	assert.False(t, req.Covers(date("2024-06-04")))
	assert.True(t, req.Covers(date("2024-06-05")))
	assert.True(t, req.Covers(time.Date(2024, 6, 6, 23, 59, 0, 0, time.UTC)))
	assert.False(t, req.Covers(date("2024-06-07")))
}

func TestApplyLeaveRequest_Validate(t *testing.T) {
	t.Run("half day overrides end date before range check", func(t *testing.T) {
		req := ApplyLeaveRequest{
			LeaveType:    "Sick",
			StartDate:    "2024-06-10",
			EndDate:      "2024-06-01",
			DurationType: string(DurationHalfDaySecond),
		}
		require.NoError(t, req.Validate())
		assert.Equal(t, "2024-06-10", req.EndDate)

		entity := req.ToLeaveRequest(7, date("2024-06-01"))
		assert.Equal(t, entity.StartDate, entity.EndDate)
		assert.Equal(t, int64(7), entity.EmployeeID)
	})

	t.Run("full day end before start fails", func(t *testing.T) {
		req := ApplyLeaveRequest{
			LeaveType:    "Annual",
			StartDate:    "2024-06-10",
			EndDate:      "2024-06-01",
			DurationType: string(DurationFullDay),
		}
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "end_date")
	})

	t.Run("missing duration defaults to full day", func(t *testing.T) {
		req := ApplyLeaveRequest{LeaveType: "Annual", StartDate: "2024-06-10", EndDate: "2024-06-12"}
		require.NoError(t, req.Validate())
		assert.Equal(t, string(DurationFullDay), req.DurationType)
	})

	t.Run("unknown duration and missing type", func(t *testing.T) {
		req := ApplyLeaveRequest{StartDate: "2024-06-10", EndDate: "2024-06-12", DurationType: "Quarter Day"}
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "leave_type")
		assert.Contains(t, err.Error(), "duration_type")
	})
}
