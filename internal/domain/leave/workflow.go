package leave

import (
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
)

// Applicant is the snapshot of the employee filing a leave request.
type Applicant struct {
	EmployeeID       int64
	Role             user.Role
	ReportingHRID    *int64
	DepartmentHeadID *int64
}

// Approver is the employee acting on a pending leave request.
type Approver struct {
	EmployeeID   int64
	Role         user.Role
	DepartmentID *int64
}

// Decision is the action an approver takes on a pending request.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// NormalizeDuration pins a half day request to its start date.
func NormalizeDuration(req *LeaveRequest) {
	if req.DurationType.IsHalfDay() {
		req.EndDate = req.StartDate
	}
}

// Route sets the initial status of a new request and clears both approver
// fields, except for an HR applicant without a distinct reporting HR whose
// request is approved on the spot.
func Route(applicant Applicant, req *LeaveRequest) {
	req.ManagerApprovedByID = nil
	req.HRApprovedByID = nil

	switch applicant.Role {
	case user.RoleHR:
		if applicant.ReportingHRID != nil && *applicant.ReportingHRID != applicant.EmployeeID {
			req.Status = StatusPendingHR
			return
		}
		self := applicant.EmployeeID
		req.Status = StatusHRApproved
		req.HRApprovedByID = &self
	case user.RoleManager:
		req.Status = StatusPendingHR
	default:
		if applicant.DepartmentHeadID != nil {
			req.Status = StatusPendingManager
		} else {
			req.Status = StatusPendingHR
		}
	}
}

// Decide applies approver's decision to req and returns the updated copy.
// req itself is never modified; on error the returned request equals req.
//
// The manager stage may only be decided by a manager of the applicant's
// department, the HR stage by any HR employee.
func Decide(req LeaveRequest, approver Approver, decision Decision) (LeaveRequest, error) {
	if decision != DecisionApprove && decision != DecisionReject {
		return req, ErrInvalidTransition
	}
	approverID := approver.EmployeeID

	switch req.Status {
	case StatusPendingManager:
		if approver.Role != user.RoleManager || !sameDepartment(approver.DepartmentID, req.EmployeeDepartmentID) {
			return req, ErrUnauthorizedApprover
		}
		next := req
		next.ManagerApprovedByID = &approverID
		if decision == DecisionApprove {
			next.Status = StatusPendingHR
		} else {
			next.Status = StatusManagerRejected
		}
		return next, nil

	case StatusPendingHR:
		if approver.Role != user.RoleHR {
			return req, ErrUnauthorizedApprover
		}
		next := req
		next.HRApprovedByID = &approverID
		if decision == DecisionApprove {
			next.Status = StatusHRApproved
		} else {
			next.Status = StatusHRRejected
		}
		return next, nil
	}

	return req, ErrInvalidTransition
}

func sameDepartment(a, b *int64) bool {
	return a != nil && b != nil && *a == *b
}
