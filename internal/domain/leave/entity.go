package leave

import (
	"strings"
	"time"
)

// Status is the approval stage of a leave request.
type Status string

const (
	StatusPendingManager  Status = "Pending Manager Approval"
	StatusPendingHR       Status = "Pending HR Approval"
	StatusManagerRejected Status = "Manager Rejected"
	StatusHRApproved      Status = "HR Approved"
	StatusHRRejected      Status = "HR Rejected"
)

// IsApproved is true only for the final approved state.
func (s Status) IsApproved() bool {
	return s == StatusHRApproved
}

// IsPending reports whether the request still waits on an approver.
func (s Status) IsPending() bool {
	return s == StatusPendingManager || s == StatusPendingHR
}

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusHRApproved, StatusHRRejected, StatusManagerRejected:
		return true
	}
	return false
}

type DurationType string

const (
	DurationFullDay       DurationType = "Full Day"
	DurationHalfDayFirst  DurationType = "Half Day - First Half"
	DurationHalfDaySecond DurationType = "Half Day - Second Half"
	halfDayDurationPrefix              = "Half Day"
)

var DurationTypes = []DurationType{DurationFullDay, DurationHalfDayFirst, DurationHalfDaySecond}

func (d DurationType) IsHalfDay() bool {
	return strings.HasPrefix(string(d), halfDayDurationPrefix)
}

func (d DurationType) IsValid() bool {
	for _, t := range DurationTypes {
		if d == t {
			return true
		}
	}
	return false
}

type LeaveRequest struct {
	ID                  int64
	EmployeeID          int64
	LeaveType           string
	StartDate           time.Time
	EndDate             time.Time
	Reason              *string
	RequestDate         time.Time
	DurationType        DurationType
	Status              Status
	ManagerApprovedByID *int64
	HRApprovedByID      *int64

	// Join
	EmployeeName         string
	EmployeeDepartmentID *int64
}

// Covers reports whether day falls inside [StartDate, EndDate], comparing
// calendar dates only.
func (r LeaveRequest) Covers(day time.Time) bool {
	d := truncateDay(day)
	return !d.Before(truncateDay(r.StartDate)) && !d.After(truncateDay(r.EndDate))
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
