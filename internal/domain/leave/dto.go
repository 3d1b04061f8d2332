package leave

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

type ApplyLeaveRequest struct {
	LeaveType    string  `json:"leave_type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	DurationType string  `json:"duration_type"`
	Reason       *string `json:"reason,omitempty"`

	start time.Time
	end   time.Time
}

// Validate checks the request. A half day request has its end date replaced
// by its start date before the date range is checked.
func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type is required",
		})
	} else if len(r.LeaveType) > 50 {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must not exceed 50 characters",
		})
	}

	duration := DurationType(r.DurationType)
	if validator.IsEmpty(r.DurationType) {
		duration = DurationFullDay
		r.DurationType = string(duration)
	} else if !duration.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "duration_type",
			Message: "duration_type must be one of Full Day, Half Day - First Half, Half Day - Second Half",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	if duration.IsHalfDay() && startOK {
		r.EndDate = r.StartDate
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if r.Reason != nil && len(*r.Reason) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	r.start, r.end = start, end
	return nil
}

// ToLeaveRequest builds the entity for employeeID. Validate must have
// succeeded first.
func (r *ApplyLeaveRequest) ToLeaveRequest(employeeID int64, now time.Time) LeaveRequest {
	var reason *string
	if r.Reason != nil && strings.TrimSpace(*r.Reason) != "" {
		trimmed := strings.TrimSpace(*r.Reason)
		reason = &trimmed
	}
	req := LeaveRequest{
		EmployeeID:   employeeID,
		LeaveType:    strings.TrimSpace(r.LeaveType),
		StartDate:    r.start,
		EndDate:      r.end,
		Reason:       reason,
		RequestDate:  now,
		DurationType: DurationType(r.DurationType),
	}
	NormalizeDuration(&req)
	return req
}

type LeaveRequestResponse struct {
	ID                  int64   `json:"id"`
	EmployeeID          int64   `json:"employee_id"`
	EmployeeName        string  `json:"employee_name,omitempty"`
	LeaveType           string  `json:"leave_type"`
	StartDate           string  `json:"start_date"`
	EndDate             string  `json:"end_date"`
	DurationType        string  `json:"duration_type"`
	Reason              *string `json:"reason,omitempty"`
	RequestDate         string  `json:"request_date"`
	Status              string  `json:"status"`
	ManagerApprovedByID *int64  `json:"manager_approved_by_id,omitempty"`
	HRApprovedByID      *int64  `json:"hr_approved_by_id,omitempty"`
}

func NewLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:                  r.ID,
		EmployeeID:          r.EmployeeID,
		EmployeeName:        r.EmployeeName,
		LeaveType:           r.LeaveType,
		StartDate:           r.StartDate.Format("2006-01-02"),
		EndDate:             r.EndDate.Format("2006-01-02"),
		DurationType:        string(r.DurationType),
		Reason:              r.Reason,
		RequestDate:         r.RequestDate.Format(time.RFC3339),
		Status:              string(r.Status),
		ManagerApprovedByID: r.ManagerApprovedByID,
		HRApprovedByID:      r.HRApprovedByID,
	}
}

func NewLeaveRequestResponses(list []LeaveRequest) []LeaveRequestResponse {
	out := make([]LeaveRequestResponse, 0, len(list))
	for _, r := range list {
		out = append(out, NewLeaveRequestResponse(r))
	}
	return out
}

// LeaveFilter narrows repository listings. Nil fields are not applied.
type LeaveFilter struct {
	EmployeeID        *int64
	DepartmentID      *int64
	ExcludeEmployeeID *int64
	Statuses          []Status
	// ActiveOn keeps requests whose interval covers this date.
	ActiveOn *time.Time
	// Overlaps keeps requests intersecting [From, To].
	From, To    *time.Time
	OldestFirst bool
	Limit       int
}
