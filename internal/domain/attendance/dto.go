package attendance

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

type AttendanceResponse struct {
	ID           int64   `json:"id"`
	EmployeeID   int64   `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	ClockIn      *string `json:"clock_in,omitempty"`
	ClockOut     *string `json:"clock_out,omitempty"`
	Status       string  `json:"status"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeName: a.EmployeeName,
		Date:         a.Date.Format("2006-01-02"),
		ClockIn:      formatTime(a.ClockIn),
		ClockOut:     formatTime(a.ClockOut),
		Status:       a.Status,
	}
}

func NewAttendanceResponses(list []Attendance) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(list))
	for _, a := range list {
		out = append(out, NewAttendanceResponse(a))
	}
	return out
}

// TodayStatusResponse drives the clock-in/clock-out widget.
type TodayStatusResponse struct {
	CanClockIn  bool    `json:"can_clock_in"`
	CanClockOut bool    `json:"can_clock_out"`
	IsCompleted bool    `json:"is_completed"`
	ClockInTime *string `json:"clock_in_time,omitempty"`
}

// NewTodayStatus derives the widget state from today's record, or from its
// absence when record is nil.
func NewTodayStatus(record *Attendance) TodayStatusResponse {
	status := TodayStatusResponse{CanClockIn: true}
	if record == nil {
		return status
	}
	status.ClockInTime = formatTime(record.ClockIn)
	switch {
	case record.IsClockedIn() && !record.IsClockedOut():
		status.CanClockIn = false
		status.CanClockOut = true
	case record.IsClockedIn() && record.IsClockedOut():
		status.CanClockIn = false
		status.IsCompleted = true
	}
	return status
}

// CalendarQuery is the visible range requested by a calendar view. Both
// bounds accept YYYY-MM-DD or an RFC 3339 timestamp.
type CalendarQuery struct {
	Start      string
	End        string
	EmployeeID *int64

	start time.Time
	end   time.Time
}

func (q *CalendarQuery) Validate() error {
	var errs validator.ValidationErrors

	start, ok := parseCalendarBound(q.Start)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start",
			Message: "start must be a date (YYYY-MM-DD) or RFC 3339 timestamp",
		})
	}
	end, endOK := parseCalendarBound(q.End)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end",
			Message: "end must be a date (YYYY-MM-DD) or RFC 3339 timestamp",
		})
	}
	if ok && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end",
			Message: "end must not be before start",
		})
	}
	if q.EmployeeID != nil && *q.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a positive number",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	q.start, q.end = start, end
	return nil
}

// Range returns the parsed bounds. Validate must have succeeded first.
func (q CalendarQuery) Range() (time.Time, time.Time) {
	return q.start, q.end
}

func parseCalendarBound(s string) (time.Time, bool) {
	if d, ok := validator.IsValidDate(s); ok {
		return d, true
	}
	if t, ok := validator.IsValidDateTime(s); ok {
		return DateOnly(t), true
	}
	return time.Time{}, false
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
