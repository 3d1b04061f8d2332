package attendance

import (
	"time"
)

const StatusPresent = "Present"

type Attendance struct {
	ID         int64
	EmployeeID int64
	Date       time.Time
	ClockIn    *time.Time
	ClockOut   *time.Time
	Status     string

	// Join
	EmployeeName string
}

func (a Attendance) IsClockedIn() bool {
	return a.ClockIn != nil
}

func (a Attendance) IsClockedOut() bool {
	return a.ClockOut != nil
}

// DateOnly truncates t to midnight UTC of its calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
