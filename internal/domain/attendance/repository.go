package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// GetByEmployeeAndDate returns ErrAttendanceNotFound when the employee has
	// no record on date.
	GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (Attendance, error)

	// Create returns ErrAlreadyClockedIn when a record for the same employee
	// and date already exists.
	Create(ctx context.Context, a Attendance) (Attendance, error)

	// SetClockIn fills a missing clock-in and marks the record Present.
	SetClockIn(ctx context.Context, id int64, at time.Time) error
	// SetClockOut records the clock-out only if none is stored yet.
	SetClockOut(ctx context.Context, id int64, at time.Time) error

	ListRecent(ctx context.Context, employeeID int64, limit int) ([]Attendance, error)
	// ListInRange returns the records of employeeIDs dated within [from, to].
	ListInRange(ctx context.Context, employeeIDs []int64, from, to time.Time) ([]Attendance, error)
}
