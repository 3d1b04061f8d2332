package attendance

import (
	"context"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
)

type AttendanceService interface {
	// Self service
	ClockIn(ctx context.Context, actor user.Principal) (AttendanceResponse, error)
	ClockOut(ctx context.Context, actor user.Principal) (AttendanceResponse, error)
	Today(ctx context.Context, actor user.Principal) (TodayStatusResponse, error)
	MyHistory(ctx context.Context, actor user.Principal) ([]AttendanceResponse, error)
	// MyCalendar covers the actor's joining date through today.
	MyCalendar(ctx context.Context, actor user.Principal) ([]DayEvent, error)

	// EmployeeCalendar shows any employee's calendar (hr only)
	EmployeeCalendar(ctx context.Context, employeeID int64, query CalendarQuery) ([]DayEvent, error)

	// TeamCalendar shows every member of the actor's department, or the one
	// member named by query.EmployeeID.
	TeamCalendar(ctx context.Context, actor user.Principal, query CalendarQuery) ([]DayEvent, error)
}
