package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
)

const historyLimit = 30

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	leaveRepo      leave.LeaveRequestRepository
	now            func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	leaveRepo leave.LeaveRequestRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		leaveRepo:      leaveRepo,
		now:            time.Now,
	}
}

// todayRecord returns the actor's record for today, or nil when there is none.
func (a *AttendanceServiceImpl) todayRecord(ctx context.Context, employeeID int64, today time.Time) (*attendance.Attendance, error) {
	record, err := a.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	return &record, nil
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, actor user.Principal) (attendance.AttendanceResponse, error) {
	employeeID, err := actor.Employee()
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	now := a.now()
	today := attendance.DateOnly(now)

	record, err := a.todayRecord(ctx, employeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if record == nil {
		created, err := a.attendanceRepo.Create(ctx, attendance.Attendance{
			EmployeeID: employeeID,
			Date:       today,
			ClockIn:    &now,
			Status:     attendance.StatusPresent,
		})
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		slog.Info("clocked in", "employee_id", employeeID, "attendance_id", created.ID)
		return attendance.NewAttendanceResponse(created), nil
	}

	if record.IsClockedIn() {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedIn
	}
	if err := a.attendanceRepo.SetClockIn(ctx, record.ID, now); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	record.ClockIn = &now
	record.Status = attendance.StatusPresent

	slog.Info("clocked in", "employee_id", employeeID, "attendance_id", record.ID)
	return attendance.NewAttendanceResponse(*record), nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, actor user.Principal) (attendance.AttendanceResponse, error) {
	employeeID, err := actor.Employee()
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	now := a.now()

	record, err := a.todayRecord(ctx, employeeID, attendance.DateOnly(now))
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if record == nil || !record.IsClockedIn() {
		return attendance.AttendanceResponse{}, attendance.ErrNotClockedIn
	}
	if record.IsClockedOut() {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedOut
	}

	if err := a.attendanceRepo.SetClockOut(ctx, record.ID, now); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	record.ClockOut = &now

	slog.Info("clocked out", "employee_id", employeeID, "attendance_id", record.ID)
	return attendance.NewAttendanceResponse(*record), nil
}

// Today implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Today(ctx context.Context, actor user.Principal) (attendance.TodayStatusResponse, error) {
	employeeID, err := actor.Employee()
	if err != nil {
		return attendance.TodayStatusResponse{}, err
	}
	record, err := a.todayRecord(ctx, employeeID, attendance.DateOnly(a.now()))
	if err != nil {
		return attendance.TodayStatusResponse{}, err
	}
	return attendance.NewTodayStatus(record), nil
}

// MyHistory implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MyHistory(ctx context.Context, actor user.Principal) ([]attendance.AttendanceResponse, error) {
	employeeID, err := actor.Employee()
	if err != nil {
		return nil, err
	}
	list, err := a.attendanceRepo.ListRecent(ctx, employeeID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance history: %w", err)
	}
	return attendance.NewAttendanceResponses(list), nil
}

// MyCalendar implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MyCalendar(ctx context.Context, actor user.Principal) ([]attendance.DayEvent, error) {
	employeeID, err := actor.Employee()
	if err != nil {
		return nil, err
	}
	emp, err := a.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	today := attendance.DateOnly(a.now())
	return a.calendar(ctx, []employee.Employee{emp}, emp.DateOfJoining, today, attendance.DefaultPalette, false)
}

// EmployeeCalendar implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) EmployeeCalendar(ctx context.Context, employeeID int64, query attendance.CalendarQuery) ([]attendance.DayEvent, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	emp, err := a.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	start, end := query.Range()
	return a.calendar(ctx, []employee.Employee{emp}, start, end, attendance.DefaultPalette, false)
}

// TeamCalendar implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) TeamCalendar(ctx context.Context, actor user.Principal, query attendance.CalendarQuery) ([]attendance.DayEvent, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	managerID, err := actor.Employee()
	if err != nil {
		return nil, err
	}
	manager, err := a.employeeRepo.GetByID(ctx, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get manager: %w", err)
	}
	if manager.DepartmentID == nil {
		return nil, employee.ErrNoDepartment
	}

	members, err := a.employeeRepo.ListByDepartment(ctx, *manager.DepartmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}

	if query.EmployeeID != nil {
		var selected []employee.Employee
		for _, m := range members {
			if m.ID == *query.EmployeeID {
				selected = append(selected, m)
			}
		}
		if len(selected) == 0 {
			return nil, employee.ErrUnauthorized
		}
		members = selected
	}

	start, end := query.Range()
	return a.calendar(ctx, members, start, end, attendance.TeamPalette, query.EmployeeID == nil)
}

// calendar loads records and approved leave for members in one pass and
// rebuilds each member's days over [start, end].
func (a *AttendanceServiceImpl) calendar(ctx context.Context, members []employee.Employee, start, end time.Time, palette attendance.Palette, prefixNames bool) ([]attendance.DayEvent, error) {
	events := []attendance.DayEvent{}
	if len(members) == 0 {
		return events, nil
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}

	records, err := a.attendanceRepo.ListInRange(ctx, ids, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	recordsByEmployee := make(map[int64][]attendance.Attendance, len(members))
	for _, r := range records {
		recordsByEmployee[r.EmployeeID] = append(recordsByEmployee[r.EmployeeID], r)
	}

	filter := leave.LeaveFilter{
		Statuses:    []leave.Status{leave.StatusHRApproved},
		From:        &start,
		To:          &end,
		OldestFirst: true,
	}
	if len(members) == 1 {
		filter.EmployeeID = &members[0].ID
	} else {
		filter.DepartmentID = members[0].DepartmentID
	}
	leaves, err := a.leaveRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leave: %w", err)
	}
	leavesByEmployee := make(map[int64][]leave.LeaveRequest, len(members))
	for _, l := range leaves {
		leavesByEmployee[l.EmployeeID] = append(leavesByEmployee[l.EmployeeID], l)
	}

	today := a.now()
	for _, m := range members {
		var prefix string
		if prefixNames {
			prefix = m.FullName()
		}
		events = append(events, attendance.BuildCalendar(attendance.CalendarInput{
			JoinDate:    m.DateOfJoining,
			Start:       start,
			End:         end,
			Today:       today,
			Attendances: recordsByEmployee[m.ID],
			Leaves:      leavesByEmployee[m.ID],
			Palette:     palette,
			TitlePrefix: prefix,
		})...)
	}
	return events, nil
}
