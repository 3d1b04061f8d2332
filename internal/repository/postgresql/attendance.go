package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceSelect = `
	SELECT a.id, a.employee_id, a.date, a.clock_in, a.clock_out, a.status,
		   e.first_name || ' ' || e.last_name
	FROM attendances a
	INNER JOIN employees e ON e.id = a.employee_id
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID,
		&a.EmployeeID,
		&a.Date,
		&a.ClockIn,
		&a.ClockOut,
		&a.Status,
		&a.EmployeeName,
	)
	return a, err
}

func (r *attendanceRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanAttendance(q.QueryRow(ctx, attendanceSelect+` WHERE a.employee_id = $1 AND a.date = $2`, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}
	return a, nil
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (employee_id, date, clock_in, clock_out, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	created := a
	err := q.QueryRow(ctx, query, a.EmployeeID, a.Date, a.ClockIn, a.ClockOut, a.Status).Scan(&created.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.Attendance{}, err
	}
	return created, nil
}

// SetClockIn implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) SetClockIn(ctx context.Context, id int64, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET clock_in = $1, status = $2
		WHERE id = $3 AND clock_in IS NULL
	`
	tag, err := q.Exec(ctx, query, at, attendance.StatusPresent, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAlreadyClockedIn
	}
	return nil
}

// SetClockOut implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) SetClockOut(ctx context.Context, id int64, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET clock_out = $1
		WHERE id = $2 AND clock_in IS NOT NULL AND clock_out IS NULL
	`
	tag, err := q.Exec(ctx, query, at, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAlreadyClockedOut
	}
	return nil
}

// ListRecent implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListRecent(ctx context.Context, employeeID int64, limit int) ([]attendance.Attendance, error) {
	return r.list(ctx, attendanceSelect+` WHERE a.employee_id = $1 ORDER BY a.date DESC LIMIT $2`, employeeID, limit)
}

// ListInRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListInRange(ctx context.Context, employeeIDs []int64, from, to time.Time) ([]attendance.Attendance, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}
	return r.list(ctx, attendanceSelect+`
		WHERE a.employee_id = ANY($1) AND a.date >= $2 AND a.date <= $3
		ORDER BY a.date, a.employee_id
	`, employeeIDs, from, to)
}
