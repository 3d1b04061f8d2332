package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestSelect = `
	SELECT lr.id, lr.employee_id, lr.leave_type, lr.start_date, lr.end_date, lr.reason,
		   lr.request_date, lr.duration_type, lr.status, lr.manager_approved_by_id, lr.hr_approved_by_id,
		   e.first_name || ' ' || e.last_name, e.department_id
	FROM leave_requests lr
	INNER JOIN employees e ON e.id = lr.employee_id
`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID,
		&lr.EmployeeID,
		&lr.LeaveType,
		&lr.StartDate,
		&lr.EndDate,
		&lr.Reason,
		&lr.RequestDate,
		&lr.DurationType,
		&lr.Status,
		&lr.ManagerApprovedByID,
		&lr.HRApprovedByID,
		&lr.EmployeeName,
		&lr.EmployeeDepartmentID,
	)
	return lr, err
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			employee_id, leave_type, start_date, end_date, reason, request_date,
			duration_type, status, manager_approved_by_id, hr_approved_by_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	created := req
	err := q.QueryRow(ctx, query,
		req.EmployeeID,
		req.LeaveType,
		req.StartDate,
		req.EndDate,
		req.Reason,
		req.RequestDate,
		req.DurationType,
		req.Status,
		req.ManagerApprovedByID,
		req.HRApprovedByID,
	).Scan(&created.ID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	return created, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id int64) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	lr, err := scanLeaveRequest(q.QueryRow(ctx, leaveRequestSelect+` WHERE lr.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return lr, nil
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := " WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		baseWhere += fmt.Sprintf(" AND lr.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.DepartmentID != nil {
		baseWhere += fmt.Sprintf(" AND e.department_id = $%d", argIdx)
		args = append(args, *filter.DepartmentID)
		argIdx++
	}
	if filter.ExcludeEmployeeID != nil {
		baseWhere += fmt.Sprintf(" AND lr.employee_id <> $%d", argIdx)
		args = append(args, *filter.ExcludeEmployeeID)
		argIdx++
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		baseWhere += fmt.Sprintf(" AND lr.status = ANY($%d)", argIdx)
		args = append(args, statuses)
		argIdx++
	}
	if filter.ActiveOn != nil {
		baseWhere += fmt.Sprintf(" AND lr.start_date <= $%d AND lr.end_date >= $%d", argIdx, argIdx)
		args = append(args, *filter.ActiveOn)
		argIdx++
	}
	if filter.From != nil {
		baseWhere += fmt.Sprintf(" AND lr.end_date >= $%d", argIdx)
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		baseWhere += fmt.Sprintf(" AND lr.start_date <= $%d", argIdx)
		args = append(args, *filter.To)
		argIdx++
	}

	orderBy := " ORDER BY lr.request_date DESC, lr.id DESC"
	if filter.OldestFirst {
		orderBy = " ORDER BY lr.request_date ASC, lr.id ASC"
	}
	query := leaveRequestSelect + baseWhere + orderBy
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, filter.Limit)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

// UpdateDecision implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateDecision(ctx context.Context, req leave.LeaveRequest, expected leave.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, manager_approved_by_id = $2, hr_approved_by_id = $3
		WHERE id = $4 AND status = $5
	`
	tag, err := q.Exec(ctx, query, req.Status, req.ManagerApprovedByID, req.HRApprovedByID, req.ID, expected)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrInvalidTransition
	}
	return nil
}
