package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/meeting"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type meetingRepositoryImpl struct {
	db *database.DB
}

func NewMeetingRepository(db *database.DB) meeting.MeetingRepository {
	return &meetingRepositoryImpl{db: db}
}

// Create implements meeting.MeetingRepository.
func (r *meetingRepositoryImpl) Create(ctx context.Context, m meeting.Meeting) (meeting.Meeting, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO meetings (title, description, start_time, end_time, created_by_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	created := m
	if err := q.QueryRow(ctx, query, m.Title, m.Description, m.StartTime, m.EndTime, m.CreatedByID).Scan(&created.ID); err != nil {
		return meeting.Meeting{}, err
	}
	return created, nil
}

// ListByCreator implements meeting.MeetingRepository.
func (r *meetingRepositoryImpl) ListByCreator(ctx context.Context, creatorID int64) ([]meeting.Meeting, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT m.id, m.title, m.description, m.start_time, m.end_time, m.created_by_id,
			   c.first_name || ' ' || c.last_name
		FROM meetings m
		INNER JOIN employees c ON c.id = m.created_by_id
		WHERE m.created_by_id = $1
		ORDER BY m.start_time DESC
	`
	rows, err := q.Query(ctx, query, creatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meetings []meeting.Meeting
	index := make(map[int64]int)
	var ids []int64
	for rows.Next() {
		var m meeting.Meeting
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.StartTime, &m.EndTime, &m.CreatedByID, &m.CreatedByName); err != nil {
			return nil, err
		}
		index[m.ID] = len(meetings)
		ids = append(ids, m.ID)
		meetings = append(meetings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return meetings, nil
	}

	invRows, err := q.Query(ctx, `
		SELECT i.id, i.meeting_id, i.employee_id, i.status, e.first_name || ' ' || e.last_name
		FROM meeting_invitations i
		INNER JOIN employees e ON e.id = i.employee_id
		WHERE i.meeting_id = ANY($1)
		ORDER BY e.first_name, e.last_name
	`, ids)
	if err != nil {
		return nil, err
	}
	defer invRows.Close()

	for invRows.Next() {
		var inv meeting.Invitation
		if err := invRows.Scan(&inv.ID, &inv.MeetingID, &inv.EmployeeID, &inv.Status, &inv.EmployeeName); err != nil {
			return nil, err
		}
		m := &meetings[index[inv.MeetingID]]
		m.Invitations = append(m.Invitations, inv)
	}
	return meetings, invRows.Err()
}

type invitationRepositoryImpl struct {
	db *database.DB
}

func NewInvitationRepository(db *database.DB) meeting.InvitationRepository {
	return &invitationRepositoryImpl{db: db}
}

const invitationSelect = `
	SELECT i.id, i.meeting_id, i.employee_id, i.status, e.first_name || ' ' || e.last_name,
		   m.id, m.title, m.description, m.start_time, m.end_time, m.created_by_id,
		   c.first_name || ' ' || c.last_name
	FROM meeting_invitations i
	INNER JOIN employees e ON e.id = i.employee_id
	INNER JOIN meetings m ON m.id = i.meeting_id
	INNER JOIN employees c ON c.id = m.created_by_id
`

func scanInvitation(row pgx.Row) (meeting.Invitation, error) {
	var inv meeting.Invitation
	var m meeting.Meeting
	err := row.Scan(
		&inv.ID,
		&inv.MeetingID,
		&inv.EmployeeID,
		&inv.Status,
		&inv.EmployeeName,
		&m.ID,
		&m.Title,
		&m.Description,
		&m.StartTime,
		&m.EndTime,
		&m.CreatedByID,
		&m.CreatedByName,
	)
	if err != nil {
		return meeting.Invitation{}, err
	}
	inv.Meeting = &m
	return inv, nil
}

// Create implements meeting.InvitationRepository.
func (r *invitationRepositoryImpl) Create(ctx context.Context, inv meeting.Invitation) (meeting.Invitation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO meeting_invitations (meeting_id, employee_id, status)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	created := inv
	if err := q.QueryRow(ctx, query, inv.MeetingID, inv.EmployeeID, inv.Status).Scan(&created.ID); err != nil {
		if isForeignKeyViolation(err) {
			return meeting.Invitation{}, employee.ErrEmployeeNotFound
		}
		return meeting.Invitation{}, err
	}
	return created, nil
}

// GetByID implements meeting.InvitationRepository.
func (r *invitationRepositoryImpl) GetByID(ctx context.Context, id int64) (meeting.Invitation, error) {
	q := GetQuerier(ctx, r.db)

	inv, err := scanInvitation(q.QueryRow(ctx, invitationSelect+` WHERE i.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return meeting.Invitation{}, meeting.ErrInvitationNotFound
		}
		return meeting.Invitation{}, err
	}
	return inv, nil
}

// ListByEmployee implements meeting.InvitationRepository.
func (r *invitationRepositoryImpl) ListByEmployee(ctx context.Context, employeeID int64) ([]meeting.Invitation, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, invitationSelect+` WHERE i.employee_id = $1 ORDER BY m.start_time`, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invitations []meeting.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		invitations = append(invitations, inv)
	}
	return invitations, rows.Err()
}

// UpdateStatus implements meeting.InvitationRepository.
func (r *invitationRepositoryImpl) UpdateStatus(ctx context.Context, id int64, status meeting.InvitationStatus) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE meeting_invitations SET status = $1 WHERE id = $2 AND status = $3`, status, id, meeting.InvitationPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return meeting.ErrAlreadyResponded
	}
	return nil
}
