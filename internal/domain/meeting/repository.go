package meeting

import "context"

type MeetingRepository interface {
	Create(ctx context.Context, m Meeting) (Meeting, error)
	// ListByCreator returns the creator's meetings, newest start time first,
	// with their invitations loaded.
	ListByCreator(ctx context.Context, creatorID int64) ([]Meeting, error)
}

type InvitationRepository interface {
	Create(ctx context.Context, inv Invitation) (Invitation, error)
	GetByID(ctx context.Context, id int64) (Invitation, error)
	// ListByEmployee returns the employee's invitations with their meeting,
	// soonest first.
	ListByEmployee(ctx context.Context, employeeID int64) ([]Invitation, error)
	// UpdateStatus answers a pending invitation, returning ErrAlreadyResponded
	// when it is no longer pending.
	UpdateStatus(ctx context.Context, id int64, status InvitationStatus) error
}
