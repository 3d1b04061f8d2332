package meeting

import "time"

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "Pending"
	InvitationAccepted InvitationStatus = "Accepted"
	InvitationDeclined InvitationStatus = "Declined"
)

// IsResponse reports whether s is a valid answer to an invitation.
func (s InvitationStatus) IsResponse() bool {
	return s == InvitationAccepted || s == InvitationDeclined
}

type Meeting struct {
	ID          int64
	Title       string
	Description *string
	StartTime   time.Time
	EndTime     time.Time
	CreatedByID int64

	// Join
	CreatedByName string
	Invitations   []Invitation
}

type Invitation struct {
	ID         int64
	MeetingID  int64
	EmployeeID int64
	Status     InvitationStatus

	// Join
	EmployeeName string
	Meeting      *Meeting
}
