package meeting

import (
	"context"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
)

type MeetingService interface {
	// Create stores the meeting and a Pending invitation per invitee atomically.
	Create(ctx context.Context, actor user.Principal, req CreateMeetingRequest) (MeetingResponse, error)
	ListMine(ctx context.Context, actor user.Principal) ([]MeetingResponse, error)
	// Invitable lists the actor's department members for the invite picker.
	Invitable(ctx context.Context, actor user.Principal) ([]employee.EmployeeSummary, error)

	MyInvitations(ctx context.Context, actor user.Principal) ([]InvitationResponse, error)
	Respond(ctx context.Context, actor user.Principal, req RespondRequest) (InvitationResponse, error)
}
