package leave

import (
	"context"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
)

type LeaveService interface {
	Apply(ctx context.Context, actor user.Principal, req ApplyLeaveRequest) (LeaveRequestResponse, error)
	GetMyRequests(ctx context.Context, actor user.Principal, limit int) ([]LeaveRequestResponse, error)
	GetRequest(ctx context.Context, actor user.Principal, id int64) (LeaveRequestResponse, error)

	// ManagerQueue lists requests awaiting the actor's department decision.
	ManagerQueue(ctx context.Context, actor user.Principal) ([]LeaveRequestResponse, error)
	// HRQueue lists every pending request except the actor's own.
	HRQueue(ctx context.Context, actor user.Principal) ([]LeaveRequestResponse, error)

	Approve(ctx context.Context, actor user.Principal, id int64) (LeaveRequestResponse, error)
	Reject(ctx context.Context, actor user.Principal, id int64) (LeaveRequestResponse, error)

	// OnLeaveToday lists approved leave covering today, organisation wide for
	// HR and for the manager's own department. Other roles are refused.
	OnLeaveToday(ctx context.Context, actor user.Principal) ([]LeaveRequestResponse, error)
}
