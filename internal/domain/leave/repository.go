package leave

import "context"

type LeaveRequestRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	// GetByID loads the request together with its employee's name and department.
	GetByID(ctx context.Context, id int64) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveFilter) ([]LeaveRequest, error)
	// UpdateDecision persists the status and approver fields only if the row
	// is still in expected status, returning ErrInvalidTransition otherwise.
	UpdateDecision(ctx context.Context, req LeaveRequest, expected Status) error
}
