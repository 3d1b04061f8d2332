package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	// ErrUnauthorizedApprover is returned when the actor's role or department
	// does not allow acting on the request's current stage.
	ErrUnauthorizedApprover = errors.New("you are not authorized to act on this leave request")
	// ErrInvalidTransition is returned when the request is not in a state the
	// decision can be applied to.
	ErrInvalidTransition = errors.New("leave request is not awaiting this decision")
)
