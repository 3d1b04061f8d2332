package meeting

import "errors"

var (
	ErrMeetingNotFound    = errors.New("meeting not found")
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrNotInvitee         = errors.New("this invitation is not addressed to you")
	ErrAlreadyResponded   = errors.New("invitation has already been answered")
)
