package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/meeting"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/project"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hrms-backend-go/internal/service/file"
)

var (
	notFoundErrors = []error{
		user.ErrUserNotFound,
		employee.ErrEmployeeNotFound,
		department.ErrDepartmentNotFound,
		leave.ErrLeaveRequestNotFound,
		attendance.ErrAttendanceNotFound,
		project.ErrProjectNotFound,
		project.ErrTaskNotFound,
		meeting.ErrMeetingNotFound,
		meeting.ErrInvitationNotFound,
		storage.ErrFileNotFound,
	}

	forbiddenErrors = []error{
		user.ErrInsufficientPermissions,
		employee.ErrUnauthorized,
		leave.ErrUnauthorizedApprover,
		project.ErrNotProjectOwner,
		project.ErrTaskNotAssigned,
		project.ErrOutsideDepartment,
		meeting.ErrNotInvitee,
	}

	conflictErrors = []error{
		user.ErrUsernameExists,
		employee.ErrEmailExists,
		employee.ErrAlreadyAssigned,
		leave.ErrInvalidTransition,
		attendance.ErrAlreadyClockedIn,
		attendance.ErrNotClockedIn,
		attendance.ErrAlreadyClockedOut,
		project.ErrAlreadyMember,
		project.ErrNotMember,
		project.ErrProjectCompleted,
		project.ErrTaskCompleted,
		meeting.ErrAlreadyResponded,
	}

	unauthorizedErrors = []error{
		auth.ErrInvalidCredentials,
		auth.ErrInvalidToken,
		auth.ErrTokenRevoked,
	}

	unprocessableErrors = []error{
		auth.ErrIncorrectPassword,
		user.ErrNoEmployeeProfile,
		employee.ErrNoDepartment,
	}

	badRequestErrors = []error{
		file.ErrInvalidFileType,
		storage.ErrInvalidPath,
	}
)

// matching returns the sentinel in targets that err wraps, or nil.
func matching(err error, targets []error) error {
	for _, target := range targets {
		if errors.Is(err, target) {
			return target
		}
	}
	return nil
}

// HandleError maps domain errors to HTTP responses. The response message is
// the sentinel's own text; anything unrecognised is logged and hidden behind
// a generic 500.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	if target := matching(err, notFoundErrors); target != nil {
		NotFound(w, target.Error())
		return
	}
	if target := matching(err, forbiddenErrors); target != nil {
		Forbidden(w, target.Error())
		return
	}
	if target := matching(err, conflictErrors); target != nil {
		Conflict(w, target.Error())
		return
	}
	if target := matching(err, unauthorizedErrors); target != nil {
		Unauthorized(w, target.Error())
		return
	}
	if target := matching(err, unprocessableErrors); target != nil {
		UnprocessableEntity(w, target.Error())
		return
	}
	if matching(err, badRequestErrors) != nil {
		BadRequest(w, err.Error(), nil)
		return
	}

	if errors.Is(err, employee.ErrTransactionFailed) {
		slog.Error("transaction failed", "error", err)
		InternalServerError(w, employee.ErrTransactionFailed.Error())
		return
	}

	slog.Error("unhandled error", "error", err)
	InternalServerError(w, "An unexpected error occurred")
}
