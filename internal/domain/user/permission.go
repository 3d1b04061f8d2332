package user

type Permission string

const (
	// Self service
	PermissionLeaveApply      Permission = "leave.apply"
	PermissionAttendanceClock Permission = "attendance.clock"
	PermissionMeetingRespond  Permission = "meeting.respond"
	PermissionProjectWork     Permission = "project.work"

	// Approvals
	PermissionLeaveApproveManager Permission = "leave.approve_manager"
	PermissionLeaveApproveHR      Permission = "leave.approve_hr"

	// Team (manager's own department)
	PermissionTeamManage         Permission = "team.manage"
	PermissionAttendanceViewTeam Permission = "attendance.view_team"
	PermissionProjectManage      Permission = "project.manage"

	// Organisation wide
	PermissionEmployeeManage    Permission = "employee.manage"
	PermissionDepartmentManage  Permission = "department.manage"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionLeaveViewAll      Permission = "leave.view_all"

	PermissionMeetingSchedule Permission = "meeting.schedule"
)

var selfService = []Permission{
	PermissionLeaveApply,
	PermissionAttendanceClock,
	PermissionMeetingRespond,
	PermissionProjectWork,
}

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleEmployee: selfService,
	RoleManager: append([]Permission{
		PermissionLeaveApproveManager,
		PermissionTeamManage,
		PermissionAttendanceViewTeam,
		PermissionProjectManage,
		PermissionMeetingSchedule,
	}, selfService...),
	RoleHR: append([]Permission{
		PermissionLeaveApproveHR,
		PermissionLeaveViewAll,
		PermissionEmployeeManage,
		PermissionDepartmentManage,
		PermissionAttendanceViewAll,
		PermissionMeetingSchedule,
		PermissionTeamManage,
		PermissionAttendanceViewTeam,
		PermissionProjectManage,
	}, selfService...),
}

// HasPermission checks if role has specific permission
func HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// RedirectPath is the landing page for a role after login.
func RedirectPath(role Role) string {
	switch role {
	case RoleHR:
		return "/hr"
	case RoleManager:
		return "/manager"
	default:
		return "/employee"
	}
}
