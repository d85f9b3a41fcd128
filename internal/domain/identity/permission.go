package identity

type Permission string

const (
	// Attendance
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionAttendanceSync    Permission = "attendance.sync"
	PermissionAttendanceCorrect Permission = "attendance.correct"

	// Leave
	PermissionLeaveViewOwn Permission = "leave.view_own"
	PermissionLeaveCreate  Permission = "leave.create"
	PermissionLeaveViewAll Permission = "leave.view_all"
	PermissionLeaveApprove Permission = "leave.approve"

	// Overtime
	PermissionOvertimeViewOwn Permission = "overtime.view_own"
	PermissionOvertimeCreate  Permission = "overtime.create"
	PermissionOvertimeViewAll Permission = "overtime.view_all"
	PermissionOvertimeApprove Permission = "overtime.approve"

	// Approval workflow
	PermissionApprovalQueueView Permission = "approval.queue_view"
	PermissionApprovalFinalize  Permission = "approval.finalize"
	PermissionApprovalOverride  Permission = "approval.override"

	// Schedules
	PermissionScheduleView   Permission = "schedule.view"
	PermissionScheduleManage Permission = "schedule.manage"

	// Balance administration
	PermissionBalanceViewOwn Permission = "balance.view_own"
	PermissionBalanceViewAll Permission = "balance.view_all"
	PermissionBalanceInit    Permission = "balance.init_year"
)

var employeePermissions = []Permission{
	PermissionAttendanceViewOwn,
	PermissionLeaveViewOwn,
	PermissionLeaveCreate,
	PermissionOvertimeViewOwn,
	PermissionOvertimeCreate,
	PermissionScheduleView,
	PermissionBalanceViewOwn,
}

var supervisorPermissions = append([]Permission{
	PermissionAttendanceViewAll,
	PermissionLeaveViewAll,
	PermissionLeaveApprove,
	PermissionOvertimeViewAll,
	PermissionOvertimeApprove,
}, employeePermissions...)

var adminPermissions = append([]Permission{
	PermissionAttendanceSync,
	PermissionAttendanceCorrect,
	PermissionApprovalQueueView,
	PermissionApprovalFinalize,
	PermissionApprovalOverride,
	PermissionScheduleManage,
	PermissionBalanceViewAll,
	PermissionBalanceInit,
}, supervisorPermissions...)

// RolePermissions maps roles to their permissions.
var RolePermissions = map[Role][]Permission{
	RoleEmployee:     employeePermissions,
	RoleSupervisor:   supervisorPermissions,
	RoleHRAdmin:      adminPermissions,
	RoleCompanyAdmin: adminPermissions,
	RolePayrollAdmin: adminPermissions,
	RoleSuperAdmin:   adminPermissions,
}

// HasPermission checks if a role has a specific permission.
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
