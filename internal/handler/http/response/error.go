package response

import (
	"errors"
	"net/http"

	"github.com/suweldo/payroll-backend-go/internal/domain/approval"
	"github.com/suweldo/payroll-backend-go/internal/domain/attendance"
	"github.com/suweldo/payroll-backend-go/internal/domain/employee"
	"github.com/suweldo/payroll-backend-go/internal/domain/identity"
	"github.com/suweldo/payroll-backend-go/internal/domain/leave"
	"github.com/suweldo/payroll-backend-go/internal/domain/overtime"
	"github.com/suweldo/payroll-backend-go/internal/domain/schedule"
	"github.com/suweldo/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// An illegal lifecycle move carries the kind, attempted decision and
	// current status; surface them instead of a generic conflict.
	var stateErr *approval.StateError
	if errors.As(err, &stateErr) {
		Conflict(w, stateErr.Error())
		return
	}

	switch {
	// Identity errors
	case errors.Is(err, identity.ErrUnauthorized):
		Forbidden(w, "Insufficient role for this operation")
	case errors.Is(err, identity.ErrElevatedRoleRequired):
		Forbidden(w, "Administrative override requires an elevated role")
	case errors.Is(err, identity.ErrMissingActor):
		Unauthorized(w, "Acting identity is missing")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "Work schedule not found")
	case errors.Is(err, schedule.ErrAssignmentNotFound):
		NotFound(w, "No schedule assignment for this date")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrRecordExists):
		Conflict(w, "Attendance record already exists for this date")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrLeaveTypeInactive):
		BadRequest(w, "Leave type is inactive", nil)
	case errors.Is(err, leave.ErrLeaveTypeUnpaid):
		BadRequest(w, "Leave type does not draw from a paid balance", nil)
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrBalanceExists):
		Conflict(w, "Leave balance already exists")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrPolicyNotFound):
		NotFound(w, "No applicable leave policy")
	case errors.Is(err, leave.ErrOverlappingRequest):
		Conflict(w, "Overlapping leave request exists for this period")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "End date must not be before start date", nil)
	case errors.Is(err, leave.ErrNoSupervisorAssigned):
		BadRequest(w, "Employee has no supervisor to route the request to", nil)

	// Overtime domain errors
	case errors.Is(err, overtime.ErrRequestNotFound):
		NotFound(w, "Overtime request not found")
	case errors.Is(err, overtime.ErrInvalidTimeRange):
		BadRequest(w, "Overtime end must be after start", nil)
	case errors.Is(err, overtime.ErrNoApproverAssigned):
		BadRequest(w, "Employee has no manager to approve overtime", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
