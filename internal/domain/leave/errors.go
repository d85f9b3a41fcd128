package leave

import "errors"

var (
	ErrLeaveTypeNotFound    = errors.New("Leave type not found")
	ErrLeaveTypeInactive    = errors.New("Leave type is inactive")
	ErrLeaveTypeUnpaid      = errors.New("Leave type does not draw from a paid balance")
	ErrBalanceNotFound      = errors.New("Leave balance not found")
	ErrBalanceExists        = errors.New("Leave balance already exists for this employee, type and year")
	ErrInsufficientBalance  = errors.New("INSUFFICIENT_BALANCE")
	ErrPolicyNotFound       = errors.New("No applicable leave policy")
	ErrRequestNotFound      = errors.New("Leave request not found")
	ErrOverlappingRequest   = errors.New("Overlapping leave request exists for this period")
	ErrInvalidDateRange     = errors.New("End date must not be before start date")
	ErrNoSupervisorAssigned = errors.New("Employee has no supervisor to route the request to")
)
