package overtime

import "errors"

var (
	ErrRequestNotFound    = errors.New("Overtime request not found")
	ErrInvalidTimeRange   = errors.New("Overtime end must be after start")
	ErrNoApproverAssigned = errors.New("Employee has no manager to approve overtime")
)
