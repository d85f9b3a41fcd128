package schedule

import "errors"

var (
	ErrScheduleNotFound   = errors.New("Work schedule not found")
	ErrAssignmentNotFound = errors.New("Employee has no schedule assignment for this date")
)
