package attendance

import "errors"

var (
	ErrRecordNotFound = errors.New("Attendance record not found")
	ErrRecordExists   = errors.New("Attendance record already exists for this date")
)
