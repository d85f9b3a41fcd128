package attendance

import "time"

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusAbsent  Status = "absent"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// TimeSource tags how a clock time entered the system.
type TimeSource string

const (
	SourceAutomated TimeSource = "automated"
	SourceManual    TimeSource = "manual"
)

// Metrics are the derived attendance values for one DTR row. They are
// recomputed from raw times on every correction; identical inputs always
// produce identical metrics.
type Metrics struct {
	TardinessMins  int
	UndertimeMins  int
	OvertimeHours  float64
	HoursWorked    float64
	NightDiffHours float64
}

// Record is one employee's daily time record. Rows are created by sync or
// manual entry and mutated only through the correction operation; they are
// never deleted.
type Record struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Date       time.Time

	ActualIn     *time.Time
	ActualOut    *time.Time
	ScheduledIn  *time.Time
	ScheduledOut *time.Time

	InSource  *TimeSource
	OutSource *TimeSource

	Metrics Metrics

	Status         Status
	ApprovalStatus ApprovalStatus
	Remarks        *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}
