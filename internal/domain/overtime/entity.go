package overtime

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request is an overtime request sharing the leave request's two-stage
// approval lifecycle. No ledger is involved; hours feed payroll directly.
type Request struct {
	ID         string
	RequestNo  string
	EmployeeID string

	Date      time.Time
	StartTime time.Time
	EndTime   time.Time
	Hours     decimal.Decimal

	Reason string
	Status string

	// ApproverID is the employee designated to supervisor-approve this
	// request, usually the requester's manager.
	ApproverID *string

	SupervisorApprovedBy *string
	SupervisorApprovedAt *time.Time
	SupervisorRemarks    *string

	HRApprovedBy *string
	HRApprovedAt *time.Time
	HRRemarks    *string

	CancelledAt        *time.Time
	CancellationReason *string

	// CTOPreview flags the request for compensatory-time-off conversion
	// preview. Informational only; it never blocks approval.
	CTOPreview bool

	SubmittedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO
	EmployeeName *string
}
