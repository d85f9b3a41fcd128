package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// LeaveType entity
type LeaveType struct {
	ID          string
	CompanyID   string
	Name        string
	Code        *string
	Description *string

	Paid             bool
	Active           bool
	AllowCarryOver   bool
	MaxCarryOverDays *decimal.Decimal

	EffectiveFrom *time.Time
	EffectiveTo   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveDuring reports whether the leave type applies at any point of
// the given year.
func (t LeaveType) EffectiveDuring(year int, loc *time.Location) bool {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, loc)
	if t.EffectiveFrom != nil && t.EffectiveFrom.After(yearEnd) {
		return false
	}
	if t.EffectiveTo != nil && t.EffectiveTo.Before(yearStart) {
		return false
	}
	return true
}

type ProrationMethod string

const (
	ProrationFull  ProrationMethod = "FULL"
	ProrationDay   ProrationMethod = "PRORATED_DAY"
	ProrationMonth ProrationMethod = "PRORATED_MONTH"
)

var ProrationMethodValues = []string{
	string(ProrationFull),
	string(ProrationDay),
	string(ProrationMonth),
}

// Policy keys an annual entitlement by (leave type, employment status).
// The most recently effective policy wins.
type Policy struct {
	ID               string
	LeaveTypeID      string
	EmploymentStatus string
	EntitlementDays  decimal.Decimal
	Method           ProrationMethod
	EffectiveDate    time.Time
	CreatedAt        time.Time
}

// Balance is one (employee, leave type, year) ledger account. It is
// created by the year initialization batch (or lazily on first reserve)
// and mutated only through ledger operations; rows are never deleted.
type Balance struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	Year        int

	Counters BalanceCounters

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	LeaveTypeName *string
	EmployeeName  *string
}

type TransactionKind string

const (
	TxCarryOver TransactionKind = "CARRY_OVER"
	TxAccrual   TransactionKind = "ACCRUAL"
	TxReserve   TransactionKind = "RESERVE"
	TxRelease   TransactionKind = "RELEASE"
	TxDeduct    TransactionKind = "DEDUCT"
)

// Transaction is one immutable ledger entry, appended for every balance
// mutation. BalanceAfter records the available balance resulting from the
// mutation.
type Transaction struct {
	ID           string
	BalanceID    string
	Kind         TransactionKind
	Amount       decimal.Decimal
	BalanceAfter decimal.Decimal
	Reference    string
	ActorID      string
	CreatedAt    time.Time
}

// Request is a leave request moving through the shared two-stage approval
// lifecycle. Status values and transitions live in the approval package.
type Request struct {
	ID          string
	RequestNo   string
	EmployeeID  string
	LeaveTypeID string

	StartDate    time.Time
	EndDate      time.Time
	StartHalfDay bool
	EndHalfDay   bool
	Days         decimal.Decimal

	Reason string
	Status string

	SupervisorID         *string
	SupervisorApprovedBy *string
	SupervisorApprovedAt *time.Time
	SupervisorRemarks    *string

	HRApprovedBy *string
	HRApprovedAt *time.Time
	HRRemarks    *string

	CancelledAt        *time.Time
	CancellationReason *string

	SubmittedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO
	LeaveTypeName *string
	EmployeeName  *string
}
