package leave

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/suweldo/payroll-backend-go/internal/pkg/validator"
)

type CreateRequestRequest struct {
	LeaveTypeID  string `json:"leave_type_id"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	StartHalfDay bool   `json:"start_half_day"`
	EndHalfDay   bool   `json:"end_half_day"`
	Reason       string `json:"reason"`
}

func (r CreateRequestRequest) Validate() (time.Time, time.Time, error) {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{Field: "leave_type_id", Message: "Must be a valid id"})
	}
	start, ok := validator.IsValidDate(r.StartDate)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "Must be YYYY-MM-DD"})
	}
	end, ok := validator.IsValidDate(r.EndDate)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "Must be YYYY-MM-DD"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "Reason is required"})
	}

	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	return start, end, nil
}

type CancelRequestRequest struct {
	Reason string `json:"reason"`
}

type DecisionRequest struct {
	Remarks string `json:"remarks"`
}

type RequestResponse struct {
	ID                   string     `json:"id"`
	RequestNo            string     `json:"request_no"`
	EmployeeID           string     `json:"employee_id"`
	EmployeeName         *string    `json:"employee_name,omitempty"`
	LeaveTypeID          string     `json:"leave_type_id"`
	LeaveTypeName        *string    `json:"leave_type_name,omitempty"`
	StartDate            string     `json:"start_date"`
	EndDate              string     `json:"end_date"`
	Days                 string     `json:"days"`
	Reason               string     `json:"reason"`
	Status               string     `json:"status"`
	SupervisorApprovedBy *string    `json:"supervisor_approved_by,omitempty"`
	SupervisorApprovedAt *time.Time `json:"supervisor_approved_at,omitempty"`
	SupervisorRemarks    *string    `json:"supervisor_remarks,omitempty"`
	HRApprovedBy         *string    `json:"hr_approved_by,omitempty"`
	HRApprovedAt         *time.Time `json:"hr_approved_at,omitempty"`
	HRRemarks            *string    `json:"hr_remarks,omitempty"`
	CancelledAt          *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason   *string    `json:"cancellation_reason,omitempty"`
	SubmittedAt          time.Time  `json:"submitted_at"`
}

func ToRequestResponse(req Request) RequestResponse {
	return RequestResponse{
		ID:                   req.ID,
		RequestNo:            req.RequestNo,
		EmployeeID:           req.EmployeeID,
		EmployeeName:         req.EmployeeName,
		LeaveTypeID:          req.LeaveTypeID,
		LeaveTypeName:        req.LeaveTypeName,
		StartDate:            req.StartDate.Format("2006-01-02"),
		EndDate:              req.EndDate.Format("2006-01-02"),
		Days:                 req.Days.StringFixed(2),
		Reason:               req.Reason,
		Status:               req.Status,
		SupervisorApprovedBy: req.SupervisorApprovedBy,
		SupervisorApprovedAt: req.SupervisorApprovedAt,
		SupervisorRemarks:    req.SupervisorRemarks,
		HRApprovedBy:         req.HRApprovedBy,
		HRApprovedAt:         req.HRApprovedAt,
		HRRemarks:            req.HRRemarks,
		CancelledAt:          req.CancelledAt,
		CancellationReason:   req.CancellationReason,
		SubmittedAt:          req.SubmittedAt,
	}
}

type BalanceResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	LeaveTypeID   string  `json:"leave_type_id"`
	LeaveTypeName *string `json:"leave_type_name,omitempty"`
	Year          int     `json:"year"`
	Opening       string  `json:"opening_balance"`
	Earned        string  `json:"credits_earned"`
	Used          string  `json:"credits_used"`
	Forfeited     string  `json:"credits_forfeited"`
	Converted     string  `json:"credits_converted"`
	CarriedOver   string  `json:"credits_carried_over"`
	Current       string  `json:"current_balance"`
	Pending       string  `json:"pending_requests"`
	Available     string  `json:"available_balance"`
}

func ToBalanceResponse(b Balance) BalanceResponse {
	fixed := func(v decimal.Decimal) string { return v.StringFixed(2) }
	return BalanceResponse{
		ID:            b.ID,
		EmployeeID:    b.EmployeeID,
		LeaveTypeID:   b.LeaveTypeID,
		LeaveTypeName: b.LeaveTypeName,
		Year:          b.Year,
		Opening:       fixed(b.Counters.Opening()),
		Earned:        fixed(b.Counters.Earned()),
		Used:          fixed(b.Counters.Used()),
		Forfeited:     fixed(b.Counters.Forfeited()),
		Converted:     fixed(b.Counters.Converted()),
		CarriedOver:   fixed(b.Counters.CarriedOver()),
		Current:       fixed(b.Counters.Current()),
		Pending:       fixed(b.Counters.Pending()),
		Available:     fixed(b.Counters.Available()),
	}
}

type TransactionResponse struct {
	ID           string    `json:"id"`
	BalanceID    string    `json:"balance_id"`
	Kind         string    `json:"transaction_type"`
	Amount       string    `json:"amount"`
	BalanceAfter string    `json:"balance_after"`
	Reference    string    `json:"reference"`
	ActorID      string    `json:"actor_id"`
	CreatedAt    time.Time `json:"created_at"`
}

func ToTransactionResponse(tx Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           tx.ID,
		BalanceID:    tx.BalanceID,
		Kind:         string(tx.Kind),
		Amount:       tx.Amount.StringFixed(2),
		BalanceAfter: tx.BalanceAfter.StringFixed(2),
		Reference:    tx.Reference,
		ActorID:      tx.ActorID,
		CreatedAt:    tx.CreatedAt,
	}
}

// InitSummary aggregates the outcome of one year-initialization run.
type InitSummary struct {
	Year                 int `json:"year"`
	EmployeesConsidered  int `json:"employees_considered"`
	LeaveTypesConsidered int `json:"leave_types_considered"`
	BalancesCreated      int `json:"balances_created"`
	SkippedExisting      int `json:"skipped_existing"`
	SkippedNoPolicy      int `json:"skipped_no_policy"`
}
