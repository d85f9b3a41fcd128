package overtime

import (
	"time"

	"github.com/suweldo/payroll-backend-go/internal/pkg/validator"
)

type CreateRequestRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason"`
}

func (r CreateRequestRequest) Validate() (date, start, end time.Time, err error) {
	var errs validator.ValidationErrors

	date, ok := validator.IsValidDate(r.Date)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "Must be YYYY-MM-DD"})
	}
	start, ok = validator.IsValidDateTime(r.StartTime)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "Must be RFC3339"})
	}
	end, ok = validator.IsValidDateTime(r.EndTime)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "Must be RFC3339"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "Reason is required"})
	}

	if len(errs) > 0 {
		return time.Time{}, time.Time{}, time.Time{}, errs
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, time.Time{}, ErrInvalidTimeRange
	}
	return date, start, end, nil
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
	Date                 string     `json:"date"`
	StartTime            time.Time  `json:"start_time"`
	EndTime              time.Time  `json:"end_time"`
	Hours                string     `json:"hours"`
	Reason               string     `json:"reason"`
	Status               string     `json:"status"`
	CTOPreview           bool       `json:"cto_conversion_preview"`
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

func ToResponse(req Request) RequestResponse {
	return RequestResponse{
		ID:                   req.ID,
		RequestNo:            req.RequestNo,
		EmployeeID:           req.EmployeeID,
		EmployeeName:         req.EmployeeName,
		Date:                 req.Date.Format("2006-01-02"),
		StartTime:            req.StartTime,
		EndTime:              req.EndTime,
		Hours:                req.Hours.StringFixed(2),
		Reason:               req.Reason,
		Status:               req.Status,
		CTOPreview:           req.CTOPreview,
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
