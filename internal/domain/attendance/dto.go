package attendance

import (
	"time"

	"github.com/suweldo/payroll-backend-go/internal/pkg/validator"
)

// SyncRequest is one automated clock-event pair pushed by a device or the
// attendance bridge.
type SyncRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	ActualIn   *string `json:"actual_in,omitempty"`
	ActualOut  *string `json:"actual_out,omitempty"`
}

func (r SyncRequest) Validate() (time.Time, *time.Time, *time.Time, error) {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "Must be a valid id"})
	}
	date, ok := validator.IsValidDate(r.Date)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "Must be YYYY-MM-DD"})
	}

	var in, out *time.Time
	if r.ActualIn != nil {
		t, ok := validator.IsValidDateTime(*r.ActualIn)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "actual_in", Message: "Must be RFC3339"})
		} else {
			in = &t
		}
	}
	if r.ActualOut != nil {
		t, ok := validator.IsValidDateTime(*r.ActualOut)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "actual_out", Message: "Must be RFC3339"})
		} else {
			out = &t
		}
	}

	if len(errs) > 0 {
		return time.Time{}, nil, nil, errs
	}
	return date, in, out, nil
}

// ManualEntryRequest creates a DTR row by hand; time fields are tagged as
// manually sourced.
type ManualEntryRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	ActualIn   *string `json:"actual_in,omitempty"`
	ActualOut  *string `json:"actual_out,omitempty"`
	Remarks    *string `json:"remarks,omitempty"`
}

// CorrectionRequest adjusts an existing record. Derived metrics are always
// recomputed; they cannot be set directly.
type CorrectionRequest struct {
	ActualIn  *string `json:"actual_in,omitempty"`
	ActualOut *string `json:"actual_out,omitempty"`
	Remarks   *string `json:"remarks,omitempty"`
	Reason    string  `json:"reason"`
}

func (r CorrectionRequest) Validate() (*time.Time, *time.Time, error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "Correction reason is required"})
	}

	var in, out *time.Time
	if r.ActualIn != nil {
		t, ok := validator.IsValidDateTime(*r.ActualIn)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "actual_in", Message: "Must be RFC3339"})
		} else {
			in = &t
		}
	}
	if r.ActualOut != nil {
		t, ok := validator.IsValidDateTime(*r.ActualOut)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "actual_out", Message: "Must be RFC3339"})
		} else {
			out = &t
		}
	}

	if len(errs) > 0 {
		return nil, nil, errs
	}
	return in, out, nil
}

type RecordResponse struct {
	ID             string     `json:"id"`
	EmployeeID     string     `json:"employee_id"`
	EmployeeName   *string    `json:"employee_name,omitempty"`
	Date           string     `json:"date"`
	ActualIn       *time.Time `json:"actual_in"`
	ActualOut      *time.Time `json:"actual_out"`
	ScheduledIn    *time.Time `json:"scheduled_in"`
	ScheduledOut   *time.Time `json:"scheduled_out"`
	InSource       *string    `json:"in_source,omitempty"`
	OutSource      *string    `json:"out_source,omitempty"`
	TardinessMins  int        `json:"tardiness_mins"`
	UndertimeMins  int        `json:"undertime_mins"`
	OvertimeHours  float64    `json:"overtime_hours"`
	HoursWorked    float64    `json:"hours_worked"`
	NightDiffHours float64    `json:"night_diff_hours"`
	Status         string     `json:"status"`
	ApprovalStatus string     `json:"approval_status"`
	Remarks        *string    `json:"remarks,omitempty"`
}

func ToResponse(rec Record) RecordResponse {
	resp := RecordResponse{
		ID:             rec.ID,
		EmployeeID:     rec.EmployeeID,
		EmployeeName:   rec.EmployeeName,
		Date:           rec.Date.Format("2006-01-02"),
		ActualIn:       rec.ActualIn,
		ActualOut:      rec.ActualOut,
		ScheduledIn:    rec.ScheduledIn,
		ScheduledOut:   rec.ScheduledOut,
		TardinessMins:  rec.Metrics.TardinessMins,
		UndertimeMins:  rec.Metrics.UndertimeMins,
		OvertimeHours:  rec.Metrics.OvertimeHours,
		HoursWorked:    rec.Metrics.HoursWorked,
		NightDiffHours: rec.Metrics.NightDiffHours,
		Status:         string(rec.Status),
		ApprovalStatus: string(rec.ApprovalStatus),
		Remarks:        rec.Remarks,
	}
	if rec.InSource != nil {
		s := string(*rec.InSource)
		resp.InSource = &s
	}
	if rec.OutSource != nil {
		s := string(*rec.OutSource)
		resp.OutSource = &s
	}
	return resp
}
