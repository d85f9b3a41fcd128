package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/suweldo/payroll-backend-go/internal/domain/attendance"
	"github.com/suweldo/payroll-backend-go/internal/domain/audit"
	"github.com/suweldo/payroll-backend-go/internal/domain/employee"
	"github.com/suweldo/payroll-backend-go/internal/domain/identity"
	"github.com/suweldo/payroll-backend-go/internal/domain/notification"
	"github.com/suweldo/payroll-backend-go/internal/domain/schedule"
	"github.com/suweldo/payroll-backend-go/internal/pkg/database"
)

// ShiftResolver resolves the effective scheduled shift for one employee and
// date. The schedule service satisfies this.
type ShiftResolver interface {
	ResolveShift(ctx context.Context, companyID, employeeID string, date time.Time) (schedule.ResolvedShift, *schedule.WorkSchedule, error)
}

type Service struct {
	tx        database.Transactor
	records   attendance.Repository
	employees employee.Repository
	resolver  ShiftResolver
	audit     audit.Repository
	notifier  notification.Notifier
}

func NewService(
	tx database.Transactor,
	attendanceRepository attendance.Repository,
	employeeRepository employee.Repository,
	resolver ShiftResolver,
	auditRepository audit.Repository,
	notifier notification.Notifier,
) *Service {
	return &Service{
		tx:        tx,
		records:   attendanceRepository,
		employees: employeeRepository,
		resolver:  resolver,
		audit:     auditRepository,
		notifier:  notifier,
	}
}

// Sync ingests one automated clock-event pair. An existing row for the
// employee and date absorbs the new times; otherwise a new row is created.
// Metrics are recomputed either way.
func (s *Service) Sync(ctx context.Context, actor identity.Actor, req attendance.SyncRequest) (attendance.Record, error) {
	if !identity.HasPermission(actor.Role, identity.PermissionAttendanceSync) {
		return attendance.Record{}, identity.ErrUnauthorized
	}

	date, in, out, err := req.Validate()
	if err != nil {
		return attendance.Record{}, err
	}

	return s.ingest(ctx, actor, req.EmployeeID, date, in, out, nil, attendance.SourceAutomated)
}

// ManualEntry creates a DTR row by hand; the clock times it carries are
// tagged as manually sourced.
func (s *Service) ManualEntry(ctx context.Context, actor identity.Actor, req attendance.ManualEntryRequest) (attendance.Record, error) {
	if !identity.HasPermission(actor.Role, identity.PermissionAttendanceCorrect) {
		return attendance.Record{}, identity.ErrUnauthorized
	}

	sync := attendance.SyncRequest{EmployeeID: req.EmployeeID, Date: req.Date, ActualIn: req.ActualIn, ActualOut: req.ActualOut}
	date, in, out, err := sync.Validate()
	if err != nil {
		return attendance.Record{}, err
	}

	return s.ingest(ctx, actor, req.EmployeeID, date, in, out, req.Remarks, attendance.SourceManual)
}

func (s *Service) ingest(ctx context.Context, actor identity.Actor, employeeID string, date time.Time, in, out *time.Time, remarks *string, source attendance.TimeSource) (attendance.Record, error) {
	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if emp.CompanyID != actor.CompanyID {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}

	shift, ws, err := s.resolver.ResolveShift(ctx, emp.CompanyID, employeeID, date)
	if err != nil {
		return attendance.Record{}, err
	}

	var rec attendance.Record
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		existing, err := s.records.GetByEmployeeDate(ctx, employeeID, date)
		switch {
		case err == nil:
			rec = existing
		case errors.Is(err, attendance.ErrRecordNotFound):
			rec = attendance.Record{
				EmployeeID:     employeeID,
				CompanyID:      emp.CompanyID,
				Date:           date,
				ScheduledIn:    shift.In,
				ScheduledOut:   shift.Out,
				ApprovalStatus: attendance.ApprovalPending,
			}
		default:
			return fmt.Errorf("failed to get attendance record: %w", err)
		}

		if in != nil {
			rec.ActualIn = in
			rec.InSource = &source
		}
		if out != nil {
			rec.ActualOut = out
			rec.OutSource = &source
		}
		if remarks != nil {
			rec.Remarks = remarks
		}

		s.recompute(&rec, ws)

		if rec.ID == "" {
			rec, err = s.records.Create(ctx, rec)
			if err != nil {
				return fmt.Errorf("failed to create attendance record: %w", err)
			}
			return nil
		}
		if err := s.records.Update(ctx, rec); err != nil {
			return fmt.Errorf("failed to update attendance record: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.Record{}, err
	}

	s.notifier.Revalidate(ctx, "attendance", rec.ID)
	return rec, nil
}

// Correct adjusts the raw clock times of an existing record and recomputes
// every derived metric; the change set is audited inside the same
// transaction as the write.
func (s *Service) Correct(ctx context.Context, actor identity.Actor, recordID string, req attendance.CorrectionRequest) (attendance.Record, error) {
	if !identity.HasPermission(actor.Role, identity.PermissionAttendanceCorrect) {
		return attendance.Record{}, identity.ErrUnauthorized
	}

	in, out, err := req.Validate()
	if err != nil {
		return attendance.Record{}, err
	}

	var rec attendance.Record
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		rec, err = s.records.GetByID(ctx, actor.CompanyID, recordID)
		if err != nil {
			return err
		}

		_, ws, err := s.resolver.ResolveShift(ctx, actor.CompanyID, rec.EmployeeID, rec.Date)
		if err != nil {
			return err
		}

		before := snapshot(rec)

		manual := attendance.SourceManual
		if in != nil {
			rec.ActualIn = in
			rec.InSource = &manual
		}
		if out != nil {
			rec.ActualOut = out
			rec.OutSource = &manual
		}
		if req.Remarks != nil {
			rec.Remarks = req.Remarks
		}

		s.recompute(&rec, ws)

		if err := s.records.Update(ctx, rec); err != nil {
			return fmt.Errorf("failed to update attendance record: %w", err)
		}

		entry := audit.Entry{
			CompanyID:  actor.CompanyID,
			EntityName: "attendance_record",
			RecordID:   rec.ID,
			Action:     "correct",
			ActorID:    actor.UserID,
			Reason:     req.Reason,
			Changes:    audit.Diff(before, snapshot(rec)),
		}
		if err := s.audit.Record(ctx, entry); err != nil {
			return fmt.Errorf("failed to record audit entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.Record{}, err
	}

	s.notifier.Revalidate(ctx, "attendance", rec.ID)
	return rec, nil
}

func (s *Service) GetRecord(ctx context.Context, actor identity.Actor, recordID string) (attendance.Record, error) {
	rec, err := s.records.GetByID(ctx, actor.CompanyID, recordID)
	if err != nil {
		return attendance.Record{}, err
	}
	if rec.EmployeeID != actor.EmployeeID && !identity.HasPermission(actor.Role, identity.PermissionAttendanceViewAll) {
		return attendance.Record{}, identity.ErrUnauthorized
	}
	return rec, nil
}

func (s *Service) ListByEmployee(ctx context.Context, actor identity.Actor, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	if employeeID != actor.EmployeeID && !identity.HasPermission(actor.Role, identity.PermissionAttendanceViewAll) {
		return nil, identity.ErrUnauthorized
	}
	return s.records.ListByEmployee(ctx, employeeID, from, to)
}

func (s *Service) ListByCompany(ctx context.Context, actor identity.Actor, from, to time.Time) ([]attendance.Record, error) {
	if !identity.HasPermission(actor.Role, identity.PermissionAttendanceViewAll) {
		return nil, identity.ErrUnauthorized
	}
	return s.records.ListByCompany(ctx, actor.CompanyID, from, to)
}

// ListAuditTrail returns the correction history of one record.
func (s *Service) ListAuditTrail(ctx context.Context, actor identity.Actor, recordID string) ([]audit.Entry, error) {
	if !identity.HasPermission(actor.Role, identity.PermissionAttendanceViewAll) {
		return nil, identity.ErrUnauthorized
	}
	return s.audit.ListByRecord(ctx, actor.CompanyID, "attendance_record", recordID)
}

func (s *Service) recompute(rec *attendance.Record, ws *schedule.WorkSchedule) {
	var graceMins, breakMins int
	if ws != nil {
		graceMins = ws.GraceMins
		breakMins = ws.BreakMins
	}

	rec.Metrics = attendance.ComputeMetrics(attendance.MetricsInput{
		ActualIn:     rec.ActualIn,
		ActualOut:    rec.ActualOut,
		ScheduledIn:  rec.ScheduledIn,
		ScheduledOut: rec.ScheduledOut,
		GraceMins:    graceMins,
		BreakMins:    breakMins,
		Previous:     rec.Metrics,
	})

	switch {
	case rec.ActualIn == nil && rec.ActualOut == nil:
		rec.Status = attendance.StatusAbsent
	case rec.Metrics.TardinessMins > 0:
		rec.Status = attendance.StatusLate
	default:
		rec.Status = attendance.StatusPresent
	}
}

func snapshot(rec attendance.Record) map[string]any {
	m := map[string]any{
		"actual_in":        formatPtr(rec.ActualIn),
		"actual_out":       formatPtr(rec.ActualOut),
		"tardiness_mins":   rec.Metrics.TardinessMins,
		"undertime_mins":   rec.Metrics.UndertimeMins,
		"overtime_hours":   rec.Metrics.OvertimeHours,
		"hours_worked":     rec.Metrics.HoursWorked,
		"night_diff_hours": rec.Metrics.NightDiffHours,
		"status":           string(rec.Status),
	}
	if rec.Remarks != nil {
		m["remarks"] = *rec.Remarks
	} else {
		m["remarks"] = ""
	}
	return m
}

func formatPtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
