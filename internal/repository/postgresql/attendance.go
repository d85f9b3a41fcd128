package postgresql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/suweldo/payroll-backend-go/internal/domain/attendance"
	"github.com/suweldo/payroll-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.company_id, a.date,
	a.actual_in, a.actual_out, a.scheduled_in, a.scheduled_out,
	a.in_source, a.out_source,
	a.tardiness_mins, a.undertime_mins, a.overtime_hours, a.hours_worked, a.night_diff_hours,
	a.status, a.approval_status, a.remarks, a.created_at, a.updated_at
`

func scanAttendance(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	var inSource, outSource *string
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.CompanyID, &rec.Date,
		&rec.ActualIn, &rec.ActualOut, &rec.ScheduledIn, &rec.ScheduledOut,
		&inSource, &outSource,
		&rec.Metrics.TardinessMins, &rec.Metrics.UndertimeMins,
		&rec.Metrics.OvertimeHours, &rec.Metrics.HoursWorked, &rec.Metrics.NightDiffHours,
		&rec.Status, &rec.ApprovalStatus, &rec.Remarks, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return attendance.Record{}, err
	}
	if inSource != nil {
		s := attendance.TimeSource(*inSource)
		rec.InSource = &s
	}
	if outSource != nil {
		s := attendance.TimeSource(*outSource)
		rec.OutSource = &s
	}
	return rec, nil
}

func (r *attendanceRepositoryImpl) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			id, employee_id, company_id, date,
			actual_in, actual_out, scheduled_in, scheduled_out,
			in_source, out_source,
			tardiness_mins, undertime_mins, overtime_hours, hours_worked, night_diff_hours,
			status, approval_status, remarks, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3,
			$4, $5, $6, $7,
			$8, $9,
			$10, $11, $12, $13, $14,
			$15, $16, $17, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.EmployeeID, rec.CompanyID, rec.Date,
		rec.ActualIn, rec.ActualOut, rec.ScheduledIn, rec.ScheduledOut,
		rec.InSource, rec.OutSource,
		rec.Metrics.TardinessMins, rec.Metrics.UndertimeMins,
		rec.Metrics.OvertimeHours, rec.Metrics.HoursWorked, rec.Metrics.NightDiffHours,
		rec.Status, rec.ApprovalStatus, rec.Remarks,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return attendance.Record{}, err
	}

	return rec, nil
}

func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, companyID, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance_records a WHERE a.id = $1 AND a.company_id = $2`
	rec, err := scanAttendance(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, err
	}
	return rec, nil
}

func (r *attendanceRepositoryImpl) GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance_records a WHERE a.employee_id = $1 AND a.date = $2`
	rec, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, err
	}
	return rec, nil
}

func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance_records a
		WHERE a.employee_id = $1 AND a.date BETWEEN $2 AND $3
		ORDER BY a.date`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]attendance.Record, 0)
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *attendanceRepositoryImpl) ListByCompany(ctx context.Context, companyID string, from, to time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `, e.full_name AS employee_name
		FROM attendance_records a
		JOIN employees e ON a.employee_id = e.id
		WHERE a.company_id = $1 AND a.date BETWEEN $2 AND $3
		ORDER BY a.date, e.full_name
	`

	rows, err := q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]attendance.Record, 0)
	for rows.Next() {
		var rec attendance.Record
		var inSource, outSource *string
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.CompanyID, &rec.Date,
			&rec.ActualIn, &rec.ActualOut, &rec.ScheduledIn, &rec.ScheduledOut,
			&inSource, &outSource,
			&rec.Metrics.TardinessMins, &rec.Metrics.UndertimeMins,
			&rec.Metrics.OvertimeHours, &rec.Metrics.HoursWorked, &rec.Metrics.NightDiffHours,
			&rec.Status, &rec.ApprovalStatus, &rec.Remarks, &rec.CreatedAt, &rec.UpdatedAt,
			&rec.EmployeeName,
		); err != nil {
			return nil, err
		}
		if inSource != nil {
			s := attendance.TimeSource(*inSource)
			rec.InSource = &s
		}
		if outSource != nil {
			s := attendance.TimeSource(*outSource)
			rec.OutSource = &s
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *attendanceRepositoryImpl) Update(ctx context.Context, rec attendance.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET actual_in = $1, actual_out = $2, scheduled_in = $3, scheduled_out = $4,
		    in_source = $5, out_source = $6,
		    tardiness_mins = $7, undertime_mins = $8, overtime_hours = $9,
		    hours_worked = $10, night_diff_hours = $11,
		    status = $12, approval_status = $13, remarks = $14, updated_at = NOW()
		WHERE id = $15
	`

	tag, err := q.Exec(ctx, query,
		rec.ActualIn, rec.ActualOut, rec.ScheduledIn, rec.ScheduledOut,
		rec.InSource, rec.OutSource,
		rec.Metrics.TardinessMins, rec.Metrics.UndertimeMins, rec.Metrics.OvertimeHours,
		rec.Metrics.HoursWorked, rec.Metrics.NightDiffHours,
		rec.Status, rec.ApprovalStatus, rec.Remarks, rec.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}
	return nil
}
