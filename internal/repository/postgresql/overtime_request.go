package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/suweldo/payroll-backend-go/internal/domain/overtime"
	"github.com/suweldo/payroll-backend-go/internal/pkg/database"
)

type overtimeRequestRepositoryImpl struct {
	db *database.DB
}

func NewOvertimeRequestRepository(db *database.DB) overtime.Repository {
	return &overtimeRequestRepositoryImpl{db: db}
}

const overtimeRequestColumns = `
	r.id, r.request_no, r.employee_id,
	r.date, r.start_time, r.end_time, r.hours,
	r.reason, r.status, r.approver_id,
	r.supervisor_approved_by, r.supervisor_approved_at, r.supervisor_remarks,
	r.hr_approved_by, r.hr_approved_at, r.hr_remarks,
	r.cancelled_at, r.cancellation_reason, r.cto_preview,
	r.submitted_at, r.created_at, r.updated_at
`

func scanOvertimeRequest(row pgx.Row, withEmployeeName bool) (overtime.Request, error) {
	var req overtime.Request
	dest := []any{
		&req.ID, &req.RequestNo, &req.EmployeeID,
		&req.Date, &req.StartTime, &req.EndTime, &req.Hours,
		&req.Reason, &req.Status, &req.ApproverID,
		&req.SupervisorApprovedBy, &req.SupervisorApprovedAt, &req.SupervisorRemarks,
		&req.HRApprovedBy, &req.HRApprovedAt, &req.HRRemarks,
		&req.CancelledAt, &req.CancellationReason, &req.CTOPreview,
		&req.SubmittedAt, &req.CreatedAt, &req.UpdatedAt,
	}
	if withEmployeeName {
		dest = append(dest, &req.EmployeeName)
	}
	err := row.Scan(dest...)
	return req, err
}

func (r *overtimeRequestRepositoryImpl) Create(ctx context.Context, req overtime.Request) (overtime.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO overtime_requests (
			id, request_no, employee_id,
			date, start_time, end_time, hours,
			reason, status, approver_id, cto_preview,
			submitted_at, created_at, updated_at
		) VALUES (
			uuidv7(),
			'OT-' || to_char($2::date, 'YYYY') || '-' || lpad(nextval('overtime_request_no_seq')::text, 5, '0'),
			$1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW(), NOW()
		) RETURNING id, request_no, submitted_at, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.EmployeeID,
		req.Date, req.StartTime, req.EndTime, req.Hours,
		req.Reason, req.Status, req.ApproverID, req.CTOPreview,
	).Scan(&req.ID, &req.RequestNo, &req.SubmittedAt, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return overtime.Request{}, err
	}

	return req, nil
}

func (r *overtimeRequestRepositoryImpl) GetByID(ctx context.Context, companyID, id string) (overtime.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + overtimeRequestColumns + `, e.full_name AS employee_name
		FROM overtime_requests r
		JOIN employees e ON r.employee_id = e.id
		WHERE r.id = $1 AND e.company_id = $2
	`

	req, err := scanOvertimeRequest(q.QueryRow(ctx, query, id, companyID), true)
	if err != nil {
		if err == pgx.ErrNoRows {
			return overtime.Request{}, overtime.ErrRequestNotFound
		}
		return overtime.Request{}, err
	}
	return req, nil
}

func (r *overtimeRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]overtime.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + overtimeRequestColumns + `
		FROM overtime_requests r
		WHERE r.employee_id = $1
		ORDER BY r.submitted_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]overtime.Request, 0)
	for rows.Next() {
		req, err := scanOvertimeRequest(rows, false)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, nil
}

func (r *overtimeRequestRepositoryImpl) ListByStatus(ctx context.Context, companyID, status string) ([]overtime.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + overtimeRequestColumns + `, e.full_name AS employee_name
		FROM overtime_requests r
		JOIN employees e ON r.employee_id = e.id
		WHERE e.company_id = $1 AND r.status = $2
		ORDER BY r.submitted_at
	`

	rows, err := q.Query(ctx, query, companyID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]overtime.Request, 0)
	for rows.Next() {
		req, err := scanOvertimeRequest(rows, true)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, nil
}

func (r *overtimeRequestRepositoryImpl) Update(ctx context.Context, req overtime.Request) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE overtime_requests
		SET status = $1,
		    supervisor_approved_by = $2, supervisor_approved_at = $3, supervisor_remarks = $4,
		    hr_approved_by = $5, hr_approved_at = $6, hr_remarks = $7,
		    cancelled_at = $8, cancellation_reason = $9, cto_preview = $10, updated_at = NOW()
		WHERE id = $11
	`

	tag, err := q.Exec(ctx, query,
		req.Status,
		req.SupervisorApprovedBy, req.SupervisorApprovedAt, req.SupervisorRemarks,
		req.HRApprovedBy, req.HRApprovedAt, req.HRRemarks,
		req.CancelledAt, req.CancellationReason, req.CTOPreview, req.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return overtime.ErrRequestNotFound
	}
	return nil
}
