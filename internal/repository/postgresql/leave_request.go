package postgresql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/suweldo/payroll-backend-go/internal/domain/approval"
	"github.com/suweldo/payroll-backend-go/internal/domain/leave"
	"github.com/suweldo/payroll-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.RequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	r.id, r.request_no, r.employee_id, r.leave_type_id,
	r.start_date, r.end_date, r.start_half_day, r.end_half_day, r.days,
	r.reason, r.status,
	r.supervisor_id, r.supervisor_approved_by, r.supervisor_approved_at, r.supervisor_remarks,
	r.hr_approved_by, r.hr_approved_at, r.hr_remarks,
	r.cancelled_at, r.cancellation_reason,
	r.submitted_at, r.created_at, r.updated_at
`

func scanLeaveRequest(row pgx.Row, withTypeName, withEmployeeName bool) (leave.Request, error) {
	var req leave.Request
	dest := []any{
		&req.ID, &req.RequestNo, &req.EmployeeID, &req.LeaveTypeID,
		&req.StartDate, &req.EndDate, &req.StartHalfDay, &req.EndHalfDay, &req.Days,
		&req.Reason, &req.Status,
		&req.SupervisorID, &req.SupervisorApprovedBy, &req.SupervisorApprovedAt, &req.SupervisorRemarks,
		&req.HRApprovedBy, &req.HRApprovedAt, &req.HRRemarks,
		&req.CancelledAt, &req.CancellationReason,
		&req.SubmittedAt, &req.CreatedAt, &req.UpdatedAt,
	}
	if withTypeName {
		dest = append(dest, &req.LeaveTypeName)
	}
	if withEmployeeName {
		dest = append(dest, &req.EmployeeName)
	}
	err := row.Scan(dest...)
	return req, err
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, request_no, employee_id, leave_type_id,
			start_date, end_date, start_half_day, end_half_day, days,
			reason, status,
			supervisor_id, submitted_at, created_at, updated_at
		) VALUES (
			uuidv7(),
			'LV-' || to_char($3::date, 'YYYY') || '-' || lpad(nextval('leave_request_no_seq')::text, 5, '0'),
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW(), NOW()
		) RETURNING id, request_no, submitted_at, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.EmployeeID, req.LeaveTypeID,
		req.StartDate, req.EndDate, req.StartHalfDay, req.EndHalfDay, req.Days,
		req.Reason, req.Status, req.SupervisorID,
	).Scan(&req.ID, &req.RequestNo, &req.SubmittedAt, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return leave.Request{}, err
	}

	return req, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, companyID, id string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `, t.name AS leave_type_name, e.full_name AS employee_name
		FROM leave_requests r
		JOIN leave_types t ON r.leave_type_id = t.id
		JOIN employees e ON r.employee_id = e.id
		WHERE r.id = $1 AND e.company_id = $2
	`

	req, err := scanLeaveRequest(q.QueryRow(ctx, query, id, companyID), true, true)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Request{}, leave.ErrRequestNotFound
		}
		return leave.Request{}, err
	}
	return req, nil
}

func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `, t.name AS leave_type_name
		FROM leave_requests r
		JOIN leave_types t ON r.leave_type_id = t.id
		WHERE r.employee_id = $1
		ORDER BY r.submitted_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]leave.Request, 0)
	for rows.Next() {
		req, err := scanLeaveRequest(rows, true, false)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, nil
}

func (r *leaveRequestRepositoryImpl) ListByStatus(ctx context.Context, companyID, status string) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `, t.name AS leave_type_name, e.full_name AS employee_name
		FROM leave_requests r
		JOIN leave_types t ON r.leave_type_id = t.id
		JOIN employees e ON r.employee_id = e.id
		WHERE e.company_id = $1 AND r.status = $2
		ORDER BY r.submitted_at
	`

	rows, err := q.Query(ctx, query, companyID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]leave.Request, 0)
	for rows.Next() {
		req, err := scanLeaveRequest(rows, true, true)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, nil
}

// CheckOverlapping considers only requests that still hold (or may come to
// hold) days against the period: pending, supervisor-approved and approved.
func (r *leaveRequestRepositoryImpl) CheckOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1
			  AND status IN ($2, $3, $4)
			  AND start_date <= $5
			  AND end_date >= $6
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query,
		employeeID,
		string(approval.StatusPending), string(approval.StatusSupervisorApproved), string(approval.StatusApproved),
		end, start,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, req leave.Request) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1,
		    supervisor_approved_by = $2, supervisor_approved_at = $3, supervisor_remarks = $4,
		    hr_approved_by = $5, hr_approved_at = $6, hr_remarks = $7,
		    cancelled_at = $8, cancellation_reason = $9, updated_at = NOW()
		WHERE id = $10
	`

	tag, err := q.Exec(ctx, query,
		req.Status,
		req.SupervisorApprovedBy, req.SupervisorApprovedAt, req.SupervisorRemarks,
		req.HRApprovedBy, req.HRApprovedAt, req.HRRemarks,
		req.CancelledAt, req.CancellationReason, req.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrRequestNotFound
	}
	return nil
}
