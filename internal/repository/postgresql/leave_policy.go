package postgresql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/suweldo/payroll-backend-go/internal/domain/leave"
	"github.com/suweldo/payroll-backend-go/internal/pkg/database"
)

type leavePolicyRepositoryImpl struct {
	db *database.DB
}

func NewLeavePolicyRepository(db *database.DB) leave.PolicyRepository {
	return &leavePolicyRepositoryImpl{db: db}
}

func (r *leavePolicyRepositoryImpl) GetEffective(ctx context.Context, leaveTypeID, employmentStatus string, asOf time.Time) (leave.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, leave_type_id, employment_status, entitlement_days, proration_method, effective_date, created_at
		FROM leave_policies
		WHERE leave_type_id = $1 AND employment_status = $2 AND effective_date <= $3
		ORDER BY effective_date DESC
		LIMIT 1
	`

	var p leave.Policy
	err := q.QueryRow(ctx, query, leaveTypeID, employmentStatus, asOf).Scan(
		&p.ID, &p.LeaveTypeID, &p.EmploymentStatus, &p.EntitlementDays, &p.Method, &p.EffectiveDate, &p.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Policy{}, leave.ErrPolicyNotFound
		}
		return leave.Policy{}, err
	}
	return p, nil
}
