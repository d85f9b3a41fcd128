package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/suweldo/payroll-backend-go/internal/domain/leave"
	"github.com/suweldo/payroll-backend-go/internal/pkg/database"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

const leaveTypeColumns = `
	id, company_id, name, code, description,
	paid, active, allow_carry_over, max_carry_over_days,
	effective_from, effective_to, created_at, updated_at
`

func scanLeaveType(row pgx.Row) (leave.LeaveType, error) {
	var t leave.LeaveType
	err := row.Scan(
		&t.ID, &t.CompanyID, &t.Name, &t.Code, &t.Description,
		&t.Paid, &t.Active, &t.AllowCarryOver, &t.MaxCarryOverDays,
		&t.EffectiveFrom, &t.EffectiveTo, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r *leaveTypeRepositoryImpl) GetByID(ctx context.Context, companyID, id string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveTypeColumns + ` FROM leave_types WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL`
	t, err := scanLeaveType(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, err
	}
	return t, nil
}

func (r *leaveTypeRepositoryImpl) ListActiveByCompanyID(ctx context.Context, companyID string) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveTypeColumns + `
		FROM leave_types
		WHERE company_id = $1 AND active = TRUE AND deleted_at IS NULL
		ORDER BY name`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]leave.LeaveType, 0)
	for rows.Next() {
		t, err := scanLeaveType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}
