package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/suweldo/payroll-backend-go/internal/domain/leave"
	"github.com/suweldo/payroll-backend-go/internal/pkg/database"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

const balanceColumns = `
	b.id, b.employee_id, b.leave_type_id, b.year,
	b.opening, b.earned, b.used, b.forfeited, b.converted, b.carried_over, b.pending,
	b.created_at, b.updated_at
`

func scanBalance(row pgx.Row) (leave.Balance, error) {
	var b leave.Balance
	var opening, earned, used, forfeited, converted, carriedOver, pending decimal.Decimal
	err := row.Scan(
		&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year,
		&opening, &earned, &used, &forfeited, &converted, &carriedOver, &pending,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return leave.Balance{}, err
	}
	b.Counters = leave.RestoreCounters(opening, earned, used, forfeited, converted, carriedOver, pending)
	return b, nil
}

func (r *leaveBalanceRepositoryImpl) Create(ctx context.Context, b leave.Balance) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (
			id, employee_id, leave_type_id, year,
			opening, earned, used, forfeited, converted, carried_over, pending,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3,
			$4, $5, $6, $7, $8, $9, $10,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	c := b.Counters
	err := q.QueryRow(ctx, query,
		b.EmployeeID, b.LeaveTypeID, b.Year,
		c.Opening(), c.Earned(), c.Used(), c.Forfeited(), c.Converted(), c.CarriedOver(), c.Pending(),
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return leave.Balance{}, leave.ErrBalanceExists
		}
		return leave.Balance{}, err
	}

	return b, nil
}

func (r *leaveBalanceRepositoryImpl) GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.Balance, error) {
	return r.getByEmployeeTypeYear(ctx, employeeID, leaveTypeID, year, false)
}

func (r *leaveBalanceRepositoryImpl) GetByEmployeeTypeYearForUpdate(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.Balance, error) {
	return r.getByEmployeeTypeYear(ctx, employeeID, leaveTypeID, year, true)
}

func (r *leaveBalanceRepositoryImpl) getByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int, forUpdate bool) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + balanceColumns + `
		FROM leave_balances b
		WHERE b.employee_id = $1 AND b.leave_type_id = $2 AND b.year = $3`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	b, err := scanBalance(q.QueryRow(ctx, query, employeeID, leaveTypeID, year))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Balance{}, leave.ErrBalanceNotFound
		}
		return leave.Balance{}, err
	}
	return b, nil
}

func (r *leaveBalanceRepositoryImpl) ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + balanceColumns + `, t.name AS leave_type_name
		FROM leave_balances b
		JOIN leave_types t ON b.leave_type_id = t.id
		WHERE b.employee_id = $1 AND b.year = $2
		ORDER BY t.name
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := make([]leave.Balance, 0)
	for rows.Next() {
		var b leave.Balance
		var opening, earned, used, forfeited, converted, carriedOver, pending decimal.Decimal
		if err := rows.Scan(
			&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year,
			&opening, &earned, &used, &forfeited, &converted, &carriedOver, &pending,
			&b.CreatedAt, &b.UpdatedAt,
			&b.LeaveTypeName,
		); err != nil {
			return nil, err
		}
		b.Counters = leave.RestoreCounters(opening, earned, used, forfeited, converted, carriedOver, pending)
		balances = append(balances, b)
	}
	return balances, nil
}

func (r *leaveBalanceRepositoryImpl) UpdateCounters(ctx context.Context, b leave.Balance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET opening = $1, earned = $2, used = $3, forfeited = $4,
		    converted = $5, carried_over = $6, pending = $7, updated_at = NOW()
		WHERE id = $8
	`

	c := b.Counters
	tag, err := q.Exec(ctx, query,
		c.Opening(), c.Earned(), c.Used(), c.Forfeited(),
		c.Converted(), c.CarriedOver(), c.Pending(), b.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrBalanceNotFound
	}
	return nil
}
