package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/suweldo/payroll-backend-go/internal/domain/employee"
	"github.com/suweldo/payroll-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, user_id, company_id, full_name,
	employment_status, hire_date, separation_date,
	manager_id, overtime_eligible, active,
	created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.UserID, &e.CompanyID, &e.FullName,
		&e.EmploymentStatus, &e.HireDate, &e.SeparationDate,
		&e.ManagerID, &e.OvertimeEligible, &e.Active,
		&e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1 AND deleted_at IS NULL`
	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return e, nil
}

func (r *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE user_id = $1 AND deleted_at IS NULL`
	e, err := scanEmployee(q.QueryRow(ctx, query, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return e, nil
}

func (r *employeeRepositoryImpl) ListActiveByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE company_id = $1 AND active = TRUE AND deleted_at IS NULL
		ORDER BY full_name`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, nil
}

func (r *employeeRepositoryImpl) CountActiveDirectReports(ctx context.Context, employeeID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	query := `SELECT COUNT(*) FROM employees WHERE manager_id = $1 AND active = TRUE AND deleted_at IS NULL`
	if err := q.QueryRow(ctx, query, employeeID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
