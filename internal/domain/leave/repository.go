package leave

import (
	"context"
	"time"
)

type LeaveTypeRepository interface {
	GetByID(ctx context.Context, companyID, id string) (LeaveType, error)
	ListActiveByCompanyID(ctx context.Context, companyID string) ([]LeaveType, error)
}

type PolicyRepository interface {
	// GetEffective returns the most recently effective policy for the
	// given leave type and employment status, as of the given date.
	GetEffective(ctx context.Context, leaveTypeID, employmentStatus string, asOf time.Time) (Policy, error)
}

type BalanceRepository interface {
	Create(ctx context.Context, b Balance) (Balance, error)
	GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (Balance, error)
	// GetByEmployeeTypeYearForUpdate locks the balance row for the
	// duration of the enclosing transaction, serializing concurrent
	// reservations against the same account.
	GetByEmployeeTypeYearForUpdate(ctx context.Context, employeeID, leaveTypeID string, year int) (Balance, error)
	ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]Balance, error)
	UpdateCounters(ctx context.Context, b Balance) error
}

type TransactionRepository interface {
	Append(ctx context.Context, tx Transaction) (Transaction, error)
	ListByBalance(ctx context.Context, balanceID string) ([]Transaction, error)
}

type RequestRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, companyID, id string) (Request, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Request, error)
	ListByStatus(ctx context.Context, companyID, status string) ([]Request, error)
	CheckOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error)
	Update(ctx context.Context, req Request) error
}
