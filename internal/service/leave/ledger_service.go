package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/suweldo/payroll-backend-go/internal/domain/audit"
	"github.com/suweldo/payroll-backend-go/internal/domain/employee"
	"github.com/suweldo/payroll-backend-go/internal/domain/identity"
	"github.com/suweldo/payroll-backend-go/internal/domain/leave"
	"github.com/suweldo/payroll-backend-go/internal/pkg/database"
)

// LedgerService owns every mutation of leave balances. Counters never
// change outside one of its transactional operations, and every mutation
// appends a ledger transaction and an audit entry in the same atomic unit.
type LedgerService struct {
	tx           database.Transactor
	balances     leave.BalanceRepository
	transactions leave.TransactionRepository
	leaveTypes   leave.LeaveTypeRepository
	policies     leave.PolicyRepository
	employees    employee.Repository
	auditor      audit.Repository
	loc          *time.Location
}

func NewLedgerService(
	tx database.Transactor,
	balanceRepository leave.BalanceRepository,
	transactionRepository leave.TransactionRepository,
	leaveTypeRepository leave.LeaveTypeRepository,
	policyRepository leave.PolicyRepository,
	employeeRepository employee.Repository,
	auditRepository audit.Repository,
	loc *time.Location,
) *LedgerService {
	return &LedgerService{
		tx:           tx,
		balances:     balanceRepository,
		transactions: transactionRepository,
		leaveTypes:   leaveTypeRepository,
		policies:     policyRepository,
		employees:    employeeRepository,
		auditor:      auditRepository,
		loc:          loc,
	}
}

// Reserve places a provisional hold against the employee's balance. Only
// paid leave types draw from a balance. The lock, the counter update and
// the ledger append commit or roll back as one unit, so a failed
// reservation leaves no trace.
func (s *LedgerService) Reserve(ctx context.Context, employeeID, leaveTypeID string, year int, quantity decimal.Decimal, reference, actorID string) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		emp, err := s.employees.GetByID(ctx, employeeID)
		if err != nil {
			return fmt.Errorf("failed to get employee: %w", err)
		}
		lt, err := s.leaveTypes.GetByID(ctx, emp.CompanyID, leaveTypeID)
		if err != nil {
			return err
		}
		if !lt.Paid {
			return leave.ErrLeaveTypeUnpaid
		}

		b, err := s.lockOrCreate(ctx, emp, lt, year, actorID)
		if err != nil {
			return err
		}
		before := counterSnapshot(b.Counters)
		if err := b.Counters.Reserve(quantity); err != nil {
			return err
		}
		return s.apply(ctx, emp.CompanyID, b, before, leave.TxReserve, quantity, reference, actorID)
	})
}

// Release returns a held quantity to the available balance.
func (s *LedgerService) Release(ctx context.Context, employeeID, leaveTypeID string, year int, quantity decimal.Decimal, reference, actorID string) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		emp, err := s.employees.GetByID(ctx, employeeID)
		if err != nil {
			return fmt.Errorf("failed to get employee: %w", err)
		}
		b, err := s.balances.GetByEmployeeTypeYearForUpdate(ctx, employeeID, leaveTypeID, year)
		if err != nil {
			return err
		}
		before := counterSnapshot(b.Counters)
		b.Counters.Release(quantity)
		return s.apply(ctx, emp.CompanyID, b, before, leave.TxRelease, quantity, reference, actorID)
	})
}

// Deduct finalizes a reservation, moving the quantity from pending to used.
func (s *LedgerService) Deduct(ctx context.Context, employeeID, leaveTypeID string, year int, quantity decimal.Decimal, reference, actorID string) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		emp, err := s.employees.GetByID(ctx, employeeID)
		if err != nil {
			return fmt.Errorf("failed to get employee: %w", err)
		}
		b, err := s.balances.GetByEmployeeTypeYearForUpdate(ctx, employeeID, leaveTypeID, year)
		if err != nil {
			return err
		}
		before := counterSnapshot(b.Counters)
		b.Counters.Deduct(quantity)
		return s.apply(ctx, emp.CompanyID, b, before, leave.TxDeduct, quantity, reference, actorID)
	})
}

func (s *LedgerService) apply(ctx context.Context, companyID string, b leave.Balance, before map[string]any, kind leave.TransactionKind, quantity decimal.Decimal, reference, actorID string) error {
	if err := s.balances.UpdateCounters(ctx, b); err != nil {
		return fmt.Errorf("failed to update balance counters: %w", err)
	}
	_, err := s.transactions.Append(ctx, leave.Transaction{
		BalanceID:    b.ID,
		Kind:         kind,
		Amount:       quantity,
		BalanceAfter: b.Counters.Available(),
		Reference:    reference,
		ActorID:      actorID,
	})
	if err != nil {
		return fmt.Errorf("failed to append ledger transaction: %w", err)
	}

	entry := audit.Entry{
		CompanyID:  companyID,
		EntityName: "leave_balance",
		RecordID:   b.ID,
		Action:     string(kind),
		ActorID:    actorID,
		Reason:     reference,
		Changes:    audit.Diff(before, counterSnapshot(b.Counters)),
	}
	if err := s.auditor.Record(ctx, entry); err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}

func counterSnapshot(c leave.BalanceCounters) map[string]any {
	return map[string]any{
		"used":      c.Used().String(),
		"pending":   c.Pending().String(),
		"current":   c.Current().String(),
		"available": c.Available().String(),
	}
}

// lockOrCreate locks the balance row, initializing it lazily from the
// effective policy when the year batch has not reached this employee yet.
func (s *LedgerService) lockOrCreate(ctx context.Context, emp employee.Employee, lt leave.LeaveType, year int, actorID string) (leave.Balance, error) {
	b, err := s.balances.GetByEmployeeTypeYearForUpdate(ctx, emp.ID, lt.ID, year)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, leave.ErrBalanceNotFound) {
		return leave.Balance{}, err
	}

	if _, err := s.InitializeBalance(ctx, emp, lt, year, actorID); err != nil {
		// A concurrent reserve may have created it first.
		if !errors.Is(err, leave.ErrBalanceExists) {
			return leave.Balance{}, err
		}
	}
	return s.balances.GetByEmployeeTypeYearForUpdate(ctx, emp.ID, lt.ID, year)
}

// InitializeBalance creates the (employee, leave type, year) account from
// the effective policy: prorated entitlement plus any carry-over from the
// previous year, each positive component documented by its own ledger
// transaction. A missing policy is only fatal when there is no carry-over
// either; otherwise the account opens with the carried amount alone.
func (s *LedgerService) InitializeBalance(ctx context.Context, emp employee.Employee, lt leave.LeaveType, year int, actorID string) (leave.Balance, error) {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, s.loc)

	entitlement := decimal.Zero
	policy, policyErr := s.policies.GetEffective(ctx, lt.ID, string(emp.EmploymentStatus), yearStart)
	switch {
	case policyErr == nil:
		entitlement = leave.ProratedEntitlement(policy.Method, policy.EntitlementDays, emp.HireDate, year, s.loc)
	case !errors.Is(policyErr, leave.ErrPolicyNotFound):
		return leave.Balance{}, policyErr
	}

	carryOver := decimal.Zero
	if lt.AllowCarryOver {
		prev, err := s.balances.GetByEmployeeTypeYear(ctx, emp.ID, lt.ID, year-1)
		switch {
		case err == nil:
			carryOver = leave.CarryOverAmount(prev.Counters.Available(), lt.MaxCarryOverDays)
		case !errors.Is(err, leave.ErrBalanceNotFound):
			return leave.Balance{}, err
		}
	}

	if policyErr != nil && carryOver.IsZero() {
		return leave.Balance{}, leave.ErrPolicyNotFound
	}

	var created leave.Balance
	txErr := s.tx.InTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.balances.Create(ctx, leave.Balance{
			EmployeeID:  emp.ID,
			LeaveTypeID: lt.ID,
			Year:        year,
			Counters:    leave.NewBalanceCounters(carryOver, carryOver, entitlement),
		})
		if err != nil {
			return err
		}

		reference := fmt.Sprintf("year-init:%d", year)
		if carryOver.IsPositive() {
			_, err = s.transactions.Append(ctx, leave.Transaction{
				BalanceID:    created.ID,
				Kind:         leave.TxCarryOver,
				Amount:       carryOver,
				BalanceAfter: carryOver,
				Reference:    reference,
				ActorID:      actorID,
			})
			if err != nil {
				return fmt.Errorf("failed to append carry-over transaction: %w", err)
			}
		}
		if entitlement.IsPositive() {
			_, err = s.transactions.Append(ctx, leave.Transaction{
				BalanceID:    created.ID,
				Kind:         leave.TxAccrual,
				Amount:       entitlement,
				BalanceAfter: created.Counters.Available(),
				Reference:    reference,
				ActorID:      actorID,
			})
			if err != nil {
				return fmt.Errorf("failed to append accrual transaction: %w", err)
			}
		}

		entry := audit.Entry{
			CompanyID:  emp.CompanyID,
			EntityName: "leave_balance",
			RecordID:   created.ID,
			Action:     "initialize",
			ActorID:    actorID,
			Reason:     reference,
			Changes: []audit.FieldChange{
				{Field: "opening", Old: "0", New: carryOver.String()},
				{Field: "earned", Old: "0", New: entitlement.String()},
			},
		}
		if err := s.auditor.Record(ctx, entry); err != nil {
			return fmt.Errorf("failed to record audit entry: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return leave.Balance{}, txErr
	}
	return created, nil
}

func (s *LedgerService) Balances(ctx context.Context, actor identity.Actor, employeeID string, year int) ([]leave.Balance, error) {
	if employeeID != actor.EmployeeID && !identity.HasPermission(actor.Role, identity.PermissionBalanceViewAll) {
		return nil, identity.ErrUnauthorized
	}
	return s.balances.ListByEmployeeYear(ctx, employeeID, year)
}

func (s *LedgerService) Transactions(ctx context.Context, actor identity.Actor, balanceID string) ([]leave.Transaction, error) {
	if !identity.HasPermission(actor.Role, identity.PermissionBalanceViewAll) {
		return nil, identity.ErrUnauthorized
	}
	return s.transactions.ListByBalance(ctx, balanceID)
}
