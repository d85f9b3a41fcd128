package leave

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/suweldo/payroll-backend-go/internal/domain/employee"
	"github.com/suweldo/payroll-backend-go/internal/domain/identity"
	"github.com/suweldo/payroll-backend-go/internal/domain/leave"
	"github.com/suweldo/payroll-backend-go/internal/pkg/database"
)

// InitService runs the year-initialization batch: one balance per active
// employee and applicable leave type, seeded from policy entitlements and
// carry-over.
type InitService struct {
	tx         database.Transactor
	ledger     *LedgerService
	leaveTypes leave.LeaveTypeRepository
	balances   leave.BalanceRepository
	employees  employee.Repository
	loc        *time.Location
}

func NewInitService(
	tx database.Transactor,
	ledger *LedgerService,
	leaveTypeRepository leave.LeaveTypeRepository,
	balanceRepository leave.BalanceRepository,
	employeeRepository employee.Repository,
	loc *time.Location,
) *InitService {
	return &InitService{
		tx:         tx,
		ledger:     ledger,
		leaveTypes: leaveTypeRepository,
		balances:   balanceRepository,
		employees:  employeeRepository,
		loc:        loc,
	}
}

// InitializeYear creates missing balances for every (active employee,
// applicable leave type) pair. Pairs are processed sequentially inside one
// transaction: a hard failure rolls the whole run back, and the batch is
// idempotent because existing rows are skipped rather than re-credited.
func (s *InitService) InitializeYear(ctx context.Context, actor identity.Actor, year int) (leave.InitSummary, error) {
	if !identity.HasPermission(actor.Role, identity.PermissionBalanceInit) {
		return leave.InitSummary{}, identity.ErrUnauthorized
	}

	summary := leave.InitSummary{Year: year}

	employees, err := s.employees.ListActiveByCompanyID(ctx, actor.CompanyID)
	if err != nil {
		return summary, err
	}
	leaveTypes, err := s.leaveTypes.ListActiveByCompanyID(ctx, actor.CompanyID)
	if err != nil {
		return summary, err
	}

	applicable := make([]leave.LeaveType, 0, len(leaveTypes))
	for _, lt := range leaveTypes {
		if lt.Paid && lt.EffectiveDuring(year, s.loc) {
			applicable = append(applicable, lt)
		}
	}
	summary.LeaveTypesConsidered = len(applicable)

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		for _, emp := range employees {
			if !emp.EmployedDuring(year, s.loc) {
				continue
			}
			summary.EmployeesConsidered++

			for _, lt := range applicable {
				_, err := s.balances.GetByEmployeeTypeYear(ctx, emp.ID, lt.ID, year)
				if err == nil {
					summary.SkippedExisting++
					continue
				}
				if !errors.Is(err, leave.ErrBalanceNotFound) {
					return err
				}

				_, err = s.ledger.InitializeBalance(ctx, emp, lt, year, actor.UserID)
				switch {
				case err == nil:
					summary.BalancesCreated++
				case errors.Is(err, leave.ErrPolicyNotFound):
					summary.SkippedNoPolicy++
					slog.WarnContext(ctx, "no effective leave policy, skipping balance",
						"employee_id", emp.ID, "leave_type_id", lt.ID, "year", year)
				case errors.Is(err, leave.ErrBalanceExists):
					summary.SkippedExisting++
				default:
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return summary, err
	}

	slog.InfoContext(ctx, "year initialization finished",
		"year", year,
		"employees", summary.EmployeesConsidered,
		"created", summary.BalancesCreated,
		"skipped_existing", summary.SkippedExisting,
		"skipped_no_policy", summary.SkippedNoPolicy)

	return summary, nil
}
