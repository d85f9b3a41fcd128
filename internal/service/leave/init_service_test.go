package leave

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suweldo/payroll-backend-go/internal/domain/employee"
	"github.com/suweldo/payroll-backend-go/internal/domain/identity"
	"github.com/suweldo/payroll-backend-go/internal/domain/leave"
)

func newInitFixture(t *testing.T) (*InitService, *fakeBalanceRepo, *fakeEmployeeRepo, *fakePolicyRepo) {
	t.Helper()

	balances := newFakeBalanceRepo()
	transactions := &fakeTransactionRepo{}
	leaveTypes := &fakeLeaveTypeRepo{types: map[string]leave.LeaveType{
		"vl": {ID: "vl", CompanyID: "c1", Name: "Vacation Leave", Paid: true, Active: true},
		"sl": {ID: "sl", CompanyID: "c1", Name: "Sick Leave", Paid: true, Active: true},
	}}
	policies := &fakePolicyRepo{policies: map[string]leave.Policy{
		"vl|regular": {LeaveTypeID: "vl", EmploymentStatus: "regular", EntitlementDays: decimal.NewFromInt(15), Method: leave.ProrationMonth},
		"sl|regular": {LeaveTypeID: "sl", EmploymentStatus: "regular", EntitlementDays: decimal.NewFromInt(10), Method: leave.ProrationMonth},
	}}
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"e1": {ID: "e1", CompanyID: "c1", EmploymentStatus: employee.StatusRegular, HireDate: time.Date(2019, time.June, 1, 0, 0, 0, 0, time.UTC), Active: true},
		"e2": {ID: "e2", CompanyID: "c1", EmploymentStatus: employee.StatusRegular, HireDate: time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), Active: true},
	}}

	ledger := NewLedgerService(fakeTransactor{}, balances, transactions, leaveTypes, policies, employees, &fakeAuditRepo{}, time.UTC)
	svc := NewInitService(fakeTransactor{}, ledger, leaveTypes, balances, employees, time.UTC)
	return svc, balances, employees, policies
}

var hrAdmin = identity.Actor{UserID: "u-hr", EmployeeID: "e-hr", CompanyID: "c1", Role: identity.RoleHRAdmin}

func TestInitializeYearCreatesBalances(t *testing.T) {
	svc, balances, _, _ := newInitFixture(t)

	summary, err := svc.InitializeYear(context.Background(), hrAdmin, 2025)
	require.NoError(t, err)

	assert.Equal(t, 2025, summary.Year)
	assert.Equal(t, 2, summary.EmployeesConsidered)
	assert.Equal(t, 2, summary.LeaveTypesConsidered)
	assert.Equal(t, 4, summary.BalancesCreated)
	assert.Equal(t, 0, summary.SkippedExisting)

	// Mid-year hire gets a prorated entitlement: 15 * 6/12 = 7.5.
	b, err := balances.GetByEmployeeTypeYear(context.Background(), "e2", "vl", 2025)
	require.NoError(t, err)
	assert.True(t, b.Counters.Available().Equal(decimal.NewFromFloat(7.5)))
}

func TestInitializeYearIsIdempotent(t *testing.T) {
	svc, _, _, _ := newInitFixture(t)
	ctx := context.Background()

	first, err := svc.InitializeYear(ctx, hrAdmin, 2025)
	require.NoError(t, err)
	require.Equal(t, 4, first.BalancesCreated)

	second, err := svc.InitializeYear(ctx, hrAdmin, 2025)
	require.NoError(t, err)
	assert.Equal(t, 0, second.BalancesCreated, "re-running must not create duplicates")
	assert.Equal(t, 4, second.SkippedExisting)
}

func TestInitializeYearSkipsMissingPolicy(t *testing.T) {
	svc, _, _, policies := newInitFixture(t)
	delete(policies.policies, "sl|regular")

	summary, err := svc.InitializeYear(context.Background(), hrAdmin, 2025)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.BalancesCreated)
	assert.Equal(t, 2, summary.SkippedNoPolicy)
}

func TestInitializeYearRequiresPermission(t *testing.T) {
	svc, _, _, _ := newInitFixture(t)

	rank := identity.Actor{UserID: "u1", EmployeeID: "e1", CompanyID: "c1", Role: identity.RoleEmployee}
	_, err := svc.InitializeYear(context.Background(), rank, 2025)
	assert.ErrorIs(t, err, identity.ErrUnauthorized)
}
