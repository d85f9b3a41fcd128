package leave

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suweldo/payroll-backend-go/internal/domain/employee"
	"github.com/suweldo/payroll-backend-go/internal/domain/leave"
)

func newLedgerFixture(t *testing.T) (*LedgerService, *fakeBalanceRepo, *fakeTransactionRepo) {
	t.Helper()

	balances := newFakeBalanceRepo()
	transactions := &fakeTransactionRepo{}
	leaveTypes := &fakeLeaveTypeRepo{types: map[string]leave.LeaveType{
		"vl": {ID: "vl", CompanyID: "c1", Name: "Vacation Leave", Paid: true, Active: true, AllowCarryOver: true},
	}}
	policies := &fakePolicyRepo{policies: map[string]leave.Policy{
		"vl|regular": {
			ID: "p1", LeaveTypeID: "vl", EmploymentStatus: "regular",
			EntitlementDays: decimal.NewFromInt(15), Method: leave.ProrationMonth,
		},
	}}
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"e1": {
			ID: "e1", CompanyID: "c1", EmploymentStatus: employee.StatusRegular,
			HireDate: time.Date(2020, time.March, 2, 0, 0, 0, 0, time.UTC), Active: true,
		},
	}}

	svc := NewLedgerService(fakeTransactor{}, balances, transactions, leaveTypes, policies, employees, &fakeAuditRepo{}, time.UTC)
	return svc, balances, transactions
}

func seedBalance(t *testing.T, balances *fakeBalanceRepo, available int64) leave.Balance {
	t.Helper()
	b, err := balances.Create(context.Background(), leave.Balance{
		EmployeeID:  "e1",
		LeaveTypeID: "vl",
		Year:        2025,
		Counters:    leave.NewBalanceCounters(decimal.Zero, decimal.Zero, decimal.NewFromInt(available)),
	})
	require.NoError(t, err)
	return b
}

func TestLedgerReserveReleaseRoundTrip(t *testing.T) {
	svc, balances, transactions := newLedgerFixture(t)
	seedBalance(t, balances, 10)
	ctx := context.Background()
	three := decimal.NewFromInt(3)

	require.NoError(t, svc.Reserve(ctx, "e1", "vl", 2025, three, "LV-2025-00001", "u1"))

	b, err := balances.GetByEmployeeTypeYear(ctx, "e1", "vl", 2025)
	require.NoError(t, err)
	assert.True(t, b.Counters.Pending().Equal(three))
	assert.True(t, b.Counters.Available().Equal(decimal.NewFromInt(7)))
	assert.True(t, b.Counters.Current().Equal(decimal.NewFromInt(10)))

	require.NoError(t, svc.Release(ctx, "e1", "vl", 2025, three, "LV-2025-00001", "u1"))

	b, err = balances.GetByEmployeeTypeYear(ctx, "e1", "vl", 2025)
	require.NoError(t, err)
	assert.True(t, b.Counters.Pending().IsZero())
	assert.True(t, b.Counters.Available().Equal(decimal.NewFromInt(10)), "release must restore the exact reserved quantity")

	require.Len(t, transactions.appended, 2)
	assert.Equal(t, leave.TxReserve, transactions.appended[0].Kind)
	assert.Equal(t, leave.TxRelease, transactions.appended[1].Kind)
	assert.Equal(t, "LV-2025-00001", transactions.appended[0].Reference)
}

func TestLedgerReserveInsufficientLeavesNoTrace(t *testing.T) {
	svc, balances, transactions := newLedgerFixture(t)
	seedBalance(t, balances, 2)
	ctx := context.Background()

	err := svc.Reserve(ctx, "e1", "vl", 2025, decimal.NewFromInt(5), "LV-2025-00002", "u1")
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)

	b, getErr := balances.GetByEmployeeTypeYear(ctx, "e1", "vl", 2025)
	require.NoError(t, getErr)
	assert.True(t, b.Counters.Pending().IsZero())
	assert.True(t, b.Counters.Available().Equal(decimal.NewFromInt(2)))
	assert.Empty(t, transactions.appended, "a failed reservation must not append ledger entries")
}

func TestLedgerDeductKeepsAvailable(t *testing.T) {
	svc, balances, transactions := newLedgerFixture(t)
	seedBalance(t, balances, 10)
	ctx := context.Background()
	four := decimal.NewFromInt(4)

	require.NoError(t, svc.Reserve(ctx, "e1", "vl", 2025, four, "LV-2025-00003", "u1"))
	b, _ := balances.GetByEmployeeTypeYear(ctx, "e1", "vl", 2025)
	availableBefore := b.Counters.Available()

	require.NoError(t, svc.Deduct(ctx, "e1", "vl", 2025, four, "LV-2025-00003", "u1"))

	b, err := balances.GetByEmployeeTypeYear(ctx, "e1", "vl", 2025)
	require.NoError(t, err)
	assert.True(t, b.Counters.Available().Equal(availableBefore), "deduct must not change available")
	assert.True(t, b.Counters.Used().Equal(four))
	assert.True(t, b.Counters.Pending().IsZero())

	last := transactions.appended[len(transactions.appended)-1]
	assert.Equal(t, leave.TxDeduct, last.Kind)
	assert.True(t, last.BalanceAfter.Equal(b.Counters.Available()))
}

func TestLedgerLazyInitializesBalanceOnFirstReserve(t *testing.T) {
	svc, balances, transactions := newLedgerFixture(t)
	ctx := context.Background()

	// No balance seeded: the reserve must create one from the effective
	// policy first. Hired 2020, so the 2025 entitlement is the full 15.
	require.NoError(t, svc.Reserve(ctx, "e1", "vl", 2025, decimal.NewFromInt(2), "LV-2025-00004", "u1"))

	b, err := balances.GetByEmployeeTypeYear(ctx, "e1", "vl", 2025)
	require.NoError(t, err)
	assert.True(t, b.Counters.Earned().Equal(decimal.NewFromInt(15).Round(2)))
	assert.True(t, b.Counters.Pending().Equal(decimal.NewFromInt(2)))

	// ACCRUAL from initialization plus the RESERVE itself.
	require.Len(t, transactions.appended, 2)
	assert.Equal(t, leave.TxAccrual, transactions.appended[0].Kind)
	assert.Equal(t, leave.TxReserve, transactions.appended[1].Kind)
}

func TestLedgerCarryOverOnInitialize(t *testing.T) {
	svc, balances, transactions := newLedgerFixture(t)
	ctx := context.Background()

	// Previous year's balance ends with 4.5 available.
	prev := leave.NewBalanceCounters(decimal.Zero, decimal.Zero, decimal.NewFromInt(15))
	require.NoError(t, prev.Reserve(decimal.NewFromFloat(10.5)))
	prev.Deduct(decimal.NewFromFloat(10.5))
	_, err := balances.Create(ctx, leave.Balance{EmployeeID: "e1", LeaveTypeID: "vl", Year: 2024, Counters: prev})
	require.NoError(t, err)

	emp := employee.Employee{
		ID: "e1", CompanyID: "c1", EmploymentStatus: employee.StatusRegular,
		HireDate: time.Date(2020, time.March, 2, 0, 0, 0, 0, time.UTC), Active: true,
	}
	lt := leave.LeaveType{ID: "vl", CompanyID: "c1", Paid: true, Active: true, AllowCarryOver: true}

	created, err := svc.InitializeBalance(ctx, emp, lt, 2025, "u1")
	require.NoError(t, err)

	assert.True(t, created.Counters.CarriedOver().Equal(decimal.NewFromFloat(4.5)))
	assert.True(t, created.Counters.Available().Equal(decimal.NewFromFloat(19.5)))

	require.Len(t, transactions.appended, 2)
	assert.Equal(t, leave.TxCarryOver, transactions.appended[0].Kind)
	assert.Equal(t, leave.TxAccrual, transactions.appended[1].Kind)
}

func TestLedgerInitializeCarryOverWithoutPolicy(t *testing.T) {
	balances := newFakeBalanceRepo()
	transactions := &fakeTransactionRepo{}
	leaveTypes := &fakeLeaveTypeRepo{types: map[string]leave.LeaveType{
		"vl": {ID: "vl", CompanyID: "c1", Paid: true, Active: true, AllowCarryOver: true},
	}}
	policies := &fakePolicyRepo{policies: map[string]leave.Policy{}}
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"e1": {ID: "e1", CompanyID: "c1", EmploymentStatus: employee.StatusRegular, HireDate: time.Date(2020, time.March, 2, 0, 0, 0, 0, time.UTC), Active: true},
	}}
	svc := NewLedgerService(fakeTransactor{}, balances, transactions, leaveTypes, policies, employees, &fakeAuditRepo{}, time.UTC)
	ctx := context.Background()

	prev := leave.NewBalanceCounters(decimal.Zero, decimal.Zero, decimal.NewFromInt(5))
	_, err := balances.Create(ctx, leave.Balance{EmployeeID: "e1", LeaveTypeID: "vl", Year: 2024, Counters: prev})
	require.NoError(t, err)

	emp, err := employees.GetByID(ctx, "e1")
	require.NoError(t, err)
	lt, err := leaveTypes.GetByID(ctx, "c1", "vl")
	require.NoError(t, err)

	created, err := svc.InitializeBalance(ctx, emp, lt, 2025, "u1")
	require.NoError(t, err)

	assert.True(t, created.Counters.Available().Equal(decimal.NewFromInt(5)))
	assert.True(t, created.Counters.Earned().IsZero())

	// The account opens on the carried amount alone; no zero-amount
	// accrual row is written.
	require.Len(t, transactions.appended, 1)
	assert.Equal(t, leave.TxCarryOver, transactions.appended[0].Kind)
}

func TestLedgerReserveRejectsUnpaidType(t *testing.T) {
	balances := newFakeBalanceRepo()
	transactions := &fakeTransactionRepo{}
	leaveTypes := &fakeLeaveTypeRepo{types: map[string]leave.LeaveType{
		"lwop": {ID: "lwop", CompanyID: "c1", Paid: false, Active: true},
	}}
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"e1": {ID: "e1", CompanyID: "c1", EmploymentStatus: employee.StatusRegular, Active: true},
	}}
	svc := NewLedgerService(fakeTransactor{}, balances, transactions, leaveTypes, &fakePolicyRepo{}, employees, &fakeAuditRepo{}, time.UTC)

	err := svc.Reserve(context.Background(), "e1", "lwop", 2025, decimal.NewFromInt(1), "LV-2025-00009", "u1")
	assert.ErrorIs(t, err, leave.ErrLeaveTypeUnpaid)
	assert.Empty(t, transactions.appended)
}
