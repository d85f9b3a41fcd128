package leave

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suweldo/payroll-backend-go/internal/domain/approval"
	"github.com/suweldo/payroll-backend-go/internal/domain/employee"
	"github.com/suweldo/payroll-backend-go/internal/domain/identity"
	"github.com/suweldo/payroll-backend-go/internal/domain/leave"
	"github.com/suweldo/payroll-backend-go/internal/domain/notification"
)

type requestFixture struct {
	svc      *RequestService
	balances *fakeBalanceRepo
	requests *fakeRequestRepo
	audits   *fakeAuditRepo
}

func newRequestFixture(t *testing.T) requestFixture {
	t.Helper()

	balances := newFakeBalanceRepo()
	transactions := &fakeTransactionRepo{}
	leaveTypes := &fakeLeaveTypeRepo{types: map[string]leave.LeaveType{
		"0195b7c2-9d4e-7cc3-8a2f-3f8d2f6a1b90": {
			ID: "0195b7c2-9d4e-7cc3-8a2f-3f8d2f6a1b90", CompanyID: "c1",
			Name: "Vacation Leave", Paid: true, Active: true,
		},
	}}
	policies := &fakePolicyRepo{policies: map[string]leave.Policy{
		"0195b7c2-9d4e-7cc3-8a2f-3f8d2f6a1b90|regular": {
			LeaveTypeID: "0195b7c2-9d4e-7cc3-8a2f-3f8d2f6a1b90", EmploymentStatus: "regular",
			EntitlementDays: decimal.NewFromInt(15), Method: leave.ProrationFull,
		},
	}}
	manager := "e-mgr"
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"e1": {
			ID: "e1", CompanyID: "c1", EmploymentStatus: employee.StatusRegular,
			HireDate: time.Date(2020, time.January, 6, 0, 0, 0, 0, time.UTC),
			ManagerID: &manager, Active: true,
		},
	}}
	requests := newFakeRequestRepo()

	audits := &fakeAuditRepo{}
	ledger := NewLedgerService(fakeTransactor{}, balances, transactions, leaveTypes, policies, employees, audits, time.UTC)
	svc := NewRequestService(fakeTransactor{}, requests, leaveTypes, employees, ledger, audits, notification.LogNotifier{})
	return requestFixture{svc: svc, balances: balances, requests: requests, audits: audits}
}

var (
	requester  = identity.Actor{UserID: "u1", EmployeeID: "e1", CompanyID: "c1", Role: identity.RoleEmployee}
	supervisor = identity.Actor{UserID: "u-mgr", EmployeeID: "e-mgr", CompanyID: "c1", Role: identity.RoleSupervisor}
	hr         = identity.Actor{UserID: "u-hr", EmployeeID: "e-hr", CompanyID: "c1", Role: identity.RoleHRAdmin}
)

func fileRequest(t *testing.T, f requestFixture) leave.Request {
	t.Helper()
	created, err := f.svc.CreateRequest(context.Background(), requester, leave.CreateRequestRequest{
		LeaveTypeID: "0195b7c2-9d4e-7cc3-8a2f-3f8d2f6a1b90",
		StartDate:   "2025-06-02",
		EndDate:     "2025-06-04",
		Reason:      "family trip",
	})
	require.NoError(t, err)
	return created
}

func (f requestFixture) available(t *testing.T) decimal.Decimal {
	t.Helper()
	b, err := f.balances.GetByEmployeeTypeYear(context.Background(), "e1", "0195b7c2-9d4e-7cc3-8a2f-3f8d2f6a1b90", 2025)
	require.NoError(t, err)
	return b.Counters.Available()
}

func TestCreateRequestReservesDays(t *testing.T) {
	f := newRequestFixture(t)

	created := fileRequest(t, f)

	assert.Equal(t, string(approval.StatusPending), created.Status)
	assert.True(t, created.Days.Equal(decimal.NewFromInt(3)))
	assert.True(t, f.available(t).Equal(decimal.NewFromInt(12)), "filed days must be held immediately")
}

func TestCreateRequestRejectsOverlap(t *testing.T) {
	f := newRequestFixture(t)
	fileRequest(t, f)

	_, err := f.svc.CreateRequest(context.Background(), requester, leave.CreateRequestRequest{
		LeaveTypeID: "0195b7c2-9d4e-7cc3-8a2f-3f8d2f6a1b90",
		StartDate:   "2025-06-04",
		EndDate:     "2025-06-05",
		Reason:      "second trip",
	})
	assert.ErrorIs(t, err, leave.ErrOverlappingRequest)
}

func TestCancelReleasesReservation(t *testing.T) {
	f := newRequestFixture(t)
	created := fileRequest(t, f)

	cancelled, err := f.svc.CancelRequest(context.Background(), requester, created.ID, leave.CancelRequestRequest{Reason: "plans changed"})
	require.NoError(t, err)

	assert.Equal(t, string(approval.StatusCancelled), cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)
	assert.True(t, f.available(t).Equal(decimal.NewFromInt(15)), "cancellation must return the held days")
}

func TestCancelAfterSupervisorApprovalFails(t *testing.T) {
	f := newRequestFixture(t)
	created := fileRequest(t, f)

	_, err := f.svc.SupervisorApprove(context.Background(), supervisor, created.ID, leave.DecisionRequest{})
	require.NoError(t, err)

	_, err = f.svc.CancelRequest(context.Background(), requester, created.ID, leave.CancelRequestRequest{})
	var stateErr *approval.StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, "cancel", stateErr.Decision)
	assert.Equal(t, approval.StatusSupervisorApproved, stateErr.Current)
}

func TestFullApprovalDeductsOnce(t *testing.T) {
	f := newRequestFixture(t)
	created := fileRequest(t, f)
	ctx := context.Background()

	_, err := f.svc.SupervisorApprove(ctx, supervisor, created.ID, leave.DecisionRequest{Remarks: "ok"})
	require.NoError(t, err)
	// Supervisor approval keeps the hold; nothing is consumed yet.
	assert.True(t, f.available(t).Equal(decimal.NewFromInt(12)))

	approved, err := f.svc.HRApprove(ctx, hr, created.ID, leave.DecisionRequest{})
	require.NoError(t, err)

	assert.Equal(t, string(approval.StatusApproved), approved.Status)
	assert.True(t, f.available(t).Equal(decimal.NewFromInt(12)), "final approval converts the hold, it does not double-charge")

	b, err := f.balances.GetByEmployeeTypeYear(ctx, "e1", "0195b7c2-9d4e-7cc3-8a2f-3f8d2f6a1b90", 2025)
	require.NoError(t, err)
	assert.True(t, b.Counters.Used().Equal(decimal.NewFromInt(3)))
	assert.True(t, b.Counters.Pending().IsZero())
}

func TestHRRejectReleasesReservation(t *testing.T) {
	f := newRequestFixture(t)
	created := fileRequest(t, f)
	ctx := context.Background()

	_, err := f.svc.SupervisorApprove(ctx, supervisor, created.ID, leave.DecisionRequest{})
	require.NoError(t, err)

	rejected, err := f.svc.HRReject(ctx, hr, created.ID, leave.DecisionRequest{Remarks: "coverage gap"})
	require.NoError(t, err)

	assert.Equal(t, string(approval.StatusRejected), rejected.Status)
	assert.True(t, f.available(t).Equal(decimal.NewFromInt(15)))
}

func TestRequestLifecycleIsAudited(t *testing.T) {
	f := newRequestFixture(t)
	created := fileRequest(t, f)
	ctx := context.Background()

	_, err := f.svc.SupervisorApprove(ctx, supervisor, created.ID, leave.DecisionRequest{Remarks: "ok"})
	require.NoError(t, err)
	_, err = f.svc.HRApprove(ctx, hr, created.ID, leave.DecisionRequest{})
	require.NoError(t, err)

	assert.Equal(t, []string{"create", "supervisor-approve", "approve"}, f.audits.actions("leave_request"))
	// The lazy balance creation, the hold and its conversion are each
	// audited alongside their ledger transactions.
	assert.Equal(t, []string{"initialize", "RESERVE", "DEDUCT"}, f.audits.actions("leave_balance"))
}

func TestSynthesizeSupervisorStampsDesignatedApprover(t *testing.T) {
	f := newRequestFixture(t)
	created := fileRequest(t, f)

	admin := identity.Actor{UserID: "u-admin", EmployeeID: "e-admin", CompanyID: "c1", Role: identity.RoleCompanyAdmin}
	err := f.svc.SynthesizeSupervisor(context.Background(), admin, created.ID, approval.OverrideSynthesisRemarks(true))
	require.NoError(t, err)

	stored, err := f.requests.GetByID(context.Background(), "c1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(approval.StatusSupervisorApproved), stored.Status)
	require.NotNil(t, stored.SupervisorApprovedBy)
	assert.Equal(t, "e-mgr", *stored.SupervisorApprovedBy, "the designated supervisor is recorded, not the override actor")
	require.NotNil(t, stored.SupervisorRemarks)
	assert.Contains(t, *stored.SupervisorRemarks, "toward approval")
}

func TestSupervisorMustBeAssignedManager(t *testing.T) {
	f := newRequestFixture(t)
	created := fileRequest(t, f)

	other := identity.Actor{UserID: "u-x", EmployeeID: "e-other", CompanyID: "c1", Role: identity.RoleSupervisor}
	_, err := f.svc.SupervisorApprove(context.Background(), other, created.ID, leave.DecisionRequest{})
	assert.ErrorIs(t, err, identity.ErrUnauthorized)
}
