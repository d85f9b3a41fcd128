package approval

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suweldo/payroll-backend-go/internal/domain/approval"
	"github.com/suweldo/payroll-backend-go/internal/domain/identity"
	"github.com/suweldo/payroll-backend-go/internal/domain/leave"
	"github.com/suweldo/payroll-backend-go/internal/domain/overtime"
)

// fakeGateway scripts one request's supervisor state and records the calls
// the override makes against it.
type fakeGateway struct {
	state       approval.SupervisorState
	finalizeErr error
	restoreErr  error

	synthesized  bool
	synthRemarks string
	finalized    bool
	finalApprove bool
	finalRemarks string
	restored     *approval.SupervisorState
}

func (g *fakeGateway) Snapshot(ctx context.Context, actor identity.Actor, requestID string) (approval.SupervisorState, error) {
	return g.state, nil
}

func (g *fakeGateway) SynthesizeSupervisor(ctx context.Context, actor identity.Actor, requestID, remarks string) error {
	g.synthesized = true
	g.synthRemarks = remarks
	now := time.Now()
	g.state.Status = approval.StatusSupervisorApproved
	g.state.ApprovedBy = &actor.EmployeeID
	g.state.ApprovedAt = &now
	return nil
}

func (g *fakeGateway) Finalize(ctx context.Context, actor identity.Actor, requestID string, approve bool, remarks string) error {
	if g.finalizeErr != nil {
		return g.finalizeErr
	}
	g.finalized = true
	g.finalApprove = approve
	g.finalRemarks = remarks
	if approve {
		g.state.Status = approval.StatusApproved
	} else {
		g.state.Status = approval.StatusRejected
	}
	return nil
}

func (g *fakeGateway) RestoreSupervisor(ctx context.Context, actor identity.Actor, requestID string, prior approval.SupervisorState) error {
	if g.restoreErr != nil {
		return g.restoreErr
	}
	g.restored = &prior
	g.state = prior
	return nil
}

type fakeLeaveRequests struct {
	byStatus map[string][]leave.Request
}

func (r *fakeLeaveRequests) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	return req, nil
}
func (r *fakeLeaveRequests) GetByID(ctx context.Context, companyID, id string) (leave.Request, error) {
	return leave.Request{}, leave.ErrRequestNotFound
}
func (r *fakeLeaveRequests) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Request, error) {
	return nil, nil
}
func (r *fakeLeaveRequests) ListByStatus(ctx context.Context, companyID, status string) ([]leave.Request, error) {
	return r.byStatus[status], nil
}
func (r *fakeLeaveRequests) CheckOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	return false, nil
}
func (r *fakeLeaveRequests) Update(ctx context.Context, req leave.Request) error { return nil }

type fakeOvertimeRequests struct {
	byStatus map[string][]overtime.Request
}

func (r *fakeOvertimeRequests) Create(ctx context.Context, req overtime.Request) (overtime.Request, error) {
	return req, nil
}
func (r *fakeOvertimeRequests) GetByID(ctx context.Context, companyID, id string) (overtime.Request, error) {
	return overtime.Request{}, overtime.ErrRequestNotFound
}
func (r *fakeOvertimeRequests) ListByEmployee(ctx context.Context, employeeID string) ([]overtime.Request, error) {
	return nil, nil
}
func (r *fakeOvertimeRequests) ListByStatus(ctx context.Context, companyID, status string) ([]overtime.Request, error) {
	return r.byStatus[status], nil
}
func (r *fakeOvertimeRequests) Update(ctx context.Context, req overtime.Request) error { return nil }

var admin = identity.Actor{UserID: "u-admin", EmployeeID: "e-admin", CompanyID: "c1", Role: identity.RoleHRAdmin}

func newOverrideFixture(gw *fakeGateway) *Service {
	return NewService(gw, &fakeGateway{}, &fakeLeaveRequests{}, &fakeOvertimeRequests{})
}

func TestOverrideHappyPath(t *testing.T) {
	gw := &fakeGateway{state: approval.SupervisorState{Status: approval.StatusPending}}
	svc := newOverrideFixture(gw)

	err := svc.Override(context.Background(), admin, approval.KindLeave, "req-1", true)
	require.NoError(t, err)

	assert.True(t, gw.synthesized)
	assert.True(t, gw.finalized)
	assert.True(t, gw.finalApprove)
	assert.Nil(t, gw.restored)
	assert.Equal(t, approval.StatusApproved, gw.state.Status)
	assert.Contains(t, gw.synthRemarks, "toward approval")
	assert.Contains(t, gw.finalRemarks, "administrative override")
}

func TestOverrideTowardRejection(t *testing.T) {
	gw := &fakeGateway{state: approval.SupervisorState{Status: approval.StatusPending}}
	svc := newOverrideFixture(gw)

	err := svc.Override(context.Background(), admin, approval.KindLeave, "req-1", false)
	require.NoError(t, err)

	assert.True(t, gw.synthesized)
	assert.True(t, gw.finalized)
	assert.False(t, gw.finalApprove)
	assert.Equal(t, approval.StatusRejected, gw.state.Status)
	assert.Contains(t, gw.synthRemarks, "toward rejection")
}

func TestOverrideFromSupervisorApprovedSkipsSynthesis(t *testing.T) {
	gw := &fakeGateway{state: approval.SupervisorState{Status: approval.StatusSupervisorApproved}}
	svc := newOverrideFixture(gw)

	err := svc.Override(context.Background(), admin, approval.KindLeave, "req-1", true)
	require.NoError(t, err)

	assert.False(t, gw.synthesized, "a supervisor-approved request needs no synthesized approval")
	assert.True(t, gw.finalized)
	assert.Equal(t, approval.StatusApproved, gw.state.Status)
}

func TestOverrideFromSupervisorApprovedFinalizeFailureHasNoRollback(t *testing.T) {
	finalizeErr := errors.New("deduct failed")
	gw := &fakeGateway{
		state:       approval.SupervisorState{Status: approval.StatusSupervisorApproved},
		finalizeErr: finalizeErr,
	}
	svc := newOverrideFixture(gw)

	err := svc.Override(context.Background(), admin, approval.KindLeave, "req-1", true)
	assert.ErrorIs(t, err, finalizeErr)

	assert.False(t, gw.synthesized)
	assert.Nil(t, gw.restored, "nothing was synthesized, so nothing is compensated")
	assert.Equal(t, approval.StatusSupervisorApproved, gw.state.Status)
}

func TestOverrideRestoresPriorStateOnFinalizeFailure(t *testing.T) {
	finalizeErr := errors.New("deduct failed")
	gw := &fakeGateway{
		state:       approval.SupervisorState{Status: approval.StatusPending},
		finalizeErr: finalizeErr,
	}
	svc := newOverrideFixture(gw)

	err := svc.Override(context.Background(), admin, approval.KindLeave, "req-1", true)
	assert.ErrorIs(t, err, finalizeErr)

	require.NotNil(t, gw.restored)
	assert.Equal(t, approval.StatusPending, gw.restored.Status)
	assert.Nil(t, gw.restored.ApprovedBy, "an absent supervisor approval must be restored as absent")
	assert.Nil(t, gw.restored.ApprovedAt)
	assert.Equal(t, approval.StatusPending, gw.state.Status)
}

func TestOverrideReportsRollbackFailure(t *testing.T) {
	gw := &fakeGateway{
		state:       approval.SupervisorState{Status: approval.StatusPending},
		finalizeErr: errors.New("deduct failed"),
		restoreErr:  errors.New("restore failed"),
	}
	svc := newOverrideFixture(gw)

	err := svc.Override(context.Background(), admin, approval.KindLeave, "req-1", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rollback error")
	assert.Contains(t, err.Error(), "deduct failed")
	assert.Contains(t, err.Error(), "restore failed")
}

func TestOverrideRejectsFinalizedRequest(t *testing.T) {
	gw := &fakeGateway{state: approval.SupervisorState{Status: approval.StatusApproved}}
	svc := newOverrideFixture(gw)

	err := svc.Override(context.Background(), admin, approval.KindLeave, "req-1", false)

	var stateErr *approval.StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, "reject", stateErr.Decision, "the state error names the attempted decision")
	assert.Equal(t, approval.StatusApproved, stateErr.Current)
	assert.False(t, gw.synthesized)
	assert.False(t, gw.finalized)
}

func TestOverrideRequiresElevatedRole(t *testing.T) {
	gw := &fakeGateway{state: approval.SupervisorState{Status: approval.StatusPending}}
	svc := newOverrideFixture(gw)

	supervisor := identity.Actor{UserID: "u-sup", EmployeeID: "e-sup", CompanyID: "c1", Role: identity.RoleSupervisor}
	err := svc.Override(context.Background(), supervisor, approval.KindLeave, "req-1", true)
	assert.ErrorIs(t, err, identity.ErrElevatedRoleRequired)
	assert.False(t, gw.synthesized)
}

func TestQueueMergesAndPrioritizes(t *testing.T) {
	now := time.Now()
	at := func(hoursAgo int) *time.Time {
		t := now.Add(-time.Duration(hoursAgo) * time.Hour)
		return &t
	}

	leaveRequests := &fakeLeaveRequests{byStatus: map[string][]leave.Request{
		string(approval.StatusSupervisorApproved): {
			{ID: "lv-old", RequestNo: "LV-2025-00001", EmployeeID: "e1", Days: decimal.NewFromInt(2), SupervisorApprovedAt: at(80)},
			{ID: "lv-new", RequestNo: "LV-2025-00002", EmployeeID: "e2", Days: decimal.NewFromInt(1), SupervisorApprovedAt: at(2)},
		},
	}}
	overtimeRequests := &fakeOvertimeRequests{byStatus: map[string][]overtime.Request{
		string(approval.StatusSupervisorApproved): {
			{ID: "ot-mid", RequestNo: "OT-2025-00001", EmployeeID: "e3", Hours: decimal.NewFromInt(3), SupervisorApprovedAt: at(30), CTOPreview: true},
		},
	}}

	svc := NewService(&fakeGateway{}, &fakeGateway{}, leaveRequests, overtimeRequests)

	items, err := svc.Queue(context.Background(), admin)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "lv-old", items[0].RequestID)
	assert.Equal(t, approval.PriorityHigh, items[0].Priority)
	assert.Equal(t, "ot-mid", items[1].RequestID)
	assert.Equal(t, approval.PriorityMedium, items[1].Priority)
	assert.True(t, items[1].CTOPreview)
	assert.Equal(t, "hours", items[1].Unit)
	assert.Equal(t, "lv-new", items[2].RequestID)
	assert.Equal(t, approval.PriorityLow, items[2].Priority)
}

func TestQueueOrdersWithinPriorityBySubmission(t *testing.T) {
	now := time.Now()
	at := func(hoursAgo int) *time.Time {
		t := now.Add(-time.Duration(hoursAgo) * time.Hour)
		return &t
	}

	// Both requests sit in the same priority band; "lv-b" was approved
	// first but "lv-a" was submitted first, and submission order wins.
	leaveRequests := &fakeLeaveRequests{byStatus: map[string][]leave.Request{
		string(approval.StatusSupervisorApproved): {
			{ID: "lv-b", RequestNo: "LV-2025-00006", EmployeeID: "e2", Days: decimal.NewFromInt(1), SubmittedAt: now.Add(-2 * time.Hour), SupervisorApprovedAt: at(5)},
			{ID: "lv-a", RequestNo: "LV-2025-00005", EmployeeID: "e1", Days: decimal.NewFromInt(1), SubmittedAt: now.Add(-9 * time.Hour), SupervisorApprovedAt: at(1)},
		},
	}}

	svc := NewService(&fakeGateway{}, &fakeGateway{}, leaveRequests, &fakeOvertimeRequests{})

	items, err := svc.Queue(context.Background(), admin)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, items[0].Priority, items[1].Priority)
	assert.Equal(t, "lv-a", items[0].RequestID)
	assert.Equal(t, "lv-b", items[1].RequestID)
}
