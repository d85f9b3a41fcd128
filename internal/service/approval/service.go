package approval

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/suweldo/payroll-backend-go/internal/domain/approval"
	"github.com/suweldo/payroll-backend-go/internal/domain/identity"
	"github.com/suweldo/payroll-backend-go/internal/domain/leave"
	"github.com/suweldo/payroll-backend-go/internal/domain/overtime"
)

// RequestGateway is the per-kind port the administrative override drives.
// Each call commits in its own transaction: the override's whole point is
// compensating an already-committed first phase when the second fails, so
// the phases must not share one atomic unit.
type RequestGateway interface {
	Snapshot(ctx context.Context, actor identity.Actor, requestID string) (approval.SupervisorState, error)
	SynthesizeSupervisor(ctx context.Context, actor identity.Actor, requestID, remarks string) error
	Finalize(ctx context.Context, actor identity.Actor, requestID string, approve bool, remarks string) error
	RestoreSupervisor(ctx context.Context, actor identity.Actor, requestID string, prior approval.SupervisorState) error
}

// Service exposes the combined HR approval queue and the administrative
// override flow over both request kinds.
type Service struct {
	gateways         map[approval.Kind]RequestGateway
	leaveRequests    leave.RequestRepository
	overtimeRequests overtime.Repository
	now              func() time.Time
}

func NewService(
	leaveGateway, overtimeGateway RequestGateway,
	leaveRequestRepository leave.RequestRepository,
	overtimeRequestRepository overtime.Repository,
) *Service {
	return &Service{
		gateways: map[approval.Kind]RequestGateway{
			approval.KindLeave:    leaveGateway,
			approval.KindOvertime: overtimeGateway,
		},
		leaveRequests:    leaveRequestRepository,
		overtimeRequests: overtimeRequestRepository,
		now:              time.Now,
	}
}

// Queue returns every supervisor-approved request awaiting HR, both kinds
// merged, triaged by waiting time and ordered by priority then by
// submission time.
func (s *Service) Queue(ctx context.Context, actor identity.Actor) ([]approval.QueueItem, error) {
	if !identity.HasPermission(actor.Role, identity.PermissionApprovalQueueView) {
		return nil, identity.ErrUnauthorized
	}

	now := s.now()
	items := make([]approval.QueueItem, 0)

	leaveRequests, err := s.leaveRequests.ListByStatus(ctx, actor.CompanyID, string(approval.StatusSupervisorApproved))
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	for _, req := range leaveRequests {
		items = append(items, approval.QueueItem{
			Kind:                 approval.KindLeave,
			RequestID:            req.ID,
			RequestNo:            req.RequestNo,
			EmployeeID:           req.EmployeeID,
			EmployeeName:         req.EmployeeName,
			Quantity:             req.Days,
			Unit:                 "days",
			SubmittedAt:          req.SubmittedAt,
			SupervisorApprovedAt: req.SupervisorApprovedAt,
			Priority:             approval.ClassifyPriority(req.SupervisorApprovedAt, now),
		})
	}

	overtimeRequests, err := s.overtimeRequests.ListByStatus(ctx, actor.CompanyID, string(approval.StatusSupervisorApproved))
	if err != nil {
		return nil, fmt.Errorf("failed to list overtime requests: %w", err)
	}
	for _, req := range overtimeRequests {
		items = append(items, approval.QueueItem{
			Kind:                 approval.KindOvertime,
			RequestID:            req.ID,
			RequestNo:            req.RequestNo,
			EmployeeID:           req.EmployeeID,
			EmployeeName:         req.EmployeeName,
			Quantity:             req.Hours,
			Unit:                 "hours",
			SubmittedAt:          req.SubmittedAt,
			SupervisorApprovedAt: req.SupervisorApprovedAt,
			Priority:             approval.ClassifyPriority(req.SupervisorApprovedAt, now),
			CTOPreview:           req.CTOPreview,
		})
	}

	sortChronological(items)
	approval.SortQueue(items)
	return items, nil
}

// Override lets an elevated actor finalize a request directly, approving
// or rejecting it. A request still at PENDING first gets a synthesized
// supervisor approval; those two phases commit separately, and a finalize
// failure is compensated by restoring the exact pre-override supervisor
// state. A request already at SUPERVISOR_APPROVED skips the synthesis and
// runs only the finalize, with nothing to compensate.
func (s *Service) Override(ctx context.Context, actor identity.Actor, kind approval.Kind, requestID string, approve bool) error {
	if !actor.Elevated() {
		return identity.ErrElevatedRoleRequired
	}
	if !identity.HasPermission(actor.Role, identity.PermissionApprovalOverride) {
		return identity.ErrUnauthorized
	}
	gw, ok := s.gateways[kind]
	if !ok {
		return fmt.Errorf("unknown request kind %q", kind)
	}
	decision := "approve"
	if !approve {
		decision = "reject"
	}

	prior, err := gw.Snapshot(ctx, actor, requestID)
	if err != nil {
		return err
	}
	switch prior.Status {
	case approval.StatusSupervisorApproved:
		return gw.Finalize(ctx, actor, requestID, approve, approval.OverrideFinalizeRemarks(approve))
	case approval.StatusPending:
	default:
		return &approval.StateError{Kind: kind, Decision: decision, Current: prior.Status}
	}

	saga := approval.BeginOverride(prior)

	if err := gw.SynthesizeSupervisor(ctx, actor, requestID, approval.OverrideSynthesisRemarks(approve)); err != nil {
		return fmt.Errorf("failed to synthesize supervisor approval: %w", err)
	}
	saga.MarkSynthesized()

	if err := gw.Finalize(ctx, actor, requestID, approve, approval.OverrideFinalizeRemarks(approve)); err != nil {
		if !saga.NeedsRollback() {
			return err
		}
		if rbErr := gw.RestoreSupervisor(ctx, actor, requestID, saga.Prior); rbErr != nil {
			return fmt.Errorf("rollback error: %v (original error: %w)", rbErr, err)
		}
		saga.MarkRolledBack()
		slog.WarnContext(ctx, "override finalization failed, supervisor state restored",
			"kind", string(kind), "request_id", requestID, "error", err)
		return err
	}
	saga.MarkFinalized()

	return nil
}

func sortChronological(items []approval.QueueItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].SubmittedAt.Before(items[j].SubmittedAt)
	})
}
