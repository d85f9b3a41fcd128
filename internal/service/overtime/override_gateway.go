package overtime

import (
	"context"
	"fmt"
	"time"

	"github.com/suweldo/payroll-backend-go/internal/domain/approval"
	"github.com/suweldo/payroll-backend-go/internal/domain/audit"
	"github.com/suweldo/payroll-backend-go/internal/domain/identity"
	"github.com/suweldo/payroll-backend-go/internal/domain/overtime"
)

// The methods below satisfy the approval service's RequestGateway so
// overtime requests can be driven through the administrative override.

func (s *Service) Snapshot(ctx context.Context, actor identity.Actor, requestID string) (approval.SupervisorState, error) {
	request, err := s.requests.GetByID(ctx, actor.CompanyID, requestID)
	if err != nil {
		return approval.SupervisorState{}, err
	}
	return approval.SupervisorState{
		Status:     approval.Status(request.Status),
		ApprovedBy: request.SupervisorApprovedBy,
		ApprovedAt: request.SupervisorApprovedAt,
		Remarks:    request.SupervisorRemarks,
	}, nil
}

// SynthesizeSupervisor stamps a supervisor approval on the override actor's
// authority, recording the request's assigned approver when one exists.
func (s *Service) SynthesizeSupervisor(ctx context.Context, actor identity.Actor, requestID, remarks string) error {
	request, err := s.requests.GetByID(ctx, actor.CompanyID, requestID)
	if err != nil {
		return err
	}

	approver := actor.EmployeeID
	if request.ApproverID != nil {
		approver = *request.ApproverID
	}
	now := time.Now()
	request.SupervisorApprovedBy = &approver
	request.SupervisorApprovedAt = &now
	request.SupervisorRemarks = &remarks

	_, err = s.transition(ctx, actor, request, approval.StatusSupervisorApproved, "supervisor-approve", remarks)
	return err
}

func (s *Service) Finalize(ctx context.Context, actor identity.Actor, requestID string, approve bool, remarks string) error {
	if approve {
		_, err := s.HRApprove(ctx, actor, requestID, overtime.DecisionRequest{Remarks: remarks})
		return err
	}
	_, err := s.HRReject(ctx, actor, requestID, overtime.DecisionRequest{Remarks: remarks})
	return err
}

// RestoreSupervisor is the compensating write of a failed override,
// returning status and supervisor stamps to their pre-override values.
func (s *Service) RestoreSupervisor(ctx context.Context, actor identity.Actor, requestID string, prior approval.SupervisorState) error {
	request, err := s.requests.GetByID(ctx, actor.CompanyID, requestID)
	if err != nil {
		return err
	}

	prevStatus := request.Status
	request.Status = string(prior.Status)
	request.SupervisorApprovedBy = prior.ApprovedBy
	request.SupervisorApprovedAt = prior.ApprovedAt
	request.SupervisorRemarks = prior.Remarks

	return s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.requests.Update(ctx, request); err != nil {
			return fmt.Errorf("failed to restore overtime request: %w", err)
		}
		entry := audit.Entry{
			CompanyID:  actor.CompanyID,
			EntityName: "overtime_request",
			RecordID:   request.ID,
			Action:     "override-rollback",
			ActorID:    actor.UserID,
			Changes:    []audit.FieldChange{{Field: "status", Old: prevStatus, New: request.Status}},
		}
		if err := s.auditor.Record(ctx, entry); err != nil {
			return fmt.Errorf("failed to record audit entry: %w", err)
		}
		return nil
	})
}
