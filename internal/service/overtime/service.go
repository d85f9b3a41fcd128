package overtime

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/suweldo/payroll-backend-go/internal/domain/approval"
	"github.com/suweldo/payroll-backend-go/internal/domain/audit"
	"github.com/suweldo/payroll-backend-go/internal/domain/employee"
	"github.com/suweldo/payroll-backend-go/internal/domain/identity"
	"github.com/suweldo/payroll-backend-go/internal/domain/notification"
	"github.com/suweldo/payroll-backend-go/internal/domain/overtime"
	"github.com/suweldo/payroll-backend-go/internal/pkg/database"
)

// Service drives overtime requests through the shared two-stage approval
// lifecycle. No ledger is involved; approved hours feed payroll directly.
type Service struct {
	tx        database.Transactor
	requests  overtime.Repository
	employees employee.Repository
	auditor   audit.Repository
	notifier  notification.Notifier
}

func NewService(
	tx database.Transactor,
	requestRepository overtime.Repository,
	employeeRepository employee.Repository,
	auditRepository audit.Repository,
	notifier notification.Notifier,
) *Service {
	return &Service{
		tx:        tx,
		requests:  requestRepository,
		employees: employeeRepository,
		auditor:   auditRepository,
		notifier:  notifier,
	}
}

// CreateRequest files an overtime request routed to the employee's manager.
// The request is flagged for compensatory-time-off conversion preview when
// the requester is outside the overtime-eligible population or the
// approving manager has at least one active direct report; the flag is
// advisory and never blocks approval.
func (s *Service) CreateRequest(ctx context.Context, actor identity.Actor, req overtime.CreateRequestRequest) (overtime.Request, error) {
	if !identity.HasPermission(actor.Role, identity.PermissionOvertimeCreate) {
		return overtime.Request{}, identity.ErrUnauthorized
	}

	date, start, end, err := req.Validate()
	if err != nil {
		return overtime.Request{}, err
	}

	emp, err := s.employees.GetByID(ctx, actor.EmployeeID)
	if err != nil {
		return overtime.Request{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if emp.ManagerID == nil {
		return overtime.Request{}, overtime.ErrNoApproverAssigned
	}

	ctoPreview := !emp.OvertimeEligible
	if !ctoPreview {
		reports, err := s.employees.CountActiveDirectReports(ctx, *emp.ManagerID)
		if err != nil {
			return overtime.Request{}, fmt.Errorf("failed to count direct reports: %w", err)
		}
		ctoPreview = reports > 0
	}

	hours := decimal.NewFromFloat(end.Sub(start).Hours()).Round(2)

	var created overtime.Request
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		created, err = s.requests.Create(ctx, overtime.Request{
			EmployeeID: emp.ID,
			Date:       date,
			StartTime:  start,
			EndTime:    end,
			Hours:      hours,
			Reason:     req.Reason,
			Status:     string(approval.StatusPending),
			ApproverID: emp.ManagerID,
			CTOPreview: ctoPreview,
		})
		if err != nil {
			return fmt.Errorf("failed to create overtime request: %w", err)
		}

		entry := audit.Entry{
			CompanyID:  emp.CompanyID,
			EntityName: "overtime_request",
			RecordID:   created.ID,
			Action:     "create",
			ActorID:    actor.UserID,
			Reason:     req.Reason,
			Changes:    []audit.FieldChange{{Field: "status", Old: "", New: created.Status}},
		}
		if err := s.auditor.Record(ctx, entry); err != nil {
			return fmt.Errorf("failed to record audit entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return overtime.Request{}, err
	}

	s.notifier.Revalidate(ctx, "overtime_request", created.ID)
	return created, nil
}

// CancelRequest withdraws a pending request.
func (s *Service) CancelRequest(ctx context.Context, actor identity.Actor, requestID string, req overtime.CancelRequestRequest) (overtime.Request, error) {
	request, err := s.requests.GetByID(ctx, actor.CompanyID, requestID)
	if err != nil {
		return overtime.Request{}, err
	}
	if request.EmployeeID != actor.EmployeeID && !actor.Elevated() {
		return overtime.Request{}, identity.ErrUnauthorized
	}

	now := time.Now()
	request.CancelledAt = &now
	if req.Reason != "" {
		request.CancellationReason = &req.Reason
	}

	return s.transition(ctx, actor, request, approval.StatusCancelled, "cancel", req.Reason)
}

// SupervisorApprove records the first-stage approval.
func (s *Service) SupervisorApprove(ctx context.Context, actor identity.Actor, requestID string, req overtime.DecisionRequest) (overtime.Request, error) {
	request, err := s.authorizeSupervisor(ctx, actor, requestID)
	if err != nil {
		return overtime.Request{}, err
	}

	now := time.Now()
	request.SupervisorApprovedBy = &actor.EmployeeID
	request.SupervisorApprovedAt = &now
	if req.Remarks != "" {
		request.SupervisorRemarks = &req.Remarks
	}

	return s.transition(ctx, actor, request, approval.StatusSupervisorApproved, "supervisor-approve", req.Remarks)
}

// SupervisorReject rejects at the first stage.
func (s *Service) SupervisorReject(ctx context.Context, actor identity.Actor, requestID string, req overtime.DecisionRequest) (overtime.Request, error) {
	request, err := s.authorizeSupervisor(ctx, actor, requestID)
	if err != nil {
		return overtime.Request{}, err
	}

	now := time.Now()
	request.SupervisorApprovedBy = &actor.EmployeeID
	request.SupervisorApprovedAt = &now
	if req.Remarks != "" {
		request.SupervisorRemarks = &req.Remarks
	}

	return s.transition(ctx, actor, request, approval.StatusRejected, "supervisor-reject", req.Remarks)
}

// HRApprove finalizes the request.
func (s *Service) HRApprove(ctx context.Context, actor identity.Actor, requestID string, req overtime.DecisionRequest) (overtime.Request, error) {
	return s.hrDecision(ctx, actor, requestID, req, approval.StatusApproved, "approve")
}

// HRReject rejects at the final stage.
func (s *Service) HRReject(ctx context.Context, actor identity.Actor, requestID string, req overtime.DecisionRequest) (overtime.Request, error) {
	return s.hrDecision(ctx, actor, requestID, req, approval.StatusRejected, "reject")
}

func (s *Service) hrDecision(ctx context.Context, actor identity.Actor, requestID string, req overtime.DecisionRequest, target approval.Status, decision string) (overtime.Request, error) {
	if !identity.HasPermission(actor.Role, identity.PermissionApprovalFinalize) {
		return overtime.Request{}, identity.ErrUnauthorized
	}
	request, err := s.requests.GetByID(ctx, actor.CompanyID, requestID)
	if err != nil {
		return overtime.Request{}, err
	}

	now := time.Now()
	request.HRApprovedBy = &actor.EmployeeID
	request.HRApprovedAt = &now
	if req.Remarks != "" {
		request.HRRemarks = &req.Remarks
	}

	return s.transition(ctx, actor, request, target, decision, req.Remarks)
}

func (s *Service) GetRequest(ctx context.Context, actor identity.Actor, requestID string) (overtime.Request, error) {
	request, err := s.requests.GetByID(ctx, actor.CompanyID, requestID)
	if err != nil {
		return overtime.Request{}, err
	}
	if request.EmployeeID != actor.EmployeeID && !identity.HasPermission(actor.Role, identity.PermissionOvertimeViewAll) {
		return overtime.Request{}, identity.ErrUnauthorized
	}
	return request, nil
}

func (s *Service) ListByEmployee(ctx context.Context, actor identity.Actor, employeeID string) ([]overtime.Request, error) {
	if employeeID != actor.EmployeeID && !identity.HasPermission(actor.Role, identity.PermissionOvertimeViewAll) {
		return nil, identity.ErrUnauthorized
	}
	return s.requests.ListByEmployee(ctx, employeeID)
}

func (s *Service) authorizeSupervisor(ctx context.Context, actor identity.Actor, requestID string) (overtime.Request, error) {
	if !identity.HasPermission(actor.Role, identity.PermissionOvertimeApprove) {
		return overtime.Request{}, identity.ErrUnauthorized
	}
	request, err := s.requests.GetByID(ctx, actor.CompanyID, requestID)
	if err != nil {
		return overtime.Request{}, err
	}
	if !actor.Elevated() && (request.ApproverID == nil || *request.ApproverID != actor.EmployeeID) {
		return overtime.Request{}, identity.ErrUnauthorized
	}
	return request, nil
}

// transition validates the status move, then updates the request and
// records the audit entry in one transaction.
func (s *Service) transition(ctx context.Context, actor identity.Actor, request overtime.Request, target approval.Status, decision, reason string) (overtime.Request, error) {
	current := approval.Status(request.Status)
	if !current.CanTransition(target) {
		return overtime.Request{}, &approval.StateError{Kind: approval.KindOvertime, Decision: decision, Current: current}
	}

	request.Status = string(target)
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.requests.Update(ctx, request); err != nil {
			return fmt.Errorf("failed to update overtime request: %w", err)
		}

		entry := audit.Entry{
			CompanyID:  actor.CompanyID,
			EntityName: "overtime_request",
			RecordID:   request.ID,
			Action:     decision,
			ActorID:    actor.UserID,
			Reason:     reason,
			Changes:    []audit.FieldChange{{Field: "status", Old: string(current), New: string(target)}},
		}
		if err := s.auditor.Record(ctx, entry); err != nil {
			return fmt.Errorf("failed to record audit entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return overtime.Request{}, err
	}

	s.notifier.Revalidate(ctx, "overtime_request", request.ID)
	return request, nil
}
