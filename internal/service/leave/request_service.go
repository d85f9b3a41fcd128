package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/suweldo/payroll-backend-go/internal/domain/approval"
	"github.com/suweldo/payroll-backend-go/internal/domain/audit"
	"github.com/suweldo/payroll-backend-go/internal/domain/employee"
	"github.com/suweldo/payroll-backend-go/internal/domain/identity"
	"github.com/suweldo/payroll-backend-go/internal/domain/leave"
	"github.com/suweldo/payroll-backend-go/internal/domain/notification"
	"github.com/suweldo/payroll-backend-go/internal/pkg/database"
)

// RequestService drives leave requests through the shared two-stage
// approval lifecycle. Every status change that affects a reservation runs
// the ledger mutation in the same transaction as the request update.
type RequestService struct {
	tx         database.Transactor
	requests   leave.RequestRepository
	leaveTypes leave.LeaveTypeRepository
	employees  employee.Repository
	ledger     *LedgerService
	auditor    audit.Repository
	notifier   notification.Notifier
}

func NewRequestService(
	tx database.Transactor,
	requestRepository leave.RequestRepository,
	leaveTypeRepository leave.LeaveTypeRepository,
	employeeRepository employee.Repository,
	ledger *LedgerService,
	auditRepository audit.Repository,
	notifier notification.Notifier,
) *RequestService {
	return &RequestService{
		tx:         tx,
		requests:   requestRepository,
		leaveTypes: leaveTypeRepository,
		employees:  employeeRepository,
		ledger:     ledger,
		auditor:    auditRepository,
		notifier:   notifier,
	}
}

// CreateRequest files a new leave request. For paid leave types the
// requested days are reserved against the employee's balance atomically
// with the insert; if the reservation fails, no request is created.
func (s *RequestService) CreateRequest(ctx context.Context, actor identity.Actor, req leave.CreateRequestRequest) (leave.Request, error) {
	if !identity.HasPermission(actor.Role, identity.PermissionLeaveCreate) {
		return leave.Request{}, identity.ErrUnauthorized
	}

	start, end, err := req.Validate()
	if err != nil {
		return leave.Request{}, err
	}

	emp, err := s.employees.GetByID(ctx, actor.EmployeeID)
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if emp.ManagerID == nil {
		return leave.Request{}, leave.ErrNoSupervisorAssigned
	}

	lt, err := s.leaveTypes.GetByID(ctx, actor.CompanyID, req.LeaveTypeID)
	if err != nil {
		return leave.Request{}, err
	}
	if !lt.Active {
		return leave.Request{}, leave.ErrLeaveTypeInactive
	}

	overlapping, err := s.requests.CheckOverlapping(ctx, emp.ID, start, end)
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to check overlapping requests: %w", err)
	}
	if overlapping {
		return leave.Request{}, leave.ErrOverlappingRequest
	}

	days := leave.RequestedDays(start, end, req.StartHalfDay, req.EndHalfDay)

	var created leave.Request
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		created, err = s.requests.Create(ctx, leave.Request{
			EmployeeID:   emp.ID,
			LeaveTypeID:  lt.ID,
			StartDate:    start,
			EndDate:      end,
			StartHalfDay: req.StartHalfDay,
			EndHalfDay:   req.EndHalfDay,
			Days:         days,
			Reason:       req.Reason,
			Status:       string(approval.StatusPending),
			SupervisorID: emp.ManagerID,
		})
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}

		entry := audit.Entry{
			CompanyID:  actor.CompanyID,
			EntityName: "leave_request",
			RecordID:   created.ID,
			Action:     "create",
			ActorID:    actor.UserID,
			Reason:     req.Reason,
			Changes:    []audit.FieldChange{{Field: "status", Old: "", New: created.Status}},
		}
		if err := s.auditor.Record(ctx, entry); err != nil {
			return fmt.Errorf("failed to record audit entry: %w", err)
		}

		if lt.Paid {
			return s.ledger.Reserve(ctx, emp.ID, lt.ID, start.Year(), days, created.RequestNo, actor.UserID)
		}
		return nil
	})
	if err != nil {
		return leave.Request{}, err
	}

	s.notifier.Revalidate(ctx, "leave_request", created.ID)
	return created, nil
}

// CancelRequest withdraws a pending request and releases its reservation.
// Once a supervisor has acted the request can no longer be cancelled.
func (s *RequestService) CancelRequest(ctx context.Context, actor identity.Actor, requestID string, req leave.CancelRequestRequest) (leave.Request, error) {
	request, err := s.requests.GetByID(ctx, actor.CompanyID, requestID)
	if err != nil {
		return leave.Request{}, err
	}
	if request.EmployeeID != actor.EmployeeID && !actor.Elevated() {
		return leave.Request{}, identity.ErrUnauthorized
	}

	now := time.Now()
	request.CancelledAt = &now
	if req.Reason != "" {
		request.CancellationReason = &req.Reason
	}

	updated, err := s.transition(ctx, actor, request, approval.StatusCancelled, "cancel", req.Reason)
	if err != nil {
		return leave.Request{}, err
	}

	s.notifier.Revalidate(ctx, "leave_request", updated.ID)
	return updated, nil
}

// SupervisorApprove records the first-stage approval.
func (s *RequestService) SupervisorApprove(ctx context.Context, actor identity.Actor, requestID string, req leave.DecisionRequest) (leave.Request, error) {
	request, err := s.authorizeSupervisor(ctx, actor, requestID)
	if err != nil {
		return leave.Request{}, err
	}

	now := time.Now()
	request.SupervisorApprovedBy = &actor.EmployeeID
	request.SupervisorApprovedAt = &now
	if req.Remarks != "" {
		request.SupervisorRemarks = &req.Remarks
	}

	updated, err := s.transition(ctx, actor, request, approval.StatusSupervisorApproved, "supervisor-approve", req.Remarks)
	if err != nil {
		return leave.Request{}, err
	}

	s.notifier.Revalidate(ctx, "leave_request", updated.ID)
	return updated, nil
}

// SupervisorReject rejects at the first stage and releases the reservation.
func (s *RequestService) SupervisorReject(ctx context.Context, actor identity.Actor, requestID string, req leave.DecisionRequest) (leave.Request, error) {
	request, err := s.authorizeSupervisor(ctx, actor, requestID)
	if err != nil {
		return leave.Request{}, err
	}

	now := time.Now()
	request.SupervisorApprovedBy = &actor.EmployeeID
	request.SupervisorApprovedAt = &now
	if req.Remarks != "" {
		request.SupervisorRemarks = &req.Remarks
	}

	updated, err := s.transition(ctx, actor, request, approval.StatusRejected, "supervisor-reject", req.Remarks)
	if err != nil {
		return leave.Request{}, err
	}

	s.notifier.Revalidate(ctx, "leave_request", updated.ID)
	return updated, nil
}

// HRApprove finalizes the request: the reservation converts into a
// deduction in the same transaction as the status change.
func (s *RequestService) HRApprove(ctx context.Context, actor identity.Actor, requestID string, req leave.DecisionRequest) (leave.Request, error) {
	if !identity.HasPermission(actor.Role, identity.PermissionApprovalFinalize) {
		return leave.Request{}, identity.ErrUnauthorized
	}
	request, err := s.requests.GetByID(ctx, actor.CompanyID, requestID)
	if err != nil {
		return leave.Request{}, err
	}

	now := time.Now()
	request.HRApprovedBy = &actor.EmployeeID
	request.HRApprovedAt = &now
	if req.Remarks != "" {
		request.HRRemarks = &req.Remarks
	}

	updated, err := s.transition(ctx, actor, request, approval.StatusApproved, "approve", req.Remarks)
	if err != nil {
		return leave.Request{}, err
	}

	s.notifier.Revalidate(ctx, "leave_request", updated.ID)
	return updated, nil
}

// HRReject rejects at the final stage and releases the reservation.
func (s *RequestService) HRReject(ctx context.Context, actor identity.Actor, requestID string, req leave.DecisionRequest) (leave.Request, error) {
	if !identity.HasPermission(actor.Role, identity.PermissionApprovalFinalize) {
		return leave.Request{}, identity.ErrUnauthorized
	}
	request, err := s.requests.GetByID(ctx, actor.CompanyID, requestID)
	if err != nil {
		return leave.Request{}, err
	}

	now := time.Now()
	request.HRApprovedBy = &actor.EmployeeID
	request.HRApprovedAt = &now
	if req.Remarks != "" {
		request.HRRemarks = &req.Remarks
	}

	updated, err := s.transition(ctx, actor, request, approval.StatusRejected, "reject", req.Remarks)
	if err != nil {
		return leave.Request{}, err
	}

	s.notifier.Revalidate(ctx, "leave_request", updated.ID)
	return updated, nil
}

func (s *RequestService) GetRequest(ctx context.Context, actor identity.Actor, requestID string) (leave.Request, error) {
	request, err := s.requests.GetByID(ctx, actor.CompanyID, requestID)
	if err != nil {
		return leave.Request{}, err
	}
	if request.EmployeeID != actor.EmployeeID && !identity.HasPermission(actor.Role, identity.PermissionLeaveViewAll) {
		return leave.Request{}, identity.ErrUnauthorized
	}
	return request, nil
}

func (s *RequestService) ListByEmployee(ctx context.Context, actor identity.Actor, employeeID string) ([]leave.Request, error) {
	if employeeID != actor.EmployeeID && !identity.HasPermission(actor.Role, identity.PermissionLeaveViewAll) {
		return nil, identity.ErrUnauthorized
	}
	return s.requests.ListByEmployee(ctx, employeeID)
}

func (s *RequestService) authorizeSupervisor(ctx context.Context, actor identity.Actor, requestID string) (leave.Request, error) {
	if !identity.HasPermission(actor.Role, identity.PermissionLeaveApprove) {
		return leave.Request{}, identity.ErrUnauthorized
	}
	request, err := s.requests.GetByID(ctx, actor.CompanyID, requestID)
	if err != nil {
		return leave.Request{}, err
	}
	if !actor.Elevated() && (request.SupervisorID == nil || *request.SupervisorID != actor.EmployeeID) {
		return leave.Request{}, identity.ErrUnauthorized
	}
	return request, nil
}

// transition validates the status move, then updates the request, records
// the audit entry and settles the ledger side effect atomically. Moving out
// of a reservation-holding status releases the hold, except approval,
// which deducts instead.
func (s *RequestService) transition(ctx context.Context, actor identity.Actor, request leave.Request, target approval.Status, decision, reason string) (leave.Request, error) {
	current := approval.Status(request.Status)
	if !current.CanTransition(target) {
		return leave.Request{}, &approval.StateError{Kind: approval.KindLeave, Decision: decision, Current: current}
	}

	lt, err := s.leaveTypes.GetByID(ctx, actor.CompanyID, request.LeaveTypeID)
	if err != nil {
		return leave.Request{}, err
	}

	request.Status = string(target)

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.requests.Update(ctx, request); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}

		entry := audit.Entry{
			CompanyID:  actor.CompanyID,
			EntityName: "leave_request",
			RecordID:   request.ID,
			Action:     decision,
			ActorID:    actor.UserID,
			Reason:     reason,
			Changes:    []audit.FieldChange{{Field: "status", Old: string(current), New: string(target)}},
		}
		if err := s.auditor.Record(ctx, entry); err != nil {
			return fmt.Errorf("failed to record audit entry: %w", err)
		}

		if !lt.Paid || !current.HoldsReservation() || target.HoldsReservation() {
			return nil
		}
		year := request.StartDate.Year()
		if target == approval.StatusApproved {
			return s.ledger.Deduct(ctx, request.EmployeeID, request.LeaveTypeID, year, request.Days, request.RequestNo, actor.UserID)
		}
		return s.ledger.Release(ctx, request.EmployeeID, request.LeaveTypeID, year, request.Days, request.RequestNo, actor.UserID)
	})
	if err != nil {
		return leave.Request{}, err
	}
	return request, nil
}
