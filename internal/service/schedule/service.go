package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/suweldo/payroll-backend-go/internal/domain/identity"
	"github.com/suweldo/payroll-backend-go/internal/domain/schedule"
)

type Service struct {
	schedule.WorkScheduleRepository
	schedule.AssignmentRepository
}

func NewService(workScheduleRepository schedule.WorkScheduleRepository, assignmentRepository schedule.AssignmentRepository) *Service {
	return &Service{
		WorkScheduleRepository: workScheduleRepository,
		AssignmentRepository:   assignmentRepository,
	}
}

func (s *Service) CreateSchedule(ctx context.Context, actor identity.Actor, req schedule.CreateWorkScheduleRequest) (schedule.WorkSchedule, error) {
	if !identity.HasPermission(actor.Role, identity.PermissionScheduleManage) {
		return schedule.WorkSchedule{}, identity.ErrUnauthorized
	}

	ws, err := req.Validate()
	if err != nil {
		return schedule.WorkSchedule{}, err
	}
	ws.CompanyID = actor.CompanyID

	created, err := s.WorkScheduleRepository.Create(ctx, ws)
	if err != nil {
		return schedule.WorkSchedule{}, fmt.Errorf("failed to create work schedule: %w", err)
	}
	return created, nil
}

func (s *Service) GetSchedule(ctx context.Context, actor identity.Actor, id string) (schedule.WorkSchedule, error) {
	if !identity.HasPermission(actor.Role, identity.PermissionScheduleView) {
		return schedule.WorkSchedule{}, identity.ErrUnauthorized
	}
	return s.WorkScheduleRepository.GetByID(ctx, actor.CompanyID, id)
}

func (s *Service) ListSchedules(ctx context.Context, actor identity.Actor) ([]schedule.WorkSchedule, error) {
	if !identity.HasPermission(actor.Role, identity.PermissionScheduleView) {
		return nil, identity.ErrUnauthorized
	}
	return s.WorkScheduleRepository.ListByCompanyID(ctx, actor.CompanyID)
}

func (s *Service) UpdateSchedule(ctx context.Context, actor identity.Actor, id string, req schedule.CreateWorkScheduleRequest) (schedule.WorkSchedule, error) {
	if !identity.HasPermission(actor.Role, identity.PermissionScheduleManage) {
		return schedule.WorkSchedule{}, identity.ErrUnauthorized
	}

	existing, err := s.WorkScheduleRepository.GetByID(ctx, actor.CompanyID, id)
	if err != nil {
		return schedule.WorkSchedule{}, err
	}

	ws, err := req.Validate()
	if err != nil {
		return schedule.WorkSchedule{}, err
	}
	ws.ID = existing.ID
	ws.CompanyID = existing.CompanyID

	if err := s.WorkScheduleRepository.Update(ctx, ws); err != nil {
		return schedule.WorkSchedule{}, fmt.Errorf("failed to update work schedule: %w", err)
	}
	return s.WorkScheduleRepository.GetByID(ctx, actor.CompanyID, id)
}

func (s *Service) DeleteSchedule(ctx context.Context, actor identity.Actor, id string) error {
	if !identity.HasPermission(actor.Role, identity.PermissionScheduleManage) {
		return identity.ErrUnauthorized
	}
	return s.WorkScheduleRepository.Delete(ctx, actor.CompanyID, id)
}

func (s *Service) AssignEmployee(ctx context.Context, actor identity.Actor, a schedule.EmployeeScheduleAssignment) (schedule.EmployeeScheduleAssignment, error) {
	if !identity.HasPermission(actor.Role, identity.PermissionScheduleManage) {
		return schedule.EmployeeScheduleAssignment{}, identity.ErrUnauthorized
	}

	if _, err := s.WorkScheduleRepository.GetByID(ctx, actor.CompanyID, a.WorkScheduleID); err != nil {
		return schedule.EmployeeScheduleAssignment{}, err
	}

	assigned, err := s.AssignmentRepository.Assign(ctx, a)
	if err != nil {
		return schedule.EmployeeScheduleAssignment{}, fmt.Errorf("failed to assign schedule: %w", err)
	}
	return assigned, nil
}

func (s *Service) ListAssignments(ctx context.Context, actor identity.Actor, employeeID string) ([]schedule.EmployeeScheduleAssignment, error) {
	if !identity.HasPermission(actor.Role, identity.PermissionScheduleView) {
		return nil, identity.ErrUnauthorized
	}
	return s.AssignmentRepository.ListByEmployee(ctx, employeeID)
}

// ResolveShift finds the schedule assigned to the employee on the given
// date and resolves the effective in/out instants. An employee without an
// assignment resolves to an empty shift with no schedule, which downstream
// metric computation treats as unresolvable.
func (s *Service) ResolveShift(ctx context.Context, companyID, employeeID string, date time.Time) (schedule.ResolvedShift, *schedule.WorkSchedule, error) {
	assignment, err := s.AssignmentRepository.GetForDate(ctx, employeeID, date)
	if err != nil {
		if errors.Is(err, schedule.ErrAssignmentNotFound) {
			return schedule.ResolvedShift{}, nil, nil
		}
		return schedule.ResolvedShift{}, nil, fmt.Errorf("failed to get schedule assignment: %w", err)
	}

	ws, err := s.WorkScheduleRepository.GetByID(ctx, companyID, assignment.WorkScheduleID)
	if err != nil {
		if errors.Is(err, schedule.ErrScheduleNotFound) {
			return schedule.ResolvedShift{}, nil, nil
		}
		return schedule.ResolvedShift{}, nil, fmt.Errorf("failed to get work schedule: %w", err)
	}

	return ws.Resolve(date), &ws, nil
}
