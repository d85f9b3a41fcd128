package schedule

import (
	"context"
	"time"
)

type WorkScheduleRepository interface {
	Create(ctx context.Context, s WorkSchedule) (WorkSchedule, error)
	GetByID(ctx context.Context, companyID, id string) (WorkSchedule, error)
	ListByCompanyID(ctx context.Context, companyID string) ([]WorkSchedule, error)
	Update(ctx context.Context, s WorkSchedule) error
	Delete(ctx context.Context, companyID, id string) error
}

type AssignmentRepository interface {
	Assign(ctx context.Context, a EmployeeScheduleAssignment) (EmployeeScheduleAssignment, error)
	// GetForDate returns the assignment covering the given date, if any.
	GetForDate(ctx context.Context, employeeID string, date time.Time) (EmployeeScheduleAssignment, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]EmployeeScheduleAssignment, error)
}
