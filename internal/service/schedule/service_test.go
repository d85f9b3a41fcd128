package schedule

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/suweldo/payroll-backend-go/internal/domain/identity"
	"github.com/suweldo/payroll-backend-go/internal/domain/schedule"
)

type fakeWorkScheduleRepo struct {
	schedules map[string]schedule.WorkSchedule
	seq       int
}

func newFakeWorkScheduleRepo() *fakeWorkScheduleRepo {
	return &fakeWorkScheduleRepo{schedules: make(map[string]schedule.WorkSchedule)}
}

func (r *fakeWorkScheduleRepo) Create(ctx context.Context, s schedule.WorkSchedule) (schedule.WorkSchedule, error) {
	r.seq++
	s.ID = fmt.Sprintf("ws-%d", r.seq)
	r.schedules[s.ID] = s
	return s, nil
}

func (r *fakeWorkScheduleRepo) GetByID(ctx context.Context, companyID, id string) (schedule.WorkSchedule, error) {
	s, ok := r.schedules[id]
	if !ok || s.CompanyID != companyID {
		return schedule.WorkSchedule{}, schedule.ErrScheduleNotFound
	}
	return s, nil
}

func (r *fakeWorkScheduleRepo) ListByCompanyID(ctx context.Context, companyID string) ([]schedule.WorkSchedule, error) {
	var out []schedule.WorkSchedule
	for _, s := range r.schedules {
		if s.CompanyID == companyID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeWorkScheduleRepo) Update(ctx context.Context, s schedule.WorkSchedule) error {
	if _, ok := r.schedules[s.ID]; !ok {
		return schedule.ErrScheduleNotFound
	}
	r.schedules[s.ID] = s
	return nil
}

func (r *fakeWorkScheduleRepo) Delete(ctx context.Context, companyID, id string) error {
	s, ok := r.schedules[id]
	if !ok || s.CompanyID != companyID {
		return schedule.ErrScheduleNotFound
	}
	delete(r.schedules, id)
	return nil
}

type fakeAssignmentRepo struct {
	assignments []schedule.EmployeeScheduleAssignment
}

func (r *fakeAssignmentRepo) Assign(ctx context.Context, a schedule.EmployeeScheduleAssignment) (schedule.EmployeeScheduleAssignment, error) {
	a.ID = fmt.Sprintf("asg-%d", len(r.assignments)+1)
	r.assignments = append(r.assignments, a)
	return a, nil
}

func (r *fakeAssignmentRepo) GetForDate(ctx context.Context, employeeID string, date time.Time) (schedule.EmployeeScheduleAssignment, error) {
	for _, a := range r.assignments {
		if a.EmployeeID != employeeID || date.Before(a.StartDate) {
			continue
		}
		if a.EndDate != nil && date.After(*a.EndDate) {
			continue
		}
		return a, nil
	}
	return schedule.EmployeeScheduleAssignment{}, schedule.ErrAssignmentNotFound
}

func (r *fakeAssignmentRepo) ListByEmployee(ctx context.Context, employeeID string) ([]schedule.EmployeeScheduleAssignment, error) {
	var out []schedule.EmployeeScheduleAssignment
	for _, a := range r.assignments {
		if a.EmployeeID == employeeID {
			out = append(out, a)
		}
	}
	return out, nil
}

func mustMinute(t *testing.T, s string) schedule.MinuteOfDay {
	t.Helper()
	m, err := schedule.ParseMinuteOfDay(s)
	require.NoError(t, err)
	return m
}

func TestResolveShiftForAssignedEmployee(t *testing.T) {
	schedules := newFakeWorkScheduleRepo()
	assignments := &fakeAssignmentRepo{}
	service := NewService(schedules, assignments)

	ws, err := schedules.Create(context.Background(), schedule.WorkSchedule{
		CompanyID:    "comp-1",
		Name:         "Day Shift",
		DefaultStart: mustMinute(t, "09:00"),
		DefaultEnd:   mustMinute(t, "18:00"),
	})
	require.NoError(t, err)

	_, err = assignments.Assign(context.Background(), schedule.EmployeeScheduleAssignment{
		EmployeeID:     "emp-1",
		WorkScheduleID: ws.ID,
		StartDate:      time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	date := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	shift, resolved, err := service.ResolveShift(context.Background(), "comp-1", "emp-1", date)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	require.Equal(t, "Day Shift", resolved.Name)
	require.NotNil(t, shift.In)
	require.Equal(t, 9, shift.In.Hour())
	require.Equal(t, 18, shift.Out.Hour())
}

func TestResolveShiftWithoutAssignmentIsEmptyNotError(t *testing.T) {
	service := NewService(newFakeWorkScheduleRepo(), &fakeAssignmentRepo{})

	date := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	shift, resolved, err := service.ResolveShift(context.Background(), "comp-1", "emp-unassigned", date)
	require.NoError(t, err)
	require.Nil(t, resolved)
	require.True(t, shift.IsRestDay())
}

func TestAssignEmployeeRejectsUnknownSchedule(t *testing.T) {
	service := NewService(newFakeWorkScheduleRepo(), &fakeAssignmentRepo{})
	admin := identity.Actor{UserID: "user-hr", CompanyID: "comp-1", Role: identity.RoleHRAdmin}

	_, err := service.AssignEmployee(context.Background(), admin, schedule.EmployeeScheduleAssignment{
		EmployeeID:     "emp-1",
		WorkScheduleID: "ws-missing",
		StartDate:      time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
	})
	require.ErrorIs(t, err, schedule.ErrScheduleNotFound)
}

func TestCreateScheduleRequiresManagePermission(t *testing.T) {
	service := NewService(newFakeWorkScheduleRepo(), &fakeAssignmentRepo{})
	worker := identity.Actor{UserID: "user-1", CompanyID: "comp-1", Role: identity.RoleEmployee}

	_, err := service.CreateSchedule(context.Background(), worker, schedule.CreateWorkScheduleRequest{
		Name:         "Night Shift",
		DefaultStart: "22:00",
		DefaultEnd:   "06:00",
	})
	require.ErrorIs(t, err, identity.ErrUnauthorized)
}
