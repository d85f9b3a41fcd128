package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/suweldo/payroll-backend-go/internal/domain/schedule"
	"github.com/suweldo/payroll-backend-go/internal/pkg/database"
)

type workScheduleRepositoryImpl struct {
	db *database.DB
}

func NewWorkScheduleRepository(db *database.DB) schedule.WorkScheduleRepository {
	return &workScheduleRepositoryImpl{db: db}
}

// overrideRow is the JSONB shape of one weekday override.
type overrideRow struct {
	Mode  string `json:"mode"`
	Start int    `json:"start,omitempty"`
	End   int    `json:"end,omitempty"`
}

func encodeOverrides(overrides [7]schedule.DayOverride) ([]byte, error) {
	rows := make([]overrideRow, 7)
	for i, ov := range overrides {
		rows[i] = overrideRow{Mode: string(ov.Mode), Start: int(ov.Start), End: int(ov.End)}
	}
	return json.Marshal(rows)
}

func decodeOverrides(raw []byte) ([7]schedule.DayOverride, error) {
	var out [7]schedule.DayOverride
	var rows []overrideRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return out, fmt.Errorf("decode schedule overrides: %w", err)
	}
	for i := 0; i < len(rows) && i < 7; i++ {
		out[i] = schedule.DayOverride{
			Mode:  schedule.OverrideMode(rows[i].Mode),
			Start: schedule.MinuteOfDay(rows[i].Start),
			End:   schedule.MinuteOfDay(rows[i].End),
		}
	}
	return out, nil
}

func (r *workScheduleRepositoryImpl) Create(ctx context.Context, s schedule.WorkSchedule) (schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	overrides, err := encodeOverrides(s.Overrides)
	if err != nil {
		return schedule.WorkSchedule{}, err
	}

	query := `
		INSERT INTO work_schedules (
			id, company_id, name, default_start_min, default_end_min,
			break_mins, grace_mins, overrides, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6, $7, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		s.CompanyID, s.Name, int(s.DefaultStart), int(s.DefaultEnd),
		s.BreakMins, s.GraceMins, overrides,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return schedule.WorkSchedule{}, err
	}

	return s, nil
}

func (r *workScheduleRepositoryImpl) GetByID(ctx context.Context, companyID, id string) (schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, default_start_min, default_end_min,
		       break_mins, grace_mins, overrides, created_at, updated_at
		FROM work_schedules
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	var s schedule.WorkSchedule
	var startMin, endMin int
	var overridesRaw []byte
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&s.ID, &s.CompanyID, &s.Name, &startMin, &endMin,
		&s.BreakMins, &s.GraceMins, &overridesRaw, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return schedule.WorkSchedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.WorkSchedule{}, err
	}

	s.DefaultStart = schedule.MinuteOfDay(startMin)
	s.DefaultEnd = schedule.MinuteOfDay(endMin)
	if s.Overrides, err = decodeOverrides(overridesRaw); err != nil {
		return schedule.WorkSchedule{}, err
	}

	return s, nil
}

func (r *workScheduleRepositoryImpl) ListByCompanyID(ctx context.Context, companyID string) ([]schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, default_start_min, default_end_min,
		       break_mins, grace_mins, overrides, created_at, updated_at
		FROM work_schedules
		WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := make([]schedule.WorkSchedule, 0)
	for rows.Next() {
		var s schedule.WorkSchedule
		var startMin, endMin int
		var overridesRaw []byte
		if err := rows.Scan(
			&s.ID, &s.CompanyID, &s.Name, &startMin, &endMin,
			&s.BreakMins, &s.GraceMins, &overridesRaw, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		s.DefaultStart = schedule.MinuteOfDay(startMin)
		s.DefaultEnd = schedule.MinuteOfDay(endMin)
		if s.Overrides, err = decodeOverrides(overridesRaw); err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}

	return schedules, nil
}

func (r *workScheduleRepositoryImpl) Update(ctx context.Context, s schedule.WorkSchedule) error {
	q := GetQuerier(ctx, r.db)

	overrides, err := encodeOverrides(s.Overrides)
	if err != nil {
		return err
	}

	query := `
		UPDATE work_schedules
		SET name = $1, default_start_min = $2, default_end_min = $3,
		    break_mins = $4, grace_mins = $5, overrides = $6, updated_at = NOW()
		WHERE id = $7 AND company_id = $8 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query,
		s.Name, int(s.DefaultStart), int(s.DefaultEnd),
		s.BreakMins, s.GraceMins, overrides, s.ID, s.CompanyID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrScheduleNotFound
	}
	return nil
}

func (r *workScheduleRepositoryImpl) Delete(ctx context.Context, companyID, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE work_schedules
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`
	tag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrScheduleNotFound
	}
	return nil
}

type assignmentRepositoryImpl struct {
	db *database.DB
}

func NewAssignmentRepository(db *database.DB) schedule.AssignmentRepository {
	return &assignmentRepositoryImpl{db: db}
}

func (r *assignmentRepositoryImpl) Assign(ctx context.Context, a schedule.EmployeeScheduleAssignment) (schedule.EmployeeScheduleAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_schedule_assignments (
			id, employee_id, work_schedule_id, start_date, end_date, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		a.EmployeeID, a.WorkScheduleID, a.StartDate, a.EndDate,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return schedule.EmployeeScheduleAssignment{}, err
	}

	return a, nil
}

func (r *assignmentRepositoryImpl) GetForDate(ctx context.Context, employeeID string, date time.Time) (schedule.EmployeeScheduleAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, work_schedule_id, start_date, end_date, created_at, updated_at
		FROM employee_schedule_assignments
		WHERE employee_id = $1
		  AND start_date <= $2
		  AND (end_date IS NULL OR end_date >= $2)
		ORDER BY start_date DESC
		LIMIT 1
	`

	var a schedule.EmployeeScheduleAssignment
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&a.ID, &a.EmployeeID, &a.WorkScheduleID, &a.StartDate, &a.EndDate, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return schedule.EmployeeScheduleAssignment{}, schedule.ErrAssignmentNotFound
		}
		return schedule.EmployeeScheduleAssignment{}, err
	}

	return a, nil
}

func (r *assignmentRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]schedule.EmployeeScheduleAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, work_schedule_id, start_date, end_date, created_at, updated_at
		FROM employee_schedule_assignments
		WHERE employee_id = $1
		ORDER BY start_date DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]schedule.EmployeeScheduleAssignment, 0)
	for rows.Next() {
		var a schedule.EmployeeScheduleAssignment
		if err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.WorkScheduleID, &a.StartDate, &a.EndDate, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	return assignments, nil
}
