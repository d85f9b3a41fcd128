package schedule

import (
	"time"

	"github.com/suweldo/payroll-backend-go/internal/pkg/validator"
)

type DayOverrideRequest struct {
	Mode  string  `json:"mode"`
	Start *string `json:"start,omitempty"`
	End   *string `json:"end,omitempty"`
}

type CreateWorkScheduleRequest struct {
	Name         string                        `json:"name"`
	DefaultStart string                        `json:"default_start"`
	DefaultEnd   string                        `json:"default_end"`
	BreakMins    int                           `json:"break_mins"`
	GraceMins    int                           `json:"grace_mins"`
	Overrides    map[string]DayOverrideRequest `json:"overrides,omitempty"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Validate checks the request and converts it into a WorkSchedule. The
// freeform override map from the wire collapses into the fixed 7-slot table.
func (r CreateWorkScheduleRequest) Validate() (WorkSchedule, error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "Name is required"})
	}

	start, err := ParseMinuteOfDay(r.DefaultStart)
	if err != nil {
		errs = append(errs, validator.ValidationError{Field: "default_start", Message: "Must be HH:MM"})
	}
	end, err := ParseMinuteOfDay(r.DefaultEnd)
	if err != nil {
		errs = append(errs, validator.ValidationError{Field: "default_end", Message: "Must be HH:MM"})
	}

	if r.BreakMins < 0 || r.BreakMins > 480 {
		errs = append(errs, validator.ValidationError{Field: "break_mins", Message: "Must be between 0 and 480"})
	}
	if r.GraceMins < 0 || r.GraceMins > 240 {
		errs = append(errs, validator.ValidationError{Field: "grace_mins", Message: "Must be between 0 and 240"})
	}

	ws := WorkSchedule{
		Name:         r.Name,
		DefaultStart: start,
		DefaultEnd:   end,
		BreakMins:    r.BreakMins,
		GraceMins:    r.GraceMins,
	}
	for i := range ws.Overrides {
		ws.Overrides[i] = DayOverride{Mode: OverrideFollowDefault}
	}

	for name, ov := range r.Overrides {
		day, ok := weekdayNames[name]
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "overrides." + name, Message: "Unknown weekday"})
			continue
		}
		if !validator.IsInSlice(ov.Mode, OverrideModeValues) {
			errs = append(errs, validator.ValidationError{Field: "overrides." + name + ".mode", Message: "Invalid override mode"})
			continue
		}

		entry := DayOverride{Mode: OverrideMode(ov.Mode)}
		if entry.Mode == OverrideCustom {
			if ov.Start == nil || ov.End == nil {
				errs = append(errs, validator.ValidationError{Field: "overrides." + name, Message: "Custom override requires start and end"})
				continue
			}
			if entry.Start, err = ParseMinuteOfDay(*ov.Start); err != nil {
				errs = append(errs, validator.ValidationError{Field: "overrides." + name + ".start", Message: "Must be HH:MM"})
			}
			if entry.End, err = ParseMinuteOfDay(*ov.End); err != nil {
				errs = append(errs, validator.ValidationError{Field: "overrides." + name + ".end", Message: "Must be HH:MM"})
			}
		}
		ws.Overrides[day] = entry
	}

	if len(errs) > 0 {
		return WorkSchedule{}, errs
	}
	return ws, nil
}

type AssignEmployeeRequest struct {
	EmployeeID     string  `json:"employee_id"`
	WorkScheduleID string  `json:"work_schedule_id"`
	StartDate      string  `json:"start_date"`
	EndDate        *string `json:"end_date,omitempty"`
}

func (r AssignEmployeeRequest) Validate() (EmployeeScheduleAssignment, error) {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "Must be a valid UUID"})
	}
	if !validator.IsValidUUID(r.WorkScheduleID) {
		errs = append(errs, validator.ValidationError{Field: "work_schedule_id", Message: "Must be a valid UUID"})
	}

	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "Must be YYYY-MM-DD"})
	}

	var end *time.Time
	if r.EndDate != nil {
		parsed, err := time.Parse("2006-01-02", *r.EndDate)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "Must be YYYY-MM-DD"})
		} else if parsed.Before(start) {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "Must not be before start date"})
		} else {
			end = &parsed
		}
	}

	if len(errs) > 0 {
		return EmployeeScheduleAssignment{}, errs
	}
	return EmployeeScheduleAssignment{
		EmployeeID:     r.EmployeeID,
		WorkScheduleID: r.WorkScheduleID,
		StartDate:      start,
		EndDate:        end,
	}, nil
}

type AssignmentResponse struct {
	ID             string    `json:"id"`
	EmployeeID     string    `json:"employee_id"`
	WorkScheduleID string    `json:"work_schedule_id"`
	StartDate      string    `json:"start_date"`
	EndDate        *string   `json:"end_date,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func ToAssignmentResponse(a EmployeeScheduleAssignment) AssignmentResponse {
	out := AssignmentResponse{
		ID:             a.ID,
		EmployeeID:     a.EmployeeID,
		WorkScheduleID: a.WorkScheduleID,
		StartDate:      a.StartDate.Format("2006-01-02"),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
	if a.EndDate != nil {
		end := a.EndDate.Format("2006-01-02")
		out.EndDate = &end
	}
	return out
}

type WorkScheduleResponse struct {
	ID           string                        `json:"id"`
	Name         string                        `json:"name"`
	DefaultStart string                        `json:"default_start"`
	DefaultEnd   string                        `json:"default_end"`
	BreakMins    int                           `json:"break_mins"`
	GraceMins    int                           `json:"grace_mins"`
	Overrides    map[string]DayOverrideRequest `json:"overrides"`
	CreatedAt    time.Time                     `json:"created_at"`
	UpdatedAt    time.Time                     `json:"updated_at"`
}

func ToResponse(s WorkSchedule) WorkScheduleResponse {
	overrides := make(map[string]DayOverrideRequest, 7)
	for name, day := range weekdayNames {
		ov := s.Overrides[day]
		out := DayOverrideRequest{Mode: string(ov.Mode)}
		if ov.Mode == OverrideCustom {
			start := ov.Start.String()
			end := ov.End.String()
			out.Start = &start
			out.End = &end
		}
		overrides[name] = out
	}
	return WorkScheduleResponse{
		ID:           s.ID,
		Name:         s.Name,
		DefaultStart: s.DefaultStart.String(),
		DefaultEnd:   s.DefaultEnd.String(),
		BreakMins:    s.BreakMins,
		GraceMins:    s.GraceMins,
		Overrides:    overrides,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
