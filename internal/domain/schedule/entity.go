package schedule

import (
	"fmt"
	"time"
)

// MinuteOfDay is a time-of-day expressed as minutes since midnight.
type MinuteOfDay int

func (m MinuteOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// ParseMinuteOfDay parses "HH:MM" into minutes since midnight.
func ParseMinuteOfDay(s string) (MinuteOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return MinuteOfDay(t.Hour()*60 + t.Minute()), nil
}

type OverrideMode string

const (
	// OverrideFollowDefault uses the schedule's weekly default times.
	OverrideFollowDefault OverrideMode = "default"
	// OverrideCustom supplies explicit start/end times for the day.
	OverrideCustom OverrideMode = "custom"
	// OverrideRestDay marks the day non-working.
	OverrideRestDay OverrideMode = "rest_day"
)

var OverrideModeValues = []string{
	string(OverrideFollowDefault),
	string(OverrideCustom),
	string(OverrideRestDay),
}

// DayOverride customizes one weekday of a work schedule.
type DayOverride struct {
	Mode  OverrideMode
	Start MinuteOfDay // used when Mode == OverrideCustom
	End   MinuteOfDay
}

// WorkSchedule is a weekly schedule. Overrides is a fixed 7-slot table
// indexed by time.Weekday (Sunday == 0), so every weekday always has an
// entry and no key lookup can fail at resolution time.
type WorkSchedule struct {
	ID           string
	CompanyID    string
	Name         string
	DefaultStart MinuteOfDay
	DefaultEnd   MinuteOfDay
	BreakMins    int
	GraceMins    int
	Overrides    [7]DayOverride
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// EmployeeScheduleAssignment binds an employee to a work schedule for a
// date range. A nil EndDate means the assignment is still current.
type EmployeeScheduleAssignment struct {
	ID             string
	EmployeeID     string
	WorkScheduleID string
	StartDate      time.Time
	EndDate        *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
