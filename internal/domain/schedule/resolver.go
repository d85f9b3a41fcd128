package schedule

import "time"

// ResolvedShift is the effective scheduled in/out pair for one calendar
// date. Both fields are nil on a rest day or when no schedule applies;
// downstream metric code treats that as "keep previously stored values".
type ResolvedShift struct {
	In  *time.Time
	Out *time.Time
}

func (r ResolvedShift) IsRestDay() bool {
	return r.In == nil && r.Out == nil
}

// Resolve computes the scheduled in/out instants for the given calendar
// date. The date's year/month/day and location anchor the schedule's
// times of day. When the end instant is not strictly after the start the
// shift crosses midnight and the end rolls forward one day, which is what
// makes overnight shifts (22:00-06:00) resolve correctly.
func (s *WorkSchedule) Resolve(date time.Time) ResolvedShift {
	if s == nil {
		return ResolvedShift{}
	}

	start := s.DefaultStart
	end := s.DefaultEnd

	switch ov := s.Overrides[date.Weekday()]; ov.Mode {
	case OverrideRestDay:
		return ResolvedShift{}
	case OverrideCustom:
		start = ov.Start
		end = ov.End
	}

	in := atMinute(date, start)
	out := atMinute(date, end)
	if !out.After(in) {
		out = out.AddDate(0, 0, 1)
	}

	return ResolvedShift{In: &in, Out: &out}
}

func atMinute(date time.Time, m MinuteOfDay) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), int(m)/60, int(m)%60, 0, 0, date.Location())
}
