package attendance

import (
	"math"
	"time"
)

// Night differential window: 22:00 through 06:00 the next day.
const (
	nightWindowStartHour = 22
	nightWindowEndHour   = 6
)

// MetricsInput carries everything ComputeMetrics needs. Previous holds the
// stored metric values and is returned unchanged when the schedule cannot
// be resolved, preserving prior manual corrections.
type MetricsInput struct {
	ActualIn     *time.Time
	ActualOut    *time.Time
	ScheduledIn  *time.Time
	ScheduledOut *time.Time
	GraceMins    int
	BreakMins    int
	Previous     Metrics
}

// ComputeMetrics derives tardiness, undertime, overtime, hours worked and
// night differential. It is a pure function of its input.
func ComputeMetrics(in MetricsInput) Metrics {
	if in.ActualIn == nil && in.ActualOut == nil {
		return Metrics{}
	}
	if in.ScheduledIn == nil && in.ScheduledOut == nil {
		return in.Previous
	}

	m := in.Previous

	if in.ActualIn != nil && in.ScheduledIn != nil {
		m.TardinessMins = tardinessMins(*in.ActualIn, *in.ScheduledIn, in.GraceMins)
	}

	if in.ActualOut != nil && in.ScheduledOut != nil {
		actualOut := normalizeOut(*in.ActualOut, in.ActualIn)
		scheduledOut := normalizeOut(*in.ScheduledOut, in.ScheduledIn)
		m.UndertimeMins = undertimeMins(actualOut, scheduledOut)
		m.OvertimeHours = overtimeHours(actualOut, scheduledOut)
	}

	if in.ActualIn != nil && in.ActualOut != nil {
		actualOut := normalizeOut(*in.ActualOut, in.ActualIn)
		m.HoursWorked = hoursWorked(*in.ActualIn, actualOut, in.BreakMins)
		m.NightDiffHours = NightDiffHours(*in.ActualIn, actualOut)
	}

	return m
}

func tardinessMins(actualIn, scheduledIn time.Time, graceMins int) int {
	late := int(math.Round(actualIn.Sub(scheduledIn).Minutes())) - graceMins
	if late < 0 {
		return 0
	}
	return late
}

func undertimeMins(actualOut, scheduledOut time.Time) int {
	short := int(math.Round(scheduledOut.Sub(actualOut).Minutes()))
	if short < 0 {
		return 0
	}
	return short
}

func overtimeHours(actualOut, scheduledOut time.Time) float64 {
	excess := actualOut.Sub(scheduledOut).Hours()
	if excess <= 0 {
		return 0
	}
	return round2(excess)
}

func hoursWorked(actualIn, actualOut time.Time, breakMins int) float64 {
	worked := actualOut.Sub(actualIn) - time.Duration(breakMins)*time.Minute
	if worked < 0 {
		return 0
	}
	return round2(worked.Hours())
}

// normalizeOut guarantees an "out" instant falls after its paired "in"
// instant so overnight spans compute correctly.
func normalizeOut(out time.Time, in *time.Time) time.Time {
	if in != nil && !out.After(*in) {
		return out.AddDate(0, 0, 1)
	}
	return out
}

// NightDiffHours returns the total overlap between [start, end) and the
// nightly 22:00-06:00 window, summed across every calendar day the span
// touches. Summing day-by-day chunks yields the same result as one pass
// over the whole interval.
func NightDiffHours(start, end time.Time) float64 {
	if !end.After(start) {
		return 0
	}

	var total time.Duration
	// The window anchored on day D runs 22:00 D to 06:00 D+1, so the span
	// may overlap windows anchored from the day before start through the
	// day of end.
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location()).AddDate(0, 0, -1)
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())
	for !day.After(last) {
		winStart := day.Add(nightWindowStartHour * time.Hour)
		winEnd := day.AddDate(0, 0, 1).Add(nightWindowEndHour * time.Hour)
		total += overlap(start, end, winStart, winEnd)
		day = day.AddDate(0, 0, 1)
	}

	return round2(total.Hours())
}

func overlap(aStart, aEnd, bStart, bEnd time.Time) time.Duration {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
