package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMinute(t *testing.T, s string) MinuteOfDay {
	t.Helper()
	m, err := ParseMinuteOfDay(s)
	require.NoError(t, err)
	return m
}

func testSchedule(t *testing.T, start, end string) *WorkSchedule {
	t.Helper()
	ws := &WorkSchedule{
		DefaultStart: mustMinute(t, start),
		DefaultEnd:   mustMinute(t, end),
		BreakMins:    60,
		GraceMins:    10,
	}
	for i := range ws.Overrides {
		ws.Overrides[i] = DayOverride{Mode: OverrideFollowDefault}
	}
	return ws
}

func TestResolve_DefaultDayShift(t *testing.T) {
	ws := testSchedule(t, "08:00", "17:00")
	date := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC) // Wednesday

	shift := ws.Resolve(date)

	require.False(t, shift.IsRestDay())
	assert.Equal(t, time.Date(2025, 3, 12, 8, 0, 0, 0, time.UTC), *shift.In)
	assert.Equal(t, time.Date(2025, 3, 12, 17, 0, 0, 0, time.UTC), *shift.Out)
}

func TestResolve_OvernightShiftRollsEndForward(t *testing.T) {
	ws := testSchedule(t, "22:00", "06:00")
	date := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	shift := ws.Resolve(date)

	require.False(t, shift.IsRestDay())
	assert.Equal(t, time.Date(2025, 3, 12, 22, 0, 0, 0, time.UTC), *shift.In)
	assert.Equal(t, time.Date(2025, 3, 13, 6, 0, 0, 0, time.UTC), *shift.Out)
	assert.True(t, shift.Out.After(*shift.In))
}

func TestResolve_RestDayOverride(t *testing.T) {
	ws := testSchedule(t, "08:00", "17:00")
	ws.Overrides[time.Sunday] = DayOverride{Mode: OverrideRestDay}

	sunday := time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)
	shift := ws.Resolve(sunday)

	assert.True(t, shift.IsRestDay())
	assert.Nil(t, shift.In)
	assert.Nil(t, shift.Out)
}

func TestResolve_CustomOverrideAnchorsToDate(t *testing.T) {
	ws := testSchedule(t, "08:00", "17:00")
	ws.Overrides[time.Saturday] = DayOverride{
		Mode:  OverrideCustom,
		Start: mustMinute(t, "09:00"),
		End:   mustMinute(t, "13:00"),
	}

	saturday := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	shift := ws.Resolve(saturday)

	require.False(t, shift.IsRestDay())
	assert.Equal(t, time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC), *shift.In)
	assert.Equal(t, time.Date(2025, 3, 15, 13, 0, 0, 0, time.UTC), *shift.Out)
}

func TestResolve_CustomOvernightOverride(t *testing.T) {
	ws := testSchedule(t, "08:00", "17:00")
	ws.Overrides[time.Friday] = DayOverride{
		Mode:  OverrideCustom,
		Start: mustMinute(t, "20:00"),
		End:   mustMinute(t, "04:00"),
	}

	friday := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	shift := ws.Resolve(friday)

	require.False(t, shift.IsRestDay())
	assert.Equal(t, time.Date(2025, 3, 15, 4, 0, 0, 0, time.UTC), *shift.Out)
}

func TestResolve_NilScheduleIsRestDay(t *testing.T) {
	var ws *WorkSchedule
	shift := ws.Resolve(time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC))
	assert.True(t, shift.IsRestDay())
}

func TestParseMinuteOfDay(t *testing.T) {
	m, err := ParseMinuteOfDay("08:30")
	require.NoError(t, err)
	assert.Equal(t, MinuteOfDay(510), m)
	assert.Equal(t, "08:30", m.String())

	_, err = ParseMinuteOfDay("25:00")
	assert.Error(t, err)
}
