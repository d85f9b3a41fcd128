package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestProratedEntitlement_HiredBeforeYearStartGetsFull(t *testing.T) {
	for _, method := range []ProrationMethod{ProrationFull, ProrationDay, ProrationMonth} {
		got := ProratedEntitlement(method, d("12"), date(2023, time.June, 15), 2025, time.UTC)
		assert.True(t, got.Equal(d("12")), "method %s: got %s", method, got)
	}
}

func TestProratedEntitlement_HiredAfterYearEndGetsZero(t *testing.T) {
	got := ProratedEntitlement(ProrationMonth, d("12"), date(2026, time.January, 2), 2025, time.UTC)
	assert.True(t, got.IsZero())
}

func TestProratedEntitlement_MonthMethodJulyFirst(t *testing.T) {
	// 12 days, hired July 1 => 6 inclusive remaining months => 6.00.
	got := ProratedEntitlement(ProrationMonth, d("12"), date(2025, time.July, 1), 2025, time.UTC)
	assert.True(t, got.Equal(d("6")), "got %s", got)
}

func TestProratedEntitlement_MonthMethodDecember(t *testing.T) {
	got := ProratedEntitlement(ProrationMonth, d("12"), date(2025, time.December, 10), 2025, time.UTC)
	assert.True(t, got.Equal(d("1")), "got %s", got)
}

func TestProratedEntitlement_DayMethod(t *testing.T) {
	// Hired Dec 31: one inclusive remaining day out of 365.
	got := ProratedEntitlement(ProrationDay, d("365"), date(2025, time.December, 31), 2025, time.UTC)
	assert.True(t, got.Equal(d("1")), "got %s", got)
}

func TestProratedEntitlement_FullMethodMidYear(t *testing.T) {
	got := ProratedEntitlement(ProrationFull, d("15"), date(2025, time.September, 1), 2025, time.UTC)
	assert.True(t, got.Equal(d("15")))
}

func TestCarryOverAmount(t *testing.T) {
	cap5 := d("5")

	assert.True(t, CarryOverAmount(d("3"), nil).Equal(d("3")))
	assert.True(t, CarryOverAmount(d("-2"), nil).IsZero(), "negative previous balance floors at zero")
	assert.True(t, CarryOverAmount(d("8"), &cap5).Equal(d("5")), "capped at the configured maximum")
	assert.True(t, CarryOverAmount(d("4"), &cap5).Equal(d("4")))
}

func TestRequestedDays(t *testing.T) {
	start := date(2025, time.March, 10)
	end := date(2025, time.March, 14)

	assert.True(t, RequestedDays(start, end, false, false).Equal(d("5")))
	assert.True(t, RequestedDays(start, end, true, false).Equal(d("4.5")))
	assert.True(t, RequestedDays(start, end, true, true).Equal(d("4")))
	assert.True(t, RequestedDays(start, start, false, false).Equal(d("1")))
	assert.True(t, RequestedDays(start, start, true, false).Equal(d("0.5")))
}
