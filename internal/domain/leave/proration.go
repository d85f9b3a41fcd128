package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// ProratedEntitlement scales the annual entitlement by the fraction of the
// target year the employee is actually employed, per the policy's method.
// Hired on/before the year start yields the full entitlement regardless of
// method; hired after the year end yields zero.
func ProratedEntitlement(method ProrationMethod, entitlement decimal.Decimal, hireDate time.Time, year int, loc *time.Location) decimal.Decimal {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, loc)

	hire := time.Date(hireDate.Year(), hireDate.Month(), hireDate.Day(), 0, 0, 0, 0, loc)
	if hire.After(yearEnd) {
		return decimal.Zero
	}
	if !hire.After(yearStart) {
		return entitlement.Round(2)
	}

	switch method {
	case ProrationDay:
		daysInYear := decimal.NewFromInt(int64(yearEnd.YearDay()))
		remaining := decimal.NewFromInt(int64(yearEnd.YearDay()-hire.YearDay()) + 1)
		return entitlement.Mul(remaining).Div(daysInYear).Round(2)
	case ProrationMonth:
		remaining := decimal.NewFromInt(int64(12 - int(hire.Month()) + 1))
		return entitlement.Mul(remaining).Div(twelve).Round(2)
	default:
		return entitlement.Round(2)
	}
}

// CarryOverAmount computes the opening balance rolled over from the
// previous year: the previous available balance floored at zero and capped
// at the leave type's configured maximum, when one is set.
func CarryOverAmount(prevAvailable decimal.Decimal, maxCarryOver *decimal.Decimal) decimal.Decimal {
	amount := prevAvailable
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	if maxCarryOver != nil && amount.GreaterThan(*maxCarryOver) {
		amount = *maxCarryOver
	}
	return amount
}

// RequestedDays is the inclusive day count of a leave span, with optional
// half-day start and end boundaries.
func RequestedDays(start, end time.Time, startHalf, endHalf bool) decimal.Decimal {
	days := decimal.NewFromInt(int64(end.Sub(start).Hours()/24) + 1)
	half := decimal.NewFromFloat(0.5)
	if startHalf {
		days = days.Sub(half)
	}
	if endHalf && !end.Equal(start) {
		days = days.Sub(half)
	}
	return days
}
