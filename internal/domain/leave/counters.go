package leave

import "github.com/shopspring/decimal"

// BalanceCounters holds the seven ledger counters of one leave balance.
// Fields are unexported; every mutation goes through a method that keeps
// the invariants
//
//	current   = opening + earned - used - forfeited - converted
//	available = current - pending
//
// true, so availableBalance and pendingRequests can never drift apart.
type BalanceCounters struct {
	opening     decimal.Decimal
	earned      decimal.Decimal
	used        decimal.Decimal
	forfeited   decimal.Decimal
	converted   decimal.Decimal
	carriedOver decimal.Decimal
	pending     decimal.Decimal
}

// NewBalanceCounters seeds a balance with an opening (carry-over) amount
// and earned credits. carriedOver records how much of the opening balance
// came from the previous year.
func NewBalanceCounters(opening, carriedOver, earned decimal.Decimal) BalanceCounters {
	return BalanceCounters{
		opening:     opening,
		earned:      earned,
		carriedOver: carriedOver,
	}
}

func (c BalanceCounters) Opening() decimal.Decimal     { return c.opening }
func (c BalanceCounters) Earned() decimal.Decimal      { return c.earned }
func (c BalanceCounters) Used() decimal.Decimal        { return c.used }
func (c BalanceCounters) Forfeited() decimal.Decimal   { return c.forfeited }
func (c BalanceCounters) Converted() decimal.Decimal   { return c.converted }
func (c BalanceCounters) CarriedOver() decimal.Decimal { return c.carriedOver }
func (c BalanceCounters) Pending() decimal.Decimal     { return c.pending }

// Current is opening + earned - used - forfeited - converted.
func (c BalanceCounters) Current() decimal.Decimal {
	return c.opening.Add(c.earned).Sub(c.used).Sub(c.forfeited).Sub(c.converted)
}

// Available is Current minus pending reservations.
func (c BalanceCounters) Available() decimal.Decimal {
	return c.Current().Sub(c.pending)
}

// Reserve places a provisional hold of quantity against the available
// balance. It fails with ErrInsufficientBalance, leaving the counters
// untouched, when quantity exceeds Available.
func (c *BalanceCounters) Reserve(quantity decimal.Decimal) error {
	if quantity.GreaterThan(c.Available()) {
		return ErrInsufficientBalance
	}
	c.pending = c.pending.Add(quantity)
	return nil
}

// Release returns a reservation to the available balance.
func (c *BalanceCounters) Release(quantity decimal.Decimal) {
	c.pending = c.pending.Sub(quantity)
}

// Deduct finalizes a reservation: the quantity moves from pending into
// used. Available is unchanged because it already excluded the pending
// amount.
func (c *BalanceCounters) Deduct(quantity decimal.Decimal) {
	c.pending = c.pending.Sub(quantity)
	c.used = c.used.Add(quantity)
}

// Accrue adds earned credits.
func (c *BalanceCounters) Accrue(quantity decimal.Decimal) {
	c.earned = c.earned.Add(quantity)
}

// Forfeit removes credits without consumption (e.g. expiry).
func (c *BalanceCounters) Forfeit(quantity decimal.Decimal) {
	c.forfeited = c.forfeited.Add(quantity)
}

// Convert removes credits that were paid out instead of taken.
func (c *BalanceCounters) Convert(quantity decimal.Decimal) {
	c.converted = c.converted.Add(quantity)
}

// RestoreCounters rebuilds a BalanceCounters from stored column values.
// Only the persistence layer should use this.
func RestoreCounters(opening, earned, used, forfeited, converted, carriedOver, pending decimal.Decimal) BalanceCounters {
	return BalanceCounters{
		opening:     opening,
		earned:      earned,
		used:        used,
		forfeited:   forfeited,
		converted:   converted,
		carriedOver: carriedOver,
		pending:     pending,
	}
}
