package approval

import (
	"errors"
	"fmt"
)

var ErrInvalidTransition = errors.New("Invalid request status transition")

type Kind string

const (
	KindLeave    Kind = "leave"
	KindOvertime Kind = "overtime"
)

// Status is the shared lifecycle for leave and overtime requests.
type Status string

const (
	StatusPending            Status = "PENDING"
	StatusSupervisorApproved Status = "SUPERVISOR_APPROVED"
	StatusApproved           Status = "APPROVED"
	StatusRejected           Status = "REJECTED"
	StatusCancelled          Status = "CANCELLED"
)

// transitions enumerates every legal one-step move. Cancellation is only
// reachable from PENDING: once a supervisor has acted, reversal goes
// through HR rejection.
var transitions = map[Status][]Status{
	StatusPending:            {StatusSupervisorApproved, StatusRejected, StatusCancelled},
	StatusSupervisorApproved: {StatusApproved, StatusRejected},
	StatusApproved:           {},
	StatusRejected:           {},
	StatusCancelled:          {},
}

// CanTransition reports whether moving from s to target is legal.
func (s Status) CanTransition(target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// HoldsReservation reports whether a request at this status still holds a
// ledger reservation. Releasing is guarded by this, not by ledger state,
// so a double release for the same request is impossible.
func (s Status) HoldsReservation() bool {
	return s == StatusPending || s == StatusSupervisorApproved
}

// StateError names the request kind and the attempted decision when a
// transition is attempted from an incompatible status.
type StateError struct {
	Kind     Kind
	Decision string
	Current  Status
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s %s request in status %s", e.Decision, e.Kind, e.Current)
}

func (e *StateError) Unwrap() error { return ErrInvalidTransition }
