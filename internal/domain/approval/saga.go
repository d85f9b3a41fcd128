package approval

import "time"

// SagaPhase tracks the administrative override flow explicitly instead of
// inferring it from incidental request fields, so the rollback path can be
// exercised on its own.
type SagaPhase int

const (
	SagaNotStarted SagaPhase = iota
	SagaSupervisorSynthesized
	SagaFinalized
	SagaRolledBack
)

func (p SagaPhase) String() string {
	switch p {
	case SagaSupervisorSynthesized:
		return "SUPERVISOR_SYNTHESIZED"
	case SagaFinalized:
		return "FINALIZED"
	case SagaRolledBack:
		return "ROLLED_BACK"
	default:
		return "NOT_STARTED"
	}
}

// SupervisorState snapshots the supervisor-approval fields of a request so
// a failed override can restore them to their exact pre-override values,
// including "absent".
type SupervisorState struct {
	Status     Status
	ApprovedBy *string
	ApprovedAt *time.Time
	Remarks    *string
}

// OverrideSaga is the per-invocation state object of the override flow.
type OverrideSaga struct {
	Phase SagaPhase
	Prior SupervisorState
}

// BeginOverride captures the pre-override supervisor state.
func BeginOverride(prior SupervisorState) *OverrideSaga {
	return &OverrideSaga{Phase: SagaNotStarted, Prior: prior}
}

func (s *OverrideSaga) MarkSynthesized() { s.Phase = SagaSupervisorSynthesized }
func (s *OverrideSaga) MarkFinalized()   { s.Phase = SagaFinalized }
func (s *OverrideSaga) MarkRolledBack()  { s.Phase = SagaRolledBack }

// NeedsRollback reports whether a synthesized supervisor approval must be
// compensated after a finalize failure.
func (s *OverrideSaga) NeedsRollback() bool {
	return s.Phase == SagaSupervisorSynthesized
}

// OverrideSynthesisRemarks is the generated remarks string stamped on a
// synthesized supervisor approval. It names the direction so the trail
// distinguishes an override toward approval from one toward rejection.
func OverrideSynthesisRemarks(approve bool) string {
	if approve {
		return "Supervisor approval synthesized by administrative override toward approval"
	}
	return "Supervisor approval synthesized by administrative override toward rejection"
}

// OverrideFinalizeRemarks is the generated remarks string recorded on the
// HR finalize step of an override.
func OverrideFinalizeRemarks(approve bool) string {
	if approve {
		return "Approved by administrative override"
	}
	return "Rejected by administrative override"
}
