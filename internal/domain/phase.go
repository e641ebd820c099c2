package domain

import "fmt"

// Phase is one stage of the repair pipeline. The order of PhaseSequence is
// significant: orders only ever advance to the immediate successor.
type Phase string

const (
	PhaseReceived    Phase = "RECEIVED"
	PhaseDiagnosis   Phase = "DIAGNOSIS"
	PhaseQuoteSent   Phase = "QUOTE_SENT"
	PhaseDisassembly Phase = "DISASSEMBLY"
	PhaseReassembly  Phase = "REASSEMBLY"
	PhaseTesting     Phase = "TESTING"
	PhaseFinished    Phase = "FINISHED"
	PhaseDelivered   Phase = "DELIVERED"
)

// PhaseSequence is the canonical forward-only ordering of phases.
var PhaseSequence = []Phase{
	PhaseReceived,
	PhaseDiagnosis,
	PhaseQuoteSent,
	PhaseDisassembly,
	PhaseReassembly,
	PhaseTesting,
	PhaseFinished,
	PhaseDelivered,
}

// ChecklistPhases are the phases that carry a checklist, instantiated lazily
// from a template the first time the phase is entered.
var ChecklistPhases = []Phase{PhaseDisassembly, PhaseReassembly, PhaseTesting}

// Valid reports whether p is a member of the phase sequence.
func (p Phase) Valid() bool {
	return p.Index() >= 0
}

// Index returns the position of p in PhaseSequence, or -1 if p is unknown.
func (p Phase) Index() int {
	for i, ph := range PhaseSequence {
		if ph == p {
			return i
		}
	}
	return -1
}

// Next returns the immediate successor of p. ok is false for the last phase
// and for unknown phases.
func (p Phase) Next() (next Phase, ok bool) {
	i := p.Index()
	if i < 0 || i+1 >= len(PhaseSequence) {
		return "", false
	}
	return PhaseSequence[i+1], true
}

// IsTerminal reports whether active work is over for p. Terminal phases never
// run a timer segment and cannot enter the wait state.
func (p Phase) IsTerminal() bool {
	return p == PhaseFinished || p == PhaseDelivered
}

// HasChecklist reports whether p carries a per-phase checklist.
func (p Phase) HasChecklist() bool {
	for _, ph := range ChecklistPhases {
		if ph == p {
			return true
		}
	}
	return false
}

// ParsePhase converts a raw string into a Phase, case-sensitively.
func ParsePhase(s string) (Phase, error) {
	p := Phase(s)
	if !p.Valid() {
		return "", fmt.Errorf("%w: unknown phase %q", ErrValidation, s)
	}
	return p, nil
}
