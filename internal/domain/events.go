package domain

import "time"

// MutationKind identifies which command mutated the aggregate.
type MutationKind string

const (
	MutationOrderCreated      MutationKind = "order_created"
	MutationPhaseChanged      MutationKind = "phase_changed"
	MutationWaitEntered       MutationKind = "wait_entered"
	MutationWaitExited        MutationKind = "wait_exited"
	MutationDiagnosisSet      MutationKind = "diagnosis_set"
	MutationQuoteDecision     MutationKind = "quote_decision_recorded"
	MutationDeliveryConfirmed MutationKind = "delivery_confirmed"
	MutationItemUpdated       MutationKind = "checklist_item_updated"
	MutationItemAdded         MutationKind = "checklist_item_added"
	MutationItemRemoved       MutationKind = "checklist_item_removed"
	MutationNoteAdded         MutationKind = "note_added"
)

// OrderSnapshot is the audit-relevant projection of an order taken before and
// after each mutation.
type OrderSnapshot struct {
	Phase              Phase
	IsWaiting          bool
	WaitReason         string
	AccumulatedMinutes int
	TimerRunning       bool
	UpdatedAt          time.Time
}

// MutationEvent is emitted for every successful mutation. The external
// audit-log subsystem persists these; this core only produces them.
type MutationEvent struct {
	OrderID string
	Kind    MutationKind
	Before  OrderSnapshot
	After   OrderSnapshot
	ActorID string
	At      time.Time
}

// Snapshot captures the order's audit-relevant state.
func (o *WorkOrder) Snapshot() OrderSnapshot {
	return OrderSnapshot{
		Phase:              o.CurrentPhase,
		IsWaiting:          o.IsWaiting,
		WaitReason:         o.WaitReason,
		AccumulatedMinutes: o.Timer.AccumulatedMinutes,
		TimerRunning:       o.Timer.IsRunning(),
		UpdatedAt:          o.UpdatedAt,
	}
}
