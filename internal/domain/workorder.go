package domain

import (
	"fmt"
	"strings"
	"time"
)

// WorkOrder is the aggregate root for one repair job. All mutations go
// through its methods; callers are expected to serialize commands per order
// and persist the whole aggregate atomically afterwards.
type WorkOrder struct {
	ID      string
	Vehicle string
	Client  string

	CurrentPhase Phase
	// IsWaiting pauses active work without losing the order's place in the
	// phase sequence. WaitReason is non-empty exactly while waiting.
	IsWaiting  bool
	WaitReason string

	// Diagnosis outcome; both are required before leaving DIAGNOSIS.
	DiagnosisText  string
	EstimatedHours float64

	// External facts recorded by the quoting and delivery subsystems.
	QuoteAccepted     bool
	DeliveryConfirmed bool

	// Checklists are created lazily, one per checklist-bearing phase, the
	// first time that phase is entered.
	Checklists map[Phase]*Checklist
	Notes      []*Note
	Timer      TimerLedger

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewWorkOrder creates an order at vehicle intake: phase RECEIVED, stopped
// timer, no notes, no checklists.
func NewWorkOrder(id, vehicle, client string, now time.Time) *WorkOrder {
	return &WorkOrder{
		ID:           id,
		Vehicle:      vehicle,
		Client:       client,
		CurrentPhase: PhaseReceived,
		Checklists:   make(map[Phase]*Checklist),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (o *WorkOrder) touch(now time.Time) {
	o.UpdatedAt = now
}

// guardFunc checks a precondition for entering a target phase, evaluated
// against the order's state before the transition. A nil return means the
// guard is satisfied.
type guardFunc func(o *WorkOrder) *GuardError

// transitionGuards maps each target phase to its entry guard. Adding a phase
// means adding a row here, not editing scattered conditionals.
var transitionGuards = map[Phase]guardFunc{
	PhaseDiagnosis: nil,
	PhaseQuoteSent: func(o *WorkOrder) *GuardError {
		if strings.TrimSpace(o.DiagnosisText) == "" {
			return &GuardError{Reason: "diagnosis text required"}
		}
		if o.EstimatedHours <= 0 {
			return &GuardError{Reason: "estimated hours must be positive"}
		}
		return nil
	},
	PhaseDisassembly: func(o *WorkOrder) *GuardError {
		if !o.QuoteAccepted {
			return &GuardError{Reason: "quote not accepted"}
		}
		return nil
	},
	PhaseReassembly: checklistGuard(PhaseDisassembly),
	PhaseTesting:    checklistGuard(PhaseReassembly),
	PhaseFinished:   checklistGuard(PhaseTesting),
	PhaseDelivered: func(o *WorkOrder) *GuardError {
		if !o.DeliveryConfirmed {
			return &GuardError{Reason: "delivery not confirmed"}
		}
		return nil
	},
}

func checklistGuard(phase Phase) guardFunc {
	return func(o *WorkOrder) *GuardError {
		cl, ok := o.Checklists[phase]
		if !ok || !cl.IsComplete() {
			return &GuardError{Reason: strings.ToLower(string(phase)) + " checklist incomplete"}
		}
		return nil
	}
}

// RequestTransition advances the order to target, which must be the immediate
// successor of the current phase. On success the running timer segment is
// stopped and, outside terminal phases, a new one is started; entering a
// terminal phase clears the wait flag.
func (o *WorkOrder) RequestTransition(target Phase, now time.Time) error {
	next, ok := o.CurrentPhase.Next()
	if !ok || target != next {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.CurrentPhase, target)
	}
	if o.IsWaiting {
		return fmt.Errorf("%w: resume before advancing", ErrBusy)
	}
	if guard := transitionGuards[target]; guard != nil {
		if gerr := guard(o); gerr != nil {
			return gerr
		}
	}

	o.Timer.Stop(now)
	o.CurrentPhase = target
	if target.IsTerminal() {
		o.IsWaiting = false
		o.WaitReason = ""
	} else {
		o.Timer.Start(now)
	}
	o.touch(now)
	return nil
}

// EnterWait pauses active work: the timer segment is stopped and the reason
// recorded. Waiting is meaningless once a terminal phase is reached.
func (o *WorkOrder) EnterWait(reason string, now time.Time) error {
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("%w: wait reason is required", ErrValidation)
	}
	if o.CurrentPhase.IsTerminal() {
		return fmt.Errorf("%w: order is %s", ErrForbidden, o.CurrentPhase)
	}
	if o.IsWaiting {
		return ErrAlreadyWaiting
	}
	o.Timer.Stop(now)
	o.IsWaiting = true
	o.WaitReason = strings.TrimSpace(reason)
	o.touch(now)
	return nil
}

// ExitWait resumes active work and restarts the timer for the current phase.
func (o *WorkOrder) ExitWait(now time.Time) error {
	if !o.IsWaiting {
		return ErrNotWaiting
	}
	o.IsWaiting = false
	o.WaitReason = ""
	o.Timer.Start(now)
	o.touch(now)
	return nil
}

// SetDiagnosis records the diagnosis outcome required before leaving
// DIAGNOSIS.
func (o *WorkOrder) SetDiagnosis(text string, estimatedHours float64, now time.Time) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: diagnosis text is required", ErrValidation)
	}
	if estimatedHours <= 0 {
		return fmt.Errorf("%w: estimated hours must be positive", ErrValidation)
	}
	o.DiagnosisText = strings.TrimSpace(text)
	o.EstimatedHours = estimatedHours
	o.touch(now)
	return nil
}

// RecordQuoteDecision stores the quoting subsystem's accept/reject fact.
func (o *WorkOrder) RecordQuoteDecision(accepted bool, now time.Time) {
	o.QuoteAccepted = accepted
	o.touch(now)
}

// RecordDeliveryConfirmation stores the delivery subsystem's confirmation.
func (o *WorkOrder) RecordDeliveryConfirmation(now time.Time) {
	o.DeliveryConfirmed = true
	o.touch(now)
}

// EnsureChecklist returns the checklist for phase, instantiating it from
// template on first use. Instantiation is idempotent: an existing checklist
// is returned unchanged.
func (o *WorkOrder) EnsureChecklist(phase Phase, template []TemplateItem) (*Checklist, error) {
	if !phase.HasChecklist() {
		return nil, fmt.Errorf("%w: phase %s has no checklist", ErrValidation, phase)
	}
	if cl, ok := o.Checklists[phase]; ok {
		return cl, nil
	}
	if o.Checklists == nil {
		o.Checklists = make(map[Phase]*Checklist)
	}
	cl := NewChecklist(phase, template)
	o.Checklists[phase] = cl
	return cl, nil
}

// Checklist returns the instantiated checklist for phase, or ErrNotFound if
// that phase has not been entered yet.
func (o *WorkOrder) Checklist(phase Phase) (*Checklist, error) {
	if !phase.HasChecklist() {
		return nil, fmt.Errorf("%w: phase %s has no checklist", ErrValidation, phase)
	}
	cl, ok := o.Checklists[phase]
	if !ok {
		return nil, fmt.Errorf("%w: no %s checklist on order %s", ErrNotFound, phase, o.ID)
	}
	return cl, nil
}

// SetChecklistItem updates one item on the phase's checklist and refreshes
// the order's UpdatedAt, including for no-op re-completions.
func (o *WorkOrder) SetChecklistItem(phase Phase, itemID string, completed bool, observations *string, actorID string, now time.Time) error {
	cl, err := o.Checklist(phase)
	if err != nil {
		return err
	}
	if err := cl.SetItemCompletion(itemID, completed, observations, actorID, now); err != nil {
		return err
	}
	o.touch(now)
	return nil
}

// AddChecklistItem appends a custom item to the phase's checklist.
func (o *WorkOrder) AddChecklistItem(phase Phase, description, actorID string, now time.Time) (*ChecklistItem, error) {
	cl, err := o.Checklist(phase)
	if err != nil {
		return nil, err
	}
	it, err := cl.AddCustomItem(description, actorID, now)
	if err != nil {
		return nil, err
	}
	o.touch(now)
	return it, nil
}

// RemoveChecklistItem removes a custom item from the phase's checklist.
func (o *WorkOrder) RemoveChecklistItem(phase Phase, itemID string, now time.Time) error {
	cl, err := o.Checklist(phase)
	if err != nil {
		return err
	}
	if err := cl.RemoveCustomItem(itemID); err != nil {
		return err
	}
	o.touch(now)
	return nil
}

// AddNote appends a technician annotation stamped with the current phase.
func (o *WorkOrder) AddNote(id, text, authorID string, now time.Time) (*Note, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: note text is required", ErrValidation)
	}
	n := &Note{
		ID:              id,
		Text:            strings.TrimSpace(text),
		AuthorID:        authorID,
		PhaseAtCreation: o.CurrentPhase,
		CreatedAt:       now,
	}
	o.Notes = append(o.Notes, n)
	o.touch(now)
	return n, nil
}
