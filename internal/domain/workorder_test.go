package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func newTestOrder() *WorkOrder {
	return NewWorkOrder("ot-1", "Toyota Hilux 2018", "client-1", testNow)
}

// advanceTo walks an order forward through the sequence, satisfying every
// guard along the way.
func advanceTo(t *testing.T, o *WorkOrder, target Phase) {
	t.Helper()
	at := testNow
	for o.CurrentPhase != target {
		next, ok := o.CurrentPhase.Next()
		require.True(t, ok)

		switch next {
		case PhaseQuoteSent:
			require.NoError(t, o.SetDiagnosis("worn brake pads", 2, at))
		case PhaseDisassembly:
			o.RecordQuoteDecision(true, at)
		case PhaseReassembly, PhaseTesting, PhaseFinished:
			completeChecklist(t, o, at)
		case PhaseDelivered:
			o.RecordDeliveryConfirmation(at)
		}

		at = at.Add(time.Minute)
		require.NoError(t, o.RequestTransition(next, at))
		if next.HasChecklist() {
			_, err := o.EnsureChecklist(next, brakeTemplate())
			require.NoError(t, err)
		}
	}
}

func completeChecklist(t *testing.T, o *WorkOrder, at time.Time) {
	t.Helper()
	cl, err := o.Checklist(o.CurrentPhase)
	require.NoError(t, err)
	for _, it := range cl.Items {
		if it.Mandatory {
			require.NoError(t, cl.SetItemCompletion(it.ID, true, nil, "tech-1", at))
		}
	}
}

func TestNewWorkOrder_StartsReceivedWithStoppedTimer(t *testing.T) {
	o := newTestOrder()
	assert.Equal(t, PhaseReceived, o.CurrentPhase)
	assert.False(t, o.IsWaiting)
	assert.False(t, o.Timer.IsRunning())
	assert.Empty(t, o.Notes)
	assert.Empty(t, o.Checklists)
}

func TestRequestTransition_ToDiagnosisStartsTimer(t *testing.T) {
	o := newTestOrder()
	require.NoError(t, o.RequestTransition(PhaseDiagnosis, testNow))
	assert.Equal(t, PhaseDiagnosis, o.CurrentPhase)
	assert.True(t, o.Timer.IsRunning())
	assert.Equal(t, testNow, o.UpdatedAt)
}

func TestRequestTransition_SkippingForbidden(t *testing.T) {
	o := newTestOrder()
	err := o.RequestTransition(PhaseQuoteSent, testNow)
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, PhaseReceived, o.CurrentPhase)
}

func TestRequestTransition_BackwardForbidden(t *testing.T) {
	o := newTestOrder()
	advanceTo(t, o, PhaseQuoteSent)
	err := o.RequestTransition(PhaseDiagnosis, testNow)
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, PhaseQuoteSent, o.CurrentPhase)
}

func TestRequestTransition_DiagnosisGuard(t *testing.T) {
	o := newTestOrder()
	require.NoError(t, o.RequestTransition(PhaseDiagnosis, testNow))

	err := o.RequestTransition(PhaseQuoteSent, testNow)
	require.ErrorIs(t, err, ErrGuardNotSatisfied)
	var gerr *GuardError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "diagnosis text required", gerr.Reason)
	assert.Equal(t, PhaseDiagnosis, o.CurrentPhase, "failed guard must not move the phase")

	require.NoError(t, o.SetDiagnosis("worn brake pads", 2, testNow))
	require.NoError(t, o.RequestTransition(PhaseQuoteSent, testNow))
	assert.Equal(t, PhaseQuoteSent, o.CurrentPhase)
}

func TestSetDiagnosis_Validation(t *testing.T) {
	o := newTestOrder()
	require.ErrorIs(t, o.SetDiagnosis("  ", 2, testNow), ErrValidation)
	require.ErrorIs(t, o.SetDiagnosis("worn pads", 0, testNow), ErrValidation)
	require.ErrorIs(t, o.SetDiagnosis("worn pads", -1, testNow), ErrValidation)
}

func TestRequestTransition_QuoteGuard(t *testing.T) {
	o := newTestOrder()
	advanceTo(t, o, PhaseQuoteSent)

	err := o.RequestTransition(PhaseDisassembly, testNow)
	require.ErrorIs(t, err, ErrGuardNotSatisfied)

	o.RecordQuoteDecision(true, testNow)
	require.NoError(t, o.RequestTransition(PhaseDisassembly, testNow))
}

func TestRequestTransition_ChecklistGuard(t *testing.T) {
	o := newTestOrder()
	advanceTo(t, o, PhaseDisassembly)

	err := o.RequestTransition(PhaseReassembly, testNow)
	require.ErrorIs(t, err, ErrGuardNotSatisfied)
	var gerr *GuardError
	require.ErrorAs(t, err, &gerr)
	assert.Contains(t, gerr.Reason, "disassembly checklist")

	completeChecklist(t, o, testNow)
	require.NoError(t, o.RequestTransition(PhaseReassembly, testNow))
	assert.Equal(t, PhaseReassembly, o.CurrentPhase)
}

func TestRequestTransition_DeliveryGuard(t *testing.T) {
	o := newTestOrder()
	advanceTo(t, o, PhaseFinished)

	err := o.RequestTransition(PhaseDelivered, testNow)
	require.ErrorIs(t, err, ErrGuardNotSatisfied)

	o.RecordDeliveryConfirmation(testNow)
	require.NoError(t, o.RequestTransition(PhaseDelivered, testNow))
	assert.Equal(t, PhaseDelivered, o.CurrentPhase)
	assert.False(t, o.Timer.IsRunning())
}

func TestRequestTransition_TerminalPhaseStopsTimer(t *testing.T) {
	o := newTestOrder()
	advanceTo(t, o, PhaseFinished)
	assert.False(t, o.Timer.IsRunning(), "no segment should run once finished")
	assert.False(t, o.IsWaiting)
}

func TestRequestTransition_StopsAndRestartsSegmentAtBoundary(t *testing.T) {
	o := newTestOrder()
	require.NoError(t, o.RequestTransition(PhaseDiagnosis, testNow))

	later := testNow.Add(45*time.Minute + 30*time.Second)
	require.NoError(t, o.SetDiagnosis("worn brake pads", 2, later))
	require.NoError(t, o.RequestTransition(PhaseQuoteSent, later))

	assert.Equal(t, 45, o.Timer.AccumulatedMinutes, "outgoing segment accrues truncated minutes")
	require.True(t, o.Timer.IsRunning())
	assert.Equal(t, later, *o.Timer.SegmentStartedAt, "a fresh segment starts at the boundary")
}

func TestEnterWait(t *testing.T) {
	o := newTestOrder()
	advanceTo(t, o, PhaseDiagnosis)
	require.True(t, o.Timer.IsRunning())

	at := testNow.Add(20 * time.Minute)
	require.NoError(t, o.EnterWait("waiting for part", at))
	assert.True(t, o.IsWaiting)
	assert.Equal(t, "waiting for part", o.WaitReason)
	assert.False(t, o.Timer.IsRunning(), "waiting must stop time accrual")
}

func TestEnterWait_Validation(t *testing.T) {
	o := newTestOrder()
	advanceTo(t, o, PhaseDiagnosis)
	require.ErrorIs(t, o.EnterWait("  ", testNow), ErrValidation)
	assert.False(t, o.IsWaiting)
}

func TestEnterWait_AlreadyWaiting(t *testing.T) {
	o := newTestOrder()
	advanceTo(t, o, PhaseDiagnosis)
	require.NoError(t, o.EnterWait("parts", testNow))
	require.ErrorIs(t, o.EnterWait("approval", testNow), ErrAlreadyWaiting)
	assert.Equal(t, "parts", o.WaitReason)
}

func TestEnterWait_ForbiddenInTerminalPhase(t *testing.T) {
	o := newTestOrder()
	advanceTo(t, o, PhaseFinished)
	require.ErrorIs(t, o.EnterWait("parts", testNow), ErrForbidden)
}

func TestExitWait_RestartsTimer(t *testing.T) {
	o := newTestOrder()
	advanceTo(t, o, PhaseDiagnosis)
	require.NoError(t, o.EnterWait("parts", testNow))

	at := testNow.Add(time.Hour)
	require.NoError(t, o.ExitWait(at))
	assert.False(t, o.IsWaiting)
	assert.Empty(t, o.WaitReason)
	require.True(t, o.Timer.IsRunning())
	assert.Equal(t, at, *o.Timer.SegmentStartedAt, "wait time must not accrue")
}

func TestExitWait_NotWaiting(t *testing.T) {
	o := newTestOrder()
	require.ErrorIs(t, o.ExitWait(testNow), ErrNotWaiting)
}

func TestRequestTransition_BusyWhileWaiting(t *testing.T) {
	o := newTestOrder()
	advanceTo(t, o, PhaseReassembly)
	completeChecklist(t, o, testNow)

	require.NoError(t, o.EnterWait("waiting for part", testNow))
	err := o.RequestTransition(PhaseTesting, testNow)
	require.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, PhaseReassembly, o.CurrentPhase)

	require.NoError(t, o.ExitWait(testNow))
	require.NoError(t, o.RequestTransition(PhaseTesting, testNow))
	assert.Equal(t, PhaseTesting, o.CurrentPhase)
}

func TestEnsureChecklist_Idempotent(t *testing.T) {
	o := newTestOrder()
	advanceTo(t, o, PhaseDisassembly)

	cl, err := o.EnsureChecklist(PhaseDisassembly, brakeTemplate())
	require.NoError(t, err)
	require.NoError(t, cl.SetItemCompletion("drain-fluids", true, nil, "tech-1", testNow))

	again, err := o.EnsureChecklist(PhaseDisassembly, nil)
	require.NoError(t, err)
	assert.Same(t, cl, again, "re-entry must return the existing checklist")
	assert.True(t, again.Item("drain-fluids").Completed)
}

func TestEnsureChecklist_NonChecklistPhase(t *testing.T) {
	o := newTestOrder()
	_, err := o.EnsureChecklist(PhaseDiagnosis, nil)
	require.ErrorIs(t, err, ErrValidation)
}

func TestAddNote_StampsCurrentPhase(t *testing.T) {
	o := newTestOrder()
	advanceTo(t, o, PhaseDiagnosis)

	n, err := o.AddNote("note-1", "compression low on cylinder 3", "tech-1", testNow)
	require.NoError(t, err)
	assert.Equal(t, PhaseDiagnosis, n.PhaseAtCreation)
	assert.Equal(t, "tech-1", n.AuthorID)
	require.Len(t, o.Notes, 1)

	// Phase stamp stays put after the order moves on.
	require.NoError(t, o.SetDiagnosis("low compression", 3, testNow))
	require.NoError(t, o.RequestTransition(PhaseQuoteSent, testNow))
	assert.Equal(t, PhaseDiagnosis, o.Notes[0].PhaseAtCreation)
}

func TestAddNote_EmptyText(t *testing.T) {
	o := newTestOrder()
	_, err := o.AddNote("note-1", "   ", "tech-1", testNow)
	require.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, o.Notes)
}

func TestWaitExclusivity_Invariant(t *testing.T) {
	o := newTestOrder()
	advanceTo(t, o, PhaseTesting)

	// Not waiting, not terminal: timer running.
	assert.True(t, o.Timer.IsRunning())

	require.NoError(t, o.EnterWait("inspection backlog", testNow))
	assert.False(t, o.Timer.IsRunning(), "waiting implies stopped")

	require.NoError(t, o.ExitWait(testNow))
	assert.True(t, o.Timer.IsRunning())
}

func TestSnapshot(t *testing.T) {
	o := newTestOrder()
	advanceTo(t, o, PhaseDiagnosis)
	require.NoError(t, o.EnterWait("parts", testNow.Add(time.Minute)))

	snap := o.Snapshot()
	assert.Equal(t, PhaseDiagnosis, snap.Phase)
	assert.True(t, snap.IsWaiting)
	assert.Equal(t, "parts", snap.WaitReason)
	assert.False(t, snap.TimerRunning)
}
