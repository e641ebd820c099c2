package domain

import "time"

// TimerLedger tracks cumulative active-work minutes for an order. The ledger
// is phase-agnostic; transitions stop and restart segments at phase
// boundaries so external reporting can attribute time per phase by
// snapshotting AccumulatedMinutes at each transition.
type TimerLedger struct {
	// AccumulatedMinutes never decreases. Per-segment durations are
	// truncated toward zero so partial minutes are never overcounted.
	AccumulatedMinutes int
	// SegmentStartedAt is present iff a segment is currently running.
	SegmentStartedAt *time.Time
}

// IsRunning reports whether a segment is currently open.
func (t *TimerLedger) IsRunning() bool {
	return t.SegmentStartedAt != nil
}

// Start opens a new segment at now. Starting while already running is a
// no-op that leaves the existing segment unchanged.
func (t *TimerLedger) Start(now time.Time) {
	if t.SegmentStartedAt != nil {
		return
	}
	started := now
	t.SegmentStartedAt = &started
}

// Stop closes the running segment, adding its truncated minute count to
// AccumulatedMinutes. Stopping while stopped is a no-op.
func (t *TimerLedger) Stop(now time.Time) {
	if t.SegmentStartedAt == nil {
		return
	}
	elapsed := int(now.Sub(*t.SegmentStartedAt) / time.Minute)
	if elapsed > 0 {
		t.AccumulatedMinutes += elapsed
	}
	t.SegmentStartedAt = nil
}

// ElapsedMinutes returns the live total as of now without mutating the
// ledger: accumulated minutes plus the truncated duration of any open
// segment.
func (t *TimerLedger) ElapsedMinutes(now time.Time) int {
	total := t.AccumulatedMinutes
	if t.SegmentStartedAt != nil {
		if open := int(now.Sub(*t.SegmentStartedAt) / time.Minute); open > 0 {
			total += open
		}
	}
	return total
}
