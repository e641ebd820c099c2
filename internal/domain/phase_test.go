package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseNext_FollowsSequence(t *testing.T) {
	for i, p := range PhaseSequence[:len(PhaseSequence)-1] {
		next, ok := p.Next()
		require.True(t, ok, "phase=%s", p)
		assert.Equal(t, PhaseSequence[i+1], next)
	}
}

func TestPhaseNext_LastPhaseHasNoSuccessor(t *testing.T) {
	_, ok := PhaseDelivered.Next()
	assert.False(t, ok)
}

func TestPhaseNext_UnknownPhase(t *testing.T) {
	_, ok := Phase("PAINTING").Next()
	assert.False(t, ok)
}

func TestPhaseIsTerminal(t *testing.T) {
	for _, p := range PhaseSequence {
		expected := p == PhaseFinished || p == PhaseDelivered
		assert.Equal(t, expected, p.IsTerminal(), "phase=%s", p)
	}
}

func TestPhaseHasChecklist(t *testing.T) {
	cases := []struct {
		phase Phase
		has   bool
	}{
		{PhaseReceived, false},
		{PhaseDiagnosis, false},
		{PhaseQuoteSent, false},
		{PhaseDisassembly, true},
		{PhaseReassembly, true},
		{PhaseTesting, true},
		{PhaseFinished, false},
		{PhaseDelivered, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.has, tc.phase.HasChecklist(), "phase=%s", tc.phase)
	}
}

func TestParsePhase(t *testing.T) {
	p, err := ParsePhase("DISASSEMBLY")
	require.NoError(t, err)
	assert.Equal(t, PhaseDisassembly, p)

	_, err = ParsePhase("disassembly")
	require.ErrorIs(t, err, ErrValidation)

	_, err = ParsePhase("")
	require.ErrorIs(t, err, ErrValidation)
}
