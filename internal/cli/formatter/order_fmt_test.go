package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tallerhq/taller/internal/domain"
)

var now = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func sampleOrder() *domain.WorkOrder {
	o := domain.NewWorkOrder("3f2a8c1e-0000-0000-0000-000000000000", "Toyota Hilux 2018", "Ana Soto", now.Add(-2*time.Hour))
	o.CurrentPhase = domain.PhaseDiagnosis
	o.Timer.AccumulatedMinutes = 95
	return o
}

func TestFormatOrderList(t *testing.T) {
	out := FormatOrderList([]*domain.WorkOrder{sampleOrder()}, now)

	assert.Contains(t, out, "WORK ORDERS")
	assert.Contains(t, out, "Toyota Hilux 2018")
	assert.Contains(t, out, "Ana Soto")
	assert.Contains(t, out, "DIAGNOSIS")
	assert.Contains(t, out, "1h 35m")
	assert.Contains(t, out, "3f2a8c1e")
	assert.NotContains(t, out, "3f2a8c1e-0000")
}

func TestFormatOrderInspect_ShowsWaitAndDiagnosis(t *testing.T) {
	o := sampleOrder()
	o.DiagnosisText = "Worn brake pads"
	o.EstimatedHours = 2.5
	o.IsWaiting = true
	o.WaitReason = "waiting for part"

	out := FormatOrderInspect(o, now)
	assert.Contains(t, out, "WAITING")
	assert.Contains(t, out, "waiting for part")
	assert.Contains(t, out, "Worn brake pads")
	assert.Contains(t, out, "est. 2.5h")
	assert.Contains(t, out, "pending")
}

func TestFormatOrderInspect_RendersChecklistsAndNotes(t *testing.T) {
	o := sampleOrder()
	o.CurrentPhase = domain.PhaseDisassembly
	_, err := o.EnsureChecklist(domain.PhaseDisassembly, []domain.TemplateItem{
		{ID: "drain-fluids", Description: "Drain fluids", Mandatory: true},
	})
	assert.NoError(t, err)
	_, err = o.AddNote("n1", "rattles at idle", "tech-1", now)
	assert.NoError(t, err)

	out := FormatOrderInspect(o, now)
	assert.Contains(t, out, "DISASSEMBLY CHECKLIST")
	assert.Contains(t, out, "Drain fluids")
	assert.Contains(t, out, "NOTES")
	assert.Contains(t, out, "rattles at idle")
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "0m", FormatMinutes(0))
	assert.Equal(t, "45m", FormatMinutes(45))
	assert.Equal(t, "2h", FormatMinutes(120))
	assert.Equal(t, "1h 35m", FormatMinutes(95))
}
