package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallerhq/taller/internal/domain"
)

func TestFormatChecklist(t *testing.T) {
	cl := domain.NewChecklist(domain.PhaseTesting, []domain.TemplateItem{
		{ID: "road-test", Description: "Road test 10km", Mandatory: true},
		{ID: "leak-check", Description: "Check for leaks", Mandatory: false},
	})

	out := FormatChecklist(cl)
	assert.Contains(t, out, "TESTING CHECKLIST")
	assert.Contains(t, out, "Road test 10km")
	assert.Contains(t, out, "mandatory")
	assert.NotContains(t, out, "complete")
}

func TestFormatChecklist_CompleteWithObservations(t *testing.T) {
	cl := domain.NewChecklist(domain.PhaseTesting, []domain.TemplateItem{
		{ID: "road-test", Description: "Road test 10km", Mandatory: true},
	})
	obs := "slight pull to the left"
	ts := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	require.NoError(t, cl.SetItemCompletion("road-test", true, &obs, "tech-1", ts))

	out := FormatChecklist(cl)
	assert.Contains(t, out, "✔ complete")
	assert.Contains(t, out, "slight pull to the left")
	assert.Contains(t, out, "completed by tech-1")
}
