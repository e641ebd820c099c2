package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/tallerhq/taller/internal/domain"
)

// FormatOrderList renders a styled work-order list inside a bordered box.
func FormatOrderList(orders []*domain.WorkOrder, now time.Time) string {
	headers := []string{"ID", "VEHICLE", "CLIENT", "PHASE", "TIME", "UPDATED"}
	rows := make([][]string, 0, len(orders))

	for _, o := range orders {
		phase := PhasePill(o.CurrentPhase)
		if o.IsWaiting {
			phase += " " + StyleRed.Render("⏸")
		}
		rows = append(rows, []string{
			TruncID(o.ID),
			Bold(o.Vehicle),
			StyleFg.Render(o.Client),
			phase,
			StyleFg.Render(FormatMinutes(o.Timer.ElapsedMinutes(now))),
			Dim(HumanTimestamp(o.UpdatedAt, now)),
		})
	}

	return RenderBox("Work Orders", RenderTable(headers, rows))
}

// FormatOrderInspect renders a full card for one work order: metadata,
// timer, instantiated checklists and notes.
func FormatOrderInspect(o *domain.WorkOrder, now time.Time) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(o.Vehicle) + "\n")
	b.WriteString(PhasePill(o.CurrentPhase))
	if badge := WaitBadge(o); badge != "" {
		b.WriteString("  " + badge)
	}
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("CLIENT "), StyleFg.Render(o.Client)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("UUID   "), TruncID(o.ID)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("TIME   "), StyleFg.Render(FormatMinutes(o.Timer.ElapsedMinutes(now)))))
	if o.DiagnosisText != "" {
		b.WriteString(fmt.Sprintf("%s  %s %s\n", StyleDim.Render("DIAG   "),
			StyleFg.Render(o.DiagnosisText), Dim(fmt.Sprintf("(est. %.1fh)", o.EstimatedHours))))
	}
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("QUOTE  "), acceptedBadge(o.QuoteAccepted)))
	if o.DeliveryConfirmed {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("DELIVER"), StyleGreen.Render("confirmed")))
	}
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("UPDATED"), Dim(HumanTimestamp(o.UpdatedAt, now))))

	for _, phase := range domain.ChecklistPhases {
		cl, ok := o.Checklists[phase]
		if !ok {
			continue
		}
		b.WriteString("\n" + FormatChecklist(cl) + "\n")
	}

	if len(o.Notes) > 0 {
		b.WriteString("\n" + Header("Notes") + "\n")
		for _, n := range o.Notes {
			b.WriteString(fmt.Sprintf("%s %s %s\n",
				Dim("["+string(n.PhaseAtCreation)+"]"),
				StyleFg.Render(n.Text),
				Dim("— "+n.AuthorID)))
		}
	}

	return RenderBox("", b.String())
}

func acceptedBadge(accepted bool) string {
	if accepted {
		return StyleGreen.Render("accepted")
	}
	return StyleYellow.Render("pending")
}
