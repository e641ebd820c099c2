package formatter

import (
	"fmt"
	"strings"

	"github.com/tallerhq/taller/internal/domain"
)

// FormatChecklist renders one phase checklist with per-item completion marks.
func FormatChecklist(cl *domain.Checklist) string {
	var b strings.Builder

	b.WriteString(Header(string(cl.Phase) + " checklist"))
	if cl.IsComplete() {
		b.WriteString("\n" + StyleGreen.Render("✔ complete"))
	}
	b.WriteString("\n")

	for _, it := range cl.Items {
		b.WriteString(formatItem(it) + "\n")
	}
	if cl.CompletedAt != nil {
		b.WriteString(Dim(fmt.Sprintf("completed by %s at %s",
			cl.CompletedBy, cl.CompletedAt.Format("Jan 2 15:04"))) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatItem(it *domain.ChecklistItem) string {
	mark := StyleDim.Render("[ ]")
	if it.Completed {
		mark = StyleGreen.Render("[✔]")
	}

	desc := StyleFg.Render(it.Description)
	var tags []string
	if it.Mandatory {
		tags = append(tags, StyleYellow.Render("mandatory"))
	}
	if it.Custom {
		tags = append(tags, StylePurple.Render("custom"))
	}

	line := fmt.Sprintf("%s %s %s", mark, TruncID(it.ID), desc)
	if len(tags) > 0 {
		line += " " + strings.Join(tags, " ")
	}
	if it.Completed && it.CompletedBy != "" {
		line += " " + Dim("("+it.CompletedBy+")")
	}
	if it.Observations != "" {
		line += "\n      " + Dim("↳ "+it.Observations)
	}
	return line
}
