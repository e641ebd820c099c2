package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tallerhq/taller/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// PhaseStyle returns the style used to render a phase name.
func PhaseStyle(phase domain.Phase) lipgloss.Style {
	switch phase {
	case domain.PhaseReceived:
		return StyleBlue
	case domain.PhaseDiagnosis, domain.PhaseQuoteSent:
		return StyleYellow
	case domain.PhaseDisassembly, domain.PhaseReassembly, domain.PhaseTesting:
		return StylePurple
	case domain.PhaseFinished, domain.PhaseDelivered:
		return StyleGreen
	default:
		return StyleDim
	}
}

// PhasePill returns a colored phase indicator such as "● DIAGNOSIS".
func PhasePill(phase domain.Phase) string {
	marker := "● "
	if phase.IsTerminal() {
		marker = "✔ "
	}
	return PhaseStyle(phase).Render(marker + string(phase))
}

// WaitBadge renders the waiting state, or an empty string when not waiting.
func WaitBadge(o *domain.WorkOrder) string {
	if !o.IsWaiting {
		return ""
	}
	return StyleRed.Render("⏸ WAITING") + Dim(" ("+o.WaitReason+")")
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
