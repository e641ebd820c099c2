package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/tallerhq/taller/internal/cli/formatter"
)

func tallerHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validatePositiveFloat(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number of hours")
	}
	return nil
}

// intakeForm collects vehicle and client for a new work order.
func intakeForm(vehicle, client *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Vehicle").
				Placeholder("Toyota Hilux 2018").
				Value(vehicle).
				Validate(validateRequired("vehicle")),
			huh.NewInput().
				Title("Client").
				Placeholder("Ana Soto").
				Value(client),
		),
	).WithTheme(tallerHuhTheme()).WithShowHelp(false)
}

// runDiagnosisForm collects diagnosis text and the hour estimate.
func runDiagnosisForm() (string, float64, error) {
	var text, hoursStr string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Diagnosis").
				Placeholder("What is wrong with the vehicle").
				Value(&text).
				Validate(validateRequired("diagnosis")),
			huh.NewInput().
				Title("Estimated Hours").
				Placeholder("2.5").
				Value(&hoursStr).
				Validate(validatePositiveFloat),
		),
	).WithTheme(tallerHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return "", 0, err
	}
	hours, err := strconv.ParseFloat(strings.TrimSpace(hoursStr), 64)
	if err != nil {
		return "", 0, err
	}
	return text, hours, nil
}

// waitReasonForm collects the reason for pausing an order.
func waitReasonForm(reason *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Wait Reason").
				Placeholder("waiting for brake pads").
				Value(reason).
				Validate(validateRequired("reason")),
		),
	).WithTheme(tallerHuhTheme()).WithShowHelp(false)
}
