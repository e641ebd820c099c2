package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tallerhq/taller/internal/cli/formatter"
	"github.com/tallerhq/taller/internal/domain"
)

func newCheckCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Work with per-phase checklists",
	}

	cmd.AddCommand(
		newCheckShowCmd(app),
		newCheckDoneCmd(app),
		newCheckUndoCmd(app),
		newCheckAddCmd(app),
		newCheckRemoveCmd(app),
	)

	return cmd
}

// checkTarget resolves the order id and phase shared by checklist commands.
// An empty phase flag targets the order's current phase.
func checkTarget(ctx context.Context, app *App, orderArg, phaseFlag string) (string, domain.Phase, error) {
	orderID, err := resolveOrderID(ctx, app, orderArg)
	if err != nil {
		return "", "", err
	}

	if phaseFlag != "" {
		phase, err := domain.ParsePhase(strings.ToUpper(phaseFlag))
		if err != nil {
			return "", "", err
		}
		return orderID, phase, nil
	}

	o, err := app.Orders.GetByID(ctx, orderID)
	if err != nil {
		return "", "", err
	}
	return orderID, o.CurrentPhase, nil
}

func newCheckShowCmd(app *App) *cobra.Command {
	var phaseFlag string

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show a phase checklist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			orderID, phase, err := checkTarget(ctx, app, args[0], phaseFlag)
			if err != nil {
				return err
			}

			o, err := app.Orders.GetByID(ctx, orderID)
			if err != nil {
				return err
			}
			cl, err := o.Checklist(phase)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.RenderBox("", formatter.FormatChecklist(cl)))
			return nil
		},
	}

	cmd.Flags().StringVar(&phaseFlag, "phase", "", "Checklist phase (defaults to the current phase)")

	return cmd
}

func newCheckDoneCmd(app *App) *cobra.Command {
	var phaseFlag, obs string

	cmd := &cobra.Command{
		Use:   "done ID ITEM",
		Short: "Mark a checklist item as completed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			orderID, phase, err := checkTarget(ctx, app, args[0], phaseFlag)
			if err != nil {
				return err
			}

			var obsPtr *string
			if cmd.Flags().Changed("obs") {
				obsPtr = &obs
			}

			o, err := app.Orders.SetItemCompletion(ctx, orderID, phase, args[1], true, obsPtr, app.DefaultActor)
			if err != nil {
				return err
			}

			cl, err := o.Checklist(phase)
			if err != nil {
				return err
			}
			if cl.IsComplete() {
				fmt.Printf("Item done. %s checklist is complete.\n", phase)
			} else {
				fmt.Println("Item done.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&phaseFlag, "phase", "", "Checklist phase (defaults to the current phase)")
	cmd.Flags().StringVar(&obs, "obs", "", "Observations recorded on the item")

	return cmd
}

func newCheckUndoCmd(app *App) *cobra.Command {
	var phaseFlag string

	cmd := &cobra.Command{
		Use:   "undo ID ITEM",
		Short: "Reopen a completed checklist item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			orderID, phase, err := checkTarget(ctx, app, args[0], phaseFlag)
			if err != nil {
				return err
			}

			if _, err := app.Orders.SetItemCompletion(ctx, orderID, phase, args[1], false, nil, app.DefaultActor); err != nil {
				return err
			}

			fmt.Println("Item reopened.")
			return nil
		},
	}

	cmd.Flags().StringVar(&phaseFlag, "phase", "", "Checklist phase (defaults to the current phase)")

	return cmd
}

func newCheckAddCmd(app *App) *cobra.Command {
	var phaseFlag string

	cmd := &cobra.Command{
		Use:   "add ID DESCRIPTION",
		Short: "Add a custom checklist item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			orderID, phase, err := checkTarget(ctx, app, args[0], phaseFlag)
			if err != nil {
				return err
			}

			if _, err := app.Orders.AddCustomItem(ctx, orderID, phase, args[1], app.DefaultActor); err != nil {
				return err
			}

			fmt.Printf("Added custom item to the %s checklist.\n", phase)
			return nil
		},
	}

	cmd.Flags().StringVar(&phaseFlag, "phase", "", "Checklist phase (defaults to the current phase)")

	return cmd
}

func newCheckRemoveCmd(app *App) *cobra.Command {
	var phaseFlag string

	cmd := &cobra.Command{
		Use:   "remove ID ITEM",
		Short: "Remove a custom checklist item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			orderID, phase, err := checkTarget(ctx, app, args[0], phaseFlag)
			if err != nil {
				return err
			}

			if _, err := app.Orders.RemoveCustomItem(ctx, orderID, phase, args[1], app.DefaultActor); err != nil {
				return err
			}

			fmt.Println("Item removed.")
			return nil
		},
	}

	cmd.Flags().StringVar(&phaseFlag, "phase", "", "Checklist phase (defaults to the current phase)")

	return cmd
}
