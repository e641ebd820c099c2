package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tallerhq/taller/internal/cli/formatter"
)

func newNoteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Technician notes on a work order",
	}

	cmd.AddCommand(
		newNoteAddCmd(app),
		newNoteListCmd(app),
	)

	return cmd
}

func newNoteAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add ID TEXT...",
		Short: "Add a note to a work order",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			orderID, err := resolveOrderID(ctx, app, args[0])
			if err != nil {
				return err
			}

			text := strings.Join(args[1:], " ")
			o, err := app.Orders.AddNote(ctx, orderID, text, app.DefaultActor)
			if err != nil {
				return err
			}

			fmt.Printf("Noted on order %s (%s)\n", shortID(o.ID), o.CurrentPhase)
			return nil
		},
	}
}

func newNoteListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list ID",
		Short: "List notes on a work order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			orderID, err := resolveOrderID(ctx, app, args[0])
			if err != nil {
				return err
			}

			o, err := app.Orders.GetByID(ctx, orderID)
			if err != nil {
				return err
			}

			if len(o.Notes) == 0 {
				fmt.Println("No notes.")
				return nil
			}

			var b strings.Builder
			for _, n := range o.Notes {
				b.WriteString(fmt.Sprintf("%s %s %s\n",
					formatter.Dim(n.CreatedAt.Format("Jan 2 15:04")+" ["+string(n.PhaseAtCreation)+"]"),
					n.Text,
					formatter.Dim("by "+n.AuthorID)))
			}
			fmt.Printf("%s\n", formatter.RenderBox("Notes", strings.TrimRight(b.String(), "\n")))
			return nil
		},
	}
}
