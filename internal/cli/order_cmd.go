package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tallerhq/taller/internal/cli/formatter"
	"github.com/tallerhq/taller/internal/domain"
)

func newOrderCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Manage work orders",
	}

	cmd.AddCommand(
		newOrderAddCmd(app),
		newOrderListCmd(app),
		newOrderInspectCmd(app),
		newOrderDiagnoseCmd(app),
		newOrderAdvanceCmd(app),
		newOrderQuoteCmd(app),
		newOrderDeliverCmd(app),
		newOrderWaitCmd(app),
		newOrderResumeCmd(app),
	)

	return cmd
}

func newOrderAddCmd(app *App) *cobra.Command {
	var vehicle, client string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a vehicle at intake",
		RunE: func(cmd *cobra.Command, args []string) error {
			if vehicle == "" && app.interactive() {
				if err := intakeForm(&vehicle, &client).Run(); err != nil {
					return err
				}
			}

			o, err := app.Orders.Create(context.Background(), vehicle, client, app.DefaultActor)
			if err != nil {
				return err
			}

			fmt.Printf("Created work order %s for %s\n", shortID(o.ID), o.Vehicle)
			return nil
		},
	}

	cmd.Flags().StringVar(&vehicle, "vehicle", "", "Vehicle description")
	cmd.Flags().StringVar(&client, "client", "", "Client name")

	return cmd
}

func newOrderListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List work orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := app.Orders.List(context.Background(), all)
			if err != nil {
				return err
			}

			if len(orders) == 0 {
				fmt.Println("No work orders found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatOrderList(orders, time.Now().UTC()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include delivered orders")

	return cmd
}

func newOrderInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show work order details",
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

			fmt.Printf("%s\n", formatter.FormatOrderInspect(o, time.Now().UTC()))
			return nil
		},
	}
}

func newOrderDiagnoseCmd(app *App) *cobra.Command {
	var text string
	var hours float64

	cmd := &cobra.Command{
		Use:   "diagnose ID",
		Short: "Record the diagnosis and estimated hours",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			orderID, err := resolveOrderID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if text == "" && app.interactive() {
				var err error
				if text, hours, err = runDiagnosisForm(); err != nil {
					return err
				}
			}

			o, err := app.Orders.SetDiagnosis(ctx, orderID, text, hours, app.DefaultActor)
			if err != nil {
				return err
			}

			fmt.Printf("Recorded diagnosis on %s (est. %.1fh)\n", shortID(o.ID), o.EstimatedHours)
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Diagnosis text")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Estimated repair hours")

	return cmd
}

func newOrderAdvanceCmd(app *App) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "advance ID",
		Short: "Advance a work order to its next phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			orderID, err := resolveOrderID(ctx, app, args[0])
			if err != nil {
				return err
			}

			var target domain.Phase
			if to != "" {
				if target, err = domain.ParsePhase(strings.ToUpper(to)); err != nil {
					return err
				}
			} else {
				o, err := app.Orders.GetByID(ctx, orderID)
				if err != nil {
					return err
				}
				next, ok := o.CurrentPhase.Next()
				if !ok {
					return fmt.Errorf("order %s is already %s", shortID(orderID), o.CurrentPhase)
				}
				target = next
			}

			o, err := app.Orders.Advance(ctx, orderID, target, app.DefaultActor)
			if err != nil {
				return err
			}

			fmt.Printf("Order %s is now %s\n", shortID(o.ID), formatter.PhasePill(o.CurrentPhase))
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Target phase (defaults to the next phase)")

	return cmd
}

func newOrderQuoteCmd(app *App) *cobra.Command {
	var accepted, rejected bool

	cmd := &cobra.Command{
		Use:   "quote ID",
		Short: "Record the client's quote decision",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if accepted == rejected {
				return fmt.Errorf("exactly one of --accept or --reject is required")
			}

			ctx := context.Background()
			orderID, err := resolveOrderID(ctx, app, args[0])
			if err != nil {
				return err
			}

			o, err := app.Orders.RecordQuoteDecision(ctx, orderID, accepted, app.DefaultActor)
			if err != nil {
				return err
			}

			decision := "rejected"
			if o.QuoteAccepted {
				decision = "accepted"
			}
			fmt.Printf("Quote %s on order %s\n", decision, shortID(o.ID))
			return nil
		},
	}

	cmd.Flags().BoolVar(&accepted, "accept", false, "Client accepted the quote")
	cmd.Flags().BoolVar(&rejected, "reject", false, "Client rejected the quote")

	return cmd
}

func newOrderDeliverCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "deliver ID",
		Short: "Confirm the vehicle was handed back to the client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			orderID, err := resolveOrderID(ctx, app, args[0])
			if err != nil {
				return err
			}

			o, err := app.Orders.ConfirmDelivery(ctx, orderID, app.DefaultActor)
			if err != nil {
				return err
			}

			fmt.Printf("Delivery confirmed on order %s\n", shortID(o.ID))
			return nil
		},
	}
}

func newOrderWaitCmd(app *App) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "wait ID",
		Short: "Pause active work (parts, client approval)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			orderID, err := resolveOrderID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if reason == "" && app.interactive() {
				if err := waitReasonForm(&reason).Run(); err != nil {
					return err
				}
			}

			o, err := app.Orders.EnterWait(ctx, orderID, reason, app.DefaultActor)
			if err != nil {
				return err
			}

			fmt.Printf("Order %s paused: %s\n", shortID(o.ID), o.WaitReason)
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Why work is paused")

	return cmd
}

func newOrderResumeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resume ID",
		Short: "Resume a paused work order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			orderID, err := resolveOrderID(ctx, app, args[0])
			if err != nil {
				return err
			}

			o, err := app.Orders.ExitWait(ctx, orderID, app.DefaultActor)
			if err != nil {
				return err
			}

			fmt.Printf("Order %s resumed in %s\n", shortID(o.ID), o.CurrentPhase)
			return nil
		},
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
