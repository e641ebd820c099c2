package cli

import (
	"github.com/spf13/cobra"
	"github.com/tallerhq/taller/internal/service"
)

// App holds the service references and ambient settings used by CLI commands.
type App struct {
	Orders service.WorkOrderService

	// DefaultActor is the actor id used when --as is not given.
	DefaultActor string

	// IsInteractive reports whether stdin is a terminal; interactive commands
	// fall back to flags-only behavior when it is false.
	IsInteractive func() bool
}

func (app *App) interactive() bool {
	return app.IsInteractive != nil && app.IsInteractive()
}

// NewRootCmd creates the top-level "taller" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "taller",
		Short: "Vehicle repair work-order tracker",
	}

	root.PersistentFlags().StringVar(&app.DefaultActor, "as", app.DefaultActor, "Actor id recorded on commands")

	root.AddCommand(
		newOrderCmd(app),
		newCheckCmd(app),
		newNoteCmd(app),
		newWatchCmd(app),
	)

	return root
}
