package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/tallerhq/taller/internal/cli/formatter"
	"github.com/tallerhq/taller/internal/domain"
	"github.com/tallerhq/taller/internal/service"
)

func newWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch ID",
		Short: "Live view of a work order and its running timer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			orderID, err := resolveOrderID(ctx, app, args[0])
			if err != nil {
				return err
			}

			m := newWatchModel(app.Orders, orderID)
			_, err = tea.NewProgram(m).Run()
			return err
		},
	}
}

type watchTickMsg time.Time

type watchDataMsg struct {
	order   *domain.WorkOrder
	elapsed int
	err     error
}

type watchKeyMap struct {
	Quit key.Binding
}

var watchKeys = watchKeyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type watchModel struct {
	orders  service.WorkOrderService
	orderID string

	spin    spinner.Model
	order   *domain.WorkOrder
	elapsed int
	err     error
}

func newWatchModel(orders service.WorkOrderService, orderID string) watchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple
	return watchModel{orders: orders, orderID: orderID, spin: sp}
}

func (m watchModel) fetch() tea.Msg {
	ctx := context.Background()
	o, err := m.orders.GetByID(ctx, m.orderID)
	if err != nil {
		return watchDataMsg{err: err}
	}
	elapsed, err := m.orders.ElapsedMinutes(ctx, m.orderID)
	if err != nil {
		return watchDataMsg{err: err}
	}
	return watchDataMsg{order: o, elapsed: elapsed}
}

func watchTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.fetch, watchTick())
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, watchKeys.Quit) {
			return m, tea.Quit
		}
		return m, nil

	case watchTickMsg:
		return m, tea.Batch(m.fetch, watchTick())

	case watchDataMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.order = msg.order
		m.elapsed = msg.elapsed
		return m, nil

	default:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
}

func (m watchModel) View() string {
	if m.err != nil {
		return formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n"
	}
	if m.order == nil {
		return m.spin.View() + " loading...\n"
	}

	status := formatter.PhasePill(m.order.CurrentPhase)
	if badge := formatter.WaitBadge(m.order); badge != "" {
		status += "  " + badge
	}

	timerLine := formatter.Dim("timer stopped")
	if m.order.Timer.IsRunning() {
		timerLine = m.spin.View() + " " + formatter.StyleFg.Render("working")
	}

	body := fmt.Sprintf("%s\n%s\n\n%s  %s\n%s  %s\n\n%s",
		formatter.Bold(m.order.Vehicle),
		status,
		formatter.StyleDim.Render("TIME  "),
		formatter.StyleFg.Render(formatter.FormatMinutes(m.elapsed)),
		formatter.StyleDim.Render("STATE "),
		timerLine,
		formatter.Dim("q to quit"),
	)
	return formatter.RenderBox("Watching "+shortID(m.orderID), body) + "\n"
}
