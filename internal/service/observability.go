package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/tallerhq/taller/internal/domain"
)

// MutationObserver receives one event per successful command, after commit.
// The external audit-log subsystem persists these; the default implementation
// just logs them.
type MutationObserver interface {
	ObserveMutation(ctx context.Context, event domain.MutationEvent)
}

// NoopMutationObserver ignores all events.
type NoopMutationObserver struct{}

func (NoopMutationObserver) ObserveMutation(context.Context, domain.MutationEvent) {}

type logMutationObserver struct {
	logger *slog.Logger
}

// NewLogMutationObserver writes mutation events to the provided writer.
func NewLogMutationObserver(w io.Writer) MutationObserver {
	if w == nil {
		return NoopMutationObserver{}
	}
	return &logMutationObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logMutationObserver) ObserveMutation(ctx context.Context, event domain.MutationEvent) {
	o.logger.InfoContext(ctx, "work_order_mutation",
		"order_id", event.OrderID,
		"kind", string(event.Kind),
		"actor_id", event.ActorID,
		"phase_before", string(event.Before.Phase),
		"phase_after", string(event.After.Phase),
		"waiting_before", event.Before.IsWaiting,
		"waiting_after", event.After.IsWaiting,
		"accumulated_min", event.After.AccumulatedMinutes,
		"timer_running", event.After.TimerRunning,
	)
}

// Notifier receives the events the excluded notification subsystem fans out:
// phase changes and checklist completions.
type Notifier interface {
	PhaseChanged(ctx context.Context, order *domain.WorkOrder, from, to domain.Phase)
	ChecklistCompleted(ctx context.Context, order *domain.WorkOrder, phase domain.Phase)
}

// NoopNotifier ignores all notifications.
type NoopNotifier struct{}

func (NoopNotifier) PhaseChanged(context.Context, *domain.WorkOrder, domain.Phase, domain.Phase) {}
func (NoopNotifier) ChecklistCompleted(context.Context, *domain.WorkOrder, domain.Phase)        {}

type logNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier writes notification events to the provided writer.
func NewLogNotifier(w io.Writer) Notifier {
	if w == nil {
		return NoopNotifier{}
	}
	return &logNotifier{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (n *logNotifier) PhaseChanged(ctx context.Context, order *domain.WorkOrder, from, to domain.Phase) {
	n.logger.InfoContext(ctx, "phase_changed",
		"order_id", order.ID,
		"vehicle", order.Vehicle,
		"from", string(from),
		"to", string(to),
	)
}

func (n *logNotifier) ChecklistCompleted(ctx context.Context, order *domain.WorkOrder, phase domain.Phase) {
	n.logger.InfoContext(ctx, "checklist_completed",
		"order_id", order.ID,
		"vehicle", order.Vehicle,
		"phase", string(phase),
	)
}
