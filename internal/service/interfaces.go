package service

import (
	"context"

	"github.com/tallerhq/taller/internal/domain"
)

// TemplateLibrary resolves the checklist template for a phase. Satisfied by
// *template.Library; tests inject fixtures.
type TemplateLibrary interface {
	ItemsFor(phase domain.Phase) []domain.TemplateItem
}

// WorkOrderService is the single mutation entry point for work orders. Every
// command is applied atomically: the whole aggregate (phase, checklists,
// timer, notes) commits in one transaction, and commands against the same
// order are serialized while distinct orders proceed independently.
type WorkOrderService interface {
	Create(ctx context.Context, vehicle, client, actorID string) (*domain.WorkOrder, error)
	GetByID(ctx context.Context, id string) (*domain.WorkOrder, error)
	List(ctx context.Context, includeDelivered bool) ([]*domain.WorkOrder, error)
	// ElapsedMinutes is the live timer read: accumulated minutes plus any
	// open segment, without mutating the ledger.
	ElapsedMinutes(ctx context.Context, id string) (int, error)

	SetDiagnosis(ctx context.Context, orderID, text string, estimatedHours float64, actorID string) (*domain.WorkOrder, error)
	RecordQuoteDecision(ctx context.Context, orderID string, accepted bool, actorID string) (*domain.WorkOrder, error)
	ConfirmDelivery(ctx context.Context, orderID, actorID string) (*domain.WorkOrder, error)

	Advance(ctx context.Context, orderID string, target domain.Phase, actorID string) (*domain.WorkOrder, error)
	EnterWait(ctx context.Context, orderID, reason, actorID string) (*domain.WorkOrder, error)
	ExitWait(ctx context.Context, orderID, actorID string) (*domain.WorkOrder, error)

	SetItemCompletion(ctx context.Context, orderID string, phase domain.Phase, itemID string, completed bool, observations *string, actorID string) (*domain.WorkOrder, error)
	AddCustomItem(ctx context.Context, orderID string, phase domain.Phase, description, actorID string) (*domain.WorkOrder, error)
	RemoveCustomItem(ctx context.Context, orderID string, phase domain.Phase, itemID, actorID string) (*domain.WorkOrder, error)

	AddNote(ctx context.Context, orderID, text, authorID string) (*domain.WorkOrder, error)
}
