package repository

import (
	"context"

	"github.com/tallerhq/taller/internal/domain"
)

// WorkOrderRepo persists the scalar state of a work order, including its
// timer ledger columns. Checklists and notes live in their own repos; the
// service layer loads and saves the full aggregate inside one transaction.
type WorkOrderRepo interface {
	Create(ctx context.Context, o *domain.WorkOrder) error
	GetByID(ctx context.Context, id string) (*domain.WorkOrder, error)
	List(ctx context.Context, includeDelivered bool) ([]*domain.WorkOrder, error)
	Update(ctx context.Context, o *domain.WorkOrder) error
}

type ChecklistRepo interface {
	// Save upserts the checklist row for (orderID, phase) and replaces its
	// items with the checklist's current item set.
	Save(ctx context.Context, orderID string, cl *domain.Checklist) error
	ListByOrder(ctx context.Context, orderID string) (map[domain.Phase]*domain.Checklist, error)
}

type NoteRepo interface {
	Create(ctx context.Context, orderID string, n *domain.Note) error
	ListByOrder(ctx context.Context, orderID string) ([]*domain.Note, error)
}
