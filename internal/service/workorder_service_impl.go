package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tallerhq/taller/internal/db"
	"github.com/tallerhq/taller/internal/domain"
	"github.com/tallerhq/taller/internal/repository"
)

type workOrderService struct {
	orders     repository.WorkOrderRepo
	checklists repository.ChecklistRepo
	notes      repository.NoteRepo
	uow        db.UnitOfWork
	templates  TemplateLibrary

	observer MutationObserver
	notifier Notifier
	clock    func() time.Time
	locks    keyedMutex
}

// Option customizes a WorkOrderService.
type Option func(*workOrderService)

// WithMutationObserver routes post-commit mutation events to obs.
func WithMutationObserver(obs MutationObserver) Option {
	return func(s *workOrderService) {
		if obs != nil {
			s.observer = obs
		}
	}
}

// WithNotifier routes phase-change and checklist-completion events to n.
func WithNotifier(n Notifier) Option {
	return func(s *workOrderService) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithClock overrides the time source. Tests use this to make timer
// arithmetic deterministic.
func WithClock(clock func() time.Time) Option {
	return func(s *workOrderService) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewWorkOrderService creates the work-order command surface. The plain repos
// serve reads; every mutation runs against tx-scoped repos inside uow.
func NewWorkOrderService(
	orders repository.WorkOrderRepo,
	checklists repository.ChecklistRepo,
	notes repository.NoteRepo,
	uow db.UnitOfWork,
	templates TemplateLibrary,
	opts ...Option,
) WorkOrderService {
	s := &workOrderService{
		orders:     orders,
		checklists: checklists,
		notes:      notes,
		uow:        uow,
		templates:  templates,
		observer:   NoopMutationObserver{},
		notifier:   NoopNotifier{},
		clock:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func loadAggregate(ctx context.Context, orders repository.WorkOrderRepo, checklists repository.ChecklistRepo, notes repository.NoteRepo, id string) (*domain.WorkOrder, error) {
	o, err := orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Checklists, err = checklists.ListByOrder(ctx, id); err != nil {
		return nil, err
	}
	if o.Notes, err = notes.ListByOrder(ctx, id); err != nil {
		return nil, err
	}
	return o, nil
}

func checklistCompletion(o *domain.WorkOrder) map[domain.Phase]bool {
	done := make(map[domain.Phase]bool, len(o.Checklists))
	for phase, cl := range o.Checklists {
		done[phase] = cl.IsComplete()
	}
	return done
}

// mutate runs one command against the aggregate: serialize per order, load
// inside a transaction, apply, persist the whole aggregate, then fan out
// events after commit. A failing apply leaves nothing persisted.
func (s *workOrderService) mutate(ctx context.Context, orderID string, kind domain.MutationKind, actorID string, apply func(o *domain.WorkOrder, now time.Time) error) (*domain.WorkOrder, error) {
	unlock := s.locks.lock(orderID)
	defer unlock()

	now := s.clock()
	var (
		updated         *domain.WorkOrder
		before          domain.OrderSnapshot
		completedBefore map[domain.Phase]bool
	)

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txOrders := repository.NewSQLiteWorkOrderRepo(tx)
		txChecklists := repository.NewSQLiteChecklistRepo(tx)
		txNotes := repository.NewSQLiteNoteRepo(tx)

		o, err := loadAggregate(ctx, txOrders, txChecklists, txNotes, orderID)
		if err != nil {
			return err
		}
		before = o.Snapshot()
		completedBefore = checklistCompletion(o)
		noteCount := len(o.Notes)

		if err := apply(o, now); err != nil {
			return err
		}

		if err := txOrders.Update(ctx, o); err != nil {
			return err
		}
		for _, phase := range domain.ChecklistPhases {
			if cl, ok := o.Checklists[phase]; ok {
				if err := txChecklists.Save(ctx, o.ID, cl); err != nil {
					return err
				}
			}
		}
		for _, n := range o.Notes[noteCount:] {
			if err := txNotes.Create(ctx, o.ID, n); err != nil {
				return err
			}
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.observer.ObserveMutation(ctx, domain.MutationEvent{
		OrderID: orderID,
		Kind:    kind,
		Before:  before,
		After:   updated.Snapshot(),
		ActorID: actorID,
		At:      now,
	})
	if before.Phase != updated.CurrentPhase {
		s.notifier.PhaseChanged(ctx, updated, before.Phase, updated.CurrentPhase)
	}
	for phase, cl := range updated.Checklists {
		if cl.IsComplete() && !completedBefore[phase] {
			s.notifier.ChecklistCompleted(ctx, updated, phase)
		}
	}
	return updated, nil
}

func (s *workOrderService) Create(ctx context.Context, vehicle, client, actorID string) (*domain.WorkOrder, error) {
	if strings.TrimSpace(vehicle) == "" {
		return nil, fmt.Errorf("%w: vehicle is required", domain.ErrValidation)
	}

	now := s.clock()
	o := domain.NewWorkOrder(uuid.New().String(), strings.TrimSpace(vehicle), strings.TrimSpace(client), now)

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteWorkOrderRepo(tx).Create(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	s.observer.ObserveMutation(ctx, domain.MutationEvent{
		OrderID: o.ID,
		Kind:    domain.MutationOrderCreated,
		Before:  domain.OrderSnapshot{},
		After:   o.Snapshot(),
		ActorID: actorID,
		At:      now,
	})
	return o, nil
}

func (s *workOrderService) GetByID(ctx context.Context, id string) (*domain.WorkOrder, error) {
	return loadAggregate(ctx, s.orders, s.checklists, s.notes, id)
}

func (s *workOrderService) List(ctx context.Context, includeDelivered bool) ([]*domain.WorkOrder, error) {
	return s.orders.List(ctx, includeDelivered)
}

func (s *workOrderService) ElapsedMinutes(ctx context.Context, id string) (int, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return o.Timer.ElapsedMinutes(s.clock()), nil
}

func (s *workOrderService) SetDiagnosis(ctx context.Context, orderID, text string, estimatedHours float64, actorID string) (*domain.WorkOrder, error) {
	return s.mutate(ctx, orderID, domain.MutationDiagnosisSet, actorID, func(o *domain.WorkOrder, now time.Time) error {
		return o.SetDiagnosis(text, estimatedHours, now)
	})
}

func (s *workOrderService) RecordQuoteDecision(ctx context.Context, orderID string, accepted bool, actorID string) (*domain.WorkOrder, error) {
	return s.mutate(ctx, orderID, domain.MutationQuoteDecision, actorID, func(o *domain.WorkOrder, now time.Time) error {
		o.RecordQuoteDecision(accepted, now)
		return nil
	})
}

func (s *workOrderService) ConfirmDelivery(ctx context.Context, orderID, actorID string) (*domain.WorkOrder, error) {
	return s.mutate(ctx, orderID, domain.MutationDeliveryConfirmed, actorID, func(o *domain.WorkOrder, now time.Time) error {
		o.RecordDeliveryConfirmation(now)
		return nil
	})
}

func (s *workOrderService) Advance(ctx context.Context, orderID string, target domain.Phase, actorID string) (*domain.WorkOrder, error) {
	return s.mutate(ctx, orderID, domain.MutationPhaseChanged, actorID, func(o *domain.WorkOrder, now time.Time) error {
		if err := o.RequestTransition(target, now); err != nil {
			return err
		}
		if target.HasChecklist() {
			if _, err := o.EnsureChecklist(target, s.templates.ItemsFor(target)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *workOrderService) EnterWait(ctx context.Context, orderID, reason, actorID string) (*domain.WorkOrder, error) {
	return s.mutate(ctx, orderID, domain.MutationWaitEntered, actorID, func(o *domain.WorkOrder, now time.Time) error {
		return o.EnterWait(reason, now)
	})
}

func (s *workOrderService) ExitWait(ctx context.Context, orderID, actorID string) (*domain.WorkOrder, error) {
	return s.mutate(ctx, orderID, domain.MutationWaitExited, actorID, func(o *domain.WorkOrder, now time.Time) error {
		return o.ExitWait(now)
	})
}

func (s *workOrderService) SetItemCompletion(ctx context.Context, orderID string, phase domain.Phase, itemID string, completed bool, observations *string, actorID string) (*domain.WorkOrder, error) {
	return s.mutate(ctx, orderID, domain.MutationItemUpdated, actorID, func(o *domain.WorkOrder, now time.Time) error {
		return o.SetChecklistItem(phase, itemID, completed, observations, actorID, now)
	})
}

func (s *workOrderService) AddCustomItem(ctx context.Context, orderID string, phase domain.Phase, description, actorID string) (*domain.WorkOrder, error) {
	return s.mutate(ctx, orderID, domain.MutationItemAdded, actorID, func(o *domain.WorkOrder, now time.Time) error {
		_, err := o.AddChecklistItem(phase, description, actorID, now)
		return err
	})
}

func (s *workOrderService) RemoveCustomItem(ctx context.Context, orderID string, phase domain.Phase, itemID, actorID string) (*domain.WorkOrder, error) {
	return s.mutate(ctx, orderID, domain.MutationItemRemoved, actorID, func(o *domain.WorkOrder, now time.Time) error {
		return o.RemoveChecklistItem(phase, itemID, now)
	})
}

func (s *workOrderService) AddNote(ctx context.Context, orderID, text, authorID string) (*domain.WorkOrder, error) {
	return s.mutate(ctx, orderID, domain.MutationNoteAdded, authorID, func(o *domain.WorkOrder, now time.Time) error {
		_, err := o.AddNote(uuid.New().String(), text, authorID, now)
		return err
	})
}
