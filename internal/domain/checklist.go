package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TemplateItem is one entry of a per-phase checklist template, supplied by
// configuration once per checklist-bearing phase.
type TemplateItem struct {
	ID          string
	Description string
	Mandatory   bool
}

// ChecklistItem is a single verification step. Template-originated items keep
// their template id and are permanent for the life of the checklist; custom
// items get a generated id and may be removed.
type ChecklistItem struct {
	ID          string
	Description string
	// Mandatory is fixed at creation: true only for template-mandatory
	// items. Custom items are never mandatory.
	Mandatory bool
	// Custom marks items added by a technician rather than the template.
	Custom       bool
	Completed    bool
	Observations string
	CompletedAt  *time.Time
	CompletedBy  string
}

// Checklist is the ordered set of verification items for one phase.
// Insertion order is display order; items are never reordered.
type Checklist struct {
	Phase Phase
	Items []*ChecklistItem
	// CompletedAt/CompletedBy are set the instant every mandatory item is
	// completed and cleared again if completion is later broken.
	CompletedAt *time.Time
	CompletedBy string
}

// NewChecklist instantiates a checklist for phase from its template items.
func NewChecklist(phase Phase, template []TemplateItem) *Checklist {
	c := &Checklist{Phase: phase}
	for _, ti := range template {
		c.Items = append(c.Items, &ChecklistItem{
			ID:          ti.ID,
			Description: ti.Description,
			Mandatory:   ti.Mandatory,
		})
	}
	return c
}

// IsComplete reports whether every mandatory item is completed. Optional and
// custom items never block completion; a checklist with zero mandatory items
// is vacuously complete.
func (c *Checklist) IsComplete() bool {
	for _, it := range c.Items {
		if it.Mandatory && !it.Completed {
			return false
		}
	}
	return true
}

// Item returns the item with the given id, or nil.
func (c *Checklist) Item(itemID string) *ChecklistItem {
	for _, it := range c.Items {
		if it.ID == itemID {
			return it
		}
	}
	return nil
}

// SetItemCompletion updates one item's completion state. A nil observations
// pointer leaves the item's observations unchanged. Setting an item to its
// current completion state is a no-op apart from the observations update.
func (c *Checklist) SetItemCompletion(itemID string, completed bool, observations *string, actorID string, now time.Time) error {
	it := c.Item(itemID)
	if it == nil {
		return fmt.Errorf("%w: checklist item %q", ErrNotFound, itemID)
	}

	if observations != nil {
		it.Observations = *observations
	}
	switch {
	case completed && !it.Completed:
		it.Completed = true
		completedAt := now
		it.CompletedAt = &completedAt
		it.CompletedBy = actorID
	case !completed && it.Completed:
		it.Completed = false
		it.CompletedAt = nil
		it.CompletedBy = ""
	}

	c.refreshCompletion(actorID, now)
	return nil
}

// AddCustomItem appends a technician-added, non-mandatory item. Custom items
// never affect checklist completion.
func (c *Checklist) AddCustomItem(description, actorID string, now time.Time) (*ChecklistItem, error) {
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("%w: custom item description is required", ErrValidation)
	}
	it := &ChecklistItem{
		ID:          uuid.New().String(),
		Description: strings.TrimSpace(description),
		Custom:      true,
	}
	c.Items = append(c.Items, it)
	c.refreshCompletion(actorID, now)
	return it, nil
}

// RemoveCustomItem removes a custom item. Template items are permanent.
func (c *Checklist) RemoveCustomItem(itemID string) error {
	for i, it := range c.Items {
		if it.ID != itemID {
			continue
		}
		if !it.Custom {
			return fmt.Errorf("%w: item %q originates from the template", ErrForbidden, itemID)
		}
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
		return nil
	}
	return fmt.Errorf("%w: checklist item %q", ErrNotFound, itemID)
}

// refreshCompletion recomputes the checklist-level completion stamp.
// The stamp is set exactly once when completion transitions false to true and
// cleared when a mandatory item is re-opened.
func (c *Checklist) refreshCompletion(actorID string, now time.Time) {
	if c.IsComplete() {
		if c.CompletedAt == nil {
			completedAt := now
			c.CompletedAt = &completedAt
			c.CompletedBy = actorID
		}
		return
	}
	c.CompletedAt = nil
	c.CompletedBy = ""
}
