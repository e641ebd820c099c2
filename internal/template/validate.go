package template

import (
	"fmt"
	"strings"

	"github.com/tallerhq/taller/internal/domain"
)

// Validate checks a loaded template schema for structural problems.
func Validate(s *Schema) error {
	phase, err := domain.ParsePhase(s.Phase)
	if err != nil {
		return fmt.Errorf("template phase: %w", err)
	}
	if !phase.HasChecklist() {
		return fmt.Errorf("%w: phase %s does not carry a checklist", domain.ErrValidation, phase)
	}
	if len(s.Items) == 0 {
		return fmt.Errorf("%w: template for %s has no items", domain.ErrValidation, phase)
	}

	seen := make(map[string]bool, len(s.Items))
	for i, item := range s.Items {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			return fmt.Errorf("%w: item %d has an empty id", domain.ErrValidation, i)
		}
		if seen[id] {
			return fmt.Errorf("%w: duplicate item id %q", domain.ErrValidation, id)
		}
		seen[id] = true
		if strings.TrimSpace(item.Description) == "" {
			return fmt.Errorf("%w: item %q has an empty description", domain.ErrValidation, id)
		}
	}
	return nil
}
