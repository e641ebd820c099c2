package template

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tallerhq/taller/internal/domain"
)

// Library resolves the checklist template for each checklist-bearing phase.
// Templates come from JSON files in a directory; phases without a file fall
// back to the built-in defaults.
type Library struct {
	templates map[domain.Phase][]domain.TemplateItem
}

// defaultTemplates cover a generic mechanical job. Shops override them by
// dropping <phase>.json files into the template directory.
var defaultTemplates = map[domain.Phase][]domain.TemplateItem{
	domain.PhaseDisassembly: {
		{ID: "drain-fluids", Description: "Drain fluids and dispose per regulation", Mandatory: true},
		{ID: "disconnect-battery", Description: "Disconnect battery", Mandatory: true},
		{ID: "label-fasteners", Description: "Label and bag fasteners by assembly", Mandatory: true},
		{ID: "photo-before", Description: "Photograph assemblies before removal", Mandatory: true},
		{ID: "inspect-adjacent", Description: "Inspect adjacent components for wear", Mandatory: false},
	},
	domain.PhaseReassembly: {
		{ID: "torque-spec", Description: "Torque all fasteners to spec", Mandatory: true},
		{ID: "refill-fluids", Description: "Refill fluids to level", Mandatory: true},
		{ID: "reconnect-battery", Description: "Reconnect battery", Mandatory: true},
		{ID: "clear-codes", Description: "Clear stored fault codes", Mandatory: false},
	},
	domain.PhaseTesting: {
		{ID: "leak-check", Description: "Check for leaks at operating temperature", Mandatory: true},
		{ID: "road-test", Description: "Road test at low and highway speed", Mandatory: true},
		{ID: "final-scan", Description: "Final diagnostic scan", Mandatory: true},
		{ID: "interior-check", Description: "Verify interior is clean", Mandatory: false},
	},
}

// LoadLibrary builds a Library from dir. A missing or empty directory yields
// the built-in defaults; a malformed or invalid template file is an error.
func LoadLibrary(dir string) (*Library, error) {
	lib := &Library{templates: make(map[domain.Phase][]domain.TemplateItem)}
	for phase, items := range defaultTemplates {
		lib.templates[phase] = items
	}
	if dir == "" {
		return lib, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return lib, nil
		}
		return nil, fmt.Errorf("reading template directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		schema, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		phase, _ := domain.ParsePhase(schema.Phase)
		lib.templates[phase] = toTemplateItems(schema)
	}
	return lib, nil
}

func loadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", path, err)
	}
	var schema Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", path, err)
	}
	if err := Validate(&schema); err != nil {
		return nil, fmt.Errorf("template %s: %w", path, err)
	}
	return &schema, nil
}

func toTemplateItems(schema *Schema) []domain.TemplateItem {
	items := make([]domain.TemplateItem, 0, len(schema.Items))
	for _, ic := range schema.Items {
		items = append(items, domain.TemplateItem{
			ID:          strings.TrimSpace(ic.ID),
			Description: strings.TrimSpace(ic.Description),
			Mandatory:   ic.Mandatory,
		})
	}
	return items
}

// ItemsFor returns the template items for phase. Phases without a checklist
// return nil.
func (l *Library) ItemsFor(phase domain.Phase) []domain.TemplateItem {
	return l.templates[phase]
}
