package template

// Schema is the JSON structure of a per-phase checklist template file.
// One file per checklist-bearing phase, e.g. disassembly.json:
//
//	{
//	  "phase": "DISASSEMBLY",
//	  "name": "Standard disassembly",
//	  "items": [
//	    {"id": "drain-fluids", "description": "Drain fluids", "mandatory": true}
//	  ]
//	}
type Schema struct {
	Phase string       `json:"phase"`
	Name  string       `json:"name,omitempty"`
	Items []ItemConfig `json:"items"`
}

// ItemConfig is one template item. Ids must be unique within a file; they are
// stable for the life of every checklist instantiated from the template.
type ItemConfig struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Mandatory   bool   `json:"mandatory"`
}
