package domain

import "time"

// Note is a timestamped technician annotation. Notes are append-only: they
// are never reordered, edited, or deleted.
type Note struct {
	ID       string
	Text     string
	AuthorID string
	// PhaseAtCreation records the phase the order was in when the note was
	// written. Immutable once set.
	PhaseAtCreation Phase
	CreatedAt       time.Time
}
