package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/tallerhq/taller/internal/db"
	"github.com/tallerhq/taller/internal/domain"
)

// SQLiteNoteRepo implements NoteRepo using a SQLite database.
type SQLiteNoteRepo struct {
	db db.DBTX
}

// NewSQLiteNoteRepo creates a new SQLiteNoteRepo.
func NewSQLiteNoteRepo(dbtx db.DBTX) *SQLiteNoteRepo {
	return &SQLiteNoteRepo{db: dbtx}
}

func (r *SQLiteNoteRepo) Create(ctx context.Context, orderID string, n *domain.Note) error {
	query := `INSERT INTO notes (id, order_id, text, author_id, phase_at_creation, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		n.ID,
		orderID,
		n.Text,
		n.AuthorID,
		string(n.PhaseAtCreation),
		n.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting note: %w", err)
	}
	return nil
}

// ListByOrder returns notes in insertion order. The ledger is append-only, so
// rowid order matches creation order even within the same second.
func (r *SQLiteNoteRepo) ListByOrder(ctx context.Context, orderID string) ([]*domain.Note, error) {
	query := `SELECT id, text, author_id, phase_at_creation, created_at
		FROM notes WHERE order_id = ? ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	defer rows.Close()

	var notes []*domain.Note
	for rows.Next() {
		var (
			n         domain.Note
			phase     string
			createdAt string
		)
		if err := rows.Scan(&n.ID, &n.Text, &n.AuthorID, &phase, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		n.PhaseAtCreation = domain.Phase(phase)
		if n.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parsing note created_at: %w", err)
		}
		notes = append(notes, &n)
	}
	return notes, rows.Err()
}
