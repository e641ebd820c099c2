package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tallerhq/taller/internal/db"
	"github.com/tallerhq/taller/internal/domain"
)

// checklistItemColumns is the canonical SELECT column list for checklist_items.
const checklistItemColumns = `item_id, description, mandatory, custom, completed,
		observations, completed_at, completed_by`

// SQLiteChecklistRepo implements ChecklistRepo using a SQLite database.
type SQLiteChecklistRepo struct {
	db db.DBTX
}

// NewSQLiteChecklistRepo creates a new SQLiteChecklistRepo.
func NewSQLiteChecklistRepo(dbtx db.DBTX) *SQLiteChecklistRepo {
	return &SQLiteChecklistRepo{db: dbtx}
}

// Save upserts the checklist row and replaces its item set. Item position is
// persisted so display order survives reloads.
func (r *SQLiteChecklistRepo) Save(ctx context.Context, orderID string, cl *domain.Checklist) error {
	query := `INSERT INTO checklists (order_id, phase, completed_at, completed_by)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(order_id, phase) DO UPDATE SET
			completed_at = excluded.completed_at,
			completed_by = excluded.completed_by`
	_, err := r.db.ExecContext(ctx, query,
		orderID,
		string(cl.Phase),
		nullableTimeToString(cl.CompletedAt, time.RFC3339),
		cl.CompletedBy,
	)
	if err != nil {
		return fmt.Errorf("upserting checklist: %w", err)
	}

	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM checklist_items WHERE order_id = ? AND phase = ?`,
		orderID, string(cl.Phase),
	); err != nil {
		return fmt.Errorf("clearing checklist items: %w", err)
	}

	insert := `INSERT INTO checklist_items (order_id, phase, item_id, position, description,
		mandatory, custom, completed, observations, completed_at, completed_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i, it := range cl.Items {
		if _, err := r.db.ExecContext(ctx, insert,
			orderID,
			string(cl.Phase),
			it.ID,
			i,
			it.Description,
			boolToInt(it.Mandatory),
			boolToInt(it.Custom),
			boolToInt(it.Completed),
			it.Observations,
			nullableTimeToString(it.CompletedAt, time.RFC3339),
			it.CompletedBy,
		); err != nil {
			return fmt.Errorf("inserting checklist item %s: %w", it.ID, err)
		}
	}
	return nil
}

func (r *SQLiteChecklistRepo) ListByOrder(ctx context.Context, orderID string) (map[domain.Phase]*domain.Checklist, error) {
	checklists := make(map[domain.Phase]*domain.Checklist)

	rows, err := r.db.QueryContext(ctx,
		`SELECT phase, completed_at, completed_by FROM checklists WHERE order_id = ?`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing checklists: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			phase       string
			completedAt sql.NullString
			completedBy string
		)
		if err := rows.Scan(&phase, &completedAt, &completedBy); err != nil {
			return nil, fmt.Errorf("scanning checklist: %w", err)
		}
		checklists[domain.Phase(phase)] = &domain.Checklist{
			Phase:       domain.Phase(phase),
			CompletedAt: parseNullableTime(completedAt, time.RFC3339),
			CompletedBy: completedBy,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for phase, cl := range checklists {
		items, err := r.listItems(ctx, orderID, phase)
		if err != nil {
			return nil, err
		}
		cl.Items = items
	}
	return checklists, nil
}

func (r *SQLiteChecklistRepo) listItems(ctx context.Context, orderID string, phase domain.Phase) ([]*domain.ChecklistItem, error) {
	query := `SELECT ` + checklistItemColumns + ` FROM checklist_items
		WHERE order_id = ? AND phase = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, orderID, string(phase))
	if err != nil {
		return nil, fmt.Errorf("listing checklist items: %w", err)
	}
	defer rows.Close()

	var items []*domain.ChecklistItem
	for rows.Next() {
		var (
			it          domain.ChecklistItem
			mandatory   int
			custom      int
			completed   int
			completedAt sql.NullString
		)
		if err := rows.Scan(
			&it.ID,
			&it.Description,
			&mandatory,
			&custom,
			&completed,
			&it.Observations,
			&completedAt,
			&it.CompletedBy,
		); err != nil {
			return nil, fmt.Errorf("scanning checklist item: %w", err)
		}
		it.Mandatory = intToBool(mandatory)
		it.Custom = intToBool(custom)
		it.Completed = intToBool(completed)
		it.CompletedAt = parseNullableTime(completedAt, time.RFC3339)
		items = append(items, &it)
	}
	return items, rows.Err()
}
