package db

import (
	"database/sql"
	"fmt"
)

// migrations are executed in order on every open. Statements are written to
// be re-runnable (CREATE IF NOT EXISTS).
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS work_orders (
		id                  TEXT PRIMARY KEY,
		vehicle             TEXT NOT NULL,
		client              TEXT NOT NULL,
		current_phase       TEXT NOT NULL
		                    CHECK(current_phase IN ('RECEIVED','DIAGNOSIS','QUOTE_SENT','DISASSEMBLY',
		                                            'REASSEMBLY','TESTING','FINISHED','DELIVERED')),
		is_waiting          INTEGER NOT NULL DEFAULT 0,
		wait_reason         TEXT NOT NULL DEFAULT '',
		diagnosis_text      TEXT NOT NULL DEFAULT '',
		estimated_hours     REAL NOT NULL DEFAULT 0,
		quote_accepted      INTEGER NOT NULL DEFAULT 0,
		delivery_confirmed  INTEGER NOT NULL DEFAULT 0,
		accumulated_minutes INTEGER NOT NULL DEFAULT 0,
		segment_started_at  TEXT,
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS checklists (
		order_id     TEXT NOT NULL REFERENCES work_orders(id) ON DELETE CASCADE,
		phase        TEXT NOT NULL
		             CHECK(phase IN ('DISASSEMBLY','REASSEMBLY','TESTING')),
		completed_at TEXT,
		completed_by TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (order_id, phase)
	)`,

	`CREATE TABLE IF NOT EXISTS checklist_items (
		order_id     TEXT NOT NULL,
		phase        TEXT NOT NULL,
		item_id      TEXT NOT NULL,
		position     INTEGER NOT NULL,
		description  TEXT NOT NULL,
		mandatory    INTEGER NOT NULL DEFAULT 0,
		custom       INTEGER NOT NULL DEFAULT 0,
		completed    INTEGER NOT NULL DEFAULT 0,
		observations TEXT NOT NULL DEFAULT '',
		completed_at TEXT,
		completed_by TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (order_id, phase, item_id),
		FOREIGN KEY (order_id, phase) REFERENCES checklists(order_id, phase) ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS notes (
		id                TEXT PRIMARY KEY,
		order_id          TEXT NOT NULL REFERENCES work_orders(id) ON DELETE CASCADE,
		text              TEXT NOT NULL,
		author_id         TEXT NOT NULL,
		phase_at_creation TEXT NOT NULL,
		created_at        TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_checklist_items_order_phase
		ON checklist_items(order_id, phase, position)`,

	`CREATE INDEX IF NOT EXISTS idx_notes_order
		ON notes(order_id, created_at)`,

	`CREATE INDEX IF NOT EXISTS idx_work_orders_phase
		ON work_orders(current_phase)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
